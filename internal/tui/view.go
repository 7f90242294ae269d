package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"nanowhale/internal/docker"
)

// View renders the whole dashboard.
func (m Model) View() string {
	if m.fatalErr != nil {
		return m.viewFatal()
	}
	if !m.pinged {
		return appStyle.Render(fmt.Sprintf("\n  %s contacting container engine…\n", m.spinner.View()))
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	b.WriteString(m.viewList())
	if m.kind == docker.KindContainer {
		b.WriteString("\n")
		b.WriteString(m.viewDetail())
	}
	if pane := m.viewActivity(); pane != "" {
		b.WriteString("\n")
		b.WriteString(pane)
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())

	if m.confirm != nil {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(m.confirm.prompt))
	}
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return appStyle.Render(b.String())
}

func (m Model) viewFatal() string {
	msg := fmt.Sprintf("Cannot reach the container engine.\n\n%v\n\nCheck that the engine is running, then restart the dashboard.\nPress q to quit.", m.fatalErr)
	return fatalPaneStyle.Render(errorStyle.Render(msg))
}

func (m Model) viewHeader() string {
	engine := strings.Join(m.cfg.Engine.CommandLine(), " ")
	updated := "never"
	if !m.lastPoll.IsZero() {
		updated = humanize.Time(m.lastPoll)
	}
	return headerStyle.Render(fmt.Sprintf("nanowhale — %s — updated %s", engine, updated))
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, kind := range entityTabs {
		label := fmt.Sprintf("%s (%d)", titleCase(kind.String()), m.cache.Len(kind))
		if marked := m.sel.MarkedCount(kind); marked > 0 {
			label += fmt.Sprintf(" [%d✓]", marked)
		}
		if kind == m.kind {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewList() string {
	var rows []string
	switch m.kind {
	case docker.KindContainer:
		for i, c := range m.cache.Containers() {
			rows = append(rows, m.containerRow(i, c))
		}
	case docker.KindImage:
		for i, img := range m.cache.Images() {
			label := fmt.Sprintf("%-14s %-40s %s",
				truncate(img.ID, 14), truncate(img.Repository+":"+img.Tag, 40), img.Size)
			rows = append(rows, m.styledRow(i, img.Identity(), label))
		}
	case docker.KindVolume:
		for i, v := range m.cache.Volumes() {
			label := fmt.Sprintf("%-40s %s", truncate(v.Name, 40), v.Driver)
			rows = append(rows, m.styledRow(i, v.Identity(), label))
		}
	case docker.KindNetwork:
		for i, n := range m.cache.Networks() {
			label := fmt.Sprintf("%-30s %s", truncate(n.Name, 30), n.Driver)
			if m.cfg.UI.IsProtectedNetwork(n.Name) {
				label += "  (protected)"
			}
			rows = append(rows, m.styledRow(i, n.Identity(), label))
		}
	}

	if len(rows) == 0 {
		// Empty list gets a single disabled placeholder row.
		rows = append(rows, placeholderStyle.Render(fmt.Sprintf("  no %s", m.kind)))
	}
	return panelStyle.Width(max(m.width-2, 20)).Render(strings.Join(rows, "\n"))
}

func (m Model) containerRow(i int, c docker.Container) string {
	state := string(c.State)
	switch c.State {
	case docker.StateRunning:
		state = runningStyle.Render(state)
	case docker.StateExited:
		state = exitedStyle.Render(state)
	case docker.StatePaused:
		state = pausedStyle.Render(state)
	}
	label := fmt.Sprintf("%-24s %-28s %-10s %s",
		truncate(c.Name, 24), truncate(c.Image, 28), state, truncate(c.Ports, 30))
	return m.styledRow(i, c.Identity(), label)
}

// styledRow applies cursor and mark decoration to one list row. The two are
// independent: a marked row under the cursor shows both glyphs.
func (m Model) styledRow(i int, id, label string) string {
	mark := "  "
	if m.sel.IsMarked(m.kind, id) {
		mark = "✓ "
	}
	if i == m.sel.Active(m.kind) {
		return cursorRowStyle.Render("▶ " + mark + label)
	}
	if mark != "  " {
		return "  " + markedRowStyle.Render(mark) + label
	}
	return "  " + mark + label
}

func (m Model) viewDetail() string {
	var tabs []string
	for _, t := range detailTabs {
		if t == m.detail {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	c, ok := m.activeContainer()
	if !ok {
		return bar + "\n" + placeholderStyle.Render("  select a container")
	}

	var body string
	switch m.detail {
	case DetailLogs:
		body = m.logView.View()
	case DetailMetrics:
		body = m.viewMetrics(c.Name)
	case DetailEnv:
		if env, ok := m.details.CachedEnv(c.Name); ok {
			body = strings.Join(env, "\n")
		} else {
			body = placeholderStyle.Render("loading environment…")
		}
	case DetailInspect:
		if raw, ok := m.details.CachedInspect(c.Name); ok {
			body = raw
		} else {
			body = placeholderStyle.Render("loading inspection…")
		}
	case DetailTop:
		if top, ok := m.details.CachedTop(c.Name); ok {
			body = top
		} else {
			body = placeholderStyle.Render("loading process table…")
		}
	}

	title := detailTitleStyle.Render(c.Name)
	return bar + "\n" + panelStyle.Width(max(m.width-2, 20)).Render(title+"\n"+body)
}

func (m Model) viewMetrics(name string) string {
	sample, ok := m.stats.Current(name)
	if !ok {
		return placeholderStyle.Render("waiting for samples…")
	}
	width := max(m.width-20, 10)
	var b strings.Builder
	fmt.Fprintf(&b, "cpu %6.2f%%  %s\n", sample.CPUPercent,
		sparklineStyle.Render(sparkline(m.stats.CPUHistory(name), width, 100)))
	fmt.Fprintf(&b, "mem %6.2f%%  %s\n", sample.MemPercent,
		sparklineStyle.Render(sparkline(m.stats.MemHistory(name), width, 100)))
	fmt.Fprintf(&b, "mem %s   net %s   io %s   pids %d",
		sample.MemUsage, sample.NetIO, sample.BlockIO, sample.PIDs)
	return b.String()
}

// viewActivity shows the newest application log entries when the terminal is
// tall enough to spare the rows.
func (m Model) viewActivity() string {
	const minHeightForActivity = 30
	if m.height < minHeightForActivity || len(m.activity) == 0 {
		return ""
	}
	start := max(len(m.activity)-3, 0)
	var lines []string
	for _, e := range m.activity[start:] {
		lines = append(lines, truncate(e.String(), max(m.width-4, 20)))
	}
	return placeholderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewStatusBar() string {
	if m.toast != "" {
		if m.toastIsErr {
			return statusBarStyle.Render(errorStyle.Render(m.toast))
		}
		return statusBarStyle.Render(toastStyle.Render(m.toast))
	}
	return statusBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// truncate shortens a cell to the given display width, rune-width aware.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
