package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nanowhale/internal/docker"
	"nanowhale/pkg/logging"
)

// Update is the single consumer of every event in the program.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = max(msg.Width-4, 10)
		m.logView.Height = max(detailPaneHeight(msg.Height), 3)
		return m, nil

	case spinner.TickMsg:
		if m.pinged {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.InterruptMsg:
		// During a takeover the interrupt belongs to the foreground child's
		// process group, never to the dashboard.
		if m.takeover.Active() {
			m.takeover.Cancel()
			return m, nil
		}
		return m, tea.Quit

	case pingResultMsg:
		return m.handlePingResult(msg)

	case containersLoadedMsg:
		return m.handleContainersLoaded(msg)

	case taxonomyLoadedMsg:
		return m.handleTaxonomyLoaded(msg)

	case fastTickMsg:
		if msg.gen != m.tickGen || m.takeover.Active() {
			return m, nil
		}
		return m, tea.Batch(
			loadContainersCmd(m.client),
			fastTickCmd(m.cfg.Polling.ContainerInterval, m.tickGen),
		)

	case slowTickMsg:
		if msg.gen != m.tickGen || m.takeover.Active() {
			return m, nil
		}
		return m, tea.Batch(
			loadTaxonomyCmd(m.client),
			slowTickCmd(m.cfg.Polling.TaxonomyInterval, m.tickGen),
		)

	case streamUpdateMsg:
		m.refreshLogView()
		return m, waitStreamCmd(m.streamCh)

	case logEntryMsg:
		m.activity = append(m.activity, msg.entry)
		if len(m.activity) > maxActivityEntries {
			m.activity = m.activity[len(m.activity)-maxActivityEntries:]
		}
		return m, listenLogsCmd(m.logCh)

	case batchDoneMsg:
		return m.handleBatchDone(msg)

	case detailLoadedMsg:
		if msg.err != nil {
			return m, m.setToast(fmt.Sprintf("%s for %s failed: %v", msg.tab, msg.name, msg.err), true)
		}
		return m, nil

	case takeoverDoneMsg:
		return m.handleTakeoverDone(msg)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
			m.toastIsErr = false
		}
		return m, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			return m, m.setToast(fmt.Sprintf("copy failed: %v", msg.err), true)
		}
		return m, m.setToast("logs copied to clipboard", false)
	}

	return m, nil
}

func (m Model) handlePingResult(msg pingResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Fatal to the dashboard view: render the persistent error pane and
		// never silently retry.
		m.fatalErr = msg.err
		logging.Error("Dashboard", msg.err, "engine probe failed")
		return m, nil
	}
	m.pinged = true
	logging.Info("Dashboard", "engine reachable, starting streams and polling")

	statsStr := m.statsStr
	startStats := func() tea.Msg {
		_ = statsStr.Start()
		return nil
	}
	return m, tea.Batch(
		startStats,
		loadContainersCmd(m.client),
		loadTaxonomyCmd(m.client),
		fastTickCmd(m.cfg.Polling.ContainerInterval, m.tickGen),
		slowTickCmd(m.cfg.Polling.TaxonomyInterval, m.tickGen),
	)
}

func (m Model) handleContainersLoaded(msg containersLoadedMsg) (tea.Model, tea.Cmd) {
	if m.takeover.Active() {
		// A poll that was in flight when the takeover began must not touch
		// state or spawn a log follower while the streams are suspended.
		return m, nil
	}
	if msg.err != nil {
		// Keep stale data; the next tick is the retry mechanism.
		return m, m.setToast(fmt.Sprintf("container refresh failed: %v", msg.err), true)
	}
	changed := m.cache.SetContainers(msg.containers)
	m.lastPoll = time.Now()
	m.sel.Clamp(docker.KindContainer, len(msg.containers))
	if !changed {
		// Identical snapshot: leave the cursor and scroll untouched.
		return m, nil
	}
	return m, m.syncLogFollow()
}

func (m Model) handleTaxonomyLoaded(msg taxonomyLoadedMsg) (tea.Model, tea.Cmd) {
	if m.takeover.Active() {
		return m, nil
	}
	if msg.err != nil {
		// Keep the stale lists; wiping them would also collapse selections.
		return m, m.setToast(fmt.Sprintf("refresh failed: %v", msg.err), true)
	}
	m.cache.SetImages(msg.images)
	m.cache.SetVolumes(msg.volumes)
	m.cache.SetNetworks(msg.networks)
	m.sel.Clamp(docker.KindImage, len(msg.images))
	m.sel.Clamp(docker.KindVolume, len(msg.volumes))
	m.sel.Clamp(docker.KindNetwork, len(msg.networks))
	return m, nil
}

func (m Model) handleBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	m.sel.ClearMarks(msg.kind)

	text := fmt.Sprintf("%s: %d ok", msg.report.Action, msg.report.Succeeded)
	isErr := false
	if msg.report.Failed > 0 {
		text = fmt.Sprintf("%s: %d ok, %d failed (%v)",
			msg.report.Action, msg.report.Succeeded, msg.report.Failed, msg.report.FirstErr)
		isErr = true
	}
	if len(msg.report.Warnings) > 0 {
		text += " — " + msg.report.Warnings[0]
	}

	refresh := loadContainersCmd(m.client)
	if msg.kind != docker.KindContainer {
		refresh = loadTaxonomyCmd(m.client)
	}
	return m, tea.Batch(m.setToast(text, isErr), refresh)
}

func (m Model) handleTakeoverDone(msg takeoverDoneMsg) (tea.Model, tea.Cmd) {
	// Fresh generation: ticks armed before the takeover are dead on arrival.
	m.tickGen++
	cmds := []tea.Cmd{
		fastTickCmd(m.cfg.Polling.ContainerInterval, m.tickGen),
		slowTickCmd(m.cfg.Polling.TaxonomyInterval, m.tickGen),
		loadContainersCmd(m.client),
	}
	if follow := m.syncLogFollow(); follow != nil {
		cmds = append(cmds, follow)
	}
	if msg.err != nil {
		cmds = append(cmds, m.setToast(fmt.Sprintf("%s session failed: %v", msg.label, msg.err), true))
	}
	return m, tea.Batch(cmds...)
}

// refreshLogView pushes the log buffer into the viewport, following the tail
// when auto-scroll is on.
func (m *Model) refreshLogView() {
	if m.detail != DetailLogs || m.kind != docker.KindContainer {
		return
	}
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(m.logs.Contents())
	if m.cfg.UI.AutoScroll() && atBottom {
		m.logView.GotoBottom()
	}
}

func detailPaneHeight(total int) int {
	return total/2 - 4
}
