package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nanowhale/internal/docker"
)

var entityTabs = []docker.EntityKind{
	docker.KindContainer,
	docker.KindImage,
	docker.KindVolume,
	docker.KindNetwork,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The fatal pane accepts nothing but quit.
	if m.fatalErr != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// A pending confirmation swallows every key until answered.
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y":
			cmd := m.confirm.cmd
			m.confirm = nil
			return m, cmd
		case "n", "N", "esc":
			m.confirm = nil
			return m, nil
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.sel.Move(m.kind, -1, len(m.identities(m.kind)))
		return m, m.afterCursorMove()

	case key.Matches(msg, m.keys.Down):
		m.sel.Move(m.kind, 1, len(m.identities(m.kind)))
		return m, m.afterCursorMove()

	case key.Matches(msg, m.keys.NextTab):
		m.kind = cycleKind(m.kind, 1)
		return m, m.afterCursorMove()

	case key.Matches(msg, m.keys.PrevTab):
		m.kind = cycleKind(m.kind, -1)
		return m, m.afterCursorMove()

	case key.Matches(msg, m.keys.NextDetail):
		return m.cycleDetail(1)

	case key.Matches(msg, m.keys.PrevDetail):
		return m.cycleDetail(-1)

	case key.Matches(msg, m.keys.Mark):
		if id := m.activeIdentity(); id != "" {
			m.sel.Toggle(m.kind, id)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAll):
		m.sel.ToggleAll(m.kind, m.identities(m.kind))
		return m, nil

	case key.Matches(msg, m.keys.Start):
		return m.dispatchLifecycle(docker.ActionStart)

	case key.Matches(msg, m.keys.Stop):
		return m.dispatchLifecycle(docker.ActionStop)

	case key.Matches(msg, m.keys.Restart):
		return m.dispatchLifecycle(docker.ActionRestart)

	case key.Matches(msg, m.keys.Remove):
		return m.requestRemove()

	case key.Matches(msg, m.keys.Prune):
		prompt := fmt.Sprintf("Prune all unused %s? [y/n]", m.kind)
		m.confirm = &confirmState{prompt: prompt, cmd: pruneCmd(m.client, m.kind)}
		return m, nil

	case key.Matches(msg, m.keys.Shell):
		return m.enterShell()

	case key.Matches(msg, m.keys.Fullscreen):
		return m.enterFullscreenLogs()

	case key.Matches(msg, m.keys.Refresh):
		m.details.InvalidateAll()
		return m, tea.Batch(
			loadContainersCmd(m.client),
			loadTaxonomyCmd(m.client),
			m.setToast("refreshing", false),
		)

	case key.Matches(msg, m.keys.CopyLogs):
		if m.kind == docker.KindContainer && m.logs.Container() != "" {
			return m, copyLogsCmd(m.logs.Contents())
		}
		return m, nil
	}

	// Remaining keys scroll the log viewport when it is visible.
	if m.kind == docker.KindContainer && m.detail == DetailLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// afterCursorMove re-points the log follow and detail fetch at the new row.
func (m *Model) afterCursorMove() tea.Cmd {
	return tea.Batch(m.syncLogFollow(), m.fetchDetail())
}

func (m Model) cycleDetail(delta int) (tea.Model, tea.Cmd) {
	if m.kind != docker.KindContainer {
		return m, nil
	}
	idx := (int(m.detail) + delta + len(detailTabs)) % len(detailTabs)
	m.detail = detailTabs[idx]
	m.refreshLogView()
	return m, m.afterCursorMove()
}

// dispatchLifecycle applies start/stop/restart to the marked set or the
// active container. Lifecycle actions are not destructive, so no
// confirmation.
func (m Model) dispatchLifecycle(action docker.ContainerAction) (tea.Model, tea.Cmd) {
	if m.kind != docker.KindContainer {
		return m, nil
	}
	targets := m.sel.Targets(docker.KindContainer, m.identities(docker.KindContainer))
	if len(targets) == 0 {
		return m, nil
	}

	client := m.client
	op := batchOp{
		name: string(action),
		run: func(ctx context.Context, id string) error {
			return client.ContainerDo(ctx, action, id)
		},
	}
	if action == docker.ActionStop {
		op.warn = func(ctx context.Context, id string) string {
			if client.WillAutoRestart(ctx, id) {
				return fmt.Sprintf("%s has a restart policy and will come back", id)
			}
			return ""
		}
	}

	return m, tea.Batch(
		runBatchCmd(docker.KindContainer, op, targets),
		m.setToast(fmt.Sprintf("%s: %d container(s)", action, len(targets)), false),
	)
}

// requestRemove gates deletion behind a confirmation and drops protected
// networks from the target set before anything is dispatched.
func (m Model) requestRemove() (tea.Model, tea.Cmd) {
	targets := m.sel.Targets(m.kind, m.identities(m.kind))
	if len(targets) == 0 {
		return m, nil
	}

	if m.kind == docker.KindNetwork {
		kept := targets[:0:0]
		for _, t := range targets {
			if m.cfg.UI.IsProtectedNetwork(t) {
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			return m, m.setToast("built-in networks cannot be removed", true)
		}
		targets = kept
	}

	client := m.client
	var op batchOp
	switch m.kind {
	case docker.KindContainer:
		op = batchOp{name: "delete", run: func(ctx context.Context, id string) error {
			return client.ContainerDo(ctx, docker.ActionRemove, id)
		}}
	case docker.KindImage:
		op = batchOp{name: "delete", run: func(ctx context.Context, id string) error {
			return client.RemoveImage(ctx, id)
		}}
	case docker.KindVolume:
		op = batchOp{name: "delete", run: func(ctx context.Context, id string) error {
			return client.RemoveVolume(ctx, id, false)
		}}
	case docker.KindNetwork:
		op = batchOp{name: "delete", run: func(ctx context.Context, id string) error {
			return client.RemoveNetwork(ctx, id)
		}}
	}

	m.confirm = &confirmState{
		prompt: fmt.Sprintf("Delete %d of %s? [y/n]", len(targets), m.kind),
		cmd:    runBatchCmd(m.kind, op, targets),
	}
	return m, nil
}

func (m Model) enterShell() (tea.Model, tea.Cmd) {
	c, ok := m.activeContainer()
	if !ok {
		return m, nil
	}
	if c.State != docker.StateRunning {
		return m, m.setToast(fmt.Sprintf("%s is not running", c.Name), true)
	}
	cmd := bindTerminal(m.client.ShellCommand(c.Name))
	return m, takeoverCmd(m.takeover, "shell", cmd)
}

func (m Model) enterFullscreenLogs() (tea.Model, tea.Cmd) {
	c, ok := m.activeContainer()
	if !ok {
		return m, nil
	}
	cmd := bindTerminal(m.client.FollowLogsCommand(c.Name, m.cfg.Streams.LogTail))
	return m, takeoverCmd(m.takeover, "logs", cmd)
}

func cycleKind(kind docker.EntityKind, delta int) docker.EntityKind {
	for i, k := range entityTabs {
		if k == kind {
			return entityTabs[(i+delta+len(entityTabs))%len(entityTabs)]
		}
	}
	return entityTabs[0]
}
