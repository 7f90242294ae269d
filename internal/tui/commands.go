package tui

import (
	"context"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"nanowhale/internal/docker"
	"nanowhale/pkg/logging"
)

func pingCmd(client *docker.Client) tea.Cmd {
	return func() tea.Msg {
		return pingResultMsg{err: client.Ping(context.Background())}
	}
}

func loadContainersCmd(client *docker.Client) tea.Cmd {
	return func() tea.Msg {
		containers, err := client.ListContainers(context.Background())
		return containersLoadedMsg{containers: containers, err: err}
	}
}

func loadTaxonomyCmd(client *docker.Client) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := taxonomyLoadedMsg{}
		msg.images, msg.err = client.ListImages(ctx)
		if volumes, err := client.ListVolumes(ctx); err == nil {
			msg.volumes = volumes
		} else if msg.err == nil {
			msg.err = err
		}
		if networks, err := client.ListNetworks(ctx); err == nil {
			msg.networks = networks
		} else if msg.err == nil {
			msg.err = err
		}
		return msg
	}
}

func fastTickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return fastTickMsg{gen: gen}
	})
}

func slowTickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return slowTickMsg{gen: gen}
	})
}

// waitStreamCmd blocks on the coalesced stream-notification channel and
// re-arms itself from Update after each delivery.
func waitStreamCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return streamUpdateMsg{}
	}
}

// listenLogsCmd delivers application log entries to the debug overlay.
func listenLogsCmd(ch <-chan logging.Entry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logEntryMsg{entry: entry}
	}
}

// batchOp is one dispatchable action over a list of targets.
type batchOp struct {
	name string
	run  func(ctx context.Context, id string) error
	// warn, if set, produces a pre-dispatch notice for one target (e.g. a
	// restart policy that will bring a stopped container back).
	warn func(ctx context.Context, id string) string
}

// runBatchCmd dispatches op to every target sequentially. Each failure is
// logged independently and counted; there is no rollback and no retry.
func runBatchCmd(kind docker.EntityKind, op batchOp, targets []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		report := BatchReport{Action: op.name}
		for _, id := range targets {
			if op.warn != nil {
				if w := op.warn(ctx, id); w != "" {
					report.Warnings = append(report.Warnings, w)
				}
			}
			if err := op.run(ctx, id); err != nil {
				report.Failed++
				if report.FirstErr == nil {
					report.FirstErr = err
				}
				logging.Warn("Batch", "%s %s failed: %v", op.name, id, err)
				continue
			}
			report.Succeeded++
		}
		return batchDoneMsg{kind: kind, report: report}
	}
}

func pruneCmd(client *docker.Client, kind docker.EntityKind) tea.Cmd {
	return func() tea.Msg {
		report := BatchReport{Action: "prune"}
		out, err := client.Prune(context.Background(), kind)
		if err != nil {
			report.Failed = 1
			report.FirstErr = err
		} else {
			report.Succeeded = 1
			if out != "" {
				report.Warnings = append(report.Warnings, out)
			}
		}
		return batchDoneMsg{kind: kind, report: report}
	}
}

// loadDetailCmd fills one detail-cache slot for one container. The cache
// memoizes, so a repeat view of the same tab is a no-op command.
func loadDetailCmd(details *docker.DetailCache, name string, tab DetailTab) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch tab {
		case DetailEnv:
			_, err = details.Env(ctx, name)
		case DetailInspect:
			_, err = details.Inspect(ctx, name)
		case DetailTop:
			_, err = details.Top(ctx, name)
		}
		return detailLoadedMsg{name: name, tab: tab, err: err}
	}
}

// takeoverCmd runs one complete fullscreen session off the UI loop and
// reports back when the dashboard owns the terminal again.
func takeoverCmd(mgr SessionManager, label string, cmd *exec.Cmd) tea.Cmd {
	return func() tea.Msg {
		return takeoverDoneMsg{label: label, err: mgr.Run(label, cmd)}
	}
}

func expireToastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func copyLogsCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardDoneMsg{err: clipboard.WriteAll(text)}
	}
}
