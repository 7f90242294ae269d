package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nanowhale/internal/config"
	"nanowhale/internal/docker"
	"nanowhale/internal/stream"
	"nanowhale/internal/term"
	"nanowhale/pkg/logging"
)

// programOwner adapts the running bubbletea program to the terminal-ownership
// interface. Release leaves raw mode and the alternate screen; acquire
// re-enters both and repaints.
type programOwner struct {
	p *tea.Program
}

func (o *programOwner) Release() error {
	return o.p.ReleaseTerminal()
}

func (o *programOwner) AcquireExclusive() error {
	return o.p.RestoreTerminal()
}

// streamSuspender stops both stream processes for the duration of a takeover.
// The stats stream is restarted on resume; the log follower is re-pointed by
// the model once it knows which container is selected.
type streamSuspender struct {
	stats *stream.StatsStreamer
	logs  *stream.LogStreamer
}

func (s *streamSuspender) Suspend() {
	s.stats.Stop()
	s.logs.Stop()
}

func (s *streamSuspender) Resume() {
	if err := s.stats.Start(); err != nil {
		logging.Warn("Dashboard", "stats stream did not resume: %v", err)
	}
}

// Run assembles the dashboard and blocks until it exits.
func Run(cfg *config.Config, logCh <-chan logging.Entry) error {
	runner := docker.NewCLIRunner(cfg.Engine)
	client := docker.NewClient(runner, cfg.Engine)
	cache := docker.NewCache()
	details := docker.NewDetailCache(client)

	// Coalesced: one pending notification covers any number of new lines.
	streamCh := make(chan struct{}, 1)
	notify := func() {
		select {
		case streamCh <- struct{}{}:
		default:
		}
	}

	stats := stream.NewStatsTable(cfg.Streams.HistoryLength)
	statsStream := stream.NewStatsStreamer(runner, stats, cfg.Streams.RestartBackoff, notify)
	logStream := stream.NewLogStreamer(runner, cfg.Streams, notify)

	owner := &programOwner{}
	takeover := term.NewManager(owner, &streamSuspender{stats: statsStream, logs: logStream})

	model := NewModel(Deps{
		Config:      cfg,
		Client:      client,
		Cache:       cache,
		Details:     details,
		Stats:       stats,
		StatsStream: statsStream,
		LogStream:   logStream,
		Takeover:    takeover,
		StreamCh:    streamCh,
		LogCh:       logCh,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	owner.p = p

	_, err := p.Run()
	statsStream.Stop()
	logStream.Stop()
	return err
}
