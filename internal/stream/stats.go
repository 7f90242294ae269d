package stream

import (
	"os/exec"
	"sync"
	"syscall"
	"time"

	"nanowhale/pkg/logging"
)

// Spawner builds unstarted engine commands. docker.Runner satisfies it.
type Spawner interface {
	Command(args ...string) *exec.Cmd
}

// DefaultRestartBackoff is the delay before a crashed stats process is
// respawned.
const DefaultRestartBackoff = 2 * time.Second

// StatsStreamer owns the single continuous stats process. Parsed samples are
// applied to the shared StatsTable. When the process exits without Stop
// having been called, it is respawned after a fixed backoff; at most one
// restart attempt is in flight at any time.
type StatsStreamer struct {
	spawner Spawner
	table   *StatsTable
	backoff time.Duration
	notify  func()

	mu           sync.Mutex
	cmd          *exec.Cmd
	generation   int
	stopped      bool
	restartArmed bool
}

// NewStatsStreamer creates a streamer feeding table. notify, if non-nil, is
// called after each applied sample; it must not block.
func NewStatsStreamer(spawner Spawner, table *StatsTable, backoff time.Duration, notify func()) *StatsStreamer {
	if backoff <= 0 {
		backoff = DefaultRestartBackoff
	}
	return &StatsStreamer{
		spawner: spawner,
		table:   table,
		backoff: backoff,
		notify:  notify,
		stopped: true,
	}
}

// Start spawns the stats process. Starting while already running is a no-op.
// A spawn failure is returned but the caller is expected to degrade silently
// (stale data shown, no user interruption).
func (s *StatsStreamer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = false
	if s.cmd != nil {
		return nil
	}
	return s.spawnLocked()
}

// Stop terminates the stats process and suppresses any pending restart.
// Used at shutdown and while a fullscreen takeover owns the terminal.
func (s *StatsStreamer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.generation++
	if s.cmd != nil {
		terminate(s.cmd)
		s.cmd = nil
	}
}

// Running reports whether a stats process is currently live.
func (s *StatsStreamer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

func (s *StatsStreamer) spawnLocked() error {
	cmd := s.spawner.Command("stats", "--format", StatsFormat)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		logging.Warn("StatsStream", "failed to spawn stats process: %v", err)
		return err
	}

	s.cmd = cmd
	gen := s.generation
	go s.consume(cmd, stdout, gen)
	logging.Debug("StatsStream", "stats process started (pid %d)", cmd.Process.Pid)
	return nil
}

func (s *StatsStreamer) consume(cmd *exec.Cmd, stdout interface{ Read([]byte) (int, error) }, gen int) {
	var lines LineBuffer
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			for _, line := range lines.Feed(buf[:n]) {
				sample, ok := ParseStatsLine(line, time.Now())
				if !ok {
					continue
				}
				s.table.Apply(sample)
				if s.notify != nil {
					s.notify()
				}
			}
		}
		if err != nil {
			break
		}
	}
	_ = cmd.Wait()
	s.scheduleRestart(gen)
}

// scheduleRestart arms exactly one delayed respawn after an unexpected exit.
func (s *StatsStreamer) scheduleRestart(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || gen != s.generation || s.restartArmed {
		return
	}
	s.cmd = nil
	s.restartArmed = true
	logging.Warn("StatsStream", "stats process exited, restarting in %s", s.backoff)

	time.AfterFunc(s.backoff, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.restartArmed = false
		if s.stopped || s.cmd != nil {
			return
		}
		if err := s.spawnLocked(); err != nil {
			logging.Warn("StatsStream", "restart failed: %v", err)
		}
	})
}

// terminate makes one best-effort attempt to stop a child process. A process
// that ignores SIGTERM after a failed signal delivery gets a single SIGKILL;
// nothing beyond that.
func terminate(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		_ = cmd.Process.Kill()
	}
}
