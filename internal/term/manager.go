package term

import (
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"sync"

	"nanowhale/pkg/logging"
)

// Mockable in tests.
var notifyInterrupt = func(ch chan<- os.Signal) { signal.Notify(ch, os.Interrupt) }
var stopInterrupt = func(ch chan<- os.Signal) { signal.Stop(ch) }

// ErrSessionActive is returned when a takeover is requested while a
// foreground session already owns the terminal.
var ErrSessionActive = errors.New("a foreground session is already active")

// Owner abstracts exclusive terminal ownership. The production
// implementation wraps the running TUI program (release raw mode and the
// alternate screen, later re-acquire both); tests substitute a fake.
type Owner interface {
	// AcquireExclusive puts the terminal back into raw mode and the
	// alternate screen and re-enables rendering.
	AcquireExclusive() error
	// Release leaves raw mode and the alternate screen so a child process
	// can use the terminal directly.
	Release() error
}

// Suspender stops and restarts the background activity that must not touch
// the terminal while a child owns it: both streams and the poll timers.
type Suspender interface {
	Suspend()
	Resume()
}

// Manager drives the takeover state machine. At most one foreground session
// exists at a time; every entered takeover is paired with a restoration, even
// when the child fails to start or crashes.
type Manager struct {
	owner Owner
	susp  Suspender

	mu    sync.Mutex
	state State
	cmd   *exec.Cmd
}

// NewManager creates a manager in the Dashboard state.
func NewManager(owner Owner, susp Suspender) *Manager {
	return &Manager{owner: owner, susp: susp, state: StateDashboard}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Active reports whether a takeover is in progress (any state but Dashboard).
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != StateDashboard
}

// Run executes one complete takeover: suspend, hand the terminal to cmd,
// wait for it, restore. It blocks until the dashboard owns the terminal
// again, so callers run it off the UI loop. Requesting a takeover while one
// is active returns ErrSessionActive without touching the terminal.
//
// The restoration path always runs once Suspending has been entered; a child
// that fails to start or crashes still leaves the terminal restored and the
// streams resumed. While the child runs, an interrupt signal addressed to the
// dashboard cancels the child's process group instead of quitting.
func (m *Manager) Run(label string, cmd *exec.Cmd) error {
	m.mu.Lock()
	if m.state != StateDashboard {
		m.mu.Unlock()
		return ErrSessionActive
	}
	m.state = StateSuspending
	m.mu.Unlock()

	logging.Info("Takeover", "suspending dashboard for %s", label)
	m.susp.Suspend()

	if err := m.owner.Release(); err != nil {
		// The terminal was never handed over; undo the suspension.
		m.susp.Resume()
		m.setState(StateDashboard)
		logging.Error("Takeover", err, "failed to release terminal")
		return err
	}

	restoreTerminal := setProcessGroup(cmd)
	startErr := cmd.Start()
	var waitErr error
	if startErr == nil {
		m.mu.Lock()
		m.state = StateForegroundActive
		m.cmd = cmd
		m.mu.Unlock()

		// An interrupt delivered to the dashboard while the child runs is an
		// escape request: terminate the child's group, never the dashboard.
		sigCh := make(chan os.Signal, 1)
		sigDone := make(chan struct{})
		notifyInterrupt(sigCh)
		go func() {
			for {
				select {
				case <-sigCh:
					m.Cancel()
				case <-sigDone:
					return
				}
			}
		}()

		waitErr = cmd.Wait()
		stopInterrupt(sigCh)
		close(sigDone)
	} else {
		logging.Error("Takeover", startErr, "%s failed to start", label)
	}

	m.mu.Lock()
	m.state = StateRestoring
	m.cmd = nil
	m.mu.Unlock()

	restoreTerminal()
	restoreErr := m.owner.AcquireExclusive()
	m.susp.Resume()
	m.setState(StateDashboard)
	logging.Info("Takeover", "dashboard restored after %s", label)

	if startErr != nil {
		return startErr
	}
	if restoreErr != nil {
		return restoreErr
	}
	if waitErr != nil {
		// A non-zero shell exit is normal; report it for the caller to log.
		logging.Debug("Takeover", "%s exited: %v", label, waitErr)
	}
	return nil
}

// Cancel sends a termination request to the foreground child's whole process
// group, so an interactive shell cannot orphan grandchildren that keep the
// terminal. It is a no-op outside ForegroundActive. Restoration then proceeds
// through Run's normal exit path.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateForegroundActive || m.cmd == nil || m.cmd.Process == nil {
		return
	}
	logging.Warn("Takeover", "cancelling foreground session (pid %d)", m.cmd.Process.Pid)
	killProcessGroup(m.cmd)
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
