package term

import (
	"os"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects lifecycle events from the fakes in call order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

type fakeOwner struct {
	rec        *recorder
	releaseErr error
	acquireErr error
}

func (o *fakeOwner) Release() error {
	o.rec.add("release")
	return o.releaseErr
}

func (o *fakeOwner) AcquireExclusive() error {
	o.rec.add("acquire")
	return o.acquireErr
}

type fakeSuspender struct {
	rec *recorder
}

func (s *fakeSuspender) Suspend() { s.rec.add("suspend") }
func (s *fakeSuspender) Resume()  { s.rec.add("resume") }

func newTestManager() (*Manager, *recorder) {
	rec := &recorder{}
	return NewManager(&fakeOwner{rec: rec}, &fakeSuspender{rec: rec}), rec
}

func TestRunFullCycle(t *testing.T) {
	m, rec := newTestManager()

	err := m.Run("shell", exec.Command("true"))
	require.NoError(t, err)

	assert.Equal(t, []string{"suspend", "release", "acquire", "resume"}, rec.all(),
		"the terminal must be handed over only after suspension and re-acquired before resuming")
	assert.Equal(t, StateDashboard, m.State())
	assert.False(t, m.Active())
}

func TestRunRejectsSecondSession(t *testing.T) {
	m, _ := newTestManager()

	done := make(chan error, 1)
	go func() {
		done <- m.Run("shell", exec.Command("sleep", "30"))
	}()

	require.Eventually(t, func() bool {
		return m.State() == StateForegroundActive
	}, 5*time.Second, 10*time.Millisecond)

	err := m.Run("shell", exec.Command("true"))
	assert.ErrorIs(t, err, ErrSessionActive)

	m.Cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first session did not finish after Cancel")
	}
	assert.Equal(t, StateDashboard, m.State())
}

func TestRunRestoresWhenChildFailsToStart(t *testing.T) {
	m, rec := newTestManager()

	err := m.Run("shell", exec.Command("/nonexistent-binary-for-test"))
	assert.Error(t, err)

	assert.Equal(t, []string{"suspend", "release", "acquire", "resume"}, rec.all(),
		"a failed start must still run the restoration path")
	assert.Equal(t, StateDashboard, m.State())
}

func TestRunRestoresWhenChildExitsNonZero(t *testing.T) {
	m, rec := newTestManager()

	// A shell exiting non-zero is a normal end of session, not an error.
	err := m.Run("shell", exec.Command("false"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"suspend", "release", "acquire", "resume"}, rec.all())
	assert.Equal(t, StateDashboard, m.State())
}

func TestRunReleaseFailureAborts(t *testing.T) {
	rec := &recorder{}
	owner := &fakeOwner{rec: rec, releaseErr: assert.AnError}
	m := NewManager(owner, &fakeSuspender{rec: rec})

	err := m.Run("shell", exec.Command("true"))
	assert.Error(t, err)

	assert.Equal(t, []string{"suspend", "release", "resume"}, rec.all(),
		"when the terminal was never handed over there is nothing to re-acquire")
	assert.Equal(t, StateDashboard, m.State())
}

func TestCancelOutsideForegroundIsNoOp(t *testing.T) {
	m, rec := newTestManager()
	m.Cancel()
	assert.Empty(t, rec.all())
	assert.Equal(t, StateDashboard, m.State())
}

func TestCancelKillsLiveSession(t *testing.T) {
	m, _ := newTestManager()

	done := make(chan error, 1)
	go func() {
		done <- m.Run("logs", exec.Command("sleep", "30"))
	}()

	require.Eventually(t, func() bool {
		return m.State() == StateForegroundActive
	}, 5*time.Second, 10*time.Millisecond)

	m.Cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after process-group kill")
	}
	assert.Equal(t, StateDashboard, m.State())
}

func TestInterruptCancelsForegroundSession(t *testing.T) {
	origNotify, origStop := notifyInterrupt, stopInterrupt
	defer func() { notifyInterrupt, stopInterrupt = origNotify, origStop }()

	var mu sync.Mutex
	var captured chan<- os.Signal
	notifyInterrupt = func(ch chan<- os.Signal) {
		mu.Lock()
		captured = ch
		mu.Unlock()
	}
	stopInterrupt = func(chan<- os.Signal) {}

	m, _ := newTestManager()
	done := make(chan error, 1)
	go func() {
		done <- m.Run("logs", exec.Command("sleep", "30"))
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return captured != nil && m.State() == StateForegroundActive
	}, 5*time.Second, 10*time.Millisecond)

	// The interrupt must end the child's group, never the dashboard.
	mu.Lock()
	captured <- os.Interrupt
	mu.Unlock()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after interrupt")
	}
	assert.Equal(t, StateDashboard, m.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Dashboard", StateDashboard.String())
	assert.Equal(t, "Suspending", StateSuspending.String())
	assert.Equal(t, "ForegroundActive", StateForegroundActive.String())
	assert.Equal(t, "Restoring", StateRestoring.String())
	assert.Equal(t, "Unknown", State(99).String())
}
