package stream

import (
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptSpawner runs a fixed shell script regardless of the requested args,
// recording every invocation.
type scriptSpawner struct {
	mu     sync.Mutex
	script string
	calls  [][]string
}

func (s *scriptSpawner) Command(args ...string) *exec.Cmd {
	s.mu.Lock()
	s.calls = append(s.calls, args)
	s.mu.Unlock()
	return exec.Command("sh", "-c", s.script)
}

func (s *scriptSpawner) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func notifyChan() (func(), chan struct{}) {
	ch := make(chan struct{}, 64)
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}, ch
}

func waitNotify(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a stream notification")
	}
}

func TestStatsStreamerAppliesSamples(t *testing.T) {
	spawner := &scriptSpawner{
		script: `printf 'web|1.00%%|5.00%%|10MiB / 1GiB|0B / 0B|0B / 0B|2\ndb|2.00%%|9.00%%|20MiB / 1GiB|0B / 0B|0B / 0B|3\n'; exec sleep 30`,
	}
	table := NewStatsTable(80)
	notify, notified := notifyChan()

	s := NewStatsStreamer(spawner, table, time.Second, notify)
	require.NoError(t, s.Start())
	defer s.Stop()

	waitNotify(t, notified)
	assert.Eventually(t, func() bool {
		_, ok := table.Current("db")
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	web, ok := table.Current("web")
	require.True(t, ok)
	assert.Equal(t, 1.0, web.CPUPercent)
	assert.True(t, s.Running())

	// The process receives the fixed format template.
	require.Equal(t, 1, spawner.count())
	assert.Equal(t, []string{"stats", "--format", StatsFormat}, spawner.calls[0])
}

func TestStatsStreamerStartWhileRunningIsNoOp(t *testing.T) {
	spawner := &scriptSpawner{script: `exec sleep 30`}
	s := NewStatsStreamer(spawner, NewStatsTable(80), time.Second, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.Equal(t, 1, spawner.count())
}

func TestStatsStreamerRestartsAfterCrash(t *testing.T) {
	// The script exits immediately, simulating a crashed stats process.
	spawner := &scriptSpawner{script: `true`}
	s := NewStatsStreamer(spawner, NewStatsTable(80), 20*time.Millisecond, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return spawner.count() >= 3
	}, 5*time.Second, 10*time.Millisecond, "crashed process should be respawned after the backoff")
}

func TestStatsStreamerStopSuppressesRestart(t *testing.T) {
	spawner := &scriptSpawner{script: `true`}
	s := NewStatsStreamer(spawner, NewStatsTable(80), 20*time.Millisecond, nil)
	require.NoError(t, s.Start())

	s.Stop()
	settled := spawner.count()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, settled, spawner.count(), "no respawn may happen after Stop")
	assert.False(t, s.Running())
}

func TestStatsStreamerStopKillsProcess(t *testing.T) {
	spawner := &scriptSpawner{script: `exec sleep 30`}
	s := NewStatsStreamer(spawner, NewStatsTable(80), time.Second, nil)
	require.NoError(t, s.Start())
	require.True(t, s.Running())

	s.Stop()
	assert.False(t, s.Running())
}

func TestStatsStreamerSpawnFailure(t *testing.T) {
	spawner := &failingSpawner{}
	s := NewStatsStreamer(spawner, NewStatsTable(80), time.Second, nil)
	err := s.Start()
	assert.Error(t, err)
	assert.False(t, s.Running())
}

type failingSpawner struct{}

func (failingSpawner) Command(args ...string) *exec.Cmd {
	return exec.Command(fmt.Sprintf("/nonexistent-binary-%d", time.Now().UnixNano()))
}
