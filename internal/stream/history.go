package stream

import (
	"slices"
	"sync"
	"time"
)

// DefaultHistoryLength is the per-metric sample capacity used when the
// configuration does not override it.
const DefaultHistoryLength = 80

// MetricSample is one parsed stats line for one container.
type MetricSample struct {
	Name       string
	Time       time.Time
	CPUPercent float64
	MemPercent float64
	MemUsage   string
	MemBytes   int64
	NetIO      string
	BlockIO    string
	PIDs       int
}

// History is a fixed-capacity FIFO of numeric samples. Length never exceeds
// the capacity; the oldest sample is evicted on overflow.
type History struct {
	capacity int
	values   []float64
}

// NewHistory creates an empty history with the given capacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryLength
	}
	return &History{capacity: capacity}
}

// Append adds one sample, evicting the oldest if the history is full.
func (h *History) Append(v float64) {
	if len(h.values) == h.capacity {
		copy(h.values, h.values[1:])
		h.values[len(h.values)-1] = v
		return
	}
	h.values = append(h.values, v)
}

// Len returns the number of retained samples.
func (h *History) Len() int { return len(h.values) }

// Values returns the retained samples in arrival order, oldest first.
func (h *History) Values() []float64 {
	return slices.Clone(h.values)
}

// Latest returns the most recent sample, or 0 if the history is empty.
func (h *History) Latest() float64 {
	if len(h.values) == 0 {
		return 0
	}
	return h.values[len(h.values)-1]
}

// StatsTable is the current-value table plus bounded per-container histories
// fed by the stats stream. Histories are created lazily on the first sample
// for a container name and never destroyed; name cardinality bounds them.
type StatsTable struct {
	mu       sync.RWMutex
	capacity int
	current  map[string]MetricSample
	cpu      map[string]*History
	mem      map[string]*History
}

// NewStatsTable creates an empty table whose histories hold capacity samples.
func NewStatsTable(capacity int) *StatsTable {
	return &StatsTable{
		capacity: capacity,
		current:  make(map[string]MetricSample),
		cpu:      make(map[string]*History),
		mem:      make(map[string]*History),
	}
}

// Apply records one sample, updating the current value and both histories.
func (t *StatsTable) Apply(s MetricSample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current[s.Name] = s

	cpu, ok := t.cpu[s.Name]
	if !ok {
		cpu = NewHistory(t.capacity)
		t.cpu[s.Name] = cpu
	}
	cpu.Append(s.CPUPercent)

	mem, ok := t.mem[s.Name]
	if !ok {
		mem = NewHistory(t.capacity)
		t.mem[s.Name] = mem
	}
	mem.Append(s.MemPercent)
}

// Current returns the latest sample for a container, if any.
func (t *StatsTable) Current(name string) (MetricSample, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.current[name]
	return s, ok
}

// CPUHistory returns the retained CPU samples for a container, oldest first.
func (t *StatsTable) CPUHistory(name string) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if h, ok := t.cpu[name]; ok {
		return h.Values()
	}
	return nil
}

// MemHistory returns the retained memory samples for a container, oldest first.
func (t *StatsTable) MemHistory(name string) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if h, ok := t.mem[name]; ok {
		return h.Values()
	}
	return nil
}
