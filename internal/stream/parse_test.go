package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBufferHoldsPartialLine(t *testing.T) {
	var b LineBuffer

	lines := b.Feed([]byte("first\nsec"))
	assert.Equal(t, []string{"first"}, lines)

	lines = b.Feed([]byte("ond\nthird\n"))
	assert.Equal(t, []string{"second", "third"}, lines)

	lines = b.Feed([]byte("dangling"))
	assert.Empty(t, lines)

	lines = b.Feed([]byte("\n"))
	assert.Equal(t, []string{"dangling"}, lines)
}

func TestParseStatsLine(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		line string
		ok   bool
		want MetricSample
	}{
		{
			name: "valid line",
			line: "web|1.52%|12.30%|15.3MiB / 7.6GiB|1.2kB / 648B|0B / 0B|4",
			ok:   true,
			want: MetricSample{
				Name:       "web",
				CPUPercent: 1.52,
				MemPercent: 12.3,
				MemUsage:   "15.3MiB / 7.6GiB",
				NetIO:      "1.2kB / 648B",
				BlockIO:    "0B / 0B",
				PIDs:       4,
			},
		},
		{
			name: "header line",
			line: "NAME|CPU %|MEM %|MEM USAGE / LIMIT|NET I/O|BLOCK I/O|PIDS",
			ok:   false,
		},
		{name: "blank line", line: "   ", ok: false},
		{name: "too few fields", line: "web|1.5%|12%", ok: false},
		{name: "garbage cpu", line: "web|--|12%|1MiB / 2MiB|0B / 0B|0B / 0B|1", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseStatsLine(tc.line, now)
			require.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.want.Name, got.Name)
			assert.Equal(t, tc.want.CPUPercent, got.CPUPercent)
			assert.Equal(t, tc.want.MemPercent, got.MemPercent)
			assert.Equal(t, tc.want.MemUsage, got.MemUsage)
			assert.Equal(t, tc.want.NetIO, got.NetIO)
			assert.Equal(t, tc.want.BlockIO, got.BlockIO)
			assert.Equal(t, tc.want.PIDs, got.PIDs)
			assert.Equal(t, now, got.Time)
		})
	}
}

func TestParseStatsLineStripsEscapeSequences(t *testing.T) {
	// The stats command clears the screen between refresh frames; the escape
	// prefix lands on the first line of each frame.
	line := "\x1b[2J\x1b[Hweb|0.10%|5.00%|10MiB / 1GiB|0B / 0B|0B / 0B|2"
	got, ok := ParseStatsLine(line, time.Now())
	require.True(t, ok)
	assert.Equal(t, "web", got.Name)
	assert.Equal(t, 0.1, got.CPUPercent)
}

func TestParseStatsLineMemoryBytes(t *testing.T) {
	got, ok := ParseStatsLine("web|1%|1%|16MiB / 7.6GiB|0B / 0B|0B / 0B|1", time.Now())
	require.True(t, ok)
	assert.Equal(t, int64(16*1024*1024), got.MemBytes)
}
