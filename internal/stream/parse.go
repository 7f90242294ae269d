package stream

import (
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// StatsFormat is the template handed to the engine's stats command. Field
// order and delimiter are a fixed contract with ParseStatsLine.
const StatsFormat = "{{.Name}}|{{.CPUPerc}}|{{.MemPerc}}|{{.MemUsage}}|{{.NetIO}}|{{.BlockIO}}|{{.PIDs}}"

// LineBuffer splits an unbounded byte stream into complete lines, holding a
// partial trailing line until the next chunk completes it.
type LineBuffer struct {
	partial string
}

// Feed appends a chunk and returns every newly completed line, without the
// trailing newline.
func (b *LineBuffer) Feed(chunk []byte) []string {
	data := b.partial + string(chunk)
	parts := strings.Split(data, "\n")
	b.partial = parts[len(parts)-1]
	return parts[:len(parts)-1]
}

// ParseStatsLine parses one stats stream line. The boolean result is false
// for header, blank or otherwise malformed lines, which the caller drops
// silently.
func ParseStatsLine(line string, now time.Time) (MetricSample, bool) {
	line = stripControlSequences(line)
	if strings.TrimSpace(line) == "" {
		return MetricSample{}, false
	}

	parts := strings.Split(line, "|")
	if len(parts) != 7 {
		return MetricSample{}, false
	}

	name := strings.TrimSpace(parts[0])
	if name == "" || strings.EqualFold(name, "NAME") {
		return MetricSample{}, false
	}

	cpu, err := parsePercent(parts[1])
	if err != nil {
		return MetricSample{}, false
	}
	mem, err := parsePercent(parts[2])
	if err != nil {
		return MetricSample{}, false
	}

	sample := MetricSample{
		Name:       name,
		Time:       now,
		CPUPercent: cpu,
		MemPercent: mem,
		MemUsage:   strings.TrimSpace(parts[3]),
		NetIO:      strings.TrimSpace(parts[4]),
		BlockIO:    strings.TrimSpace(parts[5]),
	}

	if pids, err := strconv.Atoi(strings.TrimSpace(parts[6])); err == nil {
		sample.PIDs = pids
	}

	// "15.3MiB / 7.6GiB" — the used portion is the part before the slash.
	if used, _, ok := strings.Cut(sample.MemUsage, "/"); ok {
		if bytes, err := units.RAMInBytes(strings.TrimSpace(used)); err == nil {
			sample.MemBytes = bytes
		}
	}

	return sample, true
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return strconv.ParseFloat(s, 64)
}

// stripControlSequences removes the ANSI clear-screen/home prefix the engine
// emits between stats refresh frames.
func stripControlSequences(line string) string {
	for {
		i := strings.IndexByte(line, 0x1b)
		if i < 0 {
			return line
		}
		rest := line[i:]
		end := 1
		for end < len(rest) {
			c := rest[end]
			end++
			if c >= '@' && c <= '~' && c != '[' {
				break
			}
		}
		line = line[:i] + rest[end:]
	}
}
