package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(42):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2025, 1, 2, 13, 4, 5, 0, time.UTC),
		Level:     LevelWarn,
		Subsystem: "StatsStream",
		Message:   "process exited",
	}
	got := e.String()
	if !strings.Contains(got, "13:04:05") || !strings.Contains(got, "[WARN]") ||
		!strings.Contains(got, "[StatsStream]") || !strings.Contains(got, "process exited") {
		t.Errorf("unexpected entry rendering: %q", got)
	}

	e.Err = errors.New("boom")
	if !strings.HasSuffix(e.String(), ": boom") {
		t.Errorf("error should be appended: %q", e.String())
	}
}

func TestTUIModeDeliversEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer Close()

	Info("Dashboard", "hello %s", "world")

	select {
	case entry := <-ch:
		if entry.Subsystem != "Dashboard" || entry.Message != "hello world" {
			t.Errorf("unexpected entry: %+v", entry)
		}
	case <-time.After(time.Second):
		t.Fatal("entry was not delivered")
	}
}

func TestTUIModeFiltersBelowMinLevel(t *testing.T) {
	ch := InitForTUI(LevelWarn)
	defer Close()

	Debug("Dashboard", "noise")
	Info("Dashboard", "still noise")
	Warn("Dashboard", "signal")

	select {
	case entry := <-ch:
		if entry.Level != LevelWarn {
			t.Errorf("expected only the warning, got %+v", entry)
		}
	case <-time.After(time.Second):
		t.Fatal("warning was not delivered")
	}

	select {
	case entry := <-ch:
		t.Errorf("filtered entry leaked through: %+v", entry)
	default:
	}
}

func TestCLIModeWritesText(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Warn("Gateway", "timeout after %ds", 10)

	out := buf.String()
	if !strings.Contains(out, "timeout after 10s") || !strings.Contains(out, "Gateway") {
		t.Errorf("unexpected CLI log output: %q", out)
	}
}
