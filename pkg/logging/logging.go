package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Level defines the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes Level satisfy the fmt.Stringer interface.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps Level onto the equivalent slog level.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Entry is the structured log record handed to the dashboard's log pane.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Subsystem string
	Message   string
	Err       error
}

// String renders the entry the way the dashboard log pane displays it.
func (e Entry) String() string {
	s := fmt.Sprintf("%s [%s] [%s] %s", e.Timestamp.Format("15:04:05"), e.Level, e.Subsystem, e.Message)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

var (
	defaultLogger *slog.Logger
	dashChannel   chan Entry
	dashMode      bool
	minLevel      Level
)

const dashChannelBufferSize = 2048

// InitForTUI switches logging into dashboard mode: entries at or above
// filterLevel are delivered on the returned channel instead of being written
// to a stream. The channel is buffered; the dashboard must drain it.
func InitForTUI(filterLevel Level) <-chan Entry {
	dashMode = true
	minLevel = filterLevel
	dashChannel = make(chan Entry, dashChannelBufferSize)
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return dashChannel
}

// InitForCLI switches logging into plain text mode writing to output.
func InitForCLI(filterLevel Level, output io.Writer) {
	dashMode = false
	minLevel = filterLevel
	defaultLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: filterLevel.SlogLevel(),
	}))
	slog.SetDefault(defaultLogger)
}

func logInternal(level Level, subsystem string, err error, format string, args ...interface{}) {
	if level < minLevel {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	if dashMode {
		entry := Entry{
			Timestamp: time.Now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		select {
		case dashChannel <- entry:
		default:
			// Channel full: drop rather than stall a subprocess callback.
		}
		return
	}

	if defaultLogger == nil {
		fmt.Fprintf(os.Stderr, "[%s] [%s] %s\n", level, subsystem, msg)
		return
	}
	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message for the given subsystem.
func Debug(subsystem string, format string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, format, args...)
}

// Info logs an informational message for the given subsystem.
func Info(subsystem string, format string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, format, args...)
}

// Warn logs a warning for the given subsystem.
func Warn(subsystem string, format string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, format, args...)
}

// Error logs an error for the given subsystem.
func Error(subsystem string, err error, format string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, format, args...)
}

// Close closes the dashboard channel. Call once on shutdown.
func Close() {
	if dashChannel != nil {
		close(dashChannel)
		dashChannel = nil
		dashMode = false
	}
}
