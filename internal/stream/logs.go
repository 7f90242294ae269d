package stream

import (
	"bufio"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"nanowhale/internal/config"
	"nanowhale/pkg/logging"
)

// LogStreamer follows the log output of at most one container at a time.
// Switching containers always terminates the previous follower process and
// waits for its reader to drain before the new one attaches, so buffer
// contents never interleave across containers.
type LogStreamer struct {
	spawner Spawner
	cfg     config.StreamSettings
	notify  func()

	mu        sync.Mutex
	cmd       *exec.Cmd
	done      chan struct{}
	container string
	buf       *CappedBuffer
}

// NewLogStreamer creates an idle streamer. notify, if non-nil, is called
// after each buffered line; it must not block.
func NewLogStreamer(spawner Spawner, cfg config.StreamSettings, notify func()) *LogStreamer {
	max := cfg.LogBufferBytes
	if max <= 0 {
		max = 100_000
	}
	return &LogStreamer{
		spawner: spawner,
		cfg:     cfg,
		notify:  notify,
		buf:     NewCappedBuffer(max),
	}
}

// Follow starts following the named container's logs, tearing down any
// previous follower first. The buffer is reset so no lines from the previous
// container survive the switch. A spawn failure leaves the streamer idle.
func (l *LogStreamer) Follow(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
	l.buf.Reset()
	l.container = name

	args := []string{"logs", "-f"}
	if l.cfg.LogTimestamps {
		args = append(args, "-t")
	}
	if l.cfg.LogTail > 0 {
		args = append(args, "--tail", strconv.Itoa(l.cfg.LogTail))
	}
	args = append(args, name)

	cmd := l.spawner.Command(args...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		logging.Warn("LogStream", "failed to follow logs for %s: %v", name, err)
		l.container = ""
		return err
	}

	l.cmd = cmd
	done := make(chan struct{})
	l.done = done
	go l.consume(cmd, pr, pw, done)
	logging.Debug("LogStream", "following logs for %s (pid %d)", name, cmd.Process.Pid)
	return nil
}

// Stop terminates the current follower, if any, and waits for its reader to
// finish. The buffer contents survive so the last view stays on screen.
func (l *LogStreamer) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.container = ""
}

func (l *LogStreamer) stopLocked() {
	if l.cmd == nil {
		return
	}
	terminate(l.cmd)
	<-l.done
	l.cmd = nil
	l.done = nil
}

func (l *LogStreamer) consume(cmd *exec.Cmd, pr *io.PipeReader, pw *io.PipeWriter, done chan struct{}) {
	defer close(done)

	go func() {
		_ = cmd.Wait()
		_ = pw.Close()
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		l.buf.Append(append(scanner.Bytes(), '\n'))
		if l.notify != nil {
			l.notify()
		}
	}
	_ = pr.Close()
}

// Container returns the name of the container currently being followed, or
// the empty string when idle.
func (l *LogStreamer) Container() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.container
}

// Running reports whether a follower process is currently live.
func (l *LogStreamer) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cmd != nil
}

// Contents returns the buffered log text.
func (l *LogStreamer) Contents() string {
	return l.buf.String()
}
