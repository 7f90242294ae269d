package stream

import (
	"bytes"
	"sync"
)

// CappedBuffer is a byte buffer with a maximum size. Appends past the cap
// drop the oldest data, preferring to cut at a line boundary so the visible
// log never starts mid-line.
type CappedBuffer struct {
	mu   sync.Mutex
	max  int
	data []byte
}

// NewCappedBuffer creates a buffer bounded to max bytes.
func NewCappedBuffer(max int) *CappedBuffer {
	return &CappedBuffer{max: max}
}

// Append adds p to the buffer, evicting the oldest bytes on overflow.
func (b *CappedBuffer) Append(p []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, p...)
	if len(b.data) <= b.max {
		return
	}

	cut := len(b.data) - b.max
	if nl := bytes.IndexByte(b.data[cut:], '\n'); nl >= 0 && cut+nl+1 < len(b.data) {
		cut += nl + 1
	}
	b.data = append(b.data[:0], b.data[cut:]...)
}

// String returns the buffered contents.
func (b *CappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// Len returns the buffered byte count.
func (b *CappedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Reset empties the buffer.
func (b *CappedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = b.data[:0]
}
