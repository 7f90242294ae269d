package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCappedBufferBelowCap(t *testing.T) {
	b := NewCappedBuffer(100)
	b.Append([]byte("hello\n"))
	b.Append([]byte("world\n"))
	assert.Equal(t, "hello\nworld\n", b.String())
	assert.Equal(t, 12, b.Len())
}

func TestCappedBufferDropsOldestAtLineBoundary(t *testing.T) {
	b := NewCappedBuffer(20)
	b.Append([]byte("first line\n"))
	b.Append([]byte("second line\n"))

	got := b.String()
	assert.LessOrEqual(t, len(got), 20)
	assert.Equal(t, "second line\n", got, "eviction should cut at a line boundary")
}

func TestCappedBufferLargeAppend(t *testing.T) {
	b := NewCappedBuffer(50)
	b.Append([]byte(strings.Repeat("x", 200)))
	assert.Equal(t, 50, b.Len())
}

func TestCappedBufferReset(t *testing.T) {
	b := NewCappedBuffer(100)
	b.Append([]byte("data\n"))
	b.Reset()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.String())
}
