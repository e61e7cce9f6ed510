package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFlushPerLine(t *testing.T) {
	var sent []string
	sink := func(p []byte) { sent = append(sent, string(p)) }

	b := NewBuffer(64, true, sink)
	b.PutString("first\n")
	b.PutString("second\n")

	require.Len(t, sent, 2)
	assert.Equal(t, "first\n", sent[0])
	assert.Equal(t, "second\n", sent[1])
	assert.Zero(t, b.Len())
}

func TestBufferDeferredFlush(t *testing.T) {
	var sent []string
	sink := func(p []byte) { sent = append(sent, string(p)) }

	b := NewBuffer(64, false, sink)
	b.PutString("first\n")
	b.PutString("second\n")
	assert.Empty(t, sent, "nothing transmits before an explicit flush")

	b.Flush()
	require.Len(t, sent, 1)
	assert.Equal(t, "first\nsecond\n", sent[0])

	// Flushing an empty buffer transmits nothing
	b.Flush()
	assert.Len(t, sent, 1)
}

func TestBufferDropsPastCapacity(t *testing.T) {
	var sent []string
	sink := func(p []byte) { sent = append(sent, string(p)) }

	b := NewBuffer(4, false, sink)
	b.PutString("abcdefgh")
	assert.Equal(t, 4, b.Len())

	// Later writes still land in the same framing once space is freed
	b.Flush()
	require.Len(t, sent, 1)
	assert.Equal(t, "abcd", sent[0])

	b.PutString("xy")
	b.Flush()
	require.Len(t, sent, 2)
	assert.Equal(t, "xy", sent[1])
}

func TestBufferSetFlushPerLine(t *testing.T) {
	b := NewBuffer(16, true, Discard)
	prev := b.SetFlushPerLine(false)
	assert.True(t, prev)
	assert.False(t, b.FlushPerLine())
	b.SetFlushPerLine(prev)
	assert.True(t, b.FlushPerLine())
}

func TestBufferReset(t *testing.T) {
	var sent []string
	sink := func(p []byte) { sent = append(sent, string(p)) }

	b := NewBuffer(16, false, sink)
	b.PutString("stale")
	b.Reset()
	b.Flush()
	assert.Empty(t, sent, "reset discards without transmitting")
}

func TestBufferDefaults(t *testing.T) {
	b := NewBuffer(0, false, nil)
	b.PutString("ok\n")
	b.Flush() // nil sink must not panic
	assert.Zero(t, b.Len())
}
