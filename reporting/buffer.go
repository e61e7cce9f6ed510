package reporting

// DefaultBufferSize is the default report buffer capacity in bytes.
const DefaultBufferSize = 4096

// Buffer is a bounded byte buffer in front of a Sink. Writes past capacity
// are silently dropped so report output stays within a fixed memory budget;
// framing of later lines is unaffected because whole lines are dropped
// bytewise, never reordered.
type Buffer struct {
	buf          []byte
	capacity     int
	flushPerLine bool
	sink         Sink
}

// NewBuffer creates a report buffer with the given capacity. A capacity
// of zero or less selects DefaultBufferSize. A nil sink discards output.
func NewBuffer(capacity int, flushPerLine bool, sink Sink) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	if sink == nil {
		sink = Discard
	}
	return &Buffer{
		buf:          make([]byte, 0, capacity),
		capacity:     capacity,
		flushPerLine: flushPerLine,
		sink:         sink,
	}
}

// Put appends one byte. When the buffer is full the byte is dropped.
// A line feed triggers transmission if flush-per-line is enabled.
func (b *Buffer) Put(c byte) {
	if len(b.buf) >= b.capacity {
		return
	}
	b.buf = append(b.buf, c)
	if c == '\n' && b.flushPerLine {
		b.Flush()
	}
}

// PutString appends a string bytewise, honoring the same drop and
// flush-per-line behavior as Put.
func (b *Buffer) PutString(s string) {
	for i := 0; i < len(s); i++ {
		b.Put(s[i])
	}
}

// Flush transmits the buffered bytes through the sink and empties the
// buffer. An empty buffer transmits nothing.
func (b *Buffer) Flush() {
	if len(b.buf) == 0 {
		return
	}
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	b.buf = b.buf[:0]
	b.sink(out)
}

// Reset discards buffered bytes without transmitting them.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// SetFlushPerLine changes the flush policy and returns the previous value,
// allowing callers to scope a policy to a single line or list.
func (b *Buffer) SetFlushPerLine(v bool) bool {
	prev := b.flushPerLine
	b.flushPerLine = v
	return prev
}

// FlushPerLine reports the current flush policy.
func (b *Buffer) FlushPerLine() bool {
	return b.flushPerLine
}

// Len returns the number of buffered bytes awaiting transmission.
func (b *Buffer) Len() int {
	return len(b.buf)
}
