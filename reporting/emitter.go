package reporting

import (
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/embedded-infra/ret/types"
)

// Kind is the one-character message kind of a report line.
type Kind byte

const (
	KindInfo   Kind = 'I' // diagnostic / informational message
	KindSearch Kind = 'S' // discovered tag path (search mode)
	KindTest   Kind = 'T' // test result
)

// DoneSentinel is the literal that marks run completion on the wire.
const DoneSentinel = "DONE"

// TruncationPlaceholder replaces a message that exceeds the maximum
// field length instead of letting it overflow the line.
const TruncationPlaceholder = "<string exceeds length limit>"

const (
	seqWidth     = 4
	elapsedWidth = 6
)

// Emitter turns structured report events into fixed-field delimited lines.
// Line layout:
//
//	I,<seq>,<4 spaces>,<6 spaces>,<message>
//	S,<seq>,<4 spaces>,<6 spaces>,<full tag path>
//	T,<seq>,<result word>,<elapsed>,<full tag path>
//
// followed by a bare DONE sentinel at run completion. The sequence number
// is right-justified in four columns and increases monotonically across
// all line kinds.
type Emitter struct {
	buf      *Buffer
	seq      uint64
	maxField int
}

// NewEmitter creates an emitter writing through buf. maxField caps the
// length of the final free-text field; longer text is substituted with
// TruncationPlaceholder.
func NewEmitter(buf *Buffer, maxField int) *Emitter {
	return &Emitter{buf: buf, maxField: maxField}
}

// Info appends an informational line, transmitted according to the
// ambient flush policy's final flush.
func (e *Emitter) Info(msg string) {
	e.formatLine(KindInfo, msg, false)
}

// InfoNow appends an informational line and transmits it immediately.
func (e *Emitter) InfoNow(msg string) {
	e.formatLine(KindInfo, msg, true)
}

// Search appends a discovered tag path line. Search listings are always
// transmitted immediately so an operator watching the channel sees the
// tree as it is walked.
func (e *Emitter) Search(path string) {
	e.formatLine(KindSearch, path, true)
}

// Test appends a test result line carrying the result keyword and the
// elapsed tick count. It follows the ambient flush policy.
func (e *Emitter) Test(res types.Result, elapsed uint64, path string) {
	w := NewFieldWriter(e.buf)
	w.Kind(byte(KindTest)).Decimal(e.seq, seqWidth)
	e.seq++
	w.Text(res.String()).Decimal(elapsed, elapsedWidth).Text(e.clean(path))
	w.End()
}

// Done writes the completion sentinel, preceded by a line feed, and
// forces transmission of everything still buffered.
func (e *Emitter) Done() {
	e.buf.Put('\n')
	e.buf.PutString(DoneSentinel)
	e.buf.Flush()
}

// Flush transmits any buffered output.
func (e *Emitter) Flush() {
	e.buf.Flush()
}

// Reset rewinds the sequence counter and discards buffered output.
// Called once per run start.
func (e *Emitter) Reset() {
	e.seq = 0
	e.buf.Reset()
}

// SetFlushPerLine scopes the buffer's flush policy; it returns the
// previous value so callers can restore it.
func (e *Emitter) SetFlushPerLine(v bool) bool {
	return e.buf.SetFlushPerLine(v)
}

// FlushPerLine reports the buffer's current flush policy.
func (e *Emitter) FlushPerLine() bool {
	return e.buf.FlushPerLine()
}

func (e *Emitter) formatLine(kind Kind, msg string, flushNow bool) {
	prev := e.buf.SetFlushPerLine(flushNow)
	defer e.buf.SetFlushPerLine(prev)

	w := NewFieldWriter(e.buf)
	w.Kind(byte(kind)).Decimal(e.seq, seqWidth)
	e.seq++
	w.Pad(seqWidth).Pad(elapsedWidth).Text(e.clean(msg))
	w.End()
}

// clean sanitizes the free-text field so it cannot corrupt line framing:
// ANSI escapes are stripped, line breaks are flattened, and oversized
// text is replaced with a placeholder.
func (e *Emitter) clean(s string) string {
	s = stripansi.Strip(s)
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	if e.maxField > 0 && len(s) > e.maxField {
		return TruncationPlaceholder
	}
	return s
}
