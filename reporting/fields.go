package reporting

import "strconv"

// Separator is the field delimiter of report lines.
const Separator = ','

// FieldWriter assembles one delimiter-separated report line in a Buffer.
// It owns the padding and justification rules of the wire format so they
// can be tested independently of the engine.
type FieldWriter struct {
	buf     *Buffer
	started bool
}

// NewFieldWriter returns a writer that appends fields to buf.
func NewFieldWriter(buf *Buffer) *FieldWriter {
	return &FieldWriter{buf: buf}
}

func (w *FieldWriter) sep() {
	if w.started {
		w.buf.Put(Separator)
	}
	w.started = true
}

// Kind writes the one-character message kind field.
func (w *FieldWriter) Kind(k byte) *FieldWriter {
	w.sep()
	w.buf.Put(k)
	return w
}

// Text writes a free-form text field.
func (w *FieldWriter) Text(s string) *FieldWriter {
	w.sep()
	w.buf.PutString(s)
	return w
}

// Pad writes a field of width space characters.
func (w *FieldWriter) Pad(width int) *FieldWriter {
	w.sep()
	for i := 0; i < width; i++ {
		w.buf.Put(' ')
	}
	return w
}

// Decimal writes v right-justified in a field of width characters.
// Values wider than the field keep only the trailing digits: the fixed
// column layout takes precedence over precision.
func (w *FieldWriter) Decimal(v uint64, width int) *FieldWriter {
	w.sep()
	if width <= 0 {
		return w
	}
	digits := strconv.FormatUint(v, 10)
	if len(digits) > width {
		digits = digits[len(digits)-width:]
	}
	for i := len(digits); i < width; i++ {
		w.buf.Put(' ')
	}
	w.buf.PutString(digits)
	return w
}

// End terminates the line.
func (w *FieldWriter) End() {
	w.buf.Put('\n')
	w.started = false
}
