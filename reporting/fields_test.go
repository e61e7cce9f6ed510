package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectLine(build func(w *FieldWriter)) string {
	var out string
	b := NewBuffer(256, false, func(p []byte) { out += string(p) })
	build(NewFieldWriter(b))
	b.Flush()
	return out
}

func TestFieldWriterLineAssembly(t *testing.T) {
	got := collectLine(func(w *FieldWriter) {
		w.Kind('T').Decimal(7, 4).Text("PASS").Decimal(123, 6).Text("@ROOT@A")
		w.End()
	})
	assert.Equal(t, "T,   7,PASS,   123,@ROOT@A\n", got)
}

func TestFieldWriterDecimal(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		width int
		want  string
	}{
		{"right justified", 42, 6, "    42"},
		{"exact width", 123456, 6, "123456"},
		{"keeps trailing digits when too wide", 1234567, 6, "234567"},
		{"zero", 0, 4, "   0"},
		{"width one", 9, 1, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectLine(func(w *FieldWriter) {
				w.Decimal(tt.value, tt.width)
				w.End()
			})
			assert.Equal(t, tt.want+"\n", got)
		})
	}
}

func TestFieldWriterPad(t *testing.T) {
	got := collectLine(func(w *FieldWriter) {
		w.Kind('I').Pad(4).Pad(6)
		w.End()
	})
	assert.Equal(t, "I,    ,      \n", got)
}

func TestFieldWriterReusableAfterEnd(t *testing.T) {
	got := collectLine(func(w *FieldWriter) {
		w.Kind('I').Text("one")
		w.End()
		w.Kind('I').Text("two")
		w.End()
	})
	assert.Equal(t, "I,one\nI,two\n", got)
}
