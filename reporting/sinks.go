package reporting

import (
	"bytes"
	"io"
	"sync"
)

// Sink is the push-only byte channel a report is transmitted through.
// The engine never reads back, retries or blocks on it; embedded targets
// back it with an RTT/serial write, hosts typically with a writer.
type Sink func(p []byte)

// Discard drops everything written to it.
var Discard Sink = func([]byte) {}

// WriterSink adapts an io.Writer into a Sink. Write errors are ignored;
// the report channel is documented as at-most-once and non-blocking.
func WriterSink(w io.Writer) Sink {
	return func(p []byte) {
		_, _ = w.Write(p)
	}
}

// TeeSink fans a transmission out to several sinks in order.
func TeeSink(sinks ...Sink) Sink {
	return func(p []byte) {
		for _, s := range sinks {
			s(p)
		}
	}
}

// Collector is a Sink that accumulates everything transmitted during a run
// so the host side can parse the report afterwards.
type Collector struct {
	mu   sync.Mutex
	data bytes.Buffer
}

// Sink returns the collecting sink function.
func (c *Collector) Sink() Sink {
	return func(p []byte) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.data.Write(p)
	}
}

// String returns the raw collected report text.
func (c *Collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data.String()
}

// Reset discards everything collected so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Reset()
}

// Report parses the collected text into report lines.
func (c *Collector) Report() (*Report, error) {
	return ParseReport(c.String())
}
