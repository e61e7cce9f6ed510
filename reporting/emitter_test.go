package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-infra/ret/types"
)

func newTestEmitter(flushPerLine bool) (*Emitter, *Collector) {
	c := &Collector{}
	buf := NewBuffer(DefaultBufferSize, flushPerLine, c.Sink())
	return NewEmitter(buf, 256), c
}

func TestEmitterInfoLineFormat(t *testing.T) {
	e, c := newTestEmitter(true)
	e.Info("hello world")
	e.Flush()
	assert.Equal(t, "I,   0,    ,      ,hello world\n", c.String())
}

func TestEmitterSequenceIncreasesAcrossKinds(t *testing.T) {
	e, c := newTestEmitter(true)
	e.Info("one")
	e.Test(types.ResultPass, 5, "@ROOT@A")
	e.Search("@ROOT@B")
	e.Flush()

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "I,   0,    ,      ,one", lines[0])
	assert.Equal(t, "T,   1,PASS,     5,@ROOT@A", lines[1])
	assert.Equal(t, "S,   2,    ,      ,@ROOT@B", lines[2])
}

func TestEmitterTestLine(t *testing.T) {
	e, c := newTestEmitter(true)
	e.Test(types.ResultFail, 1234, "@ROOT@group_1_tests@Group1Test1")
	assert.Equal(t, "T,   0,FAIL,  1234,@ROOT@group_1_tests@Group1Test1\n", c.String())
}

func TestEmitterInfoDeferredVsImmediate(t *testing.T) {
	// Deferred info lines stay buffered even when written between
	// immediate lines; ambient policy off means nothing moves until Done.
	e, c := newTestEmitter(false)
	e.Info("buffered")
	assert.Empty(t, c.String())

	e.InfoNow("urgent")
	// The line-scoped flush transmits everything buffered so far, in order.
	assert.Equal(t, "I,   0,    ,      ,buffered\nI,   1,    ,      ,urgent\n", c.String())
}

func TestEmitterSearchFlushesImmediately(t *testing.T) {
	e, c := newTestEmitter(false)
	e.Search("@ROOT@group_0_tests")
	assert.Equal(t, "S,   0,    ,      ,@ROOT@group_0_tests\n", c.String())
}

func TestEmitterDone(t *testing.T) {
	e, c := newTestEmitter(false)
	e.Test(types.ResultPass, 0, "@ROOT")
	e.Done()
	assert.Equal(t, "T,   0,PASS,     0,@ROOT\n\nDONE", c.String())
}

func TestEmitterOversizedMessageReplaced(t *testing.T) {
	c := &Collector{}
	buf := NewBuffer(DefaultBufferSize, true, c.Sink())
	e := NewEmitter(buf, 16)

	e.Info(strings.Repeat("x", 17))
	e.Flush()
	assert.Equal(t, "I,   0,    ,      ,"+TruncationPlaceholder+"\n", c.String())
}

func TestEmitterSanitizesMessages(t *testing.T) {
	e, c := newTestEmitter(true)
	e.Info("\x1b[31mred\x1b[0m and\nmultiline\r")
	e.Flush()
	assert.Equal(t, "I,   0,    ,      ,red and multiline \n", c.String())
}

func TestEmitterReset(t *testing.T) {
	e, c := newTestEmitter(false)
	e.Info("stale")
	e.Reset()
	e.Info("fresh")
	e.Flush()
	assert.Equal(t, "I,   0,    ,      ,fresh\n", c.String())
}
