package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvStackPushUnwind(t *testing.T) {
	s := newEnvStack(4)
	assert.Equal(t, 4, s.capacity())
	assert.Zero(t, s.depth)

	s.saveCursor(0, 0)
	s.push()
	s.saveCursor(1, 5)
	s.push()
	assert.Equal(t, 2, s.depth)

	cursor, ok := s.unwind(1)
	assert.True(t, ok)
	assert.Equal(t, 5, cursor)
	assert.Equal(t, 1, s.depth)

	cursor, ok = s.unwind(0)
	assert.True(t, ok)
	assert.Zero(t, cursor)
	assert.Zero(t, s.depth)
}

func TestEnvStackUnwindOutOfRange(t *testing.T) {
	s := newEnvStack(2)
	s.push()
	_, ok := s.unwind(2)
	assert.False(t, ok, "unwind past capacity is refused")
	assert.Equal(t, 1, s.depth, "depth untouched by refused unwind")

	_, ok = s.unwind(-1)
	assert.False(t, ok)
}

func TestEnvStackStartTimes(t *testing.T) {
	s := newEnvStack(3)
	s.setStart(0, 100)
	s.setStart(2, 300)
	assert.Equal(t, uint64(100), s.startOf(0))
	assert.Equal(t, uint64(300), s.startOf(2))
	assert.Zero(t, s.startOf(5), "out of range reads as zero")
	s.setStart(9, 1) // out of range writes are dropped
}

func TestEnvStackReset(t *testing.T) {
	s := newEnvStack(2)
	s.push()
	s.saveCursor(1, 7)
	s.setStart(1, 42)
	s.reset()
	assert.Zero(t, s.depth)
	assert.Zero(t, s.cursor(1))
	assert.Zero(t, s.startOf(1))
}
