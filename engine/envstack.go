package engine

// envSlot records what one nesting level needs to resume after a node
// returns or aborts: the tag-path cursor to restore and the start tick
// for elapsed-time measurement. The abort target itself is armed per
// node invocation by the executor's recover (see abort.go).
type envSlot struct {
	cursor int
	start  uint64
}

// envStack is the fixed-capacity recursion environment, one slot per
// nesting level. Slot 0 belongs to the root frame and doubles as the
// "exit entire run" unwind target.
type envStack struct {
	slots []envSlot
	depth int
}

func newEnvStack(max int) *envStack {
	return &envStack{slots: make([]envSlot, max)}
}

func (s *envStack) capacity() int {
	return len(s.slots)
}

// saveCursor records the tag-path cursor for the frame at depth d.
// Called once when a list executor frame is entered.
func (s *envStack) saveCursor(d, cursor int) {
	if d >= 0 && d < len(s.slots) {
		s.slots[d].cursor = cursor
	}
}

func (s *envStack) cursor(d int) int {
	if d < 0 || d >= len(s.slots) {
		return 0
	}
	return s.slots[d].cursor
}

// push enters one nesting level. The caller checks capacity first; a
// refused enter is reported as NestingOverflow before any child runs.
func (s *envStack) push() {
	s.depth++
}

// unwind drops back to depth d and returns the cursor saved there.
// Out-of-range depths leave the stack untouched.
func (s *envStack) unwind(d int) (cursor int, ok bool) {
	if d < 0 || d >= len(s.slots) {
		return 0, false
	}
	s.depth = d
	return s.slots[d].cursor, true
}

func (s *envStack) setStart(d int, tick uint64) {
	if d >= 0 && d < len(s.slots) {
		s.slots[d].start = tick
	}
}

func (s *envStack) startOf(d int) uint64 {
	if d < 0 || d >= len(s.slots) {
		return 0
	}
	return s.slots[d].start
}

func (s *envStack) reset() {
	s.depth = 0
	for i := range s.slots {
		s.slots[i] = envSlot{}
	}
}
