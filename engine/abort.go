package engine

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/embedded-infra/ret/types"
)

// abortKind discriminates the non-local exits that can unwind executor
// frames in place of a normal return.
type abortKind int

const (
	// abortAssert is raised by a failed assertion inside a leaf body.
	// It unwinds exactly one level: the frame that armed the target
	// absorbs it and records a failed result for the node.
	abortAssert abortKind = iota + 1
	// abortTarget is raised when the tag path equals the target tag
	// exactly: the requested unit of work is complete. Every frame
	// re-raises it until the root frame absorbs it, terminating the
	// run without visiting any remaining sibling at any level.
	abortTarget
)

// abortSignal is the typed value carried by the unwind. Executor frames
// recover it, update their own result, and re-raise or absorb it
// depending on the kind and their depth.
type abortSignal struct {
	kind   abortKind
	result types.Result
}

// Assert is the leaf-test diagnostic primitive. It returns immediately
// when cond is true. Otherwise it appends an info line recording the
// call site and the last recorded result code, then abandons the leaf
// at the point of failure; the executor observes a failed result for
// the node and continues with the next one.
func (t *T) Assert(cond bool) {
	if cond {
		return
	}
	file := "???"
	line := 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file = filepath.Base(f)
		line = l
	}
	t.eng.emit.Info(fmt.Sprintf("Assert at line %d of %s == %d", line, file, t.cfg.LastResult))
	panic(abortSignal{kind: abortAssert, result: types.ResultFail})
}
