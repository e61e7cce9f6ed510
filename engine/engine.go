// Package engine implements the recursive test executor: a tree walker
// driven by tag-path matching, with a three-mode (search/execute/skip)
// state machine, bounded tag-path and recursion-environment state, and a
// line-oriented report emitter.
//
// All mutable run state lives inside an Engine value, so concurrent runs
// are safe by giving each its own Engine; a single Engine assumes one
// synchronous caller.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/embedded-infra/ret/reporting"
	"github.com/embedded-infra/ret/types"
)

// RootTag prefixes every tag path. Supplying it as the target selects the
// entire tree.
const RootTag = "ROOT"

// Default limits, sized for small embedded targets. All of them are
// tunables on Config.
const (
	DefaultMaxPathLen = 256
	DefaultMaxDepth   = 6
)

// Diagnostic messages appended to the report as info lines.
const (
	msgTagOverflow  = "Error: max tag path length exceeded"
	msgNestOverflow = "Error: max nesting depth exceeded"
	msgPathNotFound = "test path not found"
)

// Clock returns a monotonic tick count. It must return immediately.
type Clock func() uint64

var processStart = time.Now()

// defaultClock counts milliseconds since process start.
func defaultClock() uint64 {
	return uint64(time.Since(processStart) / time.Millisecond)
}

// Config configures an Engine.
type Config struct {
	Log   log.Logger
	Clock Clock          // monotonic tick source; defaults to a millisecond clock
	Sink  reporting.Sink // report transmission channel; defaults to discard

	// Root is the test list executed under the root tag.
	Root List

	MaxPathLen int // maximum tag path length; DefaultMaxPathLen if zero
	MaxDepth   int // maximum nesting depth; DefaultMaxDepth if zero
	BufferSize int // report buffer capacity; reporting.DefaultBufferSize if zero

	// BufferAll accumulates the whole report and transmits it once at
	// run completion instead of flushing line by line.
	BufferAll bool
}

// Engine is the per-run execution context: tag path, recursion
// environment, report emitter and result counters. Access is serialized
// by the single active call stack of Start.
type Engine struct {
	log          log.Logger
	clock        Clock
	path         *tagPath
	env          *envStack
	emit         *reporting.Emitter
	root         List
	flushPerLine bool
	stats        types.RunStats
}

// New creates an engine for the given tree and tunables.
func New(cfg Config) (*Engine, error) {
	if len(cfg.Root.Nodes) == 0 {
		return nil, errors.New("root test list is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	if cfg.Clock == nil {
		cfg.Clock = defaultClock
	}
	if cfg.Sink == nil {
		cfg.Log.Warn("No report sink provided, report output will be discarded")
		cfg.Sink = reporting.Discard
	}
	if cfg.MaxPathLen <= 0 {
		cfg.MaxPathLen = DefaultMaxPathLen
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	flushPerLine := !cfg.BufferAll
	buf := reporting.NewBuffer(cfg.BufferSize, flushPerLine, cfg.Sink)
	return &Engine{
		log:          cfg.Log,
		clock:        cfg.Clock,
		path:         newTagPath(cfg.MaxPathLen),
		env:          newEnvStack(cfg.MaxDepth),
		emit:         reporting.NewEmitter(buf, cfg.MaxPathLen),
		root:         cfg.Root,
		flushPerLine: flushPerLine,
	}, nil
}

// Stats returns the counters of the most recent run.
func (e *Engine) Stats() types.RunStats {
	return e.stats
}

// T is the handle passed to every test function. It carries the run
// configuration and gives leaf bodies their assertion primitive and
// branch bodies their recursion entry point.
type T struct {
	eng *Engine
	cfg *types.RunConfig
}

// ShouldSkip reports whether the leaf body must return without side
// effects. Every leaf checks this first.
func (t *T) ShouldSkip() bool {
	return t.cfg.ShouldSkip()
}

// RunConfig exposes the run configuration threaded through the walk.
func (t *T) RunConfig() *types.RunConfig {
	return t.cfg
}

// Logger returns the engine logger for use inside test bodies.
func (t *T) Logger() log.Logger {
	return t.eng.log
}

// Info appends a diagnostic line to the run report.
func (t *T) Info(format string, args ...any) {
	t.eng.emit.Info(fmt.Sprintf(format, args...))
}

// Start resets all run state and executes the tree under the root tag.
// The caller sets cfg.Mode and cfg.TargetTag; TagFound and LastResult
// are reset here. The returned result is the aggregate of the run: for
// an early exact-target exit it is the target's own result.
func (e *Engine) Start(cfg *types.RunConfig) types.Result {
	if cfg == nil {
		cfg = &types.RunConfig{}
	}
	if cfg.Mode == types.ModeSkip {
		e.log.Warn("Skip mode is engine-internal, running in execute mode instead")
		cfg.Mode = types.ModeExecute
	}
	if cfg.Mode == "" {
		cfg.Mode = types.ModeExecute
	}
	if cfg.TargetTag == "" {
		cfg.TargetTag = RootTag
	}
	cfg.TagFound = 0
	cfg.LastResult = 0

	e.path.reset()
	e.env.reset()
	e.emit.Reset()
	e.emit.SetFlushPerLine(e.flushPerLine)
	e.stats = types.RunStats{}

	e.log.Debug("Starting test run", "mode", cfg.Mode, "target", cfg.TargetTag)
	t := &T{eng: e, cfg: cfg}
	res := t.Run(NewList(Node{Tag: RootTag, Func: Branch(e.root)}))
	e.log.Debug("Test run finished", "result", res, "total", e.stats.Total, "failed", e.stats.Failed)
	return res
}

// Run executes a list of test nodes in declared order. Branch functions
// call it to recurse into their sub-list. The aggregate result is failure
// if any visited node failed; skipped nodes do not affect it.
func (t *T) Run(list List) types.Result {
	e := t.eng

	// Refuse to nest beyond the environment stack: the list is reported
	// as failed without visiting any of its children.
	if e.env.depth >= e.env.capacity() {
		e.emit.Info(msgNestOverflow)
		return types.ResultFail
	}

	frame := e.env.depth
	e.env.saveCursor(frame, e.path.cursor())
	savedFlush := e.emit.FlushPerLine()

	agg := types.ResultPass
	for _, node := range list.Nodes {
		res := t.runNode(node, frame)
		if res != types.ResultPass {
			agg = types.ResultFail
		}
		t.exit(res)
	}

	e.emit.SetFlushPerLine(savedFlush)
	return agg
}

// runNode arms this nesting level's abort target and invokes the node.
// An assertion abort is absorbed here, standing in for the leaf's normal
// return. A target-reached abort belongs to the root frame: every other
// frame re-raises it.
func (t *T) runNode(node Node, frame int) (res types.Result) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(abortSignal)
		if !ok {
			panic(r)
		}
		switch {
		case sig.kind == abortAssert:
			res = types.ResultFail
		case sig.kind == abortTarget && frame == 0:
			res = sig.result
		default:
			panic(sig)
		}
	}()
	return t.enter(node)
}

// enter appends the node's tag to the path, resolves the execution mode
// for this node by exact-token matching, and invokes it.
func (t *T) enter(node Node) types.Result {
	e, cfg := t.eng, t.cfg

	if err := e.path.append(node.Tag); err != nil {
		e.emit.Info(msgTagOverflow)
		return types.ResultTagError
	}
	e.env.push()

	if cfg.Mode != types.ModeSearch {
		if !e.findTagToken(cfg) {
			// Not under the target: leaf bodies compiled with the
			// search-aware guard return immediately.
			if cfg.Mode == types.ModeExecute {
				cfg.Mode = types.ModeSkip
			}
		} else {
			if cfg.Mode == types.ModeSkip {
				cfg.Mode = types.ModeExecute
			}
			e.env.setStart(e.env.depth-1, e.clock())
		}
	}

	return node.Func(t)
}

// exit reports the node's outcome, restores the tag path, and performs
// run completion duties at depth zero. Reaching the exact target tag
// terminates the whole run via the root abort target.
func (t *T) exit(res types.Result) {
	e, cfg := t.eng, t.cfg

	if res == types.ResultTagError {
		// The tag was never appended, so there is no level to unwind.
		e.emit.Test(res, 0, e.path.String())
		e.stats.Count(res)
		return
	}

	if e.findTagToken(cfg) {
		if cfg.Mode != types.ModeSearch {
			elapsed := e.clock() - e.env.startOf(e.env.depth-1)
			e.emit.Test(res, elapsed, e.path.String())
			e.stats.Count(res)
		} else {
			e.emit.Search(e.path.String())
		}
	}

	// Sub-tags are always present at the end of the path until the
	// requested test completes; exact equality means it just did.
	if e.path.String() == cfg.TargetTag {
		e.removeTag(0)
		panic(abortSignal{kind: abortTarget, result: res})
	}

	if e.env.depth > 0 {
		e.removeTag(e.env.depth - 1)
	}

	if e.env.depth == 0 {
		e.finish(cfg)
	}
}

// findTagToken tests whether the target tag occurs as an exact token in
// the current path, counting matches in the run configuration.
func (e *Engine) findTagToken(cfg *types.RunConfig) bool {
	if !e.path.findToken(cfg.TargetTag) {
		return false
	}
	cfg.TagFound++
	return true
}

// removeTag truncates the path back to the cursor recorded for depth d
// and makes d the current depth.
func (e *Engine) removeTag(d int) {
	if cursor, ok := e.env.unwind(d); ok {
		e.path.truncate(cursor)
	}
}

// finish closes the run: either the single path-not-found line or the
// completion sentinel, never both, and never silence.
func (e *Engine) finish(cfg *types.RunConfig) {
	if cfg.TagFound == 0 && cfg.TargetTag != RootTag {
		e.emit.InfoNow(msgPathNotFound)
		return
	}
	e.emit.Done()
}
