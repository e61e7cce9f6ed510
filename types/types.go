// Package types contains shared types used across the ret testing framework
package types

// Result represents the outcome of a test function or a test list
type Result string

// Result enum values. The string form is the keyword written into the
// result field of report lines.
const (
	ResultPass     Result = "PASS"
	ResultFail     Result = "FAIL"
	ResultTimeout  Result = "TIMEOUT"
	ResultTagError Result = "TAG_ERROR" // tag path grew past the configured maximum
)

// String implements the Stringer interface for Result
func (r Result) String() string {
	return string(r)
}

// Valid reports whether r is one of the known result keywords
func (r Result) Valid() bool {
	switch r {
	case ResultPass, ResultFail, ResultTimeout, ResultTagError:
		return true
	}
	return false
}

// Mode represents the traversal mode of a run
type Mode string

const (
	// ModeSearch enumerates tag paths without executing test bodies
	ModeSearch Mode = "search"
	// ModeExecute runs test bodies and reports results
	ModeExecute Mode = "execute"
	// ModeSkip is engine-internal: the walker downgrades Execute to Skip
	// while traversing nodes outside the target subtree. Callers never
	// supply it.
	ModeSkip Mode = "skip"
)

// String implements the Stringer interface for Mode
func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a user-supplied mode name into a Mode.
// Only the caller-facing modes are accepted.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSearch:
		return ModeSearch, true
	case ModeExecute:
		return ModeExecute, true
	}
	return "", false
}

// RunConfig is the caller-supplied run configuration, threaded by reference
// through every executor frame. Mode and TargetTag are set by the caller;
// TagFound and LastResult are maintained during the run.
type RunConfig struct {
	Mode      Mode
	TargetTag string
	TagFound  int // number of times the target tag matched the tag path
	LastResult int // user-recorded result code, echoed in assert diagnostics
}

// ShouldSkip reports whether a leaf body must return without side effects.
// Every leaf test function checks this at the top of its body; branch
// functions do not.
func (c *RunConfig) ShouldSkip() bool {
	return c.Mode == ModeSearch || c.Mode == ModeSkip
}

// RunStats aggregates the test result lines of one run
type RunStats struct {
	Total     int
	Passed    int
	Failed    int
	Timeouts  int
	TagErrors int
}

// Count tallies one result line
func (s *RunStats) Count(res Result) {
	s.Total++
	switch res {
	case ResultPass:
		s.Passed++
	case ResultTimeout:
		s.Timeouts++
	case ResultTagError:
		s.TagErrors++
	default:
		s.Failed++
	}
}

// Ok reports whether every counted result passed
func (s RunStats) Ok() bool {
	return s.Failed == 0 && s.Timeouts == 0 && s.TagErrors == 0
}
