package ret

import (
	"fmt"
	"strings"
	"time"

	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/types"
	"github.com/embedded-infra/ret/ui"
)

// getResultString returns a symbolic string representing a test result
func getResultString(res types.Result) string {
	switch res {
	case types.ResultPass:
		return "✓ pass"
	case types.ResultTimeout:
		return "✗ timeout"
	case types.ResultTagError:
		return "✗ tag error"
	default:
		return "✗ fail"
	}
}

// formatDuration formats a duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// formatTicks formats an elapsed tick count. The host clock ticks in
// milliseconds.
func formatTicks(t uint64) string {
	return fmt.Sprintf("%dms", t)
}

// indentPath renders a full tag path as its last token, indented one
// level per path segment below the root.
func indentPath(path string) string {
	delim := string(engine.TokenDelimiter)
	tokens := strings.Split(strings.TrimPrefix(path, delim), delim)
	depth := len(tokens) - 1
	return strings.Repeat(ui.TreeIndent, depth) + tokens[len(tokens)-1]
}
