package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/embedded-infra/ret/types"
)

// Line is a parsed report line.
type Line struct {
	Kind    Kind
	Seq     int
	Result  types.Result // test lines only
	Elapsed uint64       // test lines only, in clock ticks
	Text    string       // message or full tag path
}

// Report is a parsed run report.
type Report struct {
	Lines []Line
	Done  bool // the DONE sentinel was seen
}

// TestLines returns only the test result lines, in emission order.
func (r *Report) TestLines() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Kind == KindTest {
			out = append(out, l)
		}
	}
	return out
}

// SearchPaths returns the tag paths listed by search lines, in order.
func (r *Report) SearchPaths() []string {
	var out []string
	for _, l := range r.Lines {
		if l.Kind == KindSearch {
			out = append(out, l.Text)
		}
	}
	return out
}

// ParseLine parses a single report line. The final field is free text and
// may itself contain separators, so exactly four splits are performed.
func ParseLine(s string) (Line, error) {
	fields := strings.SplitN(s, string(Separator), 5)
	if len(fields) != 5 {
		return Line{}, fmt.Errorf("malformed report line %q: want 5 fields, got %d", s, len(fields))
	}
	if len(fields[0]) != 1 {
		return Line{}, fmt.Errorf("malformed kind field %q", fields[0])
	}

	kind := Kind(fields[0][0])
	switch kind {
	case KindInfo, KindSearch, KindTest:
	default:
		return Line{}, fmt.Errorf("unknown message kind %q", fields[0])
	}

	seq, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Line{}, fmt.Errorf("malformed sequence field %q: %w", fields[1], err)
	}

	line := Line{Kind: kind, Seq: seq, Text: fields[4]}
	if kind != KindTest {
		return line, nil
	}

	line.Result = types.Result(strings.TrimSpace(fields[2]))
	if !line.Result.Valid() {
		return Line{}, fmt.Errorf("unknown result keyword %q", fields[2])
	}
	line.Elapsed, err = strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return Line{}, fmt.Errorf("malformed elapsed field %q: %w", fields[3], err)
	}
	return line, nil
}

// ParseReport parses a whole report. Blank lines are skipped and parsing
// stops at the DONE sentinel.
func ParseReport(raw string) (*Report, error) {
	rep := &Report{}
	for _, s := range strings.Split(raw, "\n") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if s == DoneSentinel {
			rep.Done = true
			break
		}
		line, err := ParseLine(s)
		if err != nil {
			return nil, err
		}
		rep.Lines = append(rep.Lines, line)
	}
	return rep, nil
}
