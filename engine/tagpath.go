package engine

import (
	"errors"
	"strings"
)

// TokenDelimiter joins tags into a tag path. It is reserved: it must not
// appear inside any user tag.
const TokenDelimiter = '@'

// ErrTagOverflow is returned when appending a tag would exceed the
// configured maximum path length.
var ErrTagOverflow = errors.New("tag path length limit exceeded")

// tagPath is the single mutable bounded path string of a run, holding the
// delimiter-joined tags from the root down to the currently executing node.
type tagPath struct {
	buf []byte
	max int
}

func newTagPath(max int) *tagPath {
	return &tagPath{buf: make([]byte, 0, max), max: max}
}

// append adds the delimiter and tag to the path. On overflow the path is
// left byte-identical to what it was and ErrTagOverflow is returned, so
// the caller can skip the node without unwinding anything else.
func (p *tagPath) append(tag string) error {
	if len(p.buf)+1+len(tag) >= p.max {
		return ErrTagOverflow
	}
	p.buf = append(p.buf, TokenDelimiter)
	p.buf = append(p.buf, tag...)
	return nil
}

// cursor returns the current end-of-path position, for saving into an
// environment slot.
func (p *tagPath) cursor() int {
	return len(p.buf)
}

// truncate rewinds the path to a previously saved cursor. Out-of-range
// cursors are ignored; a saved cursor is always legal because append
// checked it.
func (p *tagPath) truncate(cursor int) {
	if cursor >= 0 && cursor <= len(p.buf) {
		p.buf = p.buf[:cursor]
	}
}

func (p *tagPath) reset() {
	p.buf = p.buf[:0]
}

func (p *tagPath) String() string {
	return string(p.buf)
}

// findToken reports whether target occurs in the path as an exact token:
// the occurrence must be followed by the delimiter or by end-of-path, so
// "Test1" never matches inside "Test12". Every occurrence is considered,
// not just the first. The target may itself span several tags
// (e.g. "group_1_tests@Group1Test0").
func (p *tagPath) findToken(target string) bool {
	if target == "" {
		return false
	}
	path := string(p.buf)
	for from := 0; ; {
		i := strings.Index(path[from:], target)
		if i < 0 {
			return false
		}
		end := from + i + len(target)
		if end == len(path) || path[end] == TokenDelimiter {
			return true
		}
		from += i + 1
	}
}
