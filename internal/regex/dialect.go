package regex

import (
	"fmt"
	"strings"
)

// Dialect selects the grammar accepted by Parse. One dialect is used for
// every pattern and replacement of a run.
type Dialect int

const (
	Basic Dialect = iota
	Extended
	Teal
)

func (d Dialect) String() string {
	switch d {
	case Basic:
		return "basic"
	case Extended:
		return "extended"
	case Teal:
		return "teal"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect maps a dialect name, in any case, to its Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "basic", "posix":
		return Basic, nil
	case "extended", "ere":
		return Extended, nil
	case "teal":
		return Teal, nil
	}
	return Basic, fmt.Errorf("unknown regex dialect %q", name)
}

// SyntaxError reports a pattern the active dialect rejects. Offset is a
// byte offset into the text handed to Parse; Line and Column are 1-based
// and derived from it.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

func newSyntaxError(src string, offset int, msg string) *SyntaxError {
	if offset > len(src) {
		offset = len(src)
	}
	line, col := 1, 1
	for _, r := range src[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &SyntaxError{Offset: offset, Line: line, Column: col, Msg: msg}
}
