package sed

import (
	"fmt"

	"github.com/rwtodd/tealsed/internal/regex"
)

// RegexSyntaxError is returned, wrapped in a ScriptSyntaxError, when an
// embedded pattern is not valid in the active dialect.
type RegexSyntaxError = regex.SyntaxError

// ScriptSyntaxError reports a command that could not be parsed. Offset is
// the byte offset into Script where parsing failed. When the failure was
// inside an embedded pattern, Err holds the *RegexSyntaxError.
type ScriptSyntaxError struct {
	Script string
	Offset int
	Msg    string
	Err    error
}

func (e *ScriptSyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d in %q: %v", e.Msg, e.Offset, e.Script, e.Err)
	}
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Script)
}

func (e *ScriptSyntaxError) Unwrap() error {
	return e.Err
}

// PatternCompileError reports a rendered pattern the regexp package
// refused.
type PatternCompileError struct {
	Script  string
	Pattern string
	Err     error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("cannot compile pattern %q from %q: %v", e.Pattern, e.Script, e.Err)
}

func (e *PatternCompileError) Unwrap() error {
	return e.Err
}
