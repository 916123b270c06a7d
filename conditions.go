package sed

// conditions are what I'm calling the '1,10' in
// commands like '1,10 d'.  They are the line numbers
// and regexps that you can use to control when
// commands execute.

import (
	"regexp"

	"go.uber.org/zap"
)

// Address selects lines. It is either a LineNumber or a ContextPattern.
type Address interface {
	address()
}

// LineNumber matches exactly one input line, counted from 1 across all
// inputs of a run.
type LineNumber int

// ContextPattern matches when the pattern space contains a match.
type ContextPattern struct {
	Pattern *regexp.Regexp
}

func (LineNumber) address()     {}
func (ContextPattern) address() {}

// Command is one parsed script line. End is only set when Start is.
type Command struct {
	Start    Address
	End      Address
	Function Function
	Source   string
}

func (e *Engine) matches(a Address) bool {
	switch a := a.(type) {
	case LineNumber:
		return e.lineno == int(a)
	case ContextPattern:
		return a.Pattern.MatchString(e.pat)
	}
	return false
}

// applies decides whether command i runs on the current pattern space,
// updating its range state. Addresses are tested against the pattern
// space as it is now, after any earlier commands of this cycle.
func (e *Engine) applies(i int, cmd *Command) bool {
	switch {
	case cmd.Start == nil:
		return true
	case cmd.End == nil:
		return e.matches(cmd.Start)
	case e.active[i]:
		// the end line is part of the range
		if e.matches(cmd.End) {
			e.active[i] = false
			e.logger.Debug("range closed", zap.Int("command", i), zap.Int("line", e.lineno))
		}
		return true
	case e.matches(cmd.Start):
		if n, ok := cmd.End.(LineNumber); ok && int(n) <= e.lineno {
			return true
		}
		e.active[i] = true
		e.logger.Debug("range opened", zap.Int("command", i), zap.Int("line", e.lineno))
		return true
	}
	return false
}
