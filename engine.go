// Package sed implements a line-oriented stream editor in the style of
// UNIX sed. A script is compiled once with Compile, then an Engine built
// by New runs it over one or more inputs.
//
// Patterns may be written in one of three dialects. Basic and Extended
// follow POSIX conventions, so instead of Go's s|ab(c*)d|$1| you write
// s|ab(c*)d|\1|. Teal accepts named groups and takes replacements written
// in Go's own ${N} template syntax. Whatever the dialect, patterns are
// translated to Go regexp syntax before they are compiled.
//
// The supported functions are = d D g G h H i p s x. Substitution replaces
// the first match only.
package sed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Engine is the run state for a sed script: pattern space, hold space,
// line counter and the state of every range command. An Engine is not
// safe for concurrent use.
type Engine struct {
	script *Script
	quiet  bool
	logger *zap.Logger

	pat    string        // the pattern space
	hold   string        // the hold space
	lineno int           // current line number
	active []bool        // range state, per command
	output *bufio.Writer // the output stream
}

// Option configures an Engine.
type Option func(*Engine)

// WithQuiet turns off the automatic print at the end of every cycle. This
// is the classic '-n' sed behaviour.
func WithQuiet(quiet bool) Option {
	return func(e *Engine) {
		e.quiet = quiet
	}
}

// WithLogger sets the logger for debug tracing. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New makes an Engine for a compiled script.
func New(script *Script, opts ...Option) *Engine {
	e := &Engine{script: script, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	for i, cmd := range script.Commands {
		fields := []zap.Field{zap.Int("index", i), zap.String("command", cmd.Source)}
		if s, ok := cmd.Function.(Substitute); ok {
			fields = append(fields, zap.Stringer("pattern", s.Pattern), zap.String("replacement", s.Replacement))
		}
		e.logger.Debug("compiled command", fields...)
	}
	return e
}

// Run executes the script over the inputs in order, writing to output.
// The line counter, hold space and range states carry over from one input
// to the next; they are reset only when Run is called again. Any read or
// write error stops the run at once. Output produced before the error is
// still flushed.
func (e *Engine) Run(output io.Writer, inputs ...io.Reader) error {
	e.pat, e.hold, e.lineno = "", "", 0
	e.active = make([]bool, len(e.script.Commands))
	e.output = bufio.NewWriter(output)

	var err error
	for i, input := range inputs {
		e.logger.Debug("reading input", zap.Int("source", i), zap.Int("line", e.lineno))
		if err = e.runSource(newLineSource(input)); err != nil {
			break
		}
	}

	if ferr := e.output.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	return err
}

// RunString is a convenience wrapper around Run for string input and
// output.
func (e *Engine) RunString(input string) (string, error) {
	var out strings.Builder
	err := e.Run(&out, strings.NewReader(input))
	return out.String(), err
}

func (e *Engine) runSource(src *lineSource) error {
	for {
		line, err := src.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.cycle(line); err != nil {
			return err
		}
	}
}

// cycle runs the whole script on one input line. DeleteFirstLine restarts
// the script on what is left of the pattern space, so the script runs in
// a loop rather than by recursion.
func (e *Engine) cycle(line string) error {
	e.lineno++
	e.pat = line

	for {
		act, err := e.runScript()
		if err != nil {
			return err
		}
		if act == restartCycle {
			continue
		}
		if act == endCycle || e.quiet {
			return nil
		}
		return e.writeLine(e.pat)
	}
}

func (e *Engine) runScript() (action, error) {
	for i := range e.script.Commands {
		cmd := &e.script.Commands[i]
		if !e.applies(i, cmd) {
			continue
		}
		act, err := e.execute(cmd.Function)
		if err != nil || act != proceed {
			return act, err
		}
	}
	return proceed, nil
}

func (e *Engine) writeLine(s string) error {
	if _, err := e.output.WriteString(s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := e.output.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// lineSource yields the lines of one input without their newline. A last
// line with no newline is still a line.
type lineSource struct {
	r    *bufio.Reader
	done bool
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{r: bufio.NewReader(r)}
}

func (s *lineSource) next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	line, err := s.r.ReadString('\n')
	switch {
	case err == io.EOF:
		s.done = true
		if len(line) == 0 {
			return "", io.EOF
		}
		return line, nil
	case err != nil:
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}
