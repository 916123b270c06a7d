package sed

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/rwtodd/tealsed/internal/regex"
)

// these functions parse script text into the Commands the engine
// (engine.go) runs.

// Dialect selects the regex grammar of a script.
type Dialect = regex.Dialect

const (
	Basic    = regex.Basic
	Extended = regex.Extended
	Teal     = regex.Teal
)

// ParseDialect maps "basic", "extended" or "teal" to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	return regex.ParseDialect(name)
}

// Script is an ordered list of commands, applied to every line in order.
type Script struct {
	Dialect  Dialect
	Commands []Command
}

// Compile parses every script string with the same dialect. A string may
// hold several commands, one per line; blank lines and lines starting
// with '#' are skipped. All strings are parsed even after a failure, and
// the failures are returned together (see multierr.Errors).
func Compile(dialect Dialect, scripts ...string) (*Script, error) {
	script := &Script{Dialect: dialect}

	var errs error
	for _, src := range scripts {
		for _, line := range strings.Split(src, "\n") {
			line = strings.TrimSuffix(line, "\r")
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}

			cmd, err := ParseCommand(line, dialect)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			script.Commands = append(script.Commands, *cmd)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return script, nil
}

type commandParser struct {
	cursor
	dialect Dialect
}

// ParseCommand parses a single command: an optional address or address
// range followed by one function.
func ParseCommand(src string, dialect Dialect) (*Command, error) {
	p := &commandParser{cursor: cursor{src: src}, dialect: dialect}
	cmd := &Command{Source: src}

	p.skipWS()
	start, err := p.address()
	if err != nil {
		return nil, err
	}
	if start != nil {
		cmd.Start = start

		p.skipWS()
		if p.accept(',') {
			p.skipWS()
			end, err := p.address()
			if err != nil {
				return nil, err
			}
			if end == nil {
				return nil, p.errorf("expected an address after ','")
			}
			cmd.End = end
		}
	}

	p.skipWS()
	if cmd.Function, err = p.function(); err != nil {
		return nil, err
	}

	p.skipWS()
	if !p.atEnd() {
		return nil, p.errorf("extra characters after command")
	}
	return cmd, nil
}

// address returns nil, and consumes nothing, when no address starts here.
func (p *commandParser) address() (Address, error) {
	switch c := p.peek(); {
	case p.atEnd():
		return nil, nil
	case c >= '0' && c <= '9':
		start := p.pos
		n, err := strconv.Atoi(p.readNumber())
		if err != nil {
			return nil, p.errorAt(start, "line number out of range", nil)
		}
		if n == 0 {
			return nil, p.errorAt(start, "invalid usage of line address 0", nil)
		}
		return LineNumber(n), nil
	case c == '/':
		p.next()
		return p.contextPattern('/')
	case c == '\\':
		p.next()
		if p.atEnd() {
			return nil, p.errorf("expected a delimiter after '\\'")
		}
		delim := p.next()
		if delim == '\\' || delim == '\n' {
			return nil, p.errorAt(p.pos-1, "backslash and newline cannot delimit a regex", nil)
		}
		return p.contextPattern(delim)
	}
	return nil, nil
}

func (p *commandParser) contextPattern(delim rune) (Address, error) {
	re, err := p.pattern(delim)
	if err != nil {
		return nil, err
	}
	return ContextPattern{Pattern: re}, nil
}

// pattern parses an embedded regex up to delim, consumes the delimiter
// and compiles the result.
func (p *commandParser) pattern(delim rune) (*regexp.Regexp, error) {
	ast, end, err := regex.Parse(p.src, p.pos, delim, p.dialect)
	if err != nil {
		var synErr *regex.SyntaxError
		if errors.As(err, &synErr) {
			return nil, p.errorAt(synErr.Offset, "invalid regex", err)
		}
		return nil, err
	}
	p.pos = end
	if !p.accept(delim) {
		return nil, p.errorf("unterminated regex, expected %q", delim)
	}

	pattern := regex.Render(ast)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternCompileError{Script: p.src, Pattern: pattern, Err: err}
	}
	return re, nil
}

func (p *commandParser) function() (Function, error) {
	if p.atEnd() {
		return nil, p.errorf("missing function")
	}

	start := p.pos
	switch op := p.next(); op {
	case '=':
		return PrintLineNumber{}, nil
	case 'd':
		return Delete{}, nil
	case 'D':
		return DeleteFirstLine{}, nil
	case 'g':
		return CopyHoldToPattern{}, nil
	case 'G':
		return AppendHoldToPattern{}, nil
	case 'h':
		return CopyPatternToHold{}, nil
	case 'H':
		return AppendPatternToHold{}, nil
	case 'i':
		return Insert{Text: p.rest()}, nil
	case 'p':
		return Print{}, nil
	case 's':
		return p.substitute()
	case 'x':
		return Exchange{}, nil
	default:
		return nil, p.errorAt(start, "unrecognized or malformed function "+strconv.QuoteRune(op), nil)
	}
}

// substitute parses the s<d>pattern<d>replacement<d> arguments, where <d>
// is whatever character follows the s.
func (p *commandParser) substitute() (Function, error) {
	if p.atEnd() {
		return nil, p.errorf("unrecognized or malformed function: missing delimiter after 's'")
	}
	delim := p.next()
	if delim == '\\' || delim == '\n' {
		return nil, p.errorAt(p.pos-1, "unrecognized or malformed function: backslash and newline cannot delimit 's'", nil)
	}

	re, err := p.pattern(delim)
	if err != nil {
		return nil, err
	}

	replacement, ok := p.readDelimited(delim)
	if !ok {
		return nil, p.errorf("unrecognized or malformed function: unterminated 's' replacement")
	}

	return Substitute{
		Pattern:     re,
		Replacement: TranslateReplacement(replacement, p.dialect),
	}, nil
}

func (p *commandParser) errorf(format string, args ...interface{}) error {
	return p.errorAt(p.pos, fmt.Sprintf(format, args...), nil)
}

func (p *commandParser) errorAt(offset int, msg string, err error) error {
	return &ScriptSyntaxError{Script: p.src, Offset: offset, Msg: msg, Err: err}
}
