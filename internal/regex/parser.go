package regex

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

/*
	parser is a recursive descent parser over the pattern text:

	re       -> branch ( '|' branch )*
	branch   -> piece*
	piece    -> atom quantifier?
	atom     -> literal | '\' char | '.' | '^' | '$' | class | group
	class    -> '[' '^'? item+ ']'
	item     -> char ( '-' char )?
	group    -> '(' re ')' | '(?:' re ')' | '(?P<' name '>' re ')'
	quantifier -> '*' | '+' | '?' | '{' n '}' | '{' n ',}' | '{' n ',' m '}'

	Parsing stops, without consuming it, at the end of the input, at an
	unescaped delimiter, or at a ')' closing the group being parsed.
*/

type parser struct {
	src     string
	pos     int
	delim   rune
	dialect Dialect
	ncap    int // capture groups opened so far
	depth   int // open groups
	names   map[string]bool
}

// Parse reads one pattern from src starting at byte offset off. It stops at
// the first unescaped delim (or the end of src) and returns the tree and the
// offset of the first unconsumed byte; the delimiter itself is left for the
// caller. Capture groups are numbered from 1 within this one pattern.
func Parse(src string, off int, delim rune, dialect Dialect) (Node, int, error) {
	p := &parser{
		src:     src,
		pos:     off,
		delim:   delim,
		dialect: dialect,
		names:   make(map[string]bool),
	}
	n, err := p.re()
	if err != nil {
		return nil, p.pos, err
	}
	return n, p.pos, nil
}

// ParseString parses the whole of src. Reaching delim before the end is
// an error.
func ParseString(src string, delim rune, dialect Dialect) (Node, error) {
	n, end, err := Parse(src, 0, delim, dialect)
	if err != nil {
		return nil, err
	}
	if end != len(src) {
		return nil, newSyntaxError(src, end, fmt.Sprintf("unexpected delimiter %q", delim))
	}
	return n, nil
}

func (p *parser) re() (Node, error) {
	first, err := p.branch()
	if err != nil {
		return nil, err
	}
	if !p.atAlternation() {
		return first, nil
	}

	alt := Alternation{Branches: []Node{first}}
	for p.atAlternation() {
		p.advance()
		b, err := p.branch()
		if err != nil {
			return nil, err
		}
		alt.Branches = append(alt.Branches, b)
	}
	return alt, nil
}

func (p *parser) branch() (Node, error) {
	var parts []Node
	for !p.atBranchEnd() {
		n, err := p.piece(len(parts) == 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, n)
	}

	switch len(parts) {
	case 0:
		return Empty{}, nil
	case 1:
		return parts[0], nil
	default:
		return Concat{Parts: parts}, nil
	}
}

func (p *parser) piece(first bool) (Node, error) {
	atom, err := p.atom(first)
	if err != nil {
		return nil, err
	}

	if p.atEnd() {
		return atom, nil
	}
	c, _ := p.peek()
	if c == p.delim {
		return atom, nil
	}

	switch c {
	case '*':
		p.advance()
		return Repetition{Kind: ZeroOrMore, Body: atom}, nil
	case '+':
		p.advance()
		return Repetition{Kind: OneOrMore, Body: atom}, nil
	case '?':
		p.advance()
		return Repetition{Kind: ZeroOrOne, Body: atom}, nil
	case '{':
		if !isDigit(p.peekAt(1)) {
			return atom, nil
		}
		lo, hi, err := p.bound()
		if err != nil {
			return nil, err
		}
		return Repetition{Kind: Bound, Min: lo, Max: hi, Body: atom}, nil
	}
	return atom, nil
}

func (p *parser) atom(first bool) (Node, error) {
	start := p.pos
	c, _ := p.peek()

	switch c {
	case '\\':
		return p.escape()
	case '.':
		p.advance()
		return Dot{}, nil
	case '^':
		p.advance()
		return Assertion{Kind: StartOfLine}, nil
	case '$':
		p.advance()
		return Assertion{Kind: EndOfLine}, nil
	case '[':
		return p.class()
	case '(':
		return p.group()
	case ')':
		return nil, p.errorAt(start, "unmatched )")
	case '*', '+', '?':
		if !first {
			return nil, p.errorAt(start, fmt.Sprintf("repetition operator %q has nothing to repeat", c))
		}
	case '{':
		if !first && isDigit(p.peekAt(1)) {
			return nil, p.errorAt(start, "repetition bound has nothing to repeat")
		}
	}

	p.advance()
	return Literal{Char: c, Kind: Verbatim}, nil
}

func (p *parser) escape() (Node, error) {
	start := p.pos
	p.advance()
	if p.atEnd() {
		return nil, p.errorAt(start, "trailing backslash")
	}
	c := p.advance()

	if c == p.delim {
		if p.dialect == Teal {
			return Literal{Char: c, Kind: Punctuation}, nil
		}
		return Literal{Char: c, Kind: Verbatim}, nil
	}
	if ctl, ok := controlEscape(c); ok {
		return Literal{Char: ctl, Kind: Special}, nil
	}
	return Literal{Char: c, Kind: Verbatim}, nil
}

func (p *parser) class() (Node, error) {
	start := p.pos
	p.advance() // [

	var cls Class
	if c, _ := p.peek(); c == '^' && !p.atEnd() {
		p.advance()
		cls.Negated = true
	}

	for {
		if p.atEnd() {
			return nil, p.errorAt(start, "unmatched [")
		}
		if c, _ := p.peek(); c == ']' && len(cls.Items) > 0 {
			p.advance()
			return cls, nil
		}

		itemStart := p.pos
		low, err := p.classChar(start)
		if err != nil {
			return nil, err
		}

		next, _ := p.peek()
		if !p.atEnd() && next == '-' && p.peekAt(1) != ']' && p.pos+1 < len(p.src) {
			p.advance() // -
			high, err := p.classChar(start)
			if err != nil {
				return nil, err
			}
			if high < low {
				return nil, p.errorAt(itemStart, fmt.Sprintf("invalid range %c-%c", low, high))
			}
			cls.Items = append(cls.Items, Range{Low: low, High: high})
			continue
		}
		cls.Items = append(cls.Items, Literal{Char: low, Kind: Verbatim})
	}
}

// classChar reads one, possibly escaped, member character of a class opened
// at open.
func (p *parser) classChar(open int) (rune, error) {
	if p.atEnd() {
		return 0, p.errorAt(open, "unmatched [")
	}
	c := p.advance()
	if c != '\\' {
		return c, nil
	}
	if p.atEnd() {
		return 0, p.errorAt(open, "unmatched [")
	}
	c = p.advance()
	if ctl, ok := controlEscape(c); ok {
		return ctl, nil
	}
	return c, nil
}

func (p *parser) group() (Node, error) {
	start := p.pos
	p.advance() // (

	g := Group{Kind: Indexed}
	if c, _ := p.peek(); c == '?' && !p.atEnd() && p.dialect != Basic {
		switch {
		case p.hasPrefix("?:"):
			p.pos += 2
			g.Kind = NonCapturing
		case p.dialect == Teal && p.hasPrefix("?P<"):
			p.pos += 3
			name, err := p.groupName(start)
			if err != nil {
				return nil, err
			}
			g.Kind = Named
			g.Name = name
		default:
			return nil, p.errorAt(start, fmt.Sprintf("unsupported group syntax in %s dialect", p.dialect))
		}
	}

	if g.Kind != NonCapturing {
		p.ncap++
		g.Index = p.ncap
	}

	p.depth++
	body, err := p.re()
	p.depth--
	if err != nil {
		return nil, err
	}

	if c, _ := p.peek(); p.atEnd() || c != ')' {
		return nil, p.errorAt(start, "unmatched (")
	}
	p.advance()
	g.Body = body
	return g, nil
}

func (p *parser) groupName(open int) (string, error) {
	nameStart := p.pos
	for !p.atEnd() {
		c, _ := p.peek()
		if c == '>' {
			break
		}
		if !isWordChar(c) || (p.pos == nameStart && isDigit(c)) {
			return "", p.errorAt(p.pos, fmt.Sprintf("invalid character %q in group name", c))
		}
		p.advance()
	}
	if p.atEnd() {
		return "", p.errorAt(open, "unterminated group name")
	}
	name := p.src[nameStart:p.pos]
	if name == "" {
		return "", p.errorAt(nameStart, "empty group name")
	}
	if p.names[name] {
		return "", p.errorAt(nameStart, fmt.Sprintf("duplicate group name %q", name))
	}
	p.names[name] = true
	p.advance() // >
	return name, nil
}

// bound reads {m}, {m,} or {m,n}. The caller has checked that a digit
// follows the brace, so anything malformed from here on is an error.
func (p *parser) bound() (lo, hi int, err error) {
	start := p.pos
	p.advance() // {

	if lo, err = p.number(start); err != nil {
		return 0, 0, err
	}
	if p.accept('}') {
		return lo, lo, nil
	}
	if !p.accept(',') {
		return 0, 0, p.errorAt(start, "malformed repetition bound")
	}
	if p.accept('}') {
		return lo, Unbounded, nil
	}
	if !isDigit(p.peekAt(0)) {
		return 0, 0, p.errorAt(start, "malformed repetition bound")
	}
	if hi, err = p.number(start); err != nil {
		return 0, 0, err
	}
	if !p.accept('}') {
		return 0, 0, p.errorAt(start, "malformed repetition bound")
	}
	if hi < lo {
		return 0, 0, p.errorAt(start, fmt.Sprintf("invalid repetition bound {%d,%d}", lo, hi))
	}
	return lo, hi, nil
}

func (p *parser) number(open int) (int, error) {
	digits := p.pos
	for isDigit(p.peekAt(0)) {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[digits:p.pos])
	if err != nil {
		return 0, p.errorAt(open, "repetition bound out of range")
	}
	return n, nil
}

// atBranchEnd reports whether the current branch cannot continue.
func (p *parser) atBranchEnd() bool {
	if p.atEnd() {
		return true
	}
	c, _ := p.peek()
	switch {
	case c == p.delim:
		return true
	case c == '|':
		return true
	case c == ')' && p.depth > 0:
		return true
	}
	return false
}

func (p *parser) atAlternation() bool {
	if p.atEnd() {
		return false
	}
	c, _ := p.peek()
	return c == '|' && c != p.delim
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() (rune, int) {
	if p.atEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[p.pos:])
}

// peekAt returns the byte i bytes ahead, or 0 past the end.
func (p *parser) peekAt(i int) byte {
	if p.pos+i >= len(p.src) {
		return 0
	}
	return p.src[p.pos+i]
}

func (p *parser) advance() rune {
	c, size := p.peek()
	p.pos += size
	return c
}

func (p *parser) accept(c rune) bool {
	if p.atEnd() {
		return false
	}
	if r, _ := p.peek(); r == c {
		p.advance()
		return true
	}
	return false
}

func (p *parser) hasPrefix(s string) bool {
	return len(p.src)-p.pos >= len(s) && p.src[p.pos:p.pos+len(s)] == s
}

func (p *parser) errorAt(offset int, msg string) error {
	return newSyntaxError(p.src, offset, msg)
}

func controlEscape(c rune) (rune, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

func isDigit[T rune | byte](c T) bool {
	return c >= '0' && c <= '9'
}

func isWordChar(c rune) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
