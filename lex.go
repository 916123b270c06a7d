package sed

// Scanning helpers for the command parser. A cursor walks one command line
// by byte offset, so every error can point back into the text it came from.

import (
	"strings"
	"unicode/utf8"
)

type cursor struct {
	src string
	pos int
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) peek() rune {
	if c.atEnd() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

func (c *cursor) next() rune {
	if c.atEnd() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r
}

func (c *cursor) accept(r rune) bool {
	if !c.atEnd() && c.peek() == r {
		c.next()
		return true
	}
	return false
}

// skipWS skips blanks. Commands never span lines, so newlines are not
// blanks here.
func (c *cursor) skipWS() {
	for !c.atEnd() {
		switch c.src[c.pos] {
		case ' ', '\t', '\r':
			c.pos++
		default:
			return
		}
	}
}

func (c *cursor) readNumber() string {
	start := c.pos
	for !c.atEnd() && c.src[c.pos] >= '0' && c.src[c.pos] <= '9' {
		c.pos++
	}
	return c.src[start:c.pos]
}

// readDelimited reads up to the next unescaped delimiter and consumes it,
// returning the text in between. An escaped delimiter stands for the
// delimiter itself; every other escape is kept as written. ok is false when
// the text ends before the delimiter.
func (c *cursor) readDelimited(delimiter rune) (text string, ok bool) {
	var buffer strings.Builder
	for !c.atEnd() {
		character := c.next()
		switch {
		case character == delimiter:
			return buffer.String(), true
		case character == '\\' && !c.atEnd():
			escaped := c.next()
			if escaped != delimiter {
				buffer.WriteRune('\\')
			}
			buffer.WriteRune(escaped)
		default:
			buffer.WriteRune(character)
		}
	}
	return buffer.String(), false
}

func (c *cursor) rest() string {
	s := c.src[c.pos:]
	c.pos = len(c.src)
	return s
}
