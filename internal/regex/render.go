package regex

import (
	"regexp"
	"strconv"
	"strings"
)

// Render serializes n as Go regexp syntax. The tree is assumed to come
// from Parse; nothing is validated here.
func Render(n Node) string {
	var sb stringBuilder
	sb.node(n)
	return sb.String()
}

type stringBuilder struct {
	strings.Builder
}

func (sb *stringBuilder) node(n Node) {
	switch n := n.(type) {
	case Empty:
	case Literal:
		sb.literal(n.Char)
	case Dot:
		// sed's dot also matches an embedded newline
		sb.WriteString("(?s:.)")
	case Assertion:
		if n.Kind == StartOfLine {
			sb.WriteByte('^')
		} else {
			sb.WriteByte('$')
		}
	case Class:
		sb.class(n)
	case Group:
		switch n.Kind {
		case Named:
			sb.WriteString("(?P<")
			sb.WriteString(n.Name)
			sb.WriteByte('>')
		case NonCapturing:
			sb.WriteString("(?:")
		default:
			sb.WriteByte('(')
		}
		sb.node(n.Body)
		sb.WriteByte(')')
	case Alternation:
		for i, b := range n.Branches {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.node(b)
		}
	case Concat:
		for _, part := range n.Parts {
			sb.node(part)
		}
	case Repetition:
		sb.repetition(n)
	}
}

func (sb *stringBuilder) repetition(n Repetition) {
	switch n.Body.(type) {
	case Literal, Dot, Class, Group:
		sb.node(n.Body)
	default:
		sb.WriteString("(?:")
		sb.node(n.Body)
		sb.WriteByte(')')
	}

	switch n.Kind {
	case ZeroOrMore:
		sb.WriteByte('*')
	case OneOrMore:
		sb.WriteByte('+')
	case ZeroOrOne:
		sb.WriteByte('?')
	case Bound:
		sb.WriteByte('{')
		sb.WriteString(strconv.Itoa(n.Min))
		if n.Max != n.Min {
			sb.WriteByte(',')
			if n.Max != Unbounded {
				sb.WriteString(strconv.Itoa(n.Max))
			}
		}
		sb.WriteByte('}')
	}
}

func (sb *stringBuilder) class(n Class) {
	sb.WriteByte('[')
	if n.Negated {
		sb.WriteByte('^')
	}
	for _, item := range n.Items {
		switch item := item.(type) {
		case Literal:
			sb.classChar(item.Char)
		case Range:
			sb.classChar(item.Low)
			sb.WriteByte('-')
			sb.classChar(item.High)
		}
	}
	sb.WriteByte(']')
}

func (sb *stringBuilder) literal(c rune) {
	if sb.control(c) {
		return
	}
	sb.WriteString(regexp.QuoteMeta(string(c)))
}

func (sb *stringBuilder) classChar(c rune) {
	if sb.control(c) {
		return
	}
	switch c {
	case '\\', ']', '[', '^', '-':
		sb.WriteByte('\\')
	}
	sb.WriteRune(c)
}

func (sb *stringBuilder) control(c rune) bool {
	switch c {
	case '\n':
		sb.WriteString(`\n`)
	case '\r':
		sb.WriteString(`\r`)
	case '\t':
		sb.WriteString(`\t`)
	default:
		return false
	}
	return true
}
