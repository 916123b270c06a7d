package sed

// This file has the functionality for substitution.
// It's the most complicated function, so I didn't want
// to mix it in with the other instructions in instructions.go.

import (
	"regexp"
	"strings"

	"github.com/rwtodd/tealsed/internal/regex"
)

// Substitute replaces the first match of Pattern. Replacement is already
// in regexp.Expand template syntax.
type Substitute struct {
	Pattern     *regexp.Regexp
	Replacement string
}

func (s Substitute) apply(pat string) string {
	match := s.Pattern.FindStringSubmatchIndex(pat)
	if match == nil {
		return pat
	}

	var sb strings.Builder
	sb.WriteString(pat[:match[0]])
	sb.Write(s.Pattern.ExpandString(nil, s.Replacement, pat, match))
	sb.WriteString(pat[match[1]:])
	return sb.String()
}

// TranslateReplacement rewrites a sed replacement into regexp.Expand
// syntax: a literal $ becomes $$ and a \N backreference becomes ${N}. Teal
// replacements are already written that way and are returned unchanged.
func TranslateReplacement(raw string, dialect Dialect) string {
	if dialect == regex.Teal {
		return raw
	}

	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '$':
			sb.WriteString("$$")
		case c == '\\' && i+1 < len(raw) && raw[i+1] == '\\':
			// an escaped backslash never starts a backreference
			sb.WriteString(`\\`)
			i++
		case c == '\\' && i+1 < len(raw) && isDigit(raw[i+1]):
			j := i + 1
			for j < len(raw) && isDigit(raw[j]) {
				j++
			}
			sb.WriteString("${")
			sb.WriteString(raw[i+1 : j])
			sb.WriteByte('}')
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
