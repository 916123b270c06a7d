package regex

import (
	"errors"
	"regexp/syntax"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(c rune) Literal { return Literal{Char: c, Kind: Verbatim} }

func TestParseStructure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		dialect  Dialect
		expected Node
	}{
		{
			name:     "star",
			input:    "foo*",
			expected: Concat{Parts: []Node{lit('f'), lit('o'), Repetition{Kind: ZeroOrMore, Body: lit('o')}}},
		},
		{
			name:     "plus",
			input:    "a+",
			expected: Repetition{Kind: OneOrMore, Body: lit('a')},
		},
		{
			name:     "question",
			input:    "ab?",
			expected: Concat{Parts: []Node{lit('a'), Repetition{Kind: ZeroOrOne, Body: lit('b')}}},
		},
		{
			name:     "exact count",
			input:    "o{2}",
			expected: Repetition{Kind: Bound, Min: 2, Max: 2, Body: lit('o')},
		},
		{
			name:     "min count",
			input:    "x{2,}",
			expected: Repetition{Kind: Bound, Min: 2, Max: Unbounded, Body: lit('x')},
		},
		{
			name:     "range count",
			input:    "x{2,5}",
			expected: Repetition{Kind: Bound, Min: 2, Max: 5, Body: lit('x')},
		},
		{
			name:     "capture group",
			input:    "(a*)",
			expected: Group{Kind: Indexed, Index: 1, Body: Repetition{Kind: ZeroOrMore, Body: lit('a')}},
		},
		{
			name:     "non-capturing group",
			input:    "(?:a*)",
			dialect:  Extended,
			expected: Group{Kind: NonCapturing, Body: Repetition{Kind: ZeroOrMore, Body: lit('a')}},
		},
		{
			name:     "named group",
			input:    "(?P<n>a*)",
			dialect:  Teal,
			expected: Group{Kind: Named, Index: 1, Name: "n", Body: Repetition{Kind: ZeroOrMore, Body: lit('a')}},
		},
		{
			name:     "empty group",
			input:    "()",
			expected: Group{Kind: Indexed, Index: 1, Body: Empty{}},
		},
		{
			name:     "alternation",
			input:    "a|b",
			expected: Alternation{Branches: []Node{lit('a'), lit('b')}},
		},
		{
			name:     "flat alternation",
			input:    "a|b|c",
			expected: Alternation{Branches: []Node{lit('a'), lit('b'), lit('c')}},
		},
		{
			name:     "end assertion",
			input:    "a$",
			expected: Concat{Parts: []Node{lit('a'), Assertion{Kind: EndOfLine}}},
		},
		{
			name:     "start assertion mid pattern",
			input:    "a^b",
			expected: Concat{Parts: []Node{lit('a'), Assertion{Kind: StartOfLine}, lit('b')}},
		},
		{
			name:     "single class",
			input:    "[a]",
			expected: Class{Items: []ClassItem{lit('a')}},
		},
		{
			name:     "two item class",
			input:    "[ab]",
			expected: Class{Items: []ClassItem{lit('a'), lit('b')}},
		},
		{
			name:     "negated class",
			input:    "[^a]",
			expected: Class{Negated: true, Items: []ClassItem{lit('a')}},
		},
		{
			name:     "class range",
			input:    "[a-z]",
			expected: Class{Items: []ClassItem{Range{Low: 'a', High: 'z'}}},
		},
		{
			name:     "class with leading bracket and trailing dash",
			input:    "[]a-]",
			expected: Class{Items: []ClassItem{lit(']'), lit('a'), lit('-')}},
		},
		{
			name:     "dot",
			input:    ".",
			expected: Dot{},
		},
		{
			name:     "empty pattern",
			input:    "",
			expected: Empty{},
		},
		{
			name:     "empty branch",
			input:    "a|",
			expected: Alternation{Branches: []Node{lit('a'), Empty{}}},
		},
		{
			name:     "brace without digit is literal",
			input:    "a{b",
			expected: Concat{Parts: []Node{lit('a'), lit('{'), lit('b')}},
		},
		{
			name:     "leading star is literal",
			input:    "*a",
			expected: Concat{Parts: []Node{lit('*'), lit('a')}},
		},
		{
			name:    "basic dialect ignores question mark after paren",
			input:   "(?:a)",
			dialect: Basic,
			expected: Group{Kind: Indexed, Index: 1, Body: Concat{Parts: []Node{
				lit('?'), lit(':'), lit('a'),
			}}},
		},
		{
			name:    "escapes",
			input:   `\.\*\(\\\n\t`,
			dialect: Extended,
			expected: Concat{Parts: []Node{
				lit('.'), lit('*'), lit('('), lit('\\'),
				Literal{Char: '\n', Kind: Special},
				Literal{Char: '\t', Kind: Special},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseString(tt.input, '/', tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

// The rendered text must parse, under Go's own parser, to the same tree as
// the pattern written directly in Go syntax.
func TestRenderMatchesModernSyntax(t *testing.T) {
	tests := []struct {
		pattern string
		dialect Dialect
	}{
		{"foo*", Extended},
		{"a+", Extended},
		{"ab?", Extended},
		{"o{2}", Extended},
		{"x{2,}", Extended},
		{"x{2,5}", Extended},
		{"(a*)", Extended},
		{"(?:a*)", Extended},
		{"(?P<n>a*)", Teal},
		{"()", Extended},
		{"a|b", Extended},
		{"a|b|c", Extended},
		{"a$", Extended},
		{"[a]", Extended},
		{"[ab]", Extended},
		{"[^a]", Extended},
		{"[a-z]", Extended},
		{"^(ab|cd)+x{1,3}$", Extended},
		{"(?P<word>[a-z]+)-(?P<num>[0-9]+)", Teal},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ast, err := ParseString(tt.pattern, '/', tt.dialect)
			require.NoError(t, err)

			expected, err := syntax.Parse(tt.pattern, syntax.Perl)
			require.NoError(t, err)
			actual, err := syntax.Parse(Render(ast), syntax.Perl)
			require.NoError(t, err)

			assert.True(t, actual.Equal(expected), "rendered %q, want tree of %q", Render(ast), tt.pattern)
		})
	}
}

func TestParseSingleLiterals(t *testing.T) {
	const specials = `^.[$()|*+?{\`
	for _, d := range []Dialect{Basic, Extended, Teal} {
		for c := rune(' '); c <= '~'; c++ {
			if c == '/' || strings.ContainsRune(specials, c) {
				continue
			}
			ast, err := ParseString(string(c), '/', d)
			require.NoError(t, err)
			assert.Equal(t, Literal{Char: c, Kind: Verbatim}, ast, "dialect %s, char %q", d, c)
		}
	}
}

func TestParseStopsAtDelimiter(t *testing.T) {
	src := `s/a\/b/x/`
	ast, end, err := Parse(src, 2, '/', Teal)
	require.NoError(t, err)
	assert.Equal(t, 6, end)
	assert.Equal(t, Concat{Parts: []Node{lit('a'), Literal{Char: '/', Kind: Punctuation}, lit('b')}}, ast)

	ast, end, err = Parse(src, 2, '/', Basic)
	require.NoError(t, err)
	assert.Equal(t, 6, end)
	assert.Equal(t, Concat{Parts: []Node{lit('a'), lit('/'), lit('b')}}, ast)
}

func TestParseDelimiterInsideClass(t *testing.T) {
	ast, end, err := Parse("[/]x/rest", 0, '/', Basic)
	require.NoError(t, err)
	assert.Equal(t, 4, end)
	assert.Equal(t, Concat{Parts: []Node{Class{Items: []ClassItem{lit('/')}}, lit('x')}}, ast)
}

func TestParseSpecialDelimiter(t *testing.T) {
	ast, end, err := Parse("a|b", 0, '|', Extended)
	require.NoError(t, err)
	assert.Equal(t, 1, end)
	assert.Equal(t, lit('a'), ast)

	ast, err = ParseString(`a\|b`, '|', Extended)
	require.NoError(t, err)
	assert.Equal(t, Concat{Parts: []Node{lit('a'), lit('|'), lit('b')}}, ast)
}

func TestCaptureIndices(t *testing.T) {
	ast, err := ParseString("(a)(?:b)((c)d)", '/', Extended)
	require.NoError(t, err)

	concat, ok := ast.(Concat)
	require.True(t, ok)
	require.Len(t, concat.Parts, 3)

	assert.Equal(t, 1, concat.Parts[0].(Group).Index)
	assert.Equal(t, 0, concat.Parts[1].(Group).Index)
	outer := concat.Parts[2].(Group)
	assert.Equal(t, 2, outer.Index)
	inner := outer.Body.(Concat).Parts[0].(Group)
	assert.Equal(t, 3, inner.Index)

	// a fresh parse numbers from 1 again
	ast, err = ParseString("(z)", '/', Extended)
	require.NoError(t, err)
	assert.Equal(t, 1, ast.(Group).Index)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		dialect Dialect
		offset  int
		msg     string
	}{
		{"a{2", Extended, 1, "malformed repetition bound"},
		{"a{2,x}", Extended, 1, "malformed repetition bound"},
		{"a{3,1}", Extended, 1, "invalid repetition bound"},
		{"xx{99999999999999999999}", Extended, 2, "out of range"},
		{"[abc", Basic, 0, "unmatched ["},
		{"ab[", Basic, 2, "unmatched ["},
		{"[z-a]", Basic, 1, "invalid range"},
		{"(ab", Basic, 0, "unmatched ("},
		{"ab)", Basic, 2, "unmatched )"},
		{"a**", Extended, 2, "nothing to repeat"},
		{`ab\`, Extended, 2, "trailing backslash"},
		{"(?P<n>a)", Extended, 0, "unsupported group syntax"},
		{"(?i)a", Teal, 0, "unsupported group syntax"},
		{"(?P<1n>a)", Teal, 4, "invalid character"},
		{"(?P<n>a)(?P<n>b)", Teal, 12, "duplicate group name"},
		{"(?P<n", Teal, 0, "unterminated group name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseString(tt.input, '/', tt.dialect)
			require.Error(t, err)

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, tt.offset, synErr.Offset)
			assert.Equal(t, 1, synErr.Line)
			assert.Equal(t, tt.offset+1, synErr.Column)
			assert.Contains(t, synErr.Msg, tt.msg)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	err := newSyntaxError("ab\ncd", 4, "boom")
	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 2, err.Column)
	assert.Equal(t, "regex syntax error at 2:2: boom", err.Error())
}

func TestParseDialect(t *testing.T) {
	for name, want := range map[string]Dialect{"basic": Basic, "Extended": Extended, "TEAL": Teal, "": Basic} {
		d, err := ParseDialect(name)
		require.NoError(t, err)
		assert.Equal(t, want, d)
	}
	_, err := ParseDialect("pcre")
	assert.Error(t, err)
}
