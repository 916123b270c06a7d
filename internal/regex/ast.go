// Package regex turns the regular expressions embedded in sed scripts into
// a single structural tree, whichever dialect they were written in, and
// renders that tree as Go regexp syntax.
//
// Three dialects are understood:
//
//	Basic     POSIX-style patterns: (...) groups, | alternation, {m,n} bounds.
//	Extended  Basic plus (?:...) non-capturing groups.
//	Teal      Extended plus (?P<name>...) named groups; replacements are
//	          already written in Go's ${N} template syntax.
//
// The trees are plain values. Once built they are never modified, so they
// can be shared freely.
package regex

// Node is one element of a parsed expression. The set of node types is
// closed; consumers switch over them exhaustively.
type Node interface {
	node()
}

// LiteralKind records how a literal was written.
type LiteralKind int

const (
	// Verbatim is an ordinary character, or a special character that was
	// escaped to lose its meaning.
	Verbatim LiteralKind = iota
	// Punctuation is an escaped delimiter in the Teal dialect.
	Punctuation
	// Special is a control character written as \n, \r or \t.
	Special
)

func (k LiteralKind) String() string {
	switch k {
	case Verbatim:
		return "verbatim"
	case Punctuation:
		return "punctuation"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// AssertionKind selects the zero-width position an Assertion matches.
type AssertionKind int

const (
	StartOfLine AssertionKind = iota
	EndOfLine
)

// GroupKind tells capturing groups apart from non-capturing ones.
type GroupKind int

const (
	Indexed GroupKind = iota
	Named
	NonCapturing
)

// RepetitionKind is the quantifier applied by a Repetition.
type RepetitionKind int

const (
	ZeroOrMore RepetitionKind = iota
	OneOrMore
	ZeroOrOne
	Bound
)

// Unbounded is the Max of a {m,} bound.
const Unbounded = -1

// Empty matches the empty string.
type Empty struct{}

// Literal matches exactly one character.
type Literal struct {
	Char rune
	Kind LiteralKind
}

// Dot matches any single character, newline included.
type Dot struct{}

// Assertion matches the start or end of the pattern space.
type Assertion struct {
	Kind AssertionKind
}

// ClassItem is a member of a bracket expression: a Literal or a Range.
type ClassItem interface {
	classItem()
}

// Range is an inclusive character range inside a Class.
type Range struct {
	Low, High rune
}

// Class matches one character from the union of its items, or, when
// Negated, any character outside it.
type Class struct {
	Negated bool
	Items   []ClassItem
}

// Group wraps a sub-expression. Index is set for Indexed and Named groups,
// Name only for Named ones.
type Group struct {
	Kind  GroupKind
	Index int
	Name  string
	Body  Node
}

// Alternation matches any one of two or more branches, tried in order.
type Alternation struct {
	Branches []Node
}

// Concat matches its parts one after another.
type Concat struct {
	Parts []Node
}

// Repetition applies a greedy quantifier to Body. Min and Max are only
// meaningful for Bound; Max is Unbounded for {m,}.
type Repetition struct {
	Kind RepetitionKind
	Min  int
	Max  int
	Body Node
}

func (Empty) node()       {}
func (Literal) node()     {}
func (Dot) node()         {}
func (Assertion) node()   {}
func (Class) node()       {}
func (Group) node()       {}
func (Alternation) node() {}
func (Concat) node()      {}
func (Repetition) node()  {}

func (Literal) classItem() {}
func (Range) classItem()   {}
