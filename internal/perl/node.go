// Package perl turns Perl source text into a flat, read-only sequence of
// typed nodes. It recognizes exactly the constructs the version rules need
// (inclusion statements, declarations, literals, quote-like operators, magic
// globals) and skips everything else, so it is a scanner rather than a full
// parser. Perl cannot be statically parsed in general; the node stream errs
// on the side of omission, never invention.
package perl

// NodeKind is the closed set of node categories the scanner emits.
type NodeKind int

const (
	// KindInclude is a use/no/require statement.
	KindInclude NodeKind = iota
	// KindVariableDecl is a single variable inside a my/our/local declaration.
	KindVariableDecl
	// KindSub is a named subroutine declaration.
	KindSub
	// KindBlock is a phase-scheduled block (BEGIN, UNITCHECK, CHECK, INIT, END).
	KindBlock
	// KindNumber is a numeric literal.
	KindNumber
	// KindQuoteLike is a quote-like operator (qr, qw, q, qq, m, s, tr, y).
	KindQuoteLike
	// KindMagicVar is a punctuation or control-character global ($!, $^E, $^V, ...).
	KindMagicVar
	// KindCast is a symbolic dereference block whose target is a string
	// literal, e.g. ${"pkg::name"}.
	KindCast
)

// NumberSubtype classifies numeric literals.
type NumberSubtype int

const (
	// NumberDecimal covers plain integers and floats.
	NumberDecimal NumberSubtype = iota
	// NumberBinary is a 0b literal.
	NumberBinary
	// NumberHex is a 0x literal.
	NumberHex
	// NumberOctal is a leading-zero literal.
	NumberOctal
	// NumberVersion is a version literal: v5.6.0 or 5.6.1.
	NumberVersion
)

// Node is one recognized construct. Fields beyond Kind, Content, Line and
// Column are populated only for the kinds they belong to.
type Node struct {
	Kind    NodeKind
	Content string // raw text of the construct

	Name       string        // include module/pragma name, sub name, or cast target
	Type       string        // include keyword: "use", "no" or "require"
	Qualifier  string        // declaration qualifier: "my", "our" or "local"
	Subtype    NumberSubtype // numeric literal classification
	QuoteOp    string        // quote-like operator: "qr", "qw", ...
	Phase      string        // scheduled block phase: "BEGIN", "INIT", ...
	Version    string        // raw version literal argument of an include
	Attributes []string      // subroutine attributes
	HashArg    bool          // include whose first argument is an anonymous hash

	Line   int
	Column int
}
