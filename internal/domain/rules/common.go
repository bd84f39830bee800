// Package rules holds the canonical table of syntactic version checks. Each
// rule pairs a named predicate over a scanned Perl document with the release
// that introduced (or fixed) the feature it detects. Predicates are pure and
// read-only; a match asserts a lower bound, never an upper one.
package rules

import (
	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/internal/perl"
)

// Rule is one syntactic feature check.
type Rule struct {
	Name       string
	MinVersion m.Version
	Match      func(doc *perl.Document) bool
}

// Rule thresholds. 5.006002 for reliable v-string literals and 5.004005 for
// the $^E/$! fix are point releases; the rest are the majors that shipped the
// feature.
var (
	perl5004005 = m.MustVersion("5.004005")
	perl5005    = m.MustVersion("5.005")
	perl5006    = m.MustVersion("5.006")
	perl5006002 = m.MustVersion("5.006002")
	perl5008    = m.MustVersion("5.008")
	perl5010    = m.MustVersion("5.010")
)

// All returns the full ruleset. Order here is registration order only; the
// registry sorts by descending threshold with a lexical tie-break before use.
func All() []Rule {
	return []Rule{
		mroPragma(),
		localizedSoftReference(),
		constantHash(),
		versionLiterals(),
		ourVariables(),
		subAttributes(),
		pragmas5006(),
		binaryLiterals(),
		magicVersionVar(),
		legacyPragmas(),
		versionBoundModules(),
		tieArrayHandler(),
		quoteLikeRegexp(),
		scheduledBlocks(),
		magicErrnoFix(),
	}
}

func usesPragma(doc *perl.Document, names ...string) bool {
	return doc.Exists(func(n perl.Node) bool {
		if n.Kind != perl.KindInclude || n.Type != "use" {
			return false
		}

		for _, name := range names {
			if n.Name == name {
				return true
			}
		}

		return false
	})
}

func includesModule(doc *perl.Document, names ...string) bool {
	return doc.Exists(func(n perl.Node) bool {
		if n.Kind != perl.KindInclude || n.Type == "no" {
			return false
		}

		for _, name := range names {
			if n.Name == name {
				return true
			}
		}

		return false
	})
}

func hasMagicVar(doc *perl.Document, content string) bool {
	return doc.Exists(func(n perl.Node) bool {
		return n.Kind == perl.KindMagicVar && n.Content == content
	})
}
