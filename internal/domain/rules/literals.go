package rules

import (
	"perlver.dev/pkg/perlver/internal/perl"
)

// versionLiterals: bare version tokens (v5.6.0 or 5.6.1) outside inclusion
// statements. Version arguments of use/require belong to the explicit
// extractor and never reach this rule; the scanner folds them into the
// include node.
func versionLiterals() Rule {
	return Rule{
		Name:       "version_literals",
		MinVersion: perl5006002,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindNumber && n.Subtype == perl.NumberVersion
			})
		},
	}
}

// binaryLiterals: 0b numeric literals arrived with 5.6.
func binaryLiterals() Rule {
	return Rule{
		Name:       "binary_literals",
		MinVersion: perl5006,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindNumber && n.Subtype == perl.NumberBinary
			})
		},
	}
}

// quoteLikeRegexp: the qr// compiled-regexp form arrived with 5.005.
func quoteLikeRegexp() Rule {
	return Rule{
		Name:       "quote_like_regexp",
		MinVersion: perl5005,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindQuoteLike && n.QuoteOp == "qr"
			})
		},
	}
}
