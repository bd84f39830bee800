package rules

import (
	"perlver.dev/pkg/perlver/internal/perl"
)

// subAttributes: bareword attributes on subroutine declarations
// ("sub foo : lvalue") parse from 5.6 on.
func subAttributes() Rule {
	return Rule{
		Name:       "sub_attributes",
		MinVersion: perl5006,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindSub && len(n.Attributes) > 0
			})
		},
	}
}

// tieArrayHandler: declaring a TIEARRAY handler implies the 5.005 tied-array
// protocol.
func tieArrayHandler() Rule {
	return Rule{
		Name:       "tie_array_handler",
		MinVersion: perl5005,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindSub && n.Name == "TIEARRAY"
			})
		},
	}
}
