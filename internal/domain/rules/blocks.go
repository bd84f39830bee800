package rules

import (
	"perlver.dev/pkg/perlver/internal/perl"
)

// scheduledBlocks: INIT and CHECK phase blocks run since 5.005. BEGIN and END
// predate the floor and carry no evidence.
func scheduledBlocks() Rule {
	return Rule{
		Name:       "scheduled_blocks",
		MinVersion: perl5005,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindBlock && (n.Phase == "INIT" || n.Phase == "CHECK")
			})
		},
	}
}
