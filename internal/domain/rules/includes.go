package rules

import (
	"perlver.dev/pkg/perlver/internal/perl"
)

// mroPragma: "use mro" selects the method resolution order, added in 5.10.
func mroPragma() Rule {
	return Rule{
		Name:       "mro_pragma",
		MinVersion: perl5010,
		Match: func(doc *perl.Document) bool {
			return usesPragma(doc, "mro")
		},
	}
}

// constantHash: declaring several constants through one anonymous hash,
// "use constant { A => 1, B => 2 }", needs the 5.8 constant pragma.
func constantHash() Rule {
	return Rule{
		Name:       "constant_hash",
		MinVersion: perl5008,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindInclude && n.Type == "use" && n.Name == "constant" && n.HashArg
			})
		},
	}
}

// pragmas5006: core pragmas that first shipped with 5.6.
func pragmas5006() Rule {
	return Rule{
		Name:       "pragmas_5006",
		MinVersion: perl5006,
		Match: func(doc *perl.Document) bool {
			return usesPragma(doc, "warnings", "attributes", "open", "filetest")
		},
	}
}

// legacyPragmas: pragmas that first shipped with 5.005.
func legacyPragmas() Rule {
	return Rule{
		Name:       "legacy_pragmas",
		MinVersion: perl5005,
		Match: func(doc *perl.Document) bool {
			return usesPragma(doc, "re", "fields", "attrs")
		},
	}
}

// versionBoundModules: standard modules whose semantics are tied to 5.005
// (tied arrays, threading and exception support, the base pragma).
func versionBoundModules() Rule {
	return Rule{
		Name:       "version_bound_modules",
		MinVersion: perl5005,
		Match: func(doc *perl.Document) bool {
			return includesModule(doc, "Tie::Array", "Thread", "Exception", "base")
		},
	}
}
