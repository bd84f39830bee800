package rules

import (
	"perlver.dev/pkg/perlver/internal/perl"
)

// ourVariables: package-scoped "our" declarations arrived with 5.6.
func ourVariables() Rule {
	return Rule{
		Name:       "our_variables",
		MinVersion: perl5006,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindVariableDecl && n.Qualifier == "our"
			})
		},
	}
}

// magicVersionVar: $^V holds the interpreter version since 5.6.
func magicVersionVar() Rule {
	return Rule{
		Name:       "magic_version_var",
		MinVersion: perl5006,
		Match: func(doc *perl.Document) bool {
			return hasMagicVar(doc, "$^V")
		},
	}
}

// localizedSoftReference: "local ${'pkg::name'}" only behaves on 5.8.
func localizedSoftReference() Rule {
	return Rule{
		Name:       "localized_soft_reference",
		MinVersion: perl5008,
		Match: func(doc *perl.Document) bool {
			return doc.Exists(func(n perl.Node) bool {
				return n.Kind == perl.KindCast && n.Qualifier == "local"
			})
		},
	}
}

// magicErrnoFix: reading $^E together with $! relies on a bugfix shipped in
// the 5.004_05 maintenance release.
func magicErrnoFix() Rule {
	return Rule{
		Name:       "magic_errno_fix",
		MinVersion: perl5004005,
		Match: func(doc *perl.Document) bool {
			return hasMagicVar(doc, "$^E") && hasMagicVar(doc, "$!")
		},
	}
}
