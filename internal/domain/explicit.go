package domain

import (
	"fmt"

	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/internal/perl"
)

// ExplicitVersion reduces every literal version requirement written in the
// source ("use 5.008", "require v5.6.0") to its maximum. "no" statements
// assert nothing. The result is None when the source declares no requirement.
func ExplicitVersion(doc *perl.Document) (m.Finding, error) {
	if doc == nil {
		return m.None(), ErrNoDocument
	}

	best := m.None()

	for _, n := range doc.Nodes() {
		if n.Kind != perl.KindInclude || n.Version == "" || n.Type == "no" {
			continue
		}

		v, err := m.ParseVersion(n.Version)
		if err != nil {
			return m.None(), fmt.Errorf("version requirement at line %d: %w", n.Line, err)
		}

		best = m.Max(best, m.Found(v))
	}

	return best, nil
}
