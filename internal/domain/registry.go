// Package domain contains the version-requirement inference engine: the rule
// registry, the syntax scanner, the explicit version extractor and the
// resolver that combines them.
package domain

import (
	"errors"
	"sort"

	"perlver.dev/pkg/perlver/internal/domain/rules"
)

// ErrNoDocument is returned when a query is asked about a missing document.
var ErrNoDocument = errors.New("no document to scan")

// Registry is the ordered table of syntactic checks. It is immutable after
// construction and safe for unsynchronized concurrent reads: rules are kept
// sorted by descending threshold, ties broken lexically by name, so iteration
// order is reproducible across runs.
type Registry struct {
	rules []rules.Rule
}

// NewRegistry builds a registry from an explicit list of checks. Adding a
// check is a registration call here, never discovery by convention.
func NewRegistry(checks ...rules.Rule) *Registry {
	ordered := make([]rules.Rule, len(checks))
	copy(ordered, checks)

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].MinVersion.Equal(ordered[j].MinVersion) {
			return ordered[i].MinVersion.GreaterThan(ordered[j].MinVersion)
		}

		return ordered[i].Name < ordered[j].Name
	})

	return &Registry{rules: ordered}
}

// DefaultRegistry returns the canonical ruleset, ordered.
func DefaultRegistry() *Registry {
	return NewRegistry(rules.All()...)
}

// Rules returns the ordered checks. Callers must treat the slice as read-only.
func (r *Registry) Rules() []rules.Rule {
	return r.rules
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.rules)
}
