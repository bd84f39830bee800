package domain

import (
	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/internal/perl"
)

// Scanner evaluates the rule registry against scanned documents.
type Scanner struct {
	registry *Registry
}

// NewScanner creates a Scanner over the given registry.
func NewScanner(registry *Registry) *Scanner {
	return &Scanner{registry: registry}
}

// ScanFirst returns the highest version any rule asserts for doc, or None
// when no rule matches. Because the registry is sorted descending, the first
// matching rule already carries the highest threshold and evaluation stops
// there. Rules at or below limit are skipped entirely: they cannot raise a
// floor the caller has already established, so any limit at or below the
// lowest threshold scans identically to no limit at all.
func (s *Scanner) ScanFirst(doc *perl.Document, limit m.Finding) (m.Finding, error) {
	if doc == nil {
		return m.None(), ErrNoDocument
	}

	for _, rule := range s.registry.Rules() {
		if limit.Found() && !rule.MinVersion.GreaterThan(limit.Version()) {
			break
		}

		if rule.Match(doc) {
			return m.Found(rule.MinVersion), nil
		}
	}

	return m.None(), nil
}

// ScanAll evaluates every rule without short-circuiting and groups the names
// of matching rules by threshold, descending. A document with no matches
// yields an empty sequence.
func (s *Scanner) ScanAll(doc *perl.Document) ([]m.Marker, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	var markers []m.Marker

	// Registry order is descending by version with lexical names inside a
	// version, so grouping consecutive thresholds keeps both orders.
	for _, rule := range s.registry.Rules() {
		if !rule.Match(doc) {
			continue
		}

		if n := len(markers); n > 0 && markers[n-1].Version.Equal(rule.MinVersion) {
			markers[n-1].Names = append(markers[n-1].Names, rule.Name)
			continue
		}

		markers = append(markers, m.Marker{Version: rule.MinVersion, Names: []string{rule.Name}})
	}

	return markers, nil
}
