package domain

import (
	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/internal/perl"
)

// DefaultFloor is the oldest version the engine ever reports.
var DefaultFloor = m.MustVersion("5.004")

// ExplicitMarkerName tags explicit version requirements in marker output so
// diagnostics can tell declarations apart from inferred evidence.
const ExplicitMarkerName = "explicit_requirement"

// Resolver combines the explicit extractor and the syntax scanner into the
// public minimum-version queries. It holds no per-invocation state; a single
// Resolver serves any number of documents concurrently.
type Resolver struct {
	scanner *Scanner
	floor   m.Version
}

// NewResolver creates a Resolver over the given registry with the default
// floor.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{scanner: NewScanner(registry), floor: DefaultFloor}
}

// Floor returns the version reported when no evidence raises it.
func (r *Resolver) Floor() m.Version {
	return r.floor
}

// MinimumVersion infers the lowest Perl release that can run the document:
// the maximum of the floor, the explicit declarations and the syntax scan.
// An unusable document fails the whole query; absence of evidence does not.
func (r *Resolver) MinimumVersion(doc *perl.Document) (m.Version, error) {
	explicit, err := ExplicitVersion(doc)
	if err != nil {
		return m.Version{}, err
	}

	syntax, err := r.scanner.ScanFirst(doc, m.Found(r.floor))
	if err != nil {
		return m.Version{}, err
	}

	return m.Max(m.Found(r.floor), explicit, syntax).Version(), nil
}

// MinimumExplicitVersion returns the highest literal version requirement
// written in the document, or None when it declares nothing.
func (r *Resolver) MinimumExplicitVersion(doc *perl.Document) (m.Finding, error) {
	return ExplicitVersion(doc)
}

// MinimumSyntaxVersion returns the highest version any syntax rule asserts.
// A found limit skips rules at or below it; None means the default floor.
func (r *Resolver) MinimumSyntaxVersion(doc *perl.Document, limit m.Finding) (m.Finding, error) {
	if !limit.Found() {
		limit = m.Found(r.floor)
	}

	return r.scanner.ScanFirst(doc, limit)
}

// VersionMarkers explains which checks fired: every matching rule grouped by
// threshold, descending, with the explicit declaration (if any) merged in
// under ExplicitMarkerName. Markers are for blame output only and never feed
// the minimum computation.
func (r *Resolver) VersionMarkers(doc *perl.Document) ([]m.Marker, error) {
	markers, err := r.scanner.ScanAll(doc)
	if err != nil {
		return nil, err
	}

	explicit, err := ExplicitVersion(doc)
	if err != nil {
		return nil, err
	}

	if !explicit.Found() {
		return markers, nil
	}

	v := explicit.Version()

	for i, mk := range markers {
		if mk.Version.Equal(v) {
			markers[i].Names = append(markers[i].Names, ExplicitMarkerName)
			return markers, nil
		}

		if mk.Version.LessThan(v) {
			markers = append(markers[:i], append([]m.Marker{{Version: v, Names: []string{ExplicitMarkerName}}}, markers[i:]...)...)
			return markers, nil
		}
	}

	return append(markers, m.Marker{Version: v, Names: []string{ExplicitMarkerName}}), nil
}
