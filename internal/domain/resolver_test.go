package domain

import (
	"errors"
	"testing"

	m "perlver.dev/pkg/perlver/internal/model"
)

func newTestResolver() *Resolver {
	return NewResolver(DefaultRegistry())
}

func TestMinimumVersion_FloorWhenNoEvidence(t *testing.T) {
	got, err := newTestResolver().MinimumVersion(scanDoc(t, "use strict;\nprint \"hi\";\n"))
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if !got.Equal(DefaultFloor) {
		t.Errorf("MinimumVersion = %s, want %s", got, DefaultFloor)
	}
}

func TestMinimumVersion_ExplicitOnly(t *testing.T) {
	got, err := newTestResolver().MinimumVersion(scanDoc(t, "use 5.008;\nprint \"hi\";\n"))
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if want := m.MustVersion("5.008"); !got.Equal(want) {
		t.Errorf("MinimumVersion = %s, want 5.008", got)
	}
}

func TestMinimumVersion_IntegerRequirement(t *testing.T) {
	// "require 5;" is a valid declaration, not unusable input; it parses as
	// the bare revision and the floor clamps the result.
	resolver := newTestResolver()
	doc := scanDoc(t, "require 5;\nprint \"hi\";\n")

	explicit, err := resolver.MinimumExplicitVersion(doc)
	if err != nil {
		t.Fatalf("MinimumExplicitVersion: %v", err)
	}

	if want := m.MustVersion("5.000"); !explicit.Found() || !explicit.Version().Equal(want) {
		t.Errorf("MinimumExplicitVersion = %v, want 5.000", explicit)
	}

	got, err := resolver.MinimumVersion(doc)
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if !got.Equal(DefaultFloor) {
		t.Errorf("MinimumVersion = %s, want the %s floor", got, DefaultFloor)
	}
}

func TestMinimumVersion_SyntaxOnly(t *testing.T) {
	got, err := newTestResolver().MinimumVersion(scanDoc(t, "our $VERSION = '1.0';\n"))
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if want := m.MustVersion("5.006"); !got.Equal(want) {
		t.Errorf("MinimumVersion = %s, want 5.006", got)
	}
}

func TestMinimumVersion_ExplicitAboveSyntax(t *testing.T) {
	src := `use 5.010;
our $VERSION = '1.0';
`

	got, err := newTestResolver().MinimumVersion(scanDoc(t, src))
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if want := m.MustVersion("5.010"); !got.Equal(want) {
		t.Errorf("MinimumVersion = %s, want 5.010", got)
	}
}

func TestMinimumVersion_SyntaxAboveExplicit(t *testing.T) {
	// The declared requirement understates what the code needs; the higher
	// syntax evidence wins.
	src := `require 5.005;
use mro;
`

	got, err := newTestResolver().MinimumVersion(scanDoc(t, src))
	if err != nil {
		t.Fatalf("MinimumVersion: %v", err)
	}

	if want := m.MustVersion("5.010"); !got.Equal(want) {
		t.Errorf("MinimumVersion = %s, want 5.010", got)
	}
}

func TestMinimumVersion_NilDocument(t *testing.T) {
	if _, err := newTestResolver().MinimumVersion(nil); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}

func TestMinimumSyntaxVersion_DefaultLimitIsFloor(t *testing.T) {
	resolver := newTestResolver()
	doc := scanDoc(t, "my $re = qr/x/;\n")

	got, err := resolver.MinimumSyntaxVersion(doc, m.None())
	if err != nil {
		t.Fatalf("MinimumSyntaxVersion: %v", err)
	}

	if want := m.MustVersion("5.005"); !got.Found() || !got.Version().Equal(want) {
		t.Errorf("MinimumSyntaxVersion = %v, want 5.005", got)
	}
}

func TestMinimumSyntaxVersion_LimitShortCircuits(t *testing.T) {
	resolver := newTestResolver()
	doc := scanDoc(t, "my $re = qr/x/;\n")

	got, err := resolver.MinimumSyntaxVersion(doc, m.Found(m.MustVersion("5.006")))
	if err != nil {
		t.Fatalf("MinimumSyntaxVersion: %v", err)
	}

	if got.Found() {
		t.Errorf("limit above the only evidence should yield None, got %v", got)
	}
}

func TestVersionMarkers_MergesExplicitIntoEqualVersion(t *testing.T) {
	src := `use 5.006;
our $VERSION = '1.0';
`

	markers, err := newTestResolver().VersionMarkers(scanDoc(t, src))
	if err != nil {
		t.Fatalf("VersionMarkers: %v", err)
	}

	if len(markers) != 1 {
		t.Fatalf("markers = %+v, want one group", markers)
	}

	names := markers[0].Names
	if len(names) != 2 || names[0] != "our_variables" || names[1] != ExplicitMarkerName {
		t.Errorf("names = %v, want [our_variables %s]", names, ExplicitMarkerName)
	}
}

func TestVersionMarkers_InsertsExplicitBetweenGroups(t *testing.T) {
	src := `use 5.008;
use mro;
my $re = qr/x/;
`

	markers, err := newTestResolver().VersionMarkers(scanDoc(t, src))
	if err != nil {
		t.Fatalf("VersionMarkers: %v", err)
	}

	want := []string{"5.010", "5.008", "5.005"}
	if len(markers) != len(want) {
		t.Fatalf("markers = %+v, want versions %v", markers, want)
	}

	for i, version := range want {
		if markers[i].Version.String() != version {
			t.Errorf("marker %d version = %s, want %s", i, markers[i].Version, version)
		}
	}

	if markers[1].Names[0] != ExplicitMarkerName {
		t.Errorf("middle marker names = %v, want [%s]", markers[1].Names, ExplicitMarkerName)
	}
}

func TestVersionMarkers_ExplicitBelowAllGroups(t *testing.T) {
	src := `require 5.004;
use mro;
`

	markers, err := newTestResolver().VersionMarkers(scanDoc(t, src))
	if err != nil {
		t.Fatalf("VersionMarkers: %v", err)
	}

	if len(markers) != 2 {
		t.Fatalf("markers = %+v, want two groups", markers)
	}

	last := markers[len(markers)-1]
	if last.Version.String() != "5.004" || last.Names[0] != ExplicitMarkerName {
		t.Errorf("last marker = %+v, want explicit requirement at 5.004", last)
	}
}

func TestVersionMarkers_ExplicitOnly(t *testing.T) {
	markers, err := newTestResolver().VersionMarkers(scanDoc(t, "use 5.008;\n"))
	if err != nil {
		t.Fatalf("VersionMarkers: %v", err)
	}

	if len(markers) != 1 || markers[0].Names[0] != ExplicitMarkerName {
		t.Fatalf("markers = %+v, want a single explicit group", markers)
	}
}

func TestVersionMarkers_NoEvidence(t *testing.T) {
	markers, err := newTestResolver().VersionMarkers(scanDoc(t, "print \"quiet\";\n"))
	if err != nil {
		t.Fatalf("VersionMarkers: %v", err)
	}

	if len(markers) != 0 {
		t.Errorf("markers = %+v, want none", markers)
	}
}
