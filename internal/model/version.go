// Package model defines the data structures for Perl version auditing.
package model

import (
	"fmt"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a Perl runtime release. Comparison is total and delegates to
// the normalized revision.minor.patch triple, so every textual form of the
// same release ("5.006", "v5.6.0", "5.6.0") compares equal.
type Version struct {
	v *goversion.Version
}

// ParseVersion accepts every literal form a Perl source can carry:
//
//   - decimal:    5.004, 5.00503 (fraction read in 3-digit groups, as version.pm does)
//   - underscore: 5.005_03
//   - v-string:   v5.6.0
//   - dotted:     5.6.1
//   - integer:    5 (bare revision, zero minor and patch)
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Version{}, fmt.Errorf("empty version literal")
	}

	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	for _, part := range parts {
		if part == "" || strings.IndexFunc(part, notDigit) >= 0 {
			return Version{}, fmt.Errorf("malformed version literal %q", raw)
		}
	}

	revision, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("malformed version literal %q", raw)
	}

	var minor, patch int

	switch {
	case len(parts) >= 3:
		minor, _ = strconv.Atoi(parts[1])
		patch, _ = strconv.Atoi(parts[2])

	case len(parts) == 2:
		// Decimal notation: the fraction splits into 3-digit groups,
		// right-padded ("004" -> 4.0, "00503" -> 5.30, "6" -> 600.0).
		minor, patch = splitFraction(parts[1])
	}

	normalized, err := goversion.NewVersion(fmt.Sprintf("%d.%d.%d", revision, minor, patch))
	if err != nil {
		return Version{}, fmt.Errorf("malformed version literal %q: %w", raw, err)
	}

	return Version{v: normalized}, nil
}

// MustVersion parses a version literal and panics on failure. It is meant for
// the fixed thresholds of the rule table, which are validated by tests.
func MustVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}

	return v
}

func splitFraction(fraction string) (minor, patch int) {
	padded := fraction
	for len(padded)%3 != 0 {
		padded += "0"
	}

	minor, _ = strconv.Atoi(padded[:3])

	if len(padded) > 3 {
		patch, _ = strconv.Atoi(padded[3:6])
	}

	return minor, patch
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

// IsZero reports whether v is the uninitialized Version.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0, or 1 depending on whether v is lower than, equal to,
// or higher than other.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

// LessThan reports whether v is strictly lower than other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v is strictly higher than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal reports whether v denotes the same release as other.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// String renders the canonical Perl decimal form: "5.006" for 5.6.0,
// "5.008003" for 5.8.3. The rendering round-trips through ParseVersion.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}

	segments := v.v.Segments()

	if segments[2] == 0 {
		return fmt.Sprintf("%d.%03d", segments[0], segments[1])
	}

	return fmt.Sprintf("%d.%03d%03d", segments[0], segments[1], segments[2])
}
