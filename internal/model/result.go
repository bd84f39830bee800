package model

// Finding is the outcome of a successful version query: either a version was
// found or no evidence exists. An unusable document is reported through a
// separate error return and never collapses into None.
type Finding struct {
	version Version
	found   bool
}

// Found wraps a version into a positive Finding.
func Found(v Version) Finding {
	return Finding{version: v, found: true}
}

// None is the "no evidence" Finding. It is the identity element of Max.
func None() Finding {
	return Finding{}
}

// Found reports whether the query produced a version.
func (f Finding) Found() bool {
	return f.found
}

// Version returns the found version. Only meaningful when Found is true.
func (f Finding) Version() Version {
	return f.version
}

// String renders the found version, or "" for None.
func (f Finding) String() string {
	if !f.found {
		return ""
	}

	return f.version.String()
}

// Max reduces findings to the highest found version. Empty findings are
// skipped; when every entry is empty the result is None, not an error and
// not a default version.
func Max(findings ...Finding) Finding {
	best := None()

	for _, f := range findings {
		if !f.found {
			continue
		}

		if !best.found || f.version.GreaterThan(best.version) {
			best = f
		}
	}

	return best
}

// Marker names the rules that evidence a particular version, for diagnostic
// output.
type Marker struct {
	Version Version
	Names   []string
}
