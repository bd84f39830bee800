package adapter

import (
	"fmt"

	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/internal/perl"
)

// PerlFileAdapter turns raw source bytes into scanned documents so the domain
// layer never touches the scanner directly.
type PerlFileAdapter interface {
	// Parse scans src into a Document. The path is only used for error
	// reporting.
	Parse(path m.Path, src []byte) (*perl.Document, error)
}

// LocalPerlFileAdapter is the concrete PerlFileAdapter backed by the perl
// scanner.
type LocalPerlFileAdapter struct{}

// NewLocalPerlFileAdapter constructs a LocalPerlFileAdapter.
func NewLocalPerlFileAdapter() *LocalPerlFileAdapter {
	return &LocalPerlFileAdapter{}
}

// Parse scans the provided source bytes.
func (a *LocalPerlFileAdapter) Parse(path m.Path, src []byte) (*perl.Document, error) {
	doc, err := perl.NewDocument(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc, nil
}
