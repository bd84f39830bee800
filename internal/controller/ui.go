// Package controller provides output adapters for displaying audit results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "perlver.dev/pkg/perlver/internal/model"
)

// UI defines the interface for rendering audit results. Implementations can
// use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayAudit renders the per-file table and the cross-file summary.
	DisplayAudit(ctx context.Context, report m.AuditReport) error

	// DisplayMarkers renders the diagnostic markers for one file. A non-nil
	// err means the file could not be analyzed; it is rendered as unknown,
	// distinct from "no markers".
	DisplayMarkers(ctx context.Context, path m.Path, markers []m.Marker, err error) error
}

// NewUI picks the TUI when attached to a terminal, the plain writer
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd, os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
