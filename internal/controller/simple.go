package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "perlver.dev/pkg/perlver/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// SimpleUI implements UI using cobra Command's Print.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayAudit prints the audit table.
func (s *SimpleUI) DisplayAudit(ctx context.Context, report m.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(renderAuditTable(report))

	return nil
}

// DisplayMarkers prints the markers for one file.
func (s *SimpleUI) DisplayMarkers(ctx context.Context, path m.Path, markers []m.Marker, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(renderMarkers(path, markers, err))

	return nil
}

func renderAuditTable(report m.AuditReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Explicit", "Syntax", "Minimum", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, fr := range report.Files {
		table.Append([]string{
			string(fr.Path),
			orDash(fr.Explicit),
			orDash(fr.Syntax),
			orDash(fr.Minimum),
			statusCell(fr),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d files", len(report.Files)),
		"",
		"",
		orDash(report.Minimum),
		summaryCell(report),
	})

	table.Render()

	return "\n" + buf.String()
}

// statusCell renders the tri-state outcome: an unreadable file is "unknown",
// never "no constraint".
func statusCell(fr m.FileReport) string {
	switch {
	case fr.Error != "":
		return badStyle.Render("unknown")
	case fr.Inconsistent:
		return warnStyle.Render("inconsistent")
	default:
		return okStyle.Render("ok")
	}
}

func summaryCell(report m.AuditReport) string {
	var parts []string

	if report.Inconsistent > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d inconsistent", report.Inconsistent)))
	}

	if report.Errors > 0 {
		parts = append(parts, badStyle.Render(fmt.Sprintf("%d unknown", report.Errors)))
	}

	if len(parts) == 0 {
		return okStyle.Render("ok")
	}

	return strings.Join(parts, ", ")
}

func orDash(version string) string {
	if version == "" {
		return "-"
	}

	return version
}

func renderMarkers(path m.Path, markers []m.Marker, err error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", path)

	if err != nil {
		fmt.Fprintf(&b, "  %s: %v\n", badStyle.Render("unknown"), err)
		return b.String()
	}

	if len(markers) == 0 {
		b.WriteString(okStyle.Render("  no version markers") + "\n")
		return b.String()
	}

	for _, mk := range markers {
		fmt.Fprintf(&b, "  %-10s %s\n", mk.Version, strings.Join(mk.Names, ", "))
	}

	return b.String()
}
