package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"perlver.dev/pkg/perlver/internal/adapter"
	"perlver.dev/pkg/perlver/internal/controller"
	m "perlver.dev/pkg/perlver/internal/model"
	"perlver.dev/pkg/perlver/pkg"
)

// ErrRecursiveResolution is returned when a caller asks for cross-file module
// resolution, which is not implemented.
var ErrRecursiveResolution = errors.New("recursive module resolution is not implemented")

// AuditArgs configures a batch scan.
type AuditArgs struct {
	Paths          []m.Path
	Exclude        []string
	Output         m.Path
	Threads        int
	Save           bool
	FollowIncludes bool
}

// ExplainArgs configures a marker run.
type ExplainArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs points at a saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow ties discovery, parsing, resolution and reporting together.
type Workflow interface {
	Audit(ctx context.Context, args AuditArgs) error
	Explain(ctx context.Context, args ExplainArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.PerlFileAdapter
	adapter.ReportStore
	controller.UI

	resolver *Resolver
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	perlAdapter adapter.PerlFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	resolver *Resolver,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		PerlFileAdapter: perlAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		resolver:        resolver,
	}
}

// Audit scans every Perl file under the given paths, resolves each file
// independently and renders the combined report. Files are independent, so
// resolution runs in parallel; per-file reports go through a disk spill to
// keep memory flat on large trees.
func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	if args.FollowIncludes {
		return ErrRecursiveResolution
	}

	files, err := w.FindPerlFiles(args.Paths, args.Exclude)
	if err != nil {
		slog.Error("source discovery failed", "error", err)
		return fmt.Errorf("discover sources: %w", err)
	}

	slog.Debug("starting audit", "files", len(files), "threads", args.Threads)

	spill, err := pkg.NewFileSpill[m.FileReport]()
	if err != nil {
		return fmt.Errorf("create report spill: %w", err)
	}

	defer func() { _ = spill.Close() }()

	group, ctx := errgroup.WithContext(ctx)

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	group.SetLimit(threads)

	for _, file := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return spill.Append(w.auditFile(file))
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	report, err := w.collectAudit(spill)
	if err != nil {
		return err
	}

	if args.Save {
		if err := w.SaveAudit(args.Output, report); err != nil {
			slog.Error("failed to save audit report", "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	return w.DisplayAudit(ctx, report)
}

// auditFile resolves one file. Failures become the report's Error field so
// one unreadable file never aborts the batch; the caller renders it as
// unknown, distinct from "no constraint".
func (w *workflow) auditFile(path m.Path) m.FileReport {
	report := m.FileReport{Path: path}

	content, err := w.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	doc, err := w.Parse(path, content)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	explicit, err := w.resolver.MinimumExplicitVersion(doc)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	syntax, err := w.resolver.MinimumSyntaxVersion(doc, m.None())
	if err != nil {
		report.Error = err.Error()
		return report
	}

	minimum := m.Max(m.Found(w.resolver.Floor()), explicit, syntax)

	report.Explicit = explicit.String()
	report.Syntax = syntax.String()
	report.Minimum = minimum.String()
	report.Inconsistent = explicit.Found() && syntax.Found() &&
		explicit.Version().LessThan(syntax.Version())

	return report
}

func (w *workflow) collectAudit(spill pkg.FileSpill[m.FileReport]) (m.AuditReport, error) {
	report := m.AuditReport{GeneratedAt: time.Now().UTC()}
	overall := m.None()

	err := spill.Range(func(_ uint64, fr m.FileReport) error {
		report.Files = append(report.Files, fr)

		if fr.Error != "" {
			report.Errors++
			return nil
		}

		if fr.Inconsistent {
			report.Inconsistent++
		}

		// Minimum strings are canonical, so the cross-file reduction reuses
		// the same Max reducer after a round trip.
		v, err := m.ParseVersion(fr.Minimum)
		if err != nil {
			return fmt.Errorf("corrupt report entry for %s: %w", fr.Path, err)
		}

		overall = m.Max(overall, m.Found(v))

		return nil
	})
	if err != nil {
		return m.AuditReport{}, err
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	report.Minimum = overall.String()

	return report, nil
}

// Explain runs the diagnostic path: every marker each file trips, in
// discovery order. Per-file failures render as unknown and the run continues.
func (w *workflow) Explain(ctx context.Context, args ExplainArgs) error {
	files, err := w.FindPerlFiles(args.Paths, args.Exclude)
	if err != nil {
		slog.Error("source discovery failed", "error", err)
		return fmt.Errorf("discover sources: %w", err)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		markers, err := w.fileMarkers(file)
		if err := w.DisplayMarkers(ctx, file, markers, err); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) fileMarkers(path m.Path) ([]m.Marker, error) {
	content, err := w.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := w.Parse(path, content)
	if err != nil {
		return nil, err
	}

	return w.resolver.VersionMarkers(doc)
}

// View renders a previously saved report.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadAudit(args.Reports)
	if err != nil {
		slog.Error("failed to load audit report", "path", args.Reports, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayAudit(ctx, report)
}
