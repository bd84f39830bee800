package adapter

import (
	"path/filepath"
	"testing"
	"time"

	m "perlver.dev/pkg/perlver/internal/model"
)

func TestReportStore_RoundTrip(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	saved := m.AuditReport{
		GeneratedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Minimum:      "5.008",
		Inconsistent: 1,
		Errors:       0,
		Files: []m.FileReport{
			{Path: "lib/A.pm", Explicit: "5.005", Syntax: "5.008", Minimum: "5.008", Inconsistent: true},
			{Path: "bin/run.pl", Minimum: "5.004"},
		},
	}

	store := NewReportStore()

	if err := store.SaveAudit(dir, saved); err != nil {
		t.Fatalf("SaveAudit: %v", err)
	}

	loaded, err := store.LoadAudit(dir)
	if err != nil {
		t.Fatalf("LoadAudit: %v", err)
	}

	if loaded.Minimum != saved.Minimum {
		t.Errorf("minimum = %q, want %q", loaded.Minimum, saved.Minimum)
	}

	if len(loaded.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(loaded.Files))
	}

	if loaded.Files[0] != saved.Files[0] {
		t.Errorf("file report = %+v, want %+v", loaded.Files[0], saved.Files[0])
	}

	if !loaded.GeneratedAt.Equal(saved.GeneratedAt) {
		t.Errorf("generated at = %v, want %v", loaded.GeneratedAt, saved.GeneratedAt)
	}
}

func TestReportStore_LoadMissing(t *testing.T) {
	store := NewReportStore()

	if _, err := store.LoadAudit(m.Path(filepath.Join(t.TempDir(), "absent"))); err == nil {
		t.Error("expected error for missing report")
	}
}

func TestReportStore_OverwritesExisting(t *testing.T) {
	dir := m.Path(t.TempDir())
	store := NewReportStore()

	if err := store.SaveAudit(dir, m.AuditReport{Minimum: "5.004"}); err != nil {
		t.Fatalf("SaveAudit: %v", err)
	}

	if err := store.SaveAudit(dir, m.AuditReport{Minimum: "5.010"}); err != nil {
		t.Fatalf("SaveAudit overwrite: %v", err)
	}

	loaded, err := store.LoadAudit(dir)
	if err != nil {
		t.Fatalf("LoadAudit: %v", err)
	}

	if loaded.Minimum != "5.010" {
		t.Errorf("minimum = %q, want latest save", loaded.Minimum)
	}
}
