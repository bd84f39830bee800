package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "perlver.dev/pkg/perlver/internal/model"
)

const auditFileName = "audit.yaml"

// ReportStore persists audit reports between runs so they can be rendered
// again without rescanning.
type ReportStore interface {
	SaveAudit(dir m.Path, report m.AuditReport) error
	LoadAudit(dir m.Path) (m.AuditReport, error)
}

// YAMLReportStore stores one audit report per directory as YAML.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveAudit writes the report to dir/audit.yaml, creating dir if needed.
func (s *YAMLReportStore) SaveAudit(dir m.Path, report m.AuditReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), auditFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadAudit reads the report saved in dir.
func (s *YAMLReportStore) LoadAudit(dir m.Path) (m.AuditReport, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), auditFileName))
	if err != nil {
		return m.AuditReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.AuditReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.AuditReport{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}
