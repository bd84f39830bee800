package model

import "time"

// FileReport holds the audit outcome for a single Perl file. Version fields
// carry the canonical decimal rendering so reports round-trip through YAML;
// an empty Explicit or Syntax means "no constraint found", while a non-empty
// Error means the file could not be analyzed at all.
type FileReport struct {
	Path         Path   `yaml:"path"`
	Explicit     string `yaml:"explicit,omitempty"`
	Syntax       string `yaml:"syntax,omitempty"`
	Minimum      string `yaml:"minimum,omitempty"`
	Inconsistent bool   `yaml:"inconsistent,omitempty"`
	Error        string `yaml:"error,omitempty"`
}

// AuditReport aggregates per-file reports for a whole source tree.
type AuditReport struct {
	GeneratedAt  time.Time    `yaml:"generated_at"`
	Minimum      string       `yaml:"minimum,omitempty"`
	Files        []FileReport `yaml:"files"`
	Inconsistent int          `yaml:"inconsistent"`
	Errors       int          `yaml:"errors"`
}
