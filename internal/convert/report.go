// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docpdf/pkg/types"
)

// Report is the YAML document written by WriteReport.
type Report struct {
	RunID      string    `yaml:"run_id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	InputDir   string    `yaml:"input_dir"`
	OutputDir  string    `yaml:"output_dir"`
	Language   string    `yaml:"language"`

	// Succeeded and Failed are the summary counters as printed.
	Succeeded int `yaml:"succeeded"`
	Failed    int `yaml:"failed"`

	// Counts breaks the files down by their true status.
	Counts map[types.ConversionStatus]int `yaml:"counts"`

	Files []types.FileResult `yaml:"files"`
}

// NewReport builds the report for a finished run.
func NewReport(r BatchResult) Report {
	files := r.Files
	if files == nil {
		files = []types.FileResult{}
	}
	return Report{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		InputDir:   r.InputDir,
		OutputDir:  r.OutputDir,
		Language:   string(r.Language),
		Succeeded:  r.Succeeded,
		Failed:     r.Failed,
		Counts:     r.Counts(),
		Files:      files,
	}
}

// WriteReport writes the run report for r to path as YAML, creating the
// parent directory if needed.
func WriteReport(path string, r BatchResult) error {
	data, err := yaml.Marshal(NewReport(r))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
