// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result types shared between the
// CLI and the conversion packages.
package types

import "time"

const (
	// DefaultInputDir is the input root used when --input is not given.
	DefaultInputDir = "./docs"

	// DefaultOutputDir is the output root used when --output is not given.
	DefaultOutputDir = "./pdf_output"
)

// ConverterConfig holds settings for locating and running the external
// converter.
type ConverterConfig struct {
	// SofficePath is an explicit path to the converter binary. When empty
	// the search path and the platform install locations are probed.
	SofficePath string `json:"soffice" yaml:"soffice"`

	// Timeout bounds a single converter invocation. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ConversionConfig groups everything a conversion run needs. It is built
// once by the CLI and passed explicitly to every component.
type ConversionConfig struct {
	ConverterConfig `yaml:",inline"`

	// InputDir is the root that is searched recursively for documents.
	InputDir string `json:"input" yaml:"input"`

	// OutputDir is the root under which the input tree is mirrored.
	OutputDir string `json:"output" yaml:"output"`

	// Language is the message language code (en, ko, ja, zh). Empty means
	// detect from the environment.
	Language string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// ReportPath, when set, receives a YAML run report.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`

	// HistoryDB, when set, is a SQLite database that records every run.
	HistoryDB string `json:"history,omitempty" yaml:"history,omitempty"`

	// Verify enables opening each produced PDF to record its page count.
	Verify bool `json:"verify" yaml:"verify"`

	// NoColor disables colored status tags.
	NoColor bool `json:"no_color" yaml:"no_color"`
}
