// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus is the observed result of processing one input file.
type ConversionStatus string

const (
	// ConversionDone means the converter exited zero.
	ConversionDone ConversionStatus = "converted"
	// ConversionSkipped means the file extension is not convertible.
	ConversionSkipped ConversionStatus = "skipped"
	// ConversionFailed means the converter ran and exited non-zero.
	ConversionFailed ConversionStatus = "failed"
	// ConversionError means processing aborted before the converter could
	// report a status (directory creation, spawn failure, and so on).
	ConversionError ConversionStatus = "error"
)

// FileResult records what happened to a single discovered file.
type FileResult struct {
	// InputPath is the file as discovered under the input root.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the mirrored PDF path under the output root. Empty for
	// skipped files.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Status is the true per-file status. The run summary counters do not
	// follow it one-to-one; see convert.BatchResult.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Detail carries the converter exit description or the error text.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Pages is the page count of the produced PDF, set only when
	// verification is enabled and succeeded.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Duration is the wall time spent on the file.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
