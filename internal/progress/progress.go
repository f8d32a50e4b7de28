// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress renders the per-file progress indicator shown during a
// batch run. The indicator is observational only.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar advances once per processed item.
type Bar interface {
	Add(n int) error
	Finish() error
}

// New returns a terminal progress bar over total items, labelled with label
// and counting in unit.
func New(w io.Writer, total int, label, unit string) Bar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
}

// Nop is a Bar that renders nothing.
type Nop struct{}

func (Nop) Add(int) error { return nil }
func (Nop) Finish() error { return nil }
