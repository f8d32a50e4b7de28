// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package soffice

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// PDFExport is the --convert-to target: PDF through the writer export filter
// with PDF/A-1 output.
const PDFExport = "pdf:writer_pdf_Export:SelectPdfVersion=1"

// Args builds the fixed converter argument list for one input file.
// inputAbs must be absolute.
func Args(outDir, inputAbs string) []string {
	return []string{
		"--headless",
		"--convert-to", PDFExport,
		"--outdir", outDir,
		inputAbs,
	}
}

// ExecRunner runs the converter as a child process and waits for it.
// The child's output is passed through to Stdout and Stderr when set.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer

	// Timeout bounds each run. Zero means wait indefinitely.
	Timeout time.Duration
}

// Run starts name with args and waits for it to exit. A process that ran
// and exited reports its exit code with a nil error; a process killed by a
// signal (including a timeout) reports -1. The error is non-nil only when
// the process could not be started or waited for.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return -1, err
	}
}
