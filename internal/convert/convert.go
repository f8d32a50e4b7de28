// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns .docx and .xlsx files into PDFs by running the
// LibreOffice converter once per file, mirroring the input tree under an
// output root.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pdiddy/docpdf/internal/console"
	"github.com/pdiddy/docpdf/internal/i18n"
	"github.com/pdiddy/docpdf/internal/soffice"
	"github.com/pdiddy/docpdf/pkg/types"
)

// Locator finds the converter binary.
type Locator interface {
	Locate() (string, error)
}

// Runner runs the converter binary to completion. It returns the exit code
// of a process that ran, and an error only when the process could not be
// run at all.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (int, error)
}

// FileConverter converts a single file. A non-nil error means processing
// of the file was aborted; conversion outcomes, including a converter that
// exited non-zero, are reported in the returned FileResult.
type FileConverter interface {
	Convert(ctx context.Context, file, inputRoot, outputRoot string) (types.FileResult, error)
}

// Converter is the FileConverter backed by the LibreOffice CLI.
type Converter struct {
	Locator Locator
	Runner  Runner
	Console *console.Console
	Msg     i18n.Messages

	// Verify, when set, is called with each produced PDF. Its page count is
	// recorded; a failure only prints a warning.
	Verify func(path string) (int, error)

	bin string
}

// Convert converts file, which must lie under inputRoot, into the mirrored
// PDF location under outputRoot. Unsupported extensions are skipped without
// running anything.
func (c *Converter) Convert(ctx context.Context, file, inputRoot, outputRoot string) (types.FileResult, error) {
	start := time.Now()
	res := types.FileResult{InputPath: file}

	if !Supported(file) {
		c.Console.Printf(c.Msg.Skip, file)
		res.Status = types.ConversionSkipped
		return res, nil
	}

	out, err := OutputPath(file, inputRoot, outputRoot)
	if err != nil {
		res.Status = types.ConversionError
		return res, err
	}
	res.OutputPath = out

	bin, err := c.binary()
	if err != nil {
		res.Status = types.ConversionError
		return res, err
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		res.Status = types.ConversionError
		return res, fmt.Errorf("resolving %s: %w", file, err)
	}

	code, err := c.Runner.Run(ctx, bin, soffice.Args(filepath.Dir(out), abs))
	res.Duration = time.Since(start)
	if err != nil {
		res.Status = types.ConversionError
		return res, fmt.Errorf("running %s: %w", bin, err)
	}

	if code != 0 {
		res.Status = types.ConversionFailed
		res.Detail = exitDetail(bin, code)
		c.Console.Printf(c.Msg.ConverterFailed, file, res.Detail)
		return res, nil
	}

	res.Status = types.ConversionDone
	c.Console.Printf(c.Msg.Converted, out)

	if c.Verify != nil {
		pages, err := c.Verify(out)
		if err != nil {
			c.Console.Printf(c.Msg.VerifyFailed, out, err)
		} else {
			res.Pages = pages
		}
	}
	return res, nil
}

// binary locates the converter on first use and caches the result, so no
// lookup happens for runs that never attempt a conversion.
func (c *Converter) binary() (string, error) {
	if c.bin != "" {
		return c.bin, nil
	}
	bin, err := c.Locator.Locate()
	if err != nil {
		return "", fmt.Errorf("locating converter: %w", err)
	}
	c.bin = bin
	return bin, nil
}

func exitDetail(bin string, code int) string {
	if code < 0 {
		return fmt.Sprintf("%s was terminated before exiting", bin)
	}
	return fmt.Sprintf("%s returned non-zero exit status %d", bin, code)
}
