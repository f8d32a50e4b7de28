// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/docpdf/internal/console"
	"github.com/pdiddy/docpdf/internal/i18n"
	"github.com/pdiddy/docpdf/internal/progress"
	"github.com/pdiddy/docpdf/internal/soffice"
	"github.com/pdiddy/docpdf/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
//
// Succeeded counts every file whose Convert call returned without error,
// which includes skipped files and files the converter failed on. Failed
// counts only files whose processing was aborted by an error. The true
// per-file status is in Files.
type BatchResult struct {
	RunID      string
	InputDir   string
	OutputDir  string
	Language   i18n.Language
	StartedAt  time.Time
	FinishedAt time.Time

	Succeeded int
	Failed    int

	Files []types.FileResult
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any file's processing was aborted.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Counts tallies the files by their true status.
func (r BatchResult) Counts() map[types.ConversionStatus]int {
	counts := map[types.ConversionStatus]int{}
	for _, f := range r.Files {
		counts[f.Status]++
	}
	return counts
}

// Batch drives a conversion run over an input tree.
type Batch struct {
	Converter FileConverter
	Console   *console.Console
	Msg       i18n.Messages

	// Progress builds the indicator for a run over total files. Nil means
	// no indicator.
	Progress func(total int, label, unit string) progress.Bar
}

// Run converts every discovered file under inputDir into outputDir, one at
// a time in path order, printing a status line per file and a summary.
//
// A missing input directory or an empty tree is reported and returns a
// zero result. Run returns an error only for faults that stop the whole run:
// an unsupported platform, a file outside the input root, an unreadable
// input root, or cancellation of ctx.
func (b *Batch) Run(ctx context.Context, inputDir, outputDir string) (res BatchResult, err error) {
	res = BatchResult{
		RunID:     uuid.NewString(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		Language:  b.Msg.Language,
		StartedAt: time.Now().UTC(),
	}
	defer func() { res.FinishedAt = time.Now().UTC() }()

	if _, err := os.Stat(inputDir); err != nil {
		b.Console.Printf(b.Msg.InputMissing, inputDir)
		return res, nil
	}

	files, err := Discover(inputDir)
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		b.Console.Println(b.Msg.NoFiles)
		return res, nil
	}

	bar := b.newBar(len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			_ = bar.Finish()
			return res, err
		}

		fr, err := b.Converter.Convert(ctx, file, inputDir, outputDir)
		if err != nil {
			if isFatal(err) {
				_ = bar.Finish()
				res.Files = append(res.Files, fr)
				return res, err
			}
			b.Console.Printf(b.Msg.ConversionFailed, file, err)
			fr.Status = types.ConversionError
			fr.Detail = err.Error()
			res.Failed++
		} else {
			res.Succeeded++
		}
		res.Files = append(res.Files, fr)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	b.Console.Println()
	b.Console.Printf(b.Msg.Summary, res.Succeeded)
	if res.Failed > 0 {
		b.Console.Printf(b.Msg.FailureSummary, res.Failed)
	}
	return res, nil
}

func (b *Batch) newBar(total int) progress.Bar {
	if b.Progress == nil {
		return progress.Nop{}
	}
	return b.Progress(total, b.Msg.ProgressLabel, b.Msg.ProgressUnit)
}

func isFatal(err error) bool {
	return errors.Is(err, soffice.ErrUnsupportedPlatform) || errors.Is(err, ErrPathRelation)
}
