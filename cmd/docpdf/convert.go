// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpdf/internal/console"
	"github.com/pdiddy/docpdf/internal/convert"
	"github.com/pdiddy/docpdf/internal/history"
	"github.com/pdiddy/docpdf/internal/i18n"
	"github.com/pdiddy/docpdf/internal/pdfcheck"
	"github.com/pdiddy/docpdf/internal/progress"
	"github.com/pdiddy/docpdf/internal/soffice"
	"github.com/pdiddy/docpdf/pkg/types"
)

// loadConfig collects the resolved settings from v.
func loadConfig(v *viper.Viper) (types.ConversionConfig, error) {
	cfg := types.ConversionConfig{
		ConverterConfig: types.ConverterConfig{
			SofficePath: v.GetString("soffice"),
			Timeout:     v.GetDuration("timeout"),
		},
		InputDir:   v.GetString("input"),
		OutputDir:  v.GetString("output"),
		Language:   v.GetString("lang"),
		ReportPath: v.GetString("report"),
		HistoryDB:  v.GetString("history"),
		Verify:     v.GetBool("verify"),
		NoColor:    v.GetBool("no_color"),
	}
	if cfg.InputDir == "" {
		cfg.InputDir = types.DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = types.DefaultOutputDir
	}
	if cfg.Timeout < 0 {
		return cfg, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.Language != "" {
		if _, err := i18n.ParseLanguage(cfg.Language); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// language returns the configured language, or the one resolved from the
// process locale when none is configured.
func language(cfg types.ConversionConfig) i18n.Language {
	if cfg.Language != "" {
		if lang, err := i18n.ParseLanguage(cfg.Language); err == nil {
			return lang
		}
	}
	return i18n.Resolve()
}

func runConvert(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	msg := i18n.For(language(cfg))
	out := cmd.OutOrStdout()
	con := console.New(out, !cfg.NoColor)

	conv := &convert.Converter{
		Locator: soffice.NewLocator(cfg.SofficePath),
		Runner: &soffice.ExecRunner{
			Stdout:  out,
			Stderr:  cmd.ErrOrStderr(),
			Timeout: cfg.Timeout,
		},
		Console: con,
		Msg:     msg,
	}
	if cfg.Verify {
		conv.Verify = pdfcheck.PageCount
	}

	batch := &convert.Batch{
		Converter: conv,
		Console:   con,
		Msg:       msg,
		Progress: func(total int, label, unit string) progress.Bar {
			return progress.New(cmd.ErrOrStderr(), total, label, unit)
		},
	}

	result, runErr := batch.Run(ctx, cfg.InputDir, cfg.OutputDir)

	if err := saveRun(context.WithoutCancel(ctx), cfg, result); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w (also: %v)", runErr, err)
		}
		return err
	}
	return runErr
}

// saveRun writes the optional report and history record for a run that
// reached the conversion loop.
func saveRun(ctx context.Context, cfg types.ConversionConfig, result convert.BatchResult) error {
	if len(result.Files) == 0 {
		return nil
	}

	if cfg.ReportPath != "" {
		if err := convert.WriteReport(cfg.ReportPath, result); err != nil {
			return err
		}
	}

	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(ctx, result); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}
	return nil
}
