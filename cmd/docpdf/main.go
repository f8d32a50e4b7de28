// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docpdf CLI, which batch-converts
// .docx and .xlsx files to PDF with LibreOffice.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the command tree. Flags are bound to v so that config
// files and DOCPDF_* environment variables can supply them too.
func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "docpdf",
		Short: "Convert .docx/.xlsx files to PDF/A with LibreOffice",
		Long: `docpdf walks an input directory, converts every .docx and .xlsx file it
finds to PDF with the LibreOffice command-line converter, and writes the
results under an output directory that mirrors the input tree.

Files are converted one at a time in path order. Messages follow the
system locale (English, Korean, Japanese, or Chinese).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./docpdf.yaml or ~/.config/docpdf/docpdf.yaml)")
	pf.String("history", "", "SQLite database recording every run")

	f := root.Flags()
	f.String("input", types.DefaultInputDir, "Input directory")
	f.String("output", types.DefaultOutputDir, "Output directory")
	f.String("lang", "", "message language: en, ko, ja, or zh (default: from locale)")
	f.String("soffice", "", "path to the soffice binary (default: search PATH, then known install locations)")
	f.Duration("timeout", 0, "per-file converter timeout, 0 for none")
	f.String("report", "", "write a YAML run report to this file")
	f.Bool("verify", false, "open each produced PDF and record its page count")
	f.Bool("no-color", false, "disable colored status tags")

	for _, name := range []string{"input", "output", "lang", "soffice", "timeout", "report", "verify", "no-color"} {
		_ = v.BindPFlag(configKey(name), f.Lookup(name))
	}
	_ = v.BindPFlag("history", pf.Lookup("history"))

	root.AddCommand(newVersionCmd(), newHistoryCmd(v))
	return root
}

// configKey maps a flag name to its config-file key.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docpdf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "docpdf"))
		}
	}

	v.SetEnvPrefix("DOCPDF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(viper.New())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}
	return nil
}
