// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpdf/internal/history"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversion runs",
		Long: `History reads the SQLite database written by runs started with --history
and lists the most recent runs. With --file it prints the status a file
had in the latest run that processed it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, v)
		},
	}
	cmd.Flags().Int("limit", 10, "maximum number of runs to list")
	cmd.Flags().String("file", "", "show the latest recorded status of this input file")
	cmd.Flags().Bool("json", false, "output runs as JSON")
	return cmd
}

func runHistory(cmd *cobra.Command, v *viper.Viper) error {
	dbPath := v.GetString("history")
	if dbPath == "" {
		return fmt.Errorf("no history database: pass --history or set history in the config file")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		status, ok, err := store.FileStatus(cmd.Context(), file)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "%s: no recorded runs\n", file)
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", file, status)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(out, runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-4s  %5s  %9s  %6s  %s\n",
		"Run", "Started", "Lang", "Files", "Converted", "Failed", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-4s  %5d  %9d  %6d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Language,
			r.Files, r.Succeeded, r.Failed, r.InputDir)
	}
	return nil
}
