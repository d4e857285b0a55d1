package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"importgraph/internal/depgraph"
	"importgraph/internal/graph"
	"importgraph/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [directory]",
	Short: "Print which files import which",
	Long: `Print one line per file: "<file> imports <a>, <b>" or "<file> has no dependencies".

With --db the graph is read from a database written by "importgraph export"
instead of scanning a directory.

Examples:
  importgraph report helpers
  importgraph report helpers --cycles-only
  importgraph report helpers --max-depth 1 --report-file deps.txt
  importgraph report --db deps.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	addBuildFlags(reportCmd)
	reportCmd.Flags().String("report-file", "", "Write the report to a file instead of stdout")
	reportCmd.Flags().String("db", "", "Read the graph from a SQLite database written by export")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	reportFile, err := cmd.Flags().GetString("report-file")
	if err != nil {
		return err
	}
	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	var g *graph.Graph
	if dbPath != "" {
		g, err = loadStored(cmd, dbPath)
		if err == nil && cfg.CyclesOnly {
			g = graph.FilterCycles(g)
		}
	} else {
		g, err = depgraph.Build(cmd.Context(), cfg.BuildOptions(logger))
	}
	if err != nil {
		return err
	}

	report := g.TextReport()
	if reportFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	}
	if err := os.WriteFile(reportFile, []byte(report+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("report written", "path", reportFile)
	return nil
}

func loadStored(cmd *cobra.Command, path string) (*graph.Graph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.LoadGraph(cmd.Context())
}
