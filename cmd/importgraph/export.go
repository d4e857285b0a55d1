package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"importgraph/internal/depgraph"
	"importgraph/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [directory]",
	Short: "Store the import graph in a SQLite database",
	Long: `Store the import graph in a SQLite database with tables nodes(key, path)
and edges(source, target). Any graph already in the database is replaced.

Examples:
  importgraph export helpers --db deps.db
  sqlite3 deps.db "SELECT COUNT(*) FROM edges"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	addBuildFlags(exportCmd)
	exportCmd.Flags().String("db", "importgraph.db", "SQLite database path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	exportDB, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	g, err := depgraph.Build(cmd.Context(), cfg.BuildOptions(newLogger(cfg)))
	if err != nil {
		return err
	}

	s, err := store.Open(exportDB)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveGraph(cmd.Context(), g); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d nodes and %d edges in %s\n", g.NodeCount(), g.EdgeCount(), exportDB)
	return nil
}
