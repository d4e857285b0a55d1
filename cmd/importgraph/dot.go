package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"importgraph/internal/depgraph"
)

var dotCmd = &cobra.Command{
	Use:   "dot [directory]",
	Short: "Write the import graph as a Graphviz DOT file",
	Long: `Write the import graph as a Graphviz DOT file.

Examples:
  importgraph dot helpers -o deps.dot
  importgraph dot helpers --label-prefix helpers/ --prune-isolated
  dot -Tsvg deps.dot -o deps.svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDOT,
}

func init() {
	addBuildFlags(dotCmd)
	dotCmd.Flags().StringP("output", "o", "", "DOT file to write (default dependency_graph.dot)")
	dotCmd.Flags().String("label-prefix", "", "Prefix stripped from node paths in labels")
	dotCmd.Flags().Bool("prune-isolated", false, "Drop files that neither import nor are imported")
	rootCmd.AddCommand(dotCmd)
}

func runDOT(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	g, err := depgraph.Build(cmd.Context(), cfg.BuildOptions(logger))
	if err != nil {
		return err
	}
	if err := g.WriteDOT(cfg.Output, cfg.DOTOptions()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes and %d edges to %s\n", g.NodeCount(), g.EdgeCount(), cfg.Output)
	return nil
}
