package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"importgraph/internal/depgraph"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles [directory]",
	Short: "List groups of files that import each other",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCycles,
}

func init() {
	addBuildFlags(cyclesCmd)
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	g, err := depgraph.Build(cmd.Context(), cfg.BuildOptions(newLogger(cfg)))
	if err != nil {
		return err
	}

	cycles := g.Cycles()
	out := cmd.OutOrStdout()
	if len(cycles) == 0 {
		fmt.Fprintln(out, "No import cycles found.")
		return nil
	}
	for i, cycle := range cycles {
		fmt.Fprintf(out, "cycle %d: %s\n", i+1, strings.Join(cycle, ", "))
	}
	return nil
}
