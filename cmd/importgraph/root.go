package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"importgraph/internal/config"
	"importgraph/internal/logging"
)

var version = "dev"

var (
	configFile string
	verbosity  int
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "importgraph",
	Short: "Intra-directory import graphs for Python packages",
	Long: `importgraph scans a package directory, resolves every import that points
back into the same directory, and reports the resulting file-level graph as
text, Graphviz DOT, a cycle listing, or a SQLite database.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./.importgraph.yaml if present)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// addBuildFlags registers the flags shared by every command that builds a graph.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-depth", -1, "Maximum directory depth below the root to scan (-1 for no limit)")
	cmd.Flags().Bool("cycles-only", false, "Keep only files that take part in an import cycle")
	cmd.Flags().String("marker", "", "Package marker file name without suffix (default __init__)")
	cmd.Flags().String("suffix", "", "Source file suffix (default .py)")
	cmd.Flags().Bool("gitignore", false, "Skip files matched by the root's .gitignore")
	cmd.Flags().Int("workers", 0, "Files processed in parallel (0 = number of CPUs)")
}

// loadConfig resolves configuration for cmd, taking the root from args.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	return cfg, nil
}

// newLogger writes to stderr. -v and -q win over the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	if quiet || verbosity > 0 {
		return logging.NewWithLevel(os.Stderr, cfg.Log.Format, logging.LevelFromVerbosity(verbosity, quiet))
	}
	return logging.New(os.Stderr, cfg.Log)
}
