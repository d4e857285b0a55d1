package main

import (
	"os"

	"github.com/spf13/cobra"

	"importgraph/internal/server"
	"importgraph/util"
)

var serveWorkspace string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve importgraph tools over MCP (stdio)",
	Long: `Serve importgraph tools over the Model Context Protocol on stdin/stdout.

Relative roots passed to tools resolve against the workspace, which defaults
to the enclosing git repository of the working directory.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addBuildFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveWorkspace, "workspace", "", "Workspace root (default: enclosing git repository)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	workspace := serveWorkspace
	if workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if workspace, err = util.FindWorkspaceRoot(cwd); err != nil {
			return err
		}
	}

	logger.Info("serving MCP", "workspace", workspace)
	return server.New(workspace, cfg, logger).Run(cmd.Context())
}
