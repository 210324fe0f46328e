package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/readycheck/internal/logging"
	"github.com/Aman-CERP/readycheck/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deployment checklist as an MCP tool over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout.

Tools:
  - check_readiness: run the checklist and return per-item results
  - list_requirements: list the checklist without running it

stdout carries JSON-RPC only; logs go to ~/.readycheck/logs/.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: working directory)")

	return cmd
}

func runServe(ctx context.Context, dir string) error {
	// --debug already installed a file logger; otherwise the server still
	// logs to file because the default discards everything.
	if !debugMode {
		logger, cleanup, err := logging.Setup(logging.ServeConfig())
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer cleanup()
		slog.SetDefault(logger)
	}

	items, err := loadChecklist()
	if err != nil {
		return err
	}
	dir, err = resolveDir(dir)
	if err != nil {
		return err
	}

	srv, err := mcp.NewServer(newChecker(dir), items)
	if err != nil {
		return err
	}
	srv.SetLogger(slog.Default())
	return srv.Serve(ctx)
}
