// ABOUTME: MCP server command implementation for diary.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/logging"
	mcppkg "github.com/2389-research/diary/internal/mcp"
	"github.com/2389-research/diary/internal/models"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The server keeps one journal for the session. Agents add entries, list
them, and save the journal to a file.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.FromContext(cmd.Context())
	journal := models.NewJournal(globalConfig.Journal.Title)

	opts := []mcppkg.ServerOption{mcppkg.WithLogger(logger)}
	if dest, err := globalConfig.Destination(journal); err == nil {
		opts = append(opts, mcppkg.WithDefaultDestination(dest))
	} else {
		logger.Warn("no default destination", "error", err)
	}

	server, err := mcppkg.NewServer(journal, opts...)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
