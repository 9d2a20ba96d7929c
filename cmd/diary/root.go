// ABOUTME: Root Cobra command and global flags for the diary CLI.
// ABOUTME: Loads layered config and builds the structured logger before each command.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/logging"
)

var globalConfig *config.Config

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "Keep a numbered journal and save it to plain text",
	Long: `Keep a journal of numbered entries and save it as plain text,
one entry per line.

Entries are numbered in the order they are written. Saving replaces the
destination file's content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		path := cfgFile
		if cmd.Name() == "init" && path != "" {
			// init may be creating the file
			if _, err := os.Stat(path); os.IsNotExist(err) {
				path = ""
			}
		}

		cfg, err := config.Load(path, cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

		logger.Debug("config loaded",
			slog.String("title", cfg.Journal.Title),
			slog.String("output_dir", cfg.Journal.OutputDir),
			slog.String("filename", cfg.Journal.Filename),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/diary/config.yaml)")
	rootCmd.PersistentFlags().String("title", "", "Journal title")
	rootCmd.PersistentFlags().String("out-dir", "", "Directory journals are saved to (default: current directory)")
	rootCmd.PersistentFlags().String("filename", "", "Default file name inside --out-dir")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
