// ABOUTME: Cobra command that writes the effective configuration to disk.
// ABOUTME: Seeds ~/.config/diary/config.yaml from defaults, env, and flags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file",
	Long:  "Save the current effective configuration (defaults plus any env and flag overrides) to the config file.",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}

	if err := globalConfig.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
	return nil
}
