// ABOUTME: CLI commands for journal operations.
// ABOUTME: Provides write, append, and show subcommands for plain-text journals.
package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/logging"
	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

var writeCmd = &cobra.Command{
	Use:   "write [entry...]",
	Short: "Write a new journal",
	Long: `Create a journal, add each argument as an entry, and save it.

Example:
  diary write --out diary.txt "I ate a bug" "I laughed today!"`,
	RunE: runWrite,
}

var appendCmd = &cobra.Command{
	Use:   "append <path> <entry...>",
	Short: "Add entries to a saved journal",
	Long:  "Load a saved journal, add entries continuing its numbering, and save it back. A missing file starts a new journal.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAppend,
}

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print a saved journal",
	Long:  "Read a saved journal, check its numbering, and print its entries.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// Flags
var (
	writeOut string
)

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(showCmd)

	writeCmd.Flags().StringVarP(&writeOut, "out", "o", "", "Destination file (default: configured output dir and filename)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	journal := models.NewJournal(globalConfig.Journal.Title)
	for _, text := range args {
		journal.AddEntry(text)
	}

	dest := writeOut
	if dest == "" {
		var err error
		if dest, err = globalConfig.Destination(journal); err != nil {
			return fmt.Errorf("failed to resolve destination: %w", err)
		}
	}

	if err := storage.SaveJournal(journal, dest); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	logging.FromContext(cmd.Context()).Info("journal saved", "journal_id", journal.ID, "destination", dest, "entries", journal.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "Journal written: %s\n", dest)
	fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\n", journal.Len())
	return nil
}

func runAppend(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := logging.FromContext(cmd.Context())

	journal, err := storage.LoadJournal(globalConfig.Journal.Title, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no saved journal, starting a new one", "path", path)
		journal = models.NewJournal(globalConfig.Journal.Title)
	} else if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	before := journal.Len()
	for _, text := range args[1:] {
		journal.AddEntry(text)
	}

	if err := storage.SaveJournal(journal, path); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("journal saved", "journal_id", journal.ID, "destination", path, "entries", journal.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d entries to %s (now %d)\n", journal.Len()-before, path, journal.Len())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	journal, err := storage.LoadJournal(globalConfig.Journal.Title, path)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if journal.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries.")
		return nil
	}
	return storage.WriteEntries(cmd.OutOrStdout(), journal.Entries())
}
