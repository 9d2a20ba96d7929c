// ABOUTME: Cobra command for composing a journal interactively.
// ABOUTME: Launches the bubbletea compose TUI and reports where the journal was saved.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/logging"
	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/tui"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a journal interactively",
	Long:  "Type entries one at a time, then save the journal to a file.",
	RunE:  runCompose,
}

var composeOut string

func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringVarP(&composeOut, "out", "o", "", "Destination file to pre-fill (default: configured output dir and filename)")
}

func runCompose(cmd *cobra.Command, args []string) error {
	journal := models.NewJournal(globalConfig.Journal.Title)

	dest := composeOut
	if dest == "" {
		var err error
		if dest, err = globalConfig.Destination(journal); err != nil {
			return fmt.Errorf("failed to resolve destination: %w", err)
		}
	}

	p := tea.NewProgram(tui.NewComposeModel(journal, dest))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.ComposeModel)
	if !final.Saved() {
		fmt.Fprintln(cmd.OutOrStdout(), "Journal discarded.")
		return nil
	}

	logging.FromContext(cmd.Context()).Info("journal saved", "journal_id", journal.ID, "destination", final.Destination(), "entries", journal.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "Journal saved to %s\n", final.Destination())
	return nil
}
