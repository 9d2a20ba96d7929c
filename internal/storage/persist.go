// ABOUTME: Newline-delimited persistence of journal entries to a file destination.
// ABOUTME: Kept apart from the journal record so storage changes stay in one place.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/2389-research/diary/internal/models"
)

// ErrDestinationUnwritable wraps every failure to create, write, or close a destination.
var ErrDestinationUnwritable = errors.New("destination unwritable")

// SaveFunc persists entries to a destination. Save satisfies it.
type SaveFunc func(entries []string, destination string) error

// Save writes entries to destination, one per line, replacing any existing content.
// The destination's parent directory must already exist.
func Save(entries []string, destination string) (err error) {
	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrDestinationUnwritable, cerr)
		}
	}()

	if err := WriteEntries(f, entries); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, destination, err)
	}
	return nil
}

// SaveJournal writes the journal's entries to destination.
func SaveJournal(j *models.Journal, destination string) error {
	return Save(j.Entries(), destination)
}

// WriteEntries writes each entry followed by a line break.
func WriteEntries(w io.Writer, entries []string) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(e); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
