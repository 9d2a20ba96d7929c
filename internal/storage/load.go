// ABOUTME: Reads persisted journal files back into entry lines and journals.
// ABOUTME: Lets callers resume numbering where a saved journal left off.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2389-research/diary/internal/models"
)

// ErrSourceUnreadable wraps failures to open or read a persisted journal file.
var ErrSourceUnreadable = errors.New("source unreadable")

// ReadEntries returns the lines of source in order, without their trailing
// newline. Only '\n' ends a line: a '\r' inside an entry is kept, and line
// length is unbounded.
func ReadEntries(source string) ([]string, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, source, err)
		}
		if line != "" {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			return lines, nil
		}
	}
}

// LoadJournal rebuilds a journal from a file written by Save.
func LoadJournal(title, source string) (*models.Journal, error) {
	lines, err := ReadEntries(source)
	if err != nil {
		return nil, err
	}
	j, err := models.RestoreJournal(title, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", source, err)
	}
	return j, nil
}
