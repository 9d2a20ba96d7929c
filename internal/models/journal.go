// ABOUTME: Journal record holding a title and an append-only list of numbered entries.
// ABOUTME: Defines the "<n>: <text>" entry format and rebuilds journals from persisted lines.
package models

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// entrySeparator sits between the sequence number and the entry text.
const entrySeparator = ": "

// ErrMalformedEntry is returned when a persisted line is not a valid numbered entry.
var ErrMalformedEntry = errors.New("malformed journal entry")

// Journal keeps a titled, ordered, append-only sequence of numbered entries.
// A Journal is not safe for concurrent use.
type Journal struct {
	ID      uuid.UUID
	title   string
	entries []string
	next    int // number assigned to the next appended entry
}

// NewJournal creates an empty journal. Numbering starts at 1 for every journal.
func NewJournal(title string) *Journal {
	return &Journal{
		ID:    uuid.New(),
		title: title,
		next:  1,
	}
}

// RestoreJournal rebuilds a journal from previously persisted entry lines.
// Lines must be numbered 1..N in order; numbering of new entries continues at N+1.
func RestoreJournal(title string, lines []string) (*Journal, error) {
	j := NewJournal(title)
	for i, line := range lines {
		n, _, err := ParseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if n != i+1 {
			return nil, fmt.Errorf("line %d: %w: expected number %d, got %d", i+1, ErrMalformedEntry, i+1, n)
		}
		j.entries = append(j.entries, line)
	}
	j.next = len(lines) + 1
	return j, nil
}

// Title returns the title given at construction.
func (j *Journal) Title() string {
	return j.title
}

// AddEntry numbers text with the next sequence value and appends it.
func (j *Journal) AddEntry(text string) {
	j.entries = append(j.entries, FormatEntry(j.next, text))
	j.next++
}

// Entries returns a copy of the formatted entries in insertion order.
func (j *Journal) Entries() []string {
	return slices.Clone(j.entries)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// ShortID returns the first 8 characters of the journal ID.
func (j *Journal) ShortID() string {
	return j.ID.String()[:8]
}

// FormatEntry renders an entry as "<n>: <text>".
func FormatEntry(n int, text string) string {
	return strconv.Itoa(n) + entrySeparator + text
}

// ParseEntry splits a "<n>: <text>" line into its number and text.
func ParseEntry(line string) (int, string, error) {
	num, text, ok := strings.Cut(line, entrySeparator)
	if !ok {
		return 0, "", fmt.Errorf("%w: missing %q separator in %q", ErrMalformedEntry, entrySeparator, line)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || num != strconv.Itoa(n) {
		return 0, "", fmt.Errorf("%w: invalid sequence number %q", ErrMalformedEntry, num)
	}
	return n, text, nil
}
