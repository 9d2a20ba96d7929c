// ABOUTME: Interactive TUI for composing a journal and saving it to a file.
// ABOUTME: Bubbletea model stepping through entry input, destination, and an async save.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

// Step represents the current compose step.
type Step int

const (
	StepCompose Step = iota
	StepDestination
	StepSaving
	StepDone
	StepFailed
)

// saveResultMsg carries the result of an async save attempt.
type saveResultMsg struct {
	err error
}

// ComposeModel is the bubbletea model for composing a journal.
// The journal pointer is shared by every copy of the model.
type ComposeModel struct {
	step     Step
	journal  *models.Journal
	entry    textinput.Model
	dest     textinput.Model
	spinner  spinner.Model
	saveFn   storage.SaveFunc
	saveErr  error
	saved    int // entries written by the last successful save
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	entryStyle   = lipgloss.NewStyle().PaddingLeft(2)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewComposeModel creates a compose model writing into journal, with destination pre-filled.
func NewComposeModel(journal *models.Journal, destination string) ComposeModel {
	entryInput := textinput.New()
	entryInput.Placeholder = "What happened today?"
	entryInput.Focus()
	entryInput.Width = 60

	destInput := textinput.New()
	destInput.Placeholder = "diary.txt"
	destInput.Width = 60
	if destination != "" {
		destInput.SetValue(destination)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ComposeModel{
		step:    StepCompose,
		journal: journal,
		entry:   entryInput,
		dest:    destInput,
		spinner: s,
		saveFn:  storage.Save,
	}
}

// Init implements tea.Model.
func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys are ignored until the save result arrives.
		if m.step == StepSaving {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepCompose:
			return m.updateCompose(msg)
		case StepDestination:
			return m.updateDestination(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case saveResultMsg:
		if msg.err == nil {
			m.step = StepDone
			m.saved = m.journal.Len()
			return m, tea.Quit
		}
		m.saveErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m ComposeModel) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if text := m.entry.Value(); text != "" {
			m.journal.AddEntry(text)
			m.entry.Reset()
		}
		return m, nil
	case tea.KeyCtrlS:
		m.entry.Blur()
		m.step = StepDestination
		m.dest.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m ComposeModel) updateDestination(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if strings.TrimSpace(m.dest.Value()) == "" {
			return m, nil
		}
		m.dest.Blur()
		m.step = StepSaving
		return m, tea.Batch(m.startSave(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.dest, cmd = m.dest.Update(msg)
	return m, cmd
}

func (m ComposeModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.step = StepSaving
		m.saveErr = nil
		return m, tea.Batch(m.startSave(), m.spinner.Tick)
	case "e":
		m.step = StepDestination
		m.saveErr = nil
		m.dest.Focus()
		return m, textinput.Blink
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ComposeModel) startSave() tea.Cmd {
	entries := m.journal.Entries()
	destination := strings.TrimSpace(m.dest.Value())
	fn := m.saveFn
	return func() tea.Msg {
		return saveResultMsg{err: fn(entries, destination)}
	}
}

// View implements tea.Model.
func (m ComposeModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DIARY"))
	b.WriteString(titleStyle.Render(" - " + m.journal.Title()))
	b.WriteString("\n\n")

	entries := m.journal.Entries()
	if len(entries) == 0 {
		b.WriteString(promptStyle.Render("  (no entries yet)"))
		b.WriteString("\n")
	}
	for _, e := range entries {
		b.WriteString(entryStyle.Render(e))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.step {
	case StepCompose:
		b.WriteString(stepStyle.Render(fmt.Sprintf("Entry %d", m.journal.Len()+1)))
		b.WriteString("\n")
		b.WriteString(m.entry.View())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("enter: add entry  ctrl+s: save  esc: quit"))
		b.WriteString("\n")

	case StepDestination:
		b.WriteString(stepStyle.Render("Save to"))
		b.WriteString("\n")
		b.WriteString(m.dest.View())
		b.WriteString("\n")

	case StepSaving:
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" Saving %d entries to %s...", len(entries), m.dest.Value()))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("waiting for the save to finish"))
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ Saved %d entries to %s", m.saved, m.dest.Value())))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.saveErr != nil {
			errMsg = m.saveErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [e]dit destination  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Destination returns the destination entered by the user.
func (m ComposeModel) Destination() string {
	return strings.TrimSpace(m.dest.Value())
}

// Saved returns true if the journal was written and the user did not cancel.
func (m ComposeModel) Saved() bool {
	return m.step == StepDone && !m.quitting
}
