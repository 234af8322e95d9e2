// Package ui provides the Bubbletea terminal user interface for wordsnip
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phonolab/wordsnip/internal/batch"
)

// maxRecent caps the list of recently finished files shown while running.
const maxRecent = 8

// Model is the Bubbletea model for the batch progress display. Files
// finish in worker order, so the model tracks counts and a rolling window
// of recent outcomes rather than a fixed queue.
type Model struct {
	Total     int
	Completed int
	Counts    map[batch.Reason]int
	Recent    []batch.Outcome

	StartTime time.Time
	Done      bool
	Err       error

	Width  int
	Height int
}

// NewModel creates a model for a batch of total files.
func NewModel(total int) Model {
	return Model{
		Total:     total,
		Counts:    make(map[batch.Reason]int),
		StartTime: time.Now(),
	}
}

// Init implements tea.Model. All updates arrive via Program.Send.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileDoneMsg:
		m.Completed++
		m.Counts[msg.Outcome.Reason]++
		m.Recent = append(m.Recent, msg.Outcome)
		if len(m.Recent) > maxRecent {
			m.Recent = m.Recent[len(m.Recent)-maxRecent:]
		}

	case BatchDoneMsg:
		m.Done = true
		return m, tea.Quit

	case BatchFailedMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderProgressView(m)
}

// Included returns the number of accepted files so far.
func (m Model) Included() int {
	return m.Counts[batch.ReasonIncluded]
}
