package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		viewportHeight := msg.Height - titleHeight - statusBarHeight - helpHeight
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}
		m.viewport.Height = viewportHeight
		m.input.Width = msg.Width - 4
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeManualInput {
			return m.updateManualInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.done = true
		m.result = Result{Action: ActionNone}
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, keys.Skip):
		m.done = true
		m.result = Result{Action: ActionSkip}
		return m, tea.Quit

	case key.Matches(msg, keys.Manual):
		m.mode = modeManualInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Enter):
		return m.resolveCursor()
	}
	return m, nil
}

func (m Model) resolveCursor() (tea.Model, tea.Cmd) {
	r := m.rows[m.cursor]
	switch r.kind {
	case rowSkip:
		m.done = true
		m.result = Result{Action: ActionSkip}
		return m, tea.Quit
	case rowEnterMBID:
		m.mode = modeManualInput
		m.input.Focus()
		return m, nil
	default:
		m.done = true
		m.result = Result{Action: ActionSelect, Index: indexOfCandidateRow(m.rows, m.cursor)}
		return m, tea.Quit
	}
}

// indexOfCandidateRow converts a cursor position into the candidate's
// position within the original collection (skipping the two trailing
// action rows).
func indexOfCandidateRow(rows []row, cursor int) int {
	count := 0
	for i, r := range rows {
		if r.kind != rowCandidate {
			continue
		}
		if i == cursor {
			return count
		}
		count++
	}
	return -1
}

func (m Model) updateManualInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		if value == "" {
			m.mode = modeList
			m.input.Blur()
			return m, nil
		}
		m.done = true
		m.result = Result{Action: ActionManualMBID, ManualMBID: value}
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
