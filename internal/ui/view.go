package ui

import "fmt"

// View satisfies tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Candidates for %s", m.itemLabel))

	if m.mode == modeManualInput {
		return title + "\n\n" + m.input.View() + "\n\n" + helpStyle.Render(" enter: confirm | esc: back to list")
	}

	body := m.viewport.View()
	status := statusStyle.Width(m.width).Render(fmt.Sprintf("%d candidate(s)", len(m.rows)-2))
	help := helpStyle.Render(" ↑/↓: navigate | enter: select | m: manual MusicBrainz ID | s: skip | q: quit")

	return title + "\n\n" + body + "\n" + status + "\n" + help
}
