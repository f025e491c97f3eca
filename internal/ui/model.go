// Package ui implements the interactive candidate-selection prompt
// (spec.md §6), adapted from stojg-playlist-sorter/tui's bubbletea model
// into a single scrollable list of release candidates plus "enter
// MusicBrainz ID" and "skip" actions, grounded on
// original_source/src/cli/ui/select_candidate.rs's three-way choice.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helictag/internal/musicbrainz"
	"helictag/internal/release"
)

// ActionKind is the outcome of a candidate-selection session.
type ActionKind int

const (
	// ActionNone means the prompt was quit without a decision.
	ActionNone ActionKind = iota
	ActionSelect
	ActionSkip
	ActionManualMBID
)

// Result is what a Run call resolves to.
type Result struct {
	Action     ActionKind
	Index      int    // valid when Action == ActionSelect
	ManualMBID string // valid when Action == ActionManualMBID
}

// row is one selectable line: either a ranked candidate or one of the two
// trailing actions.
type rowKind int

const (
	rowCandidate rowKind = iota
	rowEnterMBID
	rowSkip
)

type row struct {
	kind      rowKind
	candidate release.Candidate[*musicbrainz.Release]
}

const (
	minViewportHeight = 5
	statusBarHeight   = 1
	titleHeight       = 2
	helpHeight        = 1
)

type mode int

const (
	modeList mode = iota
	modeManualInput
)

// Model is the bubbletea model for one candidate-selection prompt.
type Model struct {
	itemLabel string // e.g. the local release's artist/title, shown in the title bar
	rows      []row

	mode     mode
	cursor   int
	viewport viewport.Model
	input    textinput.Model

	width, height int
	result        Result
	done          bool
}

// New builds a Model over candidates for the given local item label.
func New(itemLabel string, candidates *release.Collection[*musicbrainz.Release]) Model {
	var rows []row
	for _, c := range candidates.All() {
		rows = append(rows, row{kind: rowCandidate, candidate: c})
	}
	rows = append(rows, row{kind: rowEnterMBID}, row{kind: rowSkip})

	ti := textinput.New()
	ti.Placeholder = "MusicBrainz release ID or URL"
	ti.CharLimit = 200

	vp := viewport.New(80, minViewportHeight)

	m := Model{itemLabel: itemLabel, rows: rows, viewport: vp, input: ti}
	m.refreshContent()
	return m
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd { return nil }

var keys = struct {
	Up, Down, Enter, Skip, Manual, Quit key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Enter:  key.NewBinding(key.WithKeys("enter")),
	Skip:   key.NewBinding(key.WithKeys("s")),
	Manual: key.NewBinding(key.WithKeys("m")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)
)

func formatRow(r row) string {
	switch r.kind {
	case rowEnterMBID:
		return "Enter MusicBrainz ID"
	case rowSkip:
		return "Skip item"
	default:
		c := r.candidate
		artist := ""
		title := ""
		if v := c.Release.ReleaseArtist(); v != nil {
			artist = *v
		}
		if v := c.Release.ReleaseTitle(); v != nil {
			title = *v
		}
		return fmt.Sprintf("%s - %s (%.3f)", artist, title, c.Distance())
	}
}

func (m *Model) refreshContent() {
	var content string
	for i, r := range m.rows {
		line := formatRow(r)
		if i == m.cursor {
			line = cursorStyle.Render("► " + line)
		} else {
			line = "  " + line
		}
		content += line + "\n"
	}
	m.viewport.SetContent(content)
}
