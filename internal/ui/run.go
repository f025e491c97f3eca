package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"helictag/internal/musicbrainz"
	"helictag/internal/release"
)

// Run presents candidates for one local release and blocks until the user
// selects a candidate, enters a manual MusicBrainz ID, or skips
// (spec.md §6).
func Run(itemLabel string, candidates *release.Collection[*musicbrainz.Release]) (Result, error) {
	m := New(itemLabel, candidates)
	p := tea.NewProgram(m)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("ui: candidate prompt: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("ui: unexpected final model type %T", final)
	}
	return fm.result, nil
}
