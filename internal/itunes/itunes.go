// Package itunes reads an iTunes Library XML export via
// github.com/dhowden/itl and exposes its per-track fields as hints keyed
// by filesystem path. This is a best-effort, supplementary source: when a
// local file carries no title or track-number tag, its iTunes entry (if
// any) fills the gap before a MusicBrainz lookup runs (spec.md §4.4,
// SPEC_FULL §6).
package itunes

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dhowden/itl"
)

// Hint is the subset of an iTunes Library track entry useful as a
// fallback for local tag gaps.
type Hint struct {
	TrackTitle  string
	Artist      string
	Album       string
	TrackNumber int
	DiscNumber  int
}

// Library indexes an iTunes Library XML export by each track's decoded
// filesystem path.
type Library struct {
	hints map[string]Hint
}

// Load parses the iTunes Library XML file at path. A malformed or missing
// library file is not fatal to the caller — it is treated as "no hints
// available" (spec.md §7: hint sources degrade gracefully).
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("itunes: open %s: %w", path, err)
	}
	defer f.Close()

	lib, err := itl.ReadFromXML(f)
	if err != nil {
		return nil, fmt.Errorf("itunes: parse %s: %w", path, err)
	}

	l := &Library{hints: map[string]Hint{}}
	for _, t := range lib.Tracks {
		fsPath, ok := locationToPath(t.Location)
		if !ok {
			continue
		}
		l.hints[fsPath] = Hint{
			TrackTitle:  t.Name,
			Artist:      t.Artist,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			DiscNumber:  t.DiscNumber,
		}
	}
	return l, nil
}

// HintFor returns the iTunes hint for path, if the library has one.
func (l *Library) HintFor(path string) (Hint, bool) {
	h, ok := l.hints[path]
	return h, ok
}

// locationToPath decodes an iTunes "file://" track location into a plain
// filesystem path.
func locationToPath(location string) (string, bool) {
	if location == "" {
		return "", false
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	p := u.Path
	if p == "" {
		return "", false
	}
	return strings.TrimSuffix(p, "/"), true
}
