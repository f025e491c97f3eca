// Package musicbrainz implements the MusicBrainz web service v2 client
// (lookup by id, by release-group, and similarity-driven search) behind a
// disk cache (spec.md §4.10), using github.com/go-resty/resty/v2 for HTTP
// transport, grounded on
// kirbs-btw-spotify-playlist-dataset/main.go's resty.New() client idiom.
package musicbrainz

import (
	"time"

	"helictag/internal/release"
	"helictag/internal/tagkey"
	"helictag/internal/track"
)

// Release is the MusicBrainz side of the release/track comparison: a
// shared-owned graph (spec.md §9) of media and tracks, with per-field
// getters implementing release.Like / track.Like so scoring code never
// special-cases "is this local or remote".
type Release struct {
	ID           string
	Title        string
	ArtistCredit string
	Media        []Medium
	Format       string // first medium's format, for release-level comparison
	Label        string
	CatalogNum   string
	Barcode      string
	Date         string

	// Performers holds release-level artist relations (e.g. production
	// credits), parsed from the release's own "relations" array.
	Performers []tagkey.PerformerCredit
}

// Medium is one disc/side within a Release.
type Medium struct {
	Format string
	Position int
	Tracks   []Track
}

// Track is one MusicBrainz recording as it appears on a medium.
type Track struct {
	Title       string
	ArtistCredit string
	Number      string
	Length      time.Duration
	RecordingID string

	// Performers holds the recording's artist relations (spec.md §4.11:
	// "Performer(involvement)"), parsed from recording-rels/artist-rels.
	Performers []tagkey.PerformerCredit
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- release.Like ---

func (r *Release) ReleaseTitle() *string            { return strPtr(r.Title) }
func (r *Release) ReleaseArtist() *string           { return strPtr(r.ArtistCredit) }
func (r *Release) MusicBrainzReleaseID() *string    { return strPtr(r.ID) }
func (r *Release) MediaFormat() *string             { return strPtr(r.Format) }
func (r *Release) RecordLabel() *string             { return strPtr(r.Label) }
func (r *Release) CatalogNumber() *string           { return strPtr(r.CatalogNum) }
func (r *Release) Barcode() *string                 { return strPtr(r.Barcode) }

// Tracks flattens every medium's tracks in medium-then-position order, for
// release-level comparison against a single-medium local collection
// (spec.md §3: TaggedFileCollection "acts as ... a single-medium
// MediaLike").
func (r *Release) Tracks() []track.Like {
	var out []track.Like
	for i := range r.Media {
		for j := range r.Media[i].Tracks {
			out = append(out, &r.Media[i].Tracks[j])
		}
	}
	return out
}

// --- track.Like ---

func (t *Track) TrackTitle() *string  { return strPtr(t.Title) }
func (t *Track) TrackArtist() *string { return strPtr(t.ArtistCredit) }
func (t *Track) TrackNumber() *string { return strPtr(t.Number) }
func (t *Track) TrackLength() *time.Duration {
	if t.Length == 0 {
		return nil
	}
	d := t.Length
	return &d
}
func (t *Track) MusicBrainzRecordingID() *string { return strPtr(t.RecordingID) }

var _ track.Like = (*Track)(nil)
var _ release.Like = (*Release)(nil)
