package taggedfile

import (
	"sort"

	"helictag/internal/release"
	"helictag/internal/tagkey"
	"helictag/internal/track"
)

// Collection is a group of TaggedFiles representing one on-disk album
// (spec.md §3). It implements release.Like (a single-medium ReleaseLike)
// by deriving each release-level field via consensus across its files
// (spec.md §4.6).
type Collection struct {
	Files []*TaggedFile
}

// New builds a Collection, ordering files by path, which is the walk order
// within a group (spec.md §4.9).
func New(files []*TaggedFile) *Collection {
	sorted := make([]*TaggedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	return &Collection{Files: sorted}
}

func (c *Collection) fieldValues(key tagkey.Key) []*string {
	vs := make([]*string, len(c.Files))
	for i, f := range c.Files {
		vs[i] = f.ReleaseField(key)
	}
	return vs
}

func (c *Collection) consensusField(key tagkey.Key, isArtist bool) *string {
	v, ok := release.Consensus(c.fieldValues(key), isArtist)
	if !ok {
		return nil
	}
	return &v
}

func (c *Collection) ReleaseTitle() *string { return c.consensusField(tagkey.AlbumTitle, false) }
func (c *Collection) ReleaseArtist() *string { return c.consensusField(tagkey.AlbumArtist, true) }
func (c *Collection) MusicBrainzReleaseID() *string {
	return c.consensusField(tagkey.MusicBrainzReleaseID, false)
}
func (c *Collection) MediaFormat() *string { return c.consensusField(tagkey.MediaFormat, false) }
func (c *Collection) RecordLabel() *string { return c.consensusField(tagkey.RecordLabel, false) }
func (c *Collection) CatalogNumber() *string { return c.consensusField(tagkey.CatalogNumber, false) }
func (c *Collection) Barcode() *string { return c.consensusField(tagkey.Barcode, false) }

// Tracks implements release.Like, exposing each file as a track.Like in
// walk order.
func (c *Collection) Tracks() []track.Like {
	out := make([]track.Like, len(c.Files))
	for i, f := range c.Files {
		out[i] = f
	}
	return out
}

var _ release.Like = (*Collection)(nil)
var _ track.Like = (*TaggedFile)(nil)
