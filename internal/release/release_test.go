package release

import (
	"testing"
	"time"

	"helictag/internal/track"
)

func strp(s string) *string { return &s }

type stubRelease struct {
	title, artist, mbid, format, label, catalog, barcode *string
	tracks                                                []track.Like
}

func (r stubRelease) ReleaseTitle() *string         { return r.title }
func (r stubRelease) ReleaseArtist() *string        { return r.artist }
func (r stubRelease) MusicBrainzReleaseID() *string { return r.mbid }
func (r stubRelease) MediaFormat() *string          { return r.format }
func (r stubRelease) RecordLabel() *string          { return r.label }
func (r stubRelease) CatalogNumber() *string        { return r.catalog }
func (r stubRelease) Barcode() *string              { return r.barcode }
func (r stubRelease) Tracks() []track.Like          { return r.tracks }

func TestConsensusAgreement(t *testing.T) {
	values := []*string{strp("Foo"), strp("Foo"), strp("Foo")}
	got, ok := Consensus(values, false)
	if !ok || got != "Foo" {
		t.Fatalf("Consensus() = (%q,%v), want (Foo,true)", got, ok)
	}
}

func TestConsensusDisagreementNonArtist(t *testing.T) {
	values := []*string{strp("Foo"), strp("Bar")}
	_, ok := Consensus(values, false)
	if ok {
		t.Fatal("expected no consensus for disagreeing non-artist field")
	}
}

func TestConsensusArtistAllDistinct(t *testing.T) {
	values := []*string{strp("Alice"), strp("Bob"), strp("Carol")}
	got, ok := Consensus(values, true)
	if !ok || got != "Various Artists" {
		t.Fatalf("Consensus(artist) = (%q,%v), want (Various Artists,true)", got, ok)
	}
}

func TestConsensusArtistVAAlias(t *testing.T) {
	values := []*string{strp("VA"), strp("VA"), strp("va")}
	got, ok := Consensus(values, true)
	if !ok || got != "Various Artists" {
		t.Fatalf("Consensus(VA alias) = (%q,%v), want (Various Artists,true)", got, ok)
	}
}

func TestMostCommonTieBreaksByFirstOccurrence(t *testing.T) {
	values := []*string{strp("b"), strp("a"), strp("b"), strp("a")}
	got, count, total := MostCommon(values)
	if got != "b" || count != 2 || total != 4 {
		t.Fatalf("MostCommon() = (%q,%d,%d), want (b,2,4)", got, count, total)
	}
}

func TestReleaseTotalDistanceIdentity(t *testing.T) {
	lhs := stubRelease{title: strp("Album"), artist: strp("Artist"), tracks: titledTracks("a", "b")}
	rhs := stubRelease{title: strp("Album"), artist: strp("Artist"), tracks: titledTracks("a", "b")}
	w := Weights{ReleaseTitle: 1, ReleaseArtist: 1, TrackAssignment: 1, Track: track.Weights{TrackTitle: 1}}
	sim := Detect(lhs, rhs, w)
	if got := sim.WeightedTotalDistance(w).Base(); got > 1e-6 {
		t.Fatalf("identity comparison distance = %v, want ~0", got)
	}
}

func titledTracks(titles ...string) []track.Like {
	out := make([]track.Like, len(titles))
	for i, ti := range titles {
		out[i] = titleOnlyTrack{title: strp(ti)}
	}
	return out
}

type titleOnlyTrack struct{ title *string }

func (t titleOnlyTrack) TrackTitle() *string                          { return t.title }
func (t titleOnlyTrack) TrackArtist() *string                         { return nil }
func (t titleOnlyTrack) TrackNumber() *string                         { return nil }
func (t titleOnlyTrack) TrackLength() *time.Duration                  { return nil }
func (t titleOnlyTrack) MusicBrainzRecordingID() *string              { return nil }
