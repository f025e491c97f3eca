package importer

import (
	"testing"

	"helictag/internal/musicbrainz"
	"helictag/internal/tagio"
	"helictag/internal/tagkey"
	"helictag/internal/taggedfile"
	"helictag/internal/track"
)

// fakeContainer is a minimal in-memory tagio.Container for tests that
// don't need real ID3v2/Vorbis encoding.
type fakeContainer struct {
	values     map[tagkey.Key][]string
	performers []tagkey.PerformerCredit
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{values: map[tagkey.Key][]string{}}
}

func (c *fakeContainer) Type() tagio.Type { return tagio.TypeVorbis }
func (c *fakeContainer) Get(key tagkey.Key) (string, bool) {
	vs := c.values[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
func (c *fakeContainer) GetMultiple(key tagkey.Key) []string { return c.values[key] }
func (c *fakeContainer) Set(key tagkey.Key, value string)    { c.values[key] = []string{value} }
func (c *fakeContainer) SetMultiple(key tagkey.Key, values []string) {
	c.values[key] = values
}
func (c *fakeContainer) Clear(key tagkey.Key) { delete(c.values, key) }
func (c *fakeContainer) Performers() []tagkey.PerformerCredit { return c.performers }
func (c *fakeContainer) SetPerformers(credits []tagkey.PerformerCredit) {
	c.performers = credits
}
func (c *fakeContainer) Raw() map[string][]string { return nil }

func TestApplyTagsWritesReleaseAndTrackFieldsOnMatchedFiles(t *testing.T) {
	f0 := &taggedfile.TaggedFile{Path: "01.flac", Tags: newFakeContainer()}
	f1 := &taggedfile.TaggedFile{Path: "02.flac", Tags: newFakeContainer()}
	collection := taggedfile.New([]*taggedfile.TaggedFile{f0, f1})

	remote := &musicbrainz.Release{
		ID:           "release-mbid",
		Title:        "Remote Album",
		ArtistCredit: "Remote Artist",
		Media: []musicbrainz.Medium{{
			Tracks: []musicbrainz.Track{
				{Title: "Remote Track One", Number: "1", RecordingID: "rec-1"},
				{Title: "Remote Track Two", Number: "2", RecordingID: "rec-2"},
			},
		}},
	}

	assignment := track.Assignment{Matched: []track.MatchPair{
		{LeftIndex: 0, RightIndex: 0},
		{LeftIndex: 1, RightIndex: 1},
	}}

	if err := ApplyTags(collection, remote, assignment); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}

	title, _ := f0.Tags.Get(tagkey.AlbumTitle)
	if title != "Remote Album" {
		t.Errorf("AlbumTitle = %q, want %q", title, "Remote Album")
	}
	trackTitle, _ := f0.Tags.Get(tagkey.TrackTitle)
	if trackTitle != "Remote Track One" {
		t.Errorf("TrackTitle = %q, want %q", trackTitle, "Remote Track One")
	}
	recID, _ := f1.Tags.Get(tagkey.MusicBrainzRecordingID)
	if recID != "rec-2" {
		t.Errorf("f1 MusicBrainzRecordingID = %q, want rec-2", recID)
	}
}

func TestApplyTagsWritesMergedPerformerCredits(t *testing.T) {
	f0 := &taggedfile.TaggedFile{Path: "01.flac", Tags: newFakeContainer()}
	collection := taggedfile.New([]*taggedfile.TaggedFile{f0})

	remote := &musicbrainz.Release{
		ID:         "release-mbid",
		Title:      "Remote Album",
		Performers: []tagkey.PerformerCredit{{Involvement: "producer", Involvee: "Jane Producer"}},
		Media: []musicbrainz.Medium{{
			Tracks: []musicbrainz.Track{{
				Title:      "Remote Track One",
				Number:     "1",
				Performers: []tagkey.PerformerCredit{{Involvement: "guitar", Involvee: "John Guitarist"}},
			}},
		}},
	}
	assignment := track.Assignment{Matched: []track.MatchPair{{LeftIndex: 0, RightIndex: 0}}}

	if err := ApplyTags(collection, remote, assignment); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}

	got := f0.Tags.Performers()
	want := []tagkey.PerformerCredit{
		{Involvement: "producer", Involvee: "Jane Producer"},
		{Involvement: "guitar", Involvee: "John Guitarist"},
	}
	if len(got) != len(want) {
		t.Fatalf("Performers() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Performers()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestApplyTagsClearsPerformersWhenNoneSupplied(t *testing.T) {
	f0 := &taggedfile.TaggedFile{Path: "01.flac", Tags: newFakeContainer()}
	f0.Tags.SetPerformers([]tagkey.PerformerCredit{{Involvement: "stale", Involvee: "Old Credit"}})
	collection := taggedfile.New([]*taggedfile.TaggedFile{f0})

	remote := &musicbrainz.Release{
		ID:    "release-mbid",
		Title: "Remote Album",
		Media: []musicbrainz.Medium{{Tracks: []musicbrainz.Track{{Title: "Remote Track One", Number: "1"}}}},
	}
	assignment := track.Assignment{Matched: []track.MatchPair{{LeftIndex: 0, RightIndex: 0}}}

	if err := ApplyTags(collection, remote, assignment); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}

	if got := f0.Tags.Performers(); len(got) != 0 {
		t.Errorf("Performers() = %+v, want none after clearing with no supplied credits", got)
	}
}

func TestApplyTagsLeavesUnmatchedFilesUntouched(t *testing.T) {
	matched := &taggedfile.TaggedFile{Path: "01.flac", Tags: newFakeContainer()}
	unmatched := &taggedfile.TaggedFile{Path: "bonus.flac", Tags: newFakeContainer()}
	collection := taggedfile.New([]*taggedfile.TaggedFile{matched, unmatched})

	remote := &musicbrainz.Release{
		ID:    "release-mbid",
		Title: "Remote Album",
		Media: []musicbrainz.Medium{{Tracks: []musicbrainz.Track{{Title: "Remote Track One", Number: "1"}}}},
	}
	assignment := track.Assignment{Matched: []track.MatchPair{{LeftIndex: 0, RightIndex: 0}}}

	if err := ApplyTags(collection, remote, assignment); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}

	if _, ok := unmatched.Tags.Get(tagkey.AlbumTitle); ok {
		t.Error("unmatched file should not receive AlbumTitle")
	}
}

func TestApplyTagsPrefersOwnAnalysisOverRemoteMetadata(t *testing.T) {
	f0 := &taggedfile.TaggedFile{
		Path: "01.flac",
		Tags: newFakeContainer(),
		Analysis: &taggedfile.AnalysisResult{
			BPM: taggedfile.Ok(128.4),
			Loudness: taggedfile.Ok(taggedfile.LoudnessResult{
				IntegratedLoudness: -14.0,
				ChannelPeaks:       []float64{0.9, 0.85},
				GatingBlockCount:   10,
				GatingEnergy:       1.0,
			}),
		},
	}
	collection := taggedfile.New([]*taggedfile.TaggedFile{f0})
	remote := &musicbrainz.Release{
		ID:    "release-mbid",
		Title: "Remote Album",
		Media: []musicbrainz.Medium{{Tracks: []musicbrainz.Track{{Title: "Remote Track One", Number: "1"}}}},
	}
	assignment := track.Assignment{Matched: []track.MatchPair{{LeftIndex: 0, RightIndex: 0}}}

	if err := ApplyTags(collection, remote, assignment); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}

	bpm, ok := f0.Tags.Get(tagkey.TrackBPM)
	if !ok || bpm != "128" {
		t.Errorf("TrackBPM = %q, ok=%v, want 128", bpm, ok)
	}
	if _, ok := f0.Tags.Get(tagkey.ReplayGainTrackGain); !ok {
		t.Fatal("expected ReplayGainTrackGain to be set from analysis")
	}
}
