// Package track computes per-field similarity between two tracks and the
// optimal bipartite assignment between two track lists.
package track

import (
	"time"

	"helictag/internal/distance"
)

// Like is the read-only capability set a value must expose to participate
// in track similarity scoring. A local tagged file and a MusicBrainz
// recording both implement it; comparisons operate against the interface,
// never against a concrete container type.
type Like interface {
	TrackTitle() *string
	TrackArtist() *string
	TrackNumber() *string
	TrackLength() *time.Duration
	MusicBrainzRecordingID() *string
}

// Weights holds the configured per-field weights used when summing a
// TrackSimilarity into a total distance.
type Weights struct {
	TrackTitle             float64
	TrackArtist            float64
	TrackNumber            float64
	TrackLength            float64
	MusicBrainzRecordingID float64
}

// Similarity holds one required Distance (title) and optional Distances for
// fields that only contribute when present on both sides.
type Similarity struct {
	Title                  distance.Distance
	Artist                 *distance.Distance
	Number                 *distance.Distance
	Length                 *distance.Distance
	MusicBrainzRecordingID *distance.Distance
}

// Detect computes the Similarity between two tracks using the supplied
// weights. Title is always option-lifted (required field, missing-on-one-
// side still yields MAX via BetweenOptionsOrMinMax); the rest only
// contribute when both sides carry a value.
func Detect(lhs, rhs Like, w Weights) Similarity {
	sim := Similarity{
		Title: distance.BetweenOptionsOrMinMax(lhs.TrackTitle(), rhs.TrackTitle(), distance.BetweenStrings).
			WithWeight(w.TrackTitle),
	}

	if a, b := lhs.TrackArtist(), rhs.TrackArtist(); a != nil && b != nil {
		d := distance.BetweenStrings(*a, *b).WithWeight(w.TrackArtist)
		sim.Artist = &d
	}
	if a, b := lhs.TrackNumber(), rhs.TrackNumber(); a != nil && b != nil {
		d := distance.BetweenStrings(*a, *b).WithWeight(w.TrackNumber)
		sim.Number = &d
	}
	if a, b := lhs.TrackLength(), rhs.TrackLength(); a != nil && b != nil {
		d := distance.BetweenDurations(*a, *b).WithWeight(w.TrackLength)
		sim.Length = &d
	}
	if a, b := lhs.MusicBrainzRecordingID(), rhs.MusicBrainzRecordingID(); a != nil && b != nil {
		d := distance.EqualIdentifier(*a, *b).WithWeight(w.MusicBrainzRecordingID)
		sim.MusicBrainzRecordingID = &d
	}
	return sim
}

// TotalDistance sums whichever fields are present into a single weighted
// average distance.
func (s Similarity) TotalDistance() distance.Distance {
	ds := []distance.Distance{s.Title}
	for _, d := range []*distance.Distance{s.Artist, s.Number, s.Length, s.MusicBrainzRecordingID} {
		if d != nil {
			ds = append(ds, *d)
		}
	}
	return distance.Sum(ds)
}

// IsTitleEqual, IsArtistEqual etc. are convenience predicates that report
// whether a field compared as an exact match.
func (s Similarity) IsTitleEqual() bool { return s.Title.IsEqual() }

func (s Similarity) IsArtistEqual() bool { return s.Artist != nil && s.Artist.IsEqual() }

func (s Similarity) IsNumberEqual() bool { return s.Number != nil && s.Number.IsEqual() }

func (s Similarity) IsLengthEqual() bool { return s.Length != nil && s.Length.IsEqual() }
