// Package release computes release-level similarity (field differences plus
// a track assignment) and maintains a sorted collection of scored
// candidates.
package release

import (
	"helictag/internal/distance"
	"helictag/internal/track"
)

// Like is the read-only capability set for a release-level comparison.
// A TaggedFileCollection (viewed via consensus) and a MusicBrainz release
// both implement it.
type Like interface {
	ReleaseTitle() *string
	ReleaseArtist() *string
	MusicBrainzReleaseID() *string
	MediaFormat() *string
	RecordLabel() *string
	CatalogNumber() *string
	Barcode() *string
	Tracks() []track.Like
}

// Weights holds the configured per-field weights for release-level scoring.
type Weights struct {
	ReleaseTitle           float64
	ReleaseArtist          float64
	MusicBrainzReleaseID   float64
	MediaFormat            float64
	RecordLabel            float64
	CatalogNumber          float64
	Barcode                float64
	TrackAssignment        float64
	Track                  track.Weights
}

// Similarity holds per-field Differences plus the track assignment.
type Similarity struct {
	ReleaseTitle          distance.Difference
	ReleaseArtist         distance.Difference
	MusicBrainzReleaseID  distance.Difference
	MediaFormat           distance.Difference
	RecordLabel           distance.Difference
	CatalogNumber         distance.Difference
	Barcode               distance.Difference
	TrackAssignment       track.Assignment
}

// Detect computes the ReleaseSimilarity between two releases, including the
// optimal track-to-track assignment.
func Detect(lhs, rhs Like, w Weights) Similarity {
	return Similarity{
		ReleaseTitle:         distance.BetweenOptionStrings(lhs.ReleaseTitle(), rhs.ReleaseTitle()),
		ReleaseArtist:        distance.BetweenOptionStrings(lhs.ReleaseArtist(), rhs.ReleaseArtist()),
		MusicBrainzReleaseID: distance.BetweenOptionIdentifiers(lhs.MusicBrainzReleaseID(), rhs.MusicBrainzReleaseID()),
		MediaFormat:          distance.BetweenOptionStrings(lhs.MediaFormat(), rhs.MediaFormat()),
		RecordLabel:          distance.BetweenOptionStrings(lhs.RecordLabel(), rhs.RecordLabel()),
		CatalogNumber:        distance.BetweenOptionIdentifiers(lhs.CatalogNumber(), rhs.CatalogNumber()),
		Barcode:              distance.BetweenOptionIdentifiers(lhs.Barcode(), rhs.Barcode()),
		TrackAssignment:      track.ComputeAssignment(lhs.Tracks(), rhs.Tracks(), w.Track),
	}
}

// TotalDistance is the weight-weighted sum of the release-level fields
// (title always contributes; the rest only when both sides are present)
// plus the assignment's weighted distance (weight = total track count).
func (s Similarity) TotalDistance() distance.Distance {
	ds := []distance.Distance{s.ReleaseTitle.ToDistance()}
	// Unweighted view (weight=1 on every field); WeightedTotalDistance below
	// is what candidate ranking actually uses.
	for _, d := range []distance.Difference{s.ReleaseArtist, s.MusicBrainzReleaseID, s.MediaFormat, s.RecordLabel, s.CatalogNumber, s.Barcode} {
		if p := d.ToDistanceIfBothPresent(); p != nil {
			ds = append(ds, *p)
		}
	}
	ds = append(ds, s.TrackAssignment.WeightedDistance())
	return distance.Sum(ds)
}

// WeightedTotalDistance applies w to each field before summing, matching
// spec.md §4.6 exactly: title always contributes (option-lifted), the rest
// only when both sides are present, plus the assignment distance weighted
// by total track count.
func (s Similarity) WeightedTotalDistance(w Weights) distance.Distance {
	ds := []distance.Distance{s.ReleaseTitle.ToDistance().WithWeight(w.ReleaseTitle)}

	add := func(d distance.Difference, weight float64) {
		if p := d.ToDistanceIfBothPresent(); p != nil {
			withW := p.WithWeight(weight)
			ds = append(ds, withW)
		}
	}
	add(s.ReleaseArtist, w.ReleaseArtist)
	add(s.MusicBrainzReleaseID, w.MusicBrainzReleaseID)
	add(s.MediaFormat, w.MediaFormat)
	add(s.RecordLabel, w.RecordLabel)
	add(s.CatalogNumber, w.CatalogNumber)
	add(s.Barcode, w.Barcode)

	assignWeighted := s.TrackAssignment.WeightedDistance()
	totalTracks := assignWeighted.Weight() * w.TrackAssignment
	ds = append(ds, distance.New(assignWeighted.Base()).WithWeight(totalTracks))

	return distance.Sum(ds)
}

// Problem is a surfaced discrepancy a candidate may have relative to the
// local release, for display in the candidate picker.
type Problem struct {
	Kind           ProblemKind
	UnmatchedCount int
}

type ProblemKind int

const (
	ProblemMissingTracks ProblemKind = iota
	ProblemResidualTracks
	ProblemWrongReleaseID
)

// Problems enumerates the candidate's §4.6 problem stream.
func (s Similarity) Problems() []Problem {
	var problems []Problem
	switch s.TrackAssignment.UnmatchedSource {
	case track.UnmatchedRight:
		problems = append(problems, Problem{Kind: ProblemMissingTracks, UnmatchedCount: len(s.TrackAssignment.Unmatched)})
	case track.UnmatchedLeft:
		problems = append(problems, Problem{Kind: ProblemResidualTracks, UnmatchedCount: len(s.TrackAssignment.Unmatched)})
	}
	if s.MusicBrainzReleaseID.Kind() == distance.BothPresent && !s.MusicBrainzReleaseID.IsEqual() {
		problems = append(problems, Problem{Kind: ProblemWrongReleaseID})
	}
	return problems
}
