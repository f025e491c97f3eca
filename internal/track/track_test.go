package track

import (
	"math"
	"testing"
	"time"
)

// stubTrack is a minimal Like implementation for tests, mirroring the
// original's TestTrack fixture.
type stubTrack struct {
	title, artist, number, mbid *string
}

func s(v string) *string { return &v }

func (t stubTrack) TrackTitle() *string             { return t.title }
func (t stubTrack) TrackArtist() *string            { return t.artist }
func (t stubTrack) TrackNumber() *string            { return t.number }
func (t stubTrack) TrackLength() *time.Duration     { return nil }
func (t stubTrack) MusicBrainzRecordingID() *string { return t.mbid }

func titled(title string) stubTrack { return stubTrack{title: s(title)} }

func titledList(titles []string) []Like {
	out := make([]Like, len(titles))
	for i, t := range titles {
		out[i] = titled(t)
	}
	return out
}

var defaultWeights = Weights{TrackTitle: 1, TrackArtist: 1, TrackNumber: 1, TrackLength: 1, MusicBrainzRecordingID: 1}

func TestTrackSimilarityTitleExact(t *testing.T) {
	sim := Detect(titled("foo"), titled("foo"), defaultWeights)
	if !sim.IsTitleEqual() {
		t.Fatal("expected exact title match")
	}
}

func TestTrackSimilarityTitleDistinct(t *testing.T) {
	sim := Detect(titled("foo"), titled("completely different"), defaultWeights)
	if sim.TotalDistance().Base() == 0 {
		t.Fatal("expected nonzero distance for distinct titles")
	}
}

func TestAssignmentScenarioA(t *testing.T) {
	lhs := titledList([]string{"foo", "bar", "uvw", "qrst", "xyz"})
	rhs := titledList([]string{"xyz", "qrst", "foo", "bar", "uvw"})
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched) != 5 || len(a.Unmatched) != 0 {
		t.Fatalf("scenario A: matched=%d unmatched=%d", len(a.Matched), len(a.Unmatched))
	}
	if got := a.WeightedDistance().Base(); got > 0.01 {
		t.Fatalf("scenario A weighted distance = %v, want ~0", got)
	}
}

func TestAssignmentScenarioB(t *testing.T) {
	lhs := titledList([]string{"foo", "bar"})
	rhs := titledList([]string{"qrst", "xyz"})
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched) != 2 || len(a.Unmatched) != 0 {
		t.Fatalf("scenario B: matched=%d unmatched=%d", len(a.Matched), len(a.Unmatched))
	}
	if got := a.MatchedTracksDistance().Base(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("scenario B per-cell distance = %v, want 1.0", got)
	}
	if got := a.WeightedDistance().Base() * a.WeightedDistance().Weight(); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("scenario B weighted distance*weight = %v, want 2.0", got)
	}
}

func TestAssignmentScenarioCLeftResidual(t *testing.T) {
	lhs := titledList([]string{"foo", "bar", "uvw"})
	rhs := titledList([]string{"qrst", "xyz"})
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched) != 2 || len(a.Unmatched) != 1 || a.UnmatchedSource != UnmatchedLeft {
		t.Fatalf("scenario C: matched=%d unmatched=%d source=%v", len(a.Matched), len(a.Unmatched), a.UnmatchedSource)
	}
	wd := a.WeightedDistance()
	if got := wd.Base() * wd.Weight(); math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("scenario C weighted distance*weight = %v, want 3.0", got)
	}
}

func TestAssignmentScenarioDRightResidual(t *testing.T) {
	lhs := titledList([]string{"foo", "bar"})
	rhs := titledList([]string{"uvw", "qrst", "xyz"})
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched) != 2 || len(a.Unmatched) != 1 || a.UnmatchedSource != UnmatchedRight {
		t.Fatalf("scenario D: matched=%d unmatched=%d source=%v", len(a.Matched), len(a.Unmatched), a.UnmatchedSource)
	}
	wd := a.WeightedDistance()
	if got := wd.Base() * wd.Weight(); math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("scenario D weighted distance*weight = %v, want 3.0", got)
	}
}

func TestAssignmentScenarioEEmptyRight(t *testing.T) {
	lhs := titledList([]string{"foo", "bar"})
	var rhs []Like
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched) != 0 || len(a.Unmatched) != 2 || a.UnmatchedSource != UnmatchedLeft {
		t.Fatalf("scenario E: matched=%d unmatched=%d source=%v", len(a.Matched), len(a.Unmatched), a.UnmatchedSource)
	}
	wd := a.WeightedDistance()
	if got := wd.Base() * wd.Weight(); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("scenario E weighted distance*weight = %v, want 2.0", got)
	}
}

func TestAssignmentInvariants(t *testing.T) {
	lhs := titledList([]string{"a", "b", "c", "d"})
	rhs := titledList([]string{"x", "y"})
	a := ComputeAssignment(lhs, rhs, defaultWeights)
	if len(a.Matched)+len(a.Unmatched) != max(len(lhs), len(rhs)) {
		t.Fatal("matched+unmatched must equal max(len(lhs),len(rhs))")
	}
	if len(a.Unmatched) != absInt(len(lhs)-len(rhs)) {
		t.Fatal("unmatched count must equal |len(lhs)-len(rhs)|")
	}
	if a.UnmatchedSource != UnmatchedLeft {
		t.Fatal("unmatched source should be Left when lhs longer")
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
