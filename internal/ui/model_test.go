package ui

import (
	"fmt"
	"strings"
	"testing"

	"helictag/internal/musicbrainz"
	"helictag/internal/release"
)

func TestIndexOfCandidateRowSkipsActionRows(t *testing.T) {
	rows := []row{
		{kind: rowCandidate},
		{kind: rowCandidate},
		{kind: rowEnterMBID},
		{kind: rowSkip},
	}
	if got := indexOfCandidateRow(rows, 1); got != 1 {
		t.Errorf("indexOfCandidateRow(rows, 1) = %d, want 1", got)
	}
	if got := indexOfCandidateRow(rows, 2); got != -1 {
		t.Errorf("indexOfCandidateRow(rows, 2) [EnterMBID row] = %d, want -1", got)
	}
}

func TestNewAppendsManualAndSkipRows(t *testing.T) {
	collection := release.NewCollection[*musicbrainz.Release]()
	weights := release.Weights{ReleaseTitle: 1}
	collection.Insert(&musicbrainz.Release{Title: "A"}, release.Similarity{}, weights)
	collection.Insert(&musicbrainz.Release{Title: "B"}, release.Similarity{}, weights)

	m := New("local item", collection)
	if len(m.rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4 (2 candidates + manual + skip)", len(m.rows))
	}
	if m.rows[2].kind != rowEnterMBID || m.rows[3].kind != rowSkip {
		t.Errorf("expected trailing rows to be [EnterMBID, Skip], got %+v", m.rows[2:])
	}
}

func TestFormatRowForCandidateIncludesTitleAndDistance(t *testing.T) {
	collection := release.NewCollection[*musicbrainz.Release]()
	weights := release.Weights{ReleaseTitle: 1}
	collection.Insert(&musicbrainz.Release{Title: "Remote Album", ArtistCredit: "Remote Artist"}, release.Similarity{}, weights)

	m := New("local item", collection)
	line := formatRow(m.rows[0])
	if line == "" {
		t.Fatal("expected non-empty formatted row")
	}
	if !strings.Contains(line, "Remote Album") {
		t.Errorf("row %q does not include the release title", line)
	}
	wantDistance := fmt.Sprintf("(%.3f)", m.rows[0].candidate.Distance())
	if !strings.Contains(line, wantDistance) {
		t.Errorf("row %q does not include the distance %s", line, wantDistance)
	}
}
