package scanner

import (
	"testing"

	"helictag/internal/taggedfile"
)

func TestReassemblerEmitsOnceGroupReachesExpectedCount(t *testing.T) {
	cardinalityChan := make(chan groupCardinality, 2)
	analyzedChan := make(chan groupFile, 4)
	out := make(chan groupResult, 2)

	cardinalityChan <- groupCardinality{groupID: 0, count: 2, dir: "/music/album"}
	analyzedChan <- groupFile{groupID: 0, file: &taggedfile.TaggedFile{Path: "a.mp3"}}
	analyzedChan <- groupFile{groupID: 0, file: &taggedfile.TaggedFile{Path: "b.mp3"}}
	close(cardinalityChan)
	close(analyzedChan)

	runReassembler(cardinalityChan, analyzedChan, out)

	var got []groupResult
	for c := range out {
		got = append(got, c)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 emitted collection, got %d", len(got))
	}
	if len(got[0].collection.Files) != 2 {
		t.Errorf("expected 2 files in the collection, got %d", len(got[0].collection.Files))
	}
	if got[0].dir != "/music/album" {
		t.Errorf("dir = %q, want /music/album", got[0].dir)
	}
}

func TestReassemblerCardinalityArrivingAfterFiles(t *testing.T) {
	cardinalityChan := make(chan groupCardinality, 2)
	analyzedChan := make(chan groupFile, 4)
	out := make(chan groupResult, 2)

	analyzedChan <- groupFile{groupID: 0, file: &taggedfile.TaggedFile{Path: "a.mp3"}}
	cardinalityChan <- groupCardinality{groupID: 0, count: 1}
	close(cardinalityChan)
	close(analyzedChan)

	runReassembler(cardinalityChan, analyzedChan, out)

	var got []groupResult
	for c := range out {
		got = append(got, c)
	}
	if len(got) != 1 || len(got[0].collection.Files) != 1 {
		t.Fatalf("expected one 1-file collection, got %+v", got)
	}
}

func TestReassemblerKeepsGroupsIndependent(t *testing.T) {
	cardinalityChan := make(chan groupCardinality, 2)
	analyzedChan := make(chan groupFile, 4)
	out := make(chan groupResult, 2)

	cardinalityChan <- groupCardinality{groupID: 0, count: 1}
	cardinalityChan <- groupCardinality{groupID: 1, count: 1}
	analyzedChan <- groupFile{groupID: 1, file: &taggedfile.TaggedFile{Path: "b.mp3"}}
	analyzedChan <- groupFile{groupID: 0, file: &taggedfile.TaggedFile{Path: "a.mp3"}}
	close(cardinalityChan)
	close(analyzedChan)

	runReassembler(cardinalityChan, analyzedChan, out)

	count := 0
	for range out {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 independent single-file collections, got %d", count)
	}
}
