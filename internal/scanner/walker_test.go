package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWalkVisitsParentBeforeGrandchildren(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "artist", "album")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeTemp(t, sub, "01.mp3")

	entries := Walk(root)

	index := map[string]int{}
	for i, e := range entries {
		index[e.Dir] = i
	}
	if index[root] >= index[filepath.Join(root, "artist")] {
		t.Errorf("root should be visited before its child directory")
	}
	if index[filepath.Join(root, "artist")] >= index[sub] {
		t.Errorf("artist dir should be visited before album dir")
	}
}

func TestWalkIsDepthFirstNotBreadthFirst(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	bChild := filepath.Join(b, "child")
	if err := os.MkdirAll(a, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.MkdirAll(bChild, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	entries := Walk(root)

	index := map[string]int{}
	for i, e := range entries {
		index[e.Dir] = i
	}
	// A breadth-first walk would visit every child of root (a, b) before
	// descending into either, so b/child would come after a. A depth-first
	// walk exhausts b's subtree, including b/child, before backtracking to
	// a sibling it hasn't entered yet.
	if index[bChild] >= index[a] {
		t.Errorf("expected depth-first traversal to visit %s before %s, got order %+v", bChild, a, index)
	}
}

func TestWalkFiltersUnsupportedExtensions(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "track.mp3")
	writeTemp(t, root, "cover.jpg")
	writeTemp(t, root, "notes.txt")

	entries := Walk(root)
	if len(entries) != 1 {
		t.Fatalf("expected 1 DirEntry, got %d", len(entries))
	}
	if len(entries[0].Files) != 1 || filepath.Base(entries[0].Files[0]) != "track.mp3" {
		t.Errorf("expected only track.mp3, got %v", entries[0].Files)
	}
}

func TestWalkSortsFilesLexicographically(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "02.mp3")
	writeTemp(t, root, "01.mp3")
	writeTemp(t, root, "10.mp3")

	entries := Walk(root)
	got := entries[0].Files
	want := []string{"01.mp3", "02.mp3", "10.mp3"}
	for i, w := range want {
		if filepath.Base(got[i]) != w {
			t.Errorf("Files[%d] = %q, want %q", i, filepath.Base(got[i]), w)
		}
	}
}

func TestWalkMissingRootRecordsErrWithoutPanicking(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	entries := Walk(root)

	if len(entries) != 1 || entries[0].Err == nil {
		t.Fatalf("expected a single Err entry for a missing root, got %+v", entries)
	}
}
