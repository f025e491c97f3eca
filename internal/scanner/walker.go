package scanner

import (
	"container/heap"
	"os"
	"path/filepath"
	"sort"

	"helictag/internal/tagio"
)

// DirEntry is one directory visited by Walk: its path and its supported-tag
// files (sorted lexicographically) (spec.md §4.12). The directory's
// subdirectories are pushed onto the walk queue but are not recorded in
// the entry.
type DirEntry struct {
	Dir     string
	Files   []string
	Err     error // non-nil if this directory could not be read; Files empty
}

// pathHeap is a max-heap of pending directory paths, grounded on
// original_source/src/util/fs.rs's DirWalk, whose queue field is a
// std::collections::BinaryHeap<PathBuf> (a max-heap by default). Popping
// the lexicographically greatest pending path rather than the
// earliest-queued one is what makes the traversal depth-first: once a
// directory's children are pushed, every path under it sorts ahead of its
// not-yet-visited siblings (a longer path with the same prefix is always
// greater), so the whole subtree drains before the walk backtracks.
type pathHeap []string

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return h[i] > h[j] } // max-heap
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(string)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Walk performs the depth-first traversal of spec.md §4.12: a max-priority
// queue over pending paths, so a directory's whole subtree is exhausted
// before any not-yet-visited sibling is popped (ground truth:
// original_source/src/util/fs.rs's walk_dir/DirWalk.next, built on a
// BinaryHeap<PathBuf>). I/O errors for one directory yield one DirEntry
// with Err set and do not abort the traversal of the rest of the queue
// (spec.md §7).
func Walk(root string) []DirEntry {
	var out []DirEntry
	pending := &pathHeap{root}
	heap.Init(pending)

	for pending.Len() > 0 {
		dir := heap.Pop(pending).(string)

		entries, err := os.ReadDir(dir)
		if err != nil {
			out = append(out, DirEntry{Dir: dir, Err: err})
			continue
		}

		var files []string
		var subdirs []string
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			if e.IsDir() {
				subdirs = append(subdirs, full)
				continue
			}
			if tagio.IsSupported(full) {
				files = append(files, full)
			}
		}
		sort.Strings(files)

		out = append(out, DirEntry{Dir: dir, Files: files})
		for _, sd := range subdirs {
			heap.Push(pending, sd)
		}
	}
	return out
}
