package release

import "sort"

// Candidate pairs a release value with its computed similarity to the base
// (local) release. T is typically a *musicbrainz.Release.
type Candidate[T any] struct {
	Release    T
	Similarity Similarity
	distance   float64 // cached WeightedTotalDistance().Base(), set at insertion
}

// Collection keeps candidates sorted by total distance on insertion,
// ties broken by insertion order (stable).
type Collection[T any] struct {
	items []Candidate[T]
}

// NewCollection returns an empty sorted candidate collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Insert adds a candidate, keeping the collection sorted by distance.
func (c *Collection[T]) Insert(release T, sim Similarity, w Weights) {
	cand := Candidate[T]{Release: release, Similarity: sim, distance: sim.WeightedTotalDistance(w).Base()}
	idx := sort.Search(len(c.items), func(i int) bool { return c.items[i].distance > cand.distance })
	c.items = append(c.items, Candidate[T]{})
	copy(c.items[idx+1:], c.items[idx:])
	c.items[idx] = cand
}

// Len reports the number of candidates currently held.
func (c *Collection[T]) Len() int { return len(c.items) }

// At returns the candidate at position i, 0 being the closest match.
func (c *Collection[T]) At(i int) Candidate[T] { return c.items[i] }

// Distance returns the candidate's cached weighted total distance, for
// display in the candidate picker.
func (c Candidate[T]) Distance() float64 { return c.distance }

// All returns the candidates in ranked order.
func (c *Collection[T]) All() []Candidate[T] { return c.items }

// FindIndex returns the index of the first candidate satisfying pred, or -1.
func (c *Collection[T]) FindIndex(pred func(Candidate[T]) bool) int {
	for i, cand := range c.items {
		if pred(cand) {
			return i
		}
	}
	return -1
}

// SelectIndex removes and returns the candidate at index i — the user's
// chosen release, consuming the collection's claim on it.
func (c *Collection[T]) SelectIndex(i int) (Candidate[T], bool) {
	if i < 0 || i >= len(c.items) {
		return Candidate[T]{}, false
	}
	chosen := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return chosen, true
}

// Truncate keeps only the first n (closest) candidates, implementing the
// configured release_candidate_limit.
func (c *Collection[T]) Truncate(n int) {
	if n >= 0 && n < len(c.items) {
		c.items = c.items[:n]
	}
}
