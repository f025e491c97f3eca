package track

import "helictag/internal/distance"

// UnmatchedSource identifies which side of an assignment contributed the
// unmatched indices.
type UnmatchedSource int

const (
	UnmatchedNone UnmatchedSource = iota
	UnmatchedLeft
	UnmatchedRight
)

// MatchPair is one row/column pairing chosen by the assignment solver.
type MatchPair struct {
	LeftIndex  int
	RightIndex int
	Similarity Similarity
}

// Assignment is the optimal bipartite matching between two ordered track
// lists of possibly different length.
type Assignment struct {
	Matched          []MatchPair
	Unmatched        []int
	UnmatchedSource  UnmatchedSource
	matchedDistance  distance.Distance
	matchedDistSet   bool
}

// trackDistancePrecisionFactor scales the [0,1] float similarity into the
// non-negative integer cost the Hungarian solver requires.
const trackDistancePrecisionFactor = 100_000.0

// ComputeAssignment solves the optimal assignment between lhs and rhs using
// the Hungarian algorithm over the scaled TrackSimilarity matrix.
func ComputeAssignment(lhs, rhs []Like, w Weights) Assignment {
	n, m := len(lhs), len(rhs)

	if n == 0 || m == 0 {
		a := Assignment{matchedDistance: distance.MaxDistance, matchedDistSet: true}
		switch {
		case n == 0 && m == 0:
			a.UnmatchedSource = UnmatchedNone
		case n == 0:
			a.UnmatchedSource = UnmatchedRight
			for i := 0; i < m; i++ {
				a.Unmatched = append(a.Unmatched, i)
			}
		default:
			a.UnmatchedSource = UnmatchedLeft
			for i := 0; i < n; i++ {
				a.Unmatched = append(a.Unmatched, i)
			}
		}
		return a
	}

	simMatrix := make([][]Similarity, n)
	costMatrix := make([][]int64, n)
	for i := 0; i < n; i++ {
		simMatrix[i] = make([]Similarity, m)
		costMatrix[i] = make([]int64, m)
		for j := 0; j < m; j++ {
			sim := Detect(lhs[i], rhs[j], w)
			simMatrix[i][j] = sim
			cost := int64(sim.TotalDistance().Base() * trackDistancePrecisionFactor)
			if cost < 0 {
				cost = 0
			}
			costMatrix[i][j] = cost
		}
	}

	rowAssign, _ := hungarianMinimize(costMatrix, n, m)

	var a Assignment
	var totalDist float64
	for i, j := range rowAssign {
		if j < 0 {
			continue
		}
		a.Matched = append(a.Matched, MatchPair{LeftIndex: i, RightIndex: j, Similarity: simMatrix[i][j]})
		totalDist += simMatrix[i][j].TotalDistance().Base()
	}
	if len(a.Matched) > 0 {
		a.matchedDistance = distance.New(totalDist / float64(len(a.Matched)))
	} else {
		a.matchedDistance = distance.MaxDistance
	}
	a.matchedDistSet = true

	switch {
	case n > m:
		a.UnmatchedSource = UnmatchedLeft
		for i, j := range rowAssign {
			if j < 0 {
				a.Unmatched = append(a.Unmatched, i)
			}
		}
	case m > n:
		a.UnmatchedSource = UnmatchedRight
		for j := 0; j < m; j++ {
			if _, ok := colIndexMatched(rowAssign, j); !ok {
				a.Unmatched = append(a.Unmatched, j)
			}
		}
	default:
		a.UnmatchedSource = UnmatchedNone
	}

	return a
}

func colIndexMatched(rowAssign []int, col int) (int, bool) {
	for i, j := range rowAssign {
		if j == col {
			return i, true
		}
	}
	return -1, false
}

// MatchedTracksDistance is the average of the per-cell float distances of
// the chosen cells (MAX by convention when either side was empty).
func (a Assignment) MatchedTracksDistance() distance.Distance {
	if !a.matchedDistSet {
		return distance.MaxDistance
	}
	return a.matchedDistance
}

// WeightedDistance combines matched and unmatched contributions: matched
// distance times matched count, plus MAX times unmatched count, exposed
// with weight = matched+unmatched.
func (a Assignment) WeightedDistance() distance.Distance {
	matchedCount := len(a.Matched)
	unmatchedCount := len(a.Unmatched)
	total := matchedCount + unmatchedCount
	if total == 0 {
		return distance.MinDistance
	}
	sum := a.MatchedTracksDistance().Base()*float64(matchedCount) + float64(unmatchedCount)
	return distance.New(sum / float64(total)).WithWeight(float64(total))
}

// MapLeftToRight builds an index lookup from left (local file) index to
// right (candidate track) index for matched pairs.
func (a Assignment) MapLeftToRight() map[int]int {
	m := make(map[int]int, len(a.Matched))
	for _, p := range a.Matched {
		m[p.LeftIndex] = p.RightIndex
	}
	return m
}

// MapRightToLeft is the inverse of MapLeftToRight.
func (a Assignment) MapRightToLeft() map[int]int {
	m := make(map[int]int, len(a.Matched))
	for _, p := range a.Matched {
		m[p.RightIndex] = p.LeftIndex
	}
	return m
}
