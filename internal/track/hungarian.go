package track

import "math"

// hungarianMinimize solves the minimum-cost bipartite assignment for a
// possibly-rectangular n×m cost matrix. It pads to a square matrix with
// zero-cost dummy cells, runs the classic O(n^3) Kuhn-Munkres algorithm
// with potentials, then strips dummy assignments back out.
//
// Returns rowAssign (length n, -1 where a row has no real column) and
// colAssign (length m, -1 where a column has no real row).
func hungarianMinimize(cost [][]int64, n, m int) (rowAssign, colAssign []int) {
	sz := n
	if m > sz {
		sz = m
	}
	if sz == 0 {
		return nil, nil
	}

	// 1-indexed square cost matrix per the e-maxx formulation.
	a := make([][]int64, sz+1)
	for i := range a {
		a[i] = make([]int64, sz+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			a[i+1][j+1] = cost[i][j]
		}
	}

	const inf = math.MaxInt64 / 4
	u := make([]int64, sz+1)
	v := make([]int64, sz+1)
	p := make([]int, sz+1) // p[j] = row matched to column j
	way := make([]int, sz+1)

	for i := 1; i <= sz; i++ {
		p[0] = i
		j0 := 0
		minv := make([]int64, sz+1)
		used := make([]bool, sz+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0, delta, j1 := p[j0], int64(inf), -1
			for j := 1; j <= sz; j++ {
				if used[j] {
					continue
				}
				cur := a[i0][j] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= sz; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowAssign = make([]int, n)
	for i := range rowAssign {
		rowAssign[i] = -1
	}
	colAssign = make([]int, m)
	for j := range colAssign {
		colAssign[j] = -1
	}

	for j := 1; j <= sz; j++ {
		row := p[j] - 1
		col := j - 1
		if row < n && col < m {
			rowAssign[row] = col
			colAssign[col] = row
		}
	}
	return rowAssign, colAssign
}
