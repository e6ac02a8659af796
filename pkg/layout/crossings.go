package layout

import (
	"cmp"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// minimizeCrossings reorders nodes within each level to reduce edge
// crossings between adjacent levels, and returns the crossing count of the
// ordering it settles on.
//
// Each iteration is one full sweep: even iterations run top to bottom,
// aligning every level to the one above it; odd iterations run bottom to
// top, aligning to the level below. After every iteration the total crossing
// count is recomputed and the lowest-crossing ordering observed across all
// iterations is retained, so the result never regresses relative to the best
// found. With [CrossingNone] no sweeping happens and the insertion order's
// count is reported.
func minimizeCrossings(lc *layoutContext, opts Options) int {
	if len(lc.levels) == 0 {
		return 0
	}
	if opts.Crossing == CrossingNone {
		return totalCrossings(lc)
	}

	best := captureOrders(lc)
	bestCount := totalCrossings(lc)

	for iter := 0; iter < opts.CrossingIterations; iter++ {
		if iter%2 == 0 {
			for level := 1; level < len(lc.levels); level++ {
				sweepLevel(lc, level, level-1, opts.Crossing)
			}
		} else {
			for level := len(lc.levels) - 2; level >= 0; level-- {
				sweepLevel(lc, level, level+1, opts.Crossing)
			}
		}

		if count := totalCrossings(lc); count < bestCount {
			bestCount = count
			best = captureOrders(lc)
		}
	}

	restoreOrders(lc, best)
	return bestCount
}

// sweepLevel recomputes a target position for every node in the level from
// its neighbors in the fixed adjacent level, then reorders the level by
// those positions. Nodes with no neighbors in the adjacent level keep their
// current order value as their position, so they stay put relative to the
// moving ones. The sort is stable, keeping ties deterministic.
func sweepLevel(lc *layoutContext, level, adjacent int, heuristic Crossing) {
	nodes := lc.levels[level]
	if len(nodes) < 2 {
		return
	}

	positions := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		orders := neighborOrders(lc, n, adjacent)
		if len(orders) == 0 {
			positions[n.id] = float64(n.order)
			continue
		}
		if heuristic == CrossingMedian {
			positions[n.id] = median(orders)
		} else {
			positions[n.id] = stat.Mean(orders, nil)
		}
	}

	slices.SortStableFunc(nodes, func(a, b *lnode) int {
		return cmp.Compare(positions[a.id], positions[b.id])
	})
	for i, n := range nodes {
		n.order = i
	}
}

// neighborOrders collects the order values of the node's neighbors that sit
// in the given adjacent level. When the adjacent level is above, neighbors
// come from the incoming sets; below, from the outgoing sets.
func neighborOrders(lc *layoutContext, n *lnode, adjacent int) []float64 {
	var ids []string
	if adjacent < n.level {
		ids = lc.incoming[n.id]
	} else {
		ids = lc.outgoing[n.id]
	}

	var orders []float64
	for _, id := range ids {
		if nb := lc.nodes[id]; nb.level == adjacent {
			orders = append(orders, float64(nb.order))
		}
	}
	return orders
}

// median returns the statistical median: the middle value for odd counts,
// the average of the two middle values for even counts.
//
// gonum's quantile interpolation does not reproduce the two-middle average
// exactly, so this is computed directly on a sorted copy.
func median(vs []float64) float64 {
	s := slices.Clone(vs)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// totalCrossings sums the crossing counts of every adjacent level pair.
func totalCrossings(lc *layoutContext) int {
	total := 0
	for i := 0; i+1 < len(lc.levels); i++ {
		total += levelCrossings(lc, lc.levels[i], lc.levels[i+1])
	}
	return total
}

// levelCrossings counts edge crossings between two adjacent levels using a
// Fenwick tree for O(E log V) inversion counting. Two segments (u1,v1) and
// (u2,v2) cross exactly when pos(u1) < pos(u2) and pos(v1) > pos(v2), which
// is an inversion in the target positions once segments are sorted by source
// position.
func levelCrossings(lc *layoutContext, upper, lower []*lnode) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := make(map[string]int, len(lower))
	for i, n := range lower {
		lowerPos[n.id] = i
	}

	type segment struct{ upper, lower int }
	var segments []segment
	for i, n := range upper {
		for _, child := range lc.outgoing[n.id] {
			if pos, ok := lowerPos[child]; ok {
				segments = append(segments, segment{i, pos})
			}
		}
	}
	if len(segments) < 2 {
		return 0
	}

	slices.SortFunc(segments, func(a, b segment) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, s := range segments {
		// Count segments seen so far with target <= s.lower; the rest cross.
		lessOrEqual := 0
		for q := s.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := s.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// captureOrders snapshots the current per-level node order.
func captureOrders(lc *layoutContext) [][]*lnode {
	snap := make([][]*lnode, len(lc.levels))
	for i, level := range lc.levels {
		snap[i] = slices.Clone(level)
	}
	return snap
}

// restoreOrders reinstates a snapshot taken by captureOrders.
func restoreOrders(lc *layoutContext, snap [][]*lnode) {
	for i, level := range snap {
		lc.levels[i] = slices.Clone(level)
		for j, n := range lc.levels[i] {
			n.order = j
		}
	}
}
