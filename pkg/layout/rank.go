package layout

import (
	"slices"
	"sort"
)

// assignRanks assigns every node an integer level using the configured
// strategy, then groups nodes into levels. Nodes left unreached by the
// longest-path sweep (disconnected components, or explicit roots that do
// not cover the graph) default to level 0 before any refinement runs, so
// refinement always starts from a fully ranked graph.
func assignRanks(lc *layoutContext, opts Options) {
	rankLongestPath(lc, detectRoots(lc, opts.RootNodes))

	for _, id := range lc.ids {
		if lc.nodes[id].level < 0 {
			lc.nodes[id].level = 0
		}
	}

	switch opts.Ranking {
	case RankingTightTree, RankingNetworkSimplex:
		// network-simplex is a documented alias: same refinement, not a
		// true simplex optimum.
		refineTightTree(lc, opts.TightTreePasses)
	}

	lc.buildLevels()
}

// detectRoots picks the starting set for rank assignment: explicit root ids
// filtered to existing nodes, else all zero-in-degree nodes, else - when the
// whole graph has no source at all - the single node with maximum
// out-degree (first in insertion order on ties).
func detectRoots(lc *layoutContext, explicit []string) []string {
	var roots []string
	for _, id := range explicit {
		if _, ok := lc.nodes[id]; ok && !slices.Contains(roots, id) {
			roots = append(roots, id)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	for _, id := range lc.ids {
		if len(lc.incoming[id]) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	if len(lc.ids) == 0 {
		return nil
	}
	best := lc.ids[0]
	for _, id := range lc.ids[1:] {
		if len(lc.outgoing[id]) > len(lc.outgoing[best]) {
			best = id
		}
	}
	return []string{best}
}

// rankLongestPath runs a worklist sweep from the roots: every node's level
// is the maximum of its current level and parent level + 1.
func rankLongestPath(lc *layoutContext, roots []string) {
	queue := make([]string, 0, len(roots))
	for _, id := range roots {
		if lc.nodes[id].level < 0 {
			lc.nodes[id].level = 0
		}
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, child := range lc.outgoing[id] {
			if l := lc.nodes[id].level + 1; l > lc.nodes[child].level {
				lc.nodes[child].level = l
				queue = append(queue, child)
			}
		}
	}
}

// refineTightTree iterates up to passes times: each node's ideal level is
// the median of {parent level + 1} ∪ {child level - 1}, and the node moves
// there only when every parent stays strictly below and every child strictly
// above. Stops early when a pass makes no moves.
func refineTightTree(lc *layoutContext, passes int) {
	for pass := 0; pass < passes; pass++ {
		moved := false

		for _, id := range lc.ids {
			n := lc.nodes[id]

			var implied []int
			for _, p := range lc.incoming[id] {
				implied = append(implied, lc.nodes[p].level+1)
			}
			for _, c := range lc.outgoing[id] {
				implied = append(implied, lc.nodes[c].level-1)
			}
			if len(implied) == 0 {
				continue
			}

			ideal := medianInt(implied)
			if ideal == n.level || ideal < 0 {
				continue
			}

			if !orderPreserving(lc, id, ideal) {
				continue
			}
			n.level = ideal
			moved = true
		}

		if !moved {
			break
		}
	}
}

// orderPreserving reports whether moving the node to the candidate level
// keeps all parents strictly below it and all children strictly above it.
func orderPreserving(lc *layoutContext, id string, level int) bool {
	for _, p := range lc.incoming[id] {
		if lc.nodes[p].level >= level {
			return false
		}
	}
	for _, c := range lc.outgoing[id] {
		if lc.nodes[c].level <= level {
			return false
		}
	}
	return true
}

// medianInt returns the statistical median of vs, truncated toward the low
// middle for even counts so the result stays a valid integer level.
func medianInt(vs []int) int {
	s := slices.Clone(vs)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
