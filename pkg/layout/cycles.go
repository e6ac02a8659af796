package layout

import "slices"

// breakCycles makes the adjacency graph acyclic by reversing back edges
// found during depth-first search. Returns the number of edge records
// reversed.
//
// The traversal uses white/gray/black coloring: a neighbor that is still on
// the active path (gray) closes a cycle, so the edge into it is reversed in
// the adjacency sets and on the edge records, and the walk continues. DFS
// restarts from every remaining unvisited node, covering disconnected
// components; graphs with multiple disjoint cycles each contribute at least
// one reversal.
//
// The search runs on an explicit frame stack rather than recursion, so deep
// graphs cannot overflow the goroutine stack. Each frame snapshots its
// neighbor list at push time; edges added by reversals point from an
// ancestor to a node already in the current tree and are never re-examined
// by the walk that created them.
func breakCycles(lc *layoutContext) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(lc.nodes))
	reversals := 0

	type frame struct {
		id        string
		neighbors []string
		next      int
	}

	for _, start := range lc.ids {
		if color[start] != white {
			continue
		}

		stack := []frame{{id: start, neighbors: slices.Clone(lc.outgoing[start])}}
		color[start] = gray

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next >= len(f.neighbors) {
				color[f.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			nb := f.neighbors[f.next]
			f.next++

			switch color[nb] {
			case white:
				color[nb] = gray
				stack = append(stack, frame{id: nb, neighbors: slices.Clone(lc.outgoing[nb])})
			case gray:
				reversals += lc.reverseAdjacency(f.id, nb)
			}
		}
	}

	return reversals
}
