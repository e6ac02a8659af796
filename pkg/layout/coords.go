package layout

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// assignCoordinates converts levels and orders into real (x, y) coordinates.
// All strategies start from the simple even spacing; brandes-kopf (and its
// alias tight) add an iterative alignment pass and optional compaction. A
// final global shift brings the minimum bound to exactly the configured
// margin, and grid snapping rounds coordinates to multiples of the grid
// size without pulling the bounds back under the margin.
func assignCoordinates(lc *layoutContext, opts Options) {
	if len(lc.levels) == 0 {
		return
	}

	assignSimple(lc, opts)

	if opts.Coordinates == CoordinatesBrandesKopf || opts.Coordinates == CoordinatesTight {
		alignIterative(lc, opts)
		if opts.Compact {
			compactLevels(lc, opts)
		}
	}

	applyMargin(lc, opts)
	if opts.AlignToGrid && opts.GridSize > 0 {
		snapToGrid(lc, opts)
	}
}

// assignSimple spaces levels evenly along the primary axis by the level
// separation (iteration reversed for BT and RL) and centers each level's
// nodes symmetrically around zero on the cross axis at the node-separation
// pitch. Horizontal directions swap which real axis is primary.
func assignSimple(lc *layoutContext, opts Options) {
	count := len(lc.levels)
	for i, level := range lc.levels {
		coord := float64(i) * opts.LevelSeparation
		if opts.Direction.reversed() {
			coord = float64(count-1-i) * opts.LevelSeparation
		}
		lc.levelCoords[i] = coord

		for j, n := range level {
			cross := (float64(j) - float64(len(level)-1)/2) * opts.NodeSeparation
			if opts.Direction.horizontal() {
				n.x = coord
				n.y = cross
			} else {
				n.x = cross
				n.y = coord
			}
		}
	}
}

// alignIterative runs alternating alignment passes: even iterations pull
// every node toward the mean cross-axis coordinate of its parents, odd
// iterations toward its children. A move is applied only when it keeps at
// least half the node separation to both immediate level-neighbors, so
// within-level order is never disturbed.
func alignIterative(lc *layoutContext, opts Options) {
	minGap := opts.NodeSeparation / 2

	for iter := 0; iter < opts.AlignmentIterations; iter++ {
		if iter%2 == 0 {
			for level := 1; level < len(lc.levels); level++ {
				alignLevel(lc, level, level-1, minGap, opts.Direction)
			}
		} else {
			for level := len(lc.levels) - 2; level >= 0; level-- {
				alignLevel(lc, level, level+1, minGap, opts.Direction)
			}
		}
	}
}

func alignLevel(lc *layoutContext, level, adjacent int, minGap float64, dir Direction) {
	nodes := lc.levels[level]
	for j, n := range nodes {
		var coords []float64
		for _, id := range neighborIDs(lc, n, adjacent) {
			if nb := lc.nodes[id]; nb.level == adjacent {
				coords = append(coords, lc.cross(nb, dir))
			}
		}
		if len(coords) == 0 {
			continue
		}

		ideal := stat.Mean(coords, nil)
		if j > 0 && ideal-lc.cross(nodes[j-1], dir) < minGap {
			continue
		}
		if j+1 < len(nodes) && lc.cross(nodes[j+1], dir)-ideal < minGap {
			continue
		}
		lc.setCross(n, dir, ideal)
	}
}

func neighborIDs(lc *layoutContext, n *lnode, adjacent int) []string {
	if adjacent < n.level {
		return lc.incoming[n.id]
	}
	return lc.outgoing[n.id]
}

// compactLevels re-sorts each level by current cross-axis position, pulls
// nodes together from the low end at exactly the node-separation pitch, and
// re-centers the whole layout on the cross axis.
func compactLevels(lc *layoutContext, opts Options) {
	dir := opts.Direction

	for i, level := range lc.levels {
		if len(level) == 0 {
			continue
		}
		slices.SortStableFunc(level, func(a, b *lnode) int {
			return cmp.Compare(lc.cross(a, dir), lc.cross(b, dir))
		})
		base := lc.cross(level[0], dir)
		for j, n := range level {
			lc.setCross(n, dir, base+float64(j)*opts.NodeSeparation)
			n.order = j
		}
		lc.levels[i] = level
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, id := range lc.ids {
		c := lc.cross(lc.nodes[id], dir)
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	shift := -(lo + hi) / 2
	for _, id := range lc.ids {
		n := lc.nodes[id]
		lc.setCross(n, dir, lc.cross(n, dir)+shift)
	}
}

// applyMargin shifts all coordinates so the minimum bound on each axis is
// exactly the configured margin.
func applyMargin(lc *layoutContext, opts Options) {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, id := range lc.ids {
		n := lc.nodes[id]
		minX = math.Min(minX, n.x)
		minY = math.Min(minY, n.y)
	}

	dx, dy := opts.Margin-minX, opts.Margin-minY
	for _, id := range lc.ids {
		n := lc.nodes[id]
		n.x += dx
		n.y += dy
	}
	for i := range lc.levelCoords {
		if opts.Direction.horizontal() {
			lc.levelCoords[i] += dx
		} else {
			lc.levelCoords[i] += dy
		}
	}
}

// snapToGrid rounds every coordinate to the nearest multiple of the grid
// size. Rounding can pull the minimum bound under the margin, so the layout
// is then shifted by whole grid cells until both grid alignment and the
// margin bound hold.
func snapToGrid(lc *layoutContext, opts Options) {
	grid := opts.GridSize
	snap := func(v float64) float64 { return math.Round(v/grid) * grid }

	minX, minY := math.Inf(1), math.Inf(1)
	for _, id := range lc.ids {
		n := lc.nodes[id]
		n.x = snap(n.x)
		n.y = snap(n.y)
		minX = math.Min(minX, n.x)
		minY = math.Min(minY, n.y)
	}

	var dx, dy float64
	if minX < opts.Margin {
		dx = math.Ceil((opts.Margin-minX)/grid) * grid
	}
	if minY < opts.Margin {
		dy = math.Ceil((opts.Margin-minY)/grid) * grid
	}
	if dx == 0 && dy == 0 {
		return
	}
	for _, id := range lc.ids {
		n := lc.nodes[id]
		n.x += dx
		n.y += dy
	}
}
