package layout

import "slices"

// lnode is the engine's working node record. Levels and orders start at -1
// and are filled in by the ranking and ordering phases.
type lnode struct {
	id      string
	level   int
	order   int
	dummy   bool
	edgeKey string // originating edge key, set only for dummy nodes
	x, y    float64
}

// ledge is the engine's working edge record. Source and target are swapped
// in place when the cycle breaker reverses the edge.
type ledge struct {
	key      string
	source   string
	target   string
	reversed bool
	dummies  []string // synthetic routing node ids, low level to high
	points   []Point  // polyline, filled by the router
}

// layoutContext holds all state for one layout computation. It is built
// fresh by every call to [Engine.Layout] and never shared, which keeps the
// engine reentrant across sequential calls and trivially poolable.
//
// Adjacency is kept as ordered slices with set semantics: iteration follows
// insertion order (never Go map order) so results stay deterministic.
type layoutContext struct {
	ids      []string // node ids in insertion order, dummies appended last
	nodes    map[string]*lnode
	edges    []*ledge
	outgoing map[string][]string
	incoming map[string][]string

	levels      [][]*lnode // per-level node lists, index == level
	levelCoords []float64  // primary-axis coordinate per level
}

func newLayoutContext() *layoutContext {
	return &layoutContext{
		nodes:    make(map[string]*lnode),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// addNode registers a node in insertion order. Re-adding an existing id
// replaces the record and moves it to the back of the ordering: the last
// occurrence wins.
func (lc *layoutContext) addNode(n *lnode) {
	if _, exists := lc.nodes[n.id]; exists {
		lc.ids = slices.DeleteFunc(lc.ids, func(id string) bool { return id == n.id })
	}
	lc.nodes[n.id] = n
	lc.ids = append(lc.ids, n.id)
}

// addAdjacency inserts from→to into the adjacency sets, ignoring duplicates.
func (lc *layoutContext) addAdjacency(from, to string) {
	if !slices.Contains(lc.outgoing[from], to) {
		lc.outgoing[from] = append(lc.outgoing[from], to)
	}
	if !slices.Contains(lc.incoming[to], from) {
		lc.incoming[to] = append(lc.incoming[to], from)
	}
}

// removeAdjacency deletes from→to from the adjacency sets if present.
func (lc *layoutContext) removeAdjacency(from, to string) {
	lc.outgoing[from] = slices.DeleteFunc(lc.outgoing[from], func(s string) bool { return s == to })
	lc.incoming[to] = slices.DeleteFunc(lc.incoming[to], func(s string) bool { return s == from })
}

// reverseAdjacency flips from→to into to→from and marks every edge record
// with that orientation as reversed. Adjacency is a set, so parallel edge
// records are flipped together to stay consistent with it.
func (lc *layoutContext) reverseAdjacency(from, to string) int {
	lc.removeAdjacency(from, to)
	lc.addAdjacency(to, from)

	flipped := 0
	for _, e := range lc.edges {
		if e.source == from && e.target == to {
			e.source, e.target = e.target, e.source
			e.reversed = true
			flipped++
		}
	}
	return flipped
}

// buildLevels groups ranked nodes into per-level lists in insertion order
// and seeds each node's order with its list index.
func (lc *layoutContext) buildLevels() {
	maxLevel := -1
	for _, id := range lc.ids {
		if l := lc.nodes[id].level; l > maxLevel {
			maxLevel = l
		}
	}
	if maxLevel < 0 {
		return
	}

	lc.levels = make([][]*lnode, maxLevel+1)
	for _, id := range lc.ids {
		n := lc.nodes[id]
		n.order = len(lc.levels[n.level])
		lc.levels[n.level] = append(lc.levels[n.level], n)
	}
	lc.levelCoords = make([]float64, maxLevel+1)
}

// cross returns the node's cross-axis coordinate for the given direction.
func (lc *layoutContext) cross(n *lnode, dir Direction) float64 {
	if dir.horizontal() {
		return n.y
	}
	return n.x
}

// setCross writes the node's cross-axis coordinate for the given direction.
func (lc *layoutContext) setCross(n *lnode, dir Direction, v float64) {
	if dir.horizontal() {
		n.y = v
	} else {
		n.x = v
	}
}
