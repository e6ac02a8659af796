package layout

import "fmt"

// insertDummies expands every edge spanning more than one level into a chain
// of synthetic routing nodes, one per intermediate level, so that every
// adjacency segment connects nodes exactly one level apart. Returns the
// number of dummy nodes created.
//
// Dummy ids are derived deterministically from the edge key and the chain
// index; a collision with a user-supplied id gets a numeric suffix, the same
// scheme the chain ids themselves use. Dummies are appended to their level's
// node list and recorded on the edge from the lower level to the higher.
func insertDummies(lc *layoutContext) int {
	count := 0

	for _, e := range lc.edges {
		src := lc.nodes[e.source]
		tgt := lc.nodes[e.target]
		if tgt.level-src.level <= 1 {
			continue
		}

		lc.removeAdjacency(e.source, e.target)

		prev := e.source
		for level := src.level + 1; level < tgt.level; level++ {
			id := dummyID(lc, e.key, level-src.level-1)
			d := &lnode{
				id:      id,
				level:   level,
				order:   len(lc.levels[level]),
				dummy:   true,
				edgeKey: e.key,
			}
			lc.addNode(d)
			lc.levels[level] = append(lc.levels[level], d)

			lc.addAdjacency(prev, id)
			e.dummies = append(e.dummies, id)
			prev = id
			count++
		}
		lc.addAdjacency(prev, e.target)
	}

	return count
}

func dummyID(lc *layoutContext, edgeKey string, index int) string {
	base := fmt.Sprintf("%s_dummy_%d", edgeKey, index)
	id := base
	for i := 1; ; i++ {
		if _, exists := lc.nodes[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s__%d", base, i)
	}
}
