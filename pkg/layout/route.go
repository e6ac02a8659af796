package layout

// routeEdges assembles each surviving edge's polyline: source position, the
// final positions of its dummy nodes in insertion order, target position.
// Pure data assembly, no smoothing. Edges without dummy nodes get exactly
// two control points equal to their endpoint positions.
func routeEdges(lc *layoutContext) {
	for _, e := range lc.edges {
		points := make([]Point, 0, len(e.dummies)+2)

		src := lc.nodes[e.source]
		points = append(points, Point{X: src.x, Y: src.y})

		for _, id := range e.dummies {
			d := lc.nodes[id]
			points = append(points, Point{X: d.x, Y: d.y})
		}

		tgt := lc.nodes[e.target]
		points = append(points, Point{X: tgt.x, Y: tgt.y})

		e.points = points
	}
}
