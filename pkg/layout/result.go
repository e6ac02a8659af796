package layout

import (
	"math"
	"slices"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// RoutedEdge is a surviving input edge with its routing data. Source and
// target reflect any cycle-breaking reversal (the endpoints are swapped in
// place and Reversed is set).
type RoutedEdge struct {
	ID            string   `json:"id" bson:"id"`
	Source        string   `json:"source" bson:"source"`
	Target        string   `json:"target" bson:"target"`
	Reversed      bool     `json:"reversed,omitempty" bson:"reversed,omitempty"`
	DummyNodes    []string `json:"dummy_nodes,omitempty" bson:"dummy_nodes,omitempty"`
	ControlPoints []Point  `json:"control_points" bson:"control_points"`
}

// Bounds is the axis-aligned bounding box over all laid-out nodes,
// including dummy routing nodes.
type Bounds struct {
	MinX   float64 `json:"min_x" bson:"min_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	MaxX   float64 `json:"max_x" bson:"max_x"`
	MaxY   float64 `json:"max_y" bson:"max_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Stats summarizes a layout computation.
type Stats struct {
	Crossings       int     `json:"crossings" bson:"crossings"`
	DummyNodes      int     `json:"dummy_nodes" bson:"dummy_nodes"`
	ReversedEdges   int     `json:"reversed_edges" bson:"reversed_edges"`
	TotalEdgeLength float64 `json:"total_edge_length" bson:"total_edge_length"`
}

// Result is the output of one layout computation. Positions contains
// non-dummy nodes only; Bounds covers dummy nodes too, so routed polylines
// always fit inside it.
type Result struct {
	Positions map[string]Point `json:"positions" bson:"positions"`
	Edges     []RoutedEdge     `json:"edges" bson:"edges"`
	Bounds    Bounds           `json:"bounds" bson:"bounds"`
	Stats     Stats            `json:"stats" bson:"stats"`
}

// emptyResult is what an empty input graph yields, without running any
// phase: no positions, zero bounds, zero stats.
func emptyResult() Result {
	return Result{Positions: map[string]Point{}}
}

// buildResult publishes positions for non-dummy nodes, computes bounds over
// all nodes including dummies, and aggregates the summary statistics.
func buildResult(lc *layoutContext, crossings, reversed, dummies int) Result {
	result := Result{
		Positions: make(map[string]Point, len(lc.ids)),
		Edges:     make([]RoutedEdge, 0, len(lc.edges)),
		Stats: Stats{
			Crossings:     crossings,
			DummyNodes:    dummies,
			ReversedEdges: reversed,
		},
	}

	bounds := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, id := range lc.ids {
		n := lc.nodes[id]
		if !n.dummy {
			result.Positions[n.id] = Point{X: n.x, Y: n.y}
		}
		bounds.MinX = math.Min(bounds.MinX, n.x)
		bounds.MinY = math.Min(bounds.MinY, n.y)
		bounds.MaxX = math.Max(bounds.MaxX, n.x)
		bounds.MaxY = math.Max(bounds.MaxY, n.y)
	}
	if len(lc.ids) > 0 {
		bounds.Width = bounds.MaxX - bounds.MinX
		bounds.Height = bounds.MaxY - bounds.MinY
		result.Bounds = bounds
	}

	for _, e := range lc.edges {
		result.Edges = append(result.Edges, RoutedEdge{
			ID:            e.key,
			Source:        e.source,
			Target:        e.target,
			Reversed:      e.reversed,
			DummyNodes:    slices.Clone(e.dummies),
			ControlPoints: slices.Clone(e.points),
		})
		result.Stats.TotalEdgeLength += polylineLength(e.points)
	}

	return result
}

func polylineLength(points []Point) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return length
}
