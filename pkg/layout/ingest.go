package layout

import "github.com/matzehuels/strata/pkg/graph"

// ingest builds the working node/edge maps and adjacency sets from the raw
// input. Edges are dropped when either endpoint is missing or when source
// equals target (self-loop); adjacency is built only from surviving edges.
//
// Endpoints arrive already normalized to ids by [graph.Endpoint], so no
// downstream phase re-inspects the input shape.
func ingest(g graph.Graph) *layoutContext {
	lc := newLayoutContext()

	for _, n := range g.Nodes {
		lc.addNode(&lnode{id: n.ID, level: -1, order: -1})
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		src, tgt := e.Source.ID, e.Target.ID
		if src == tgt {
			continue
		}
		if _, ok := lc.nodes[src]; !ok {
			continue
		}
		if _, ok := lc.nodes[tgt]; !ok {
			continue
		}

		lc.edges = append(lc.edges, &ledge{key: e.Key(), source: src, target: tgt})
		lc.addAdjacency(src, tgt)
	}

	return lc
}
