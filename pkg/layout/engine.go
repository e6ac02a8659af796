package layout

import (
	"context"
	"time"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/observability"
)

// Engine computes layered layouts for directed graphs. It holds only the
// validated options; all per-call state lives in a context built fresh by
// each Layout call.
//
// An Engine is safe to reuse across sequential calls. It must not be used
// for overlapping concurrent calls - use one engine per goroutine or
// serialize access.
type Engine struct {
	opts Options
}

// New creates an engine, filling unset options from [DefaultOptions] and
// validating the rest. The returned errors carry codes from pkg/errors.
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns the engine's effective options, defaults applied.
func (e *Engine) Options() Options { return e.opts }

// Layout runs the full pipeline over the input graph and returns the
// computed layout. It never fails: malformed edges are filtered, unreachable
// nodes default to level 0, and an empty graph yields an all-zero result.
//
// The context is used for observability hooks only; the computation runs to
// completion with no suspension points. Termination is guaranteed by the
// iteration caps in the options.
func (e *Engine) Layout(ctx context.Context, g graph.Graph) Result {
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(g.Nodes), len(g.Edges))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, time.Since(start)) }()

	if len(g.Nodes) == 0 {
		return emptyResult()
	}

	var lc *layoutContext
	runPhase(ctx, "ingest", len(g.Nodes), func() {
		lc = ingest(g)
	})

	var reversed int
	runPhase(ctx, "cycles", len(lc.ids), func() {
		reversed = breakCycles(lc)
	})

	runPhase(ctx, "ranking", len(lc.ids), func() {
		assignRanks(lc, e.opts)
	})

	var dummies int
	runPhase(ctx, "dummies", len(lc.ids), func() {
		dummies = insertDummies(lc)
	})

	var crossings int
	runPhase(ctx, "crossings", len(lc.ids), func() {
		crossings = minimizeCrossings(lc, e.opts)
	})

	runPhase(ctx, "coordinates", len(lc.ids), func() {
		assignCoordinates(lc, e.opts)
	})

	runPhase(ctx, "routing", len(lc.edges), func() {
		routeEdges(lc)
	})

	return buildResult(lc, crossings, reversed, dummies)
}

func runPhase(ctx context.Context, name string, size int, fn func()) {
	hooks := observability.Layout()
	hooks.OnPhaseStart(ctx, name, size)
	start := time.Now()
	fn()
	hooks.OnPhaseComplete(ctx, name, time.Since(start))
}
