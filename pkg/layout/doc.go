// Package layout implements a layered (Sugiyama-style) graph layout engine.
//
// Given an arbitrary directed graph - possibly cyclic, possibly disconnected -
// the engine computes 2D coordinates for nodes and polyline routes for edges
// such that nodes sit on ordered levels reflecting hierarchy, with few edge
// crossings and no overlaps.
//
// # Pipeline
//
// A single call to [Engine.Layout] runs eight phases over a context built
// fresh for that call:
//
//  1. Ingest: build node/edge maps and ordered adjacency from the input,
//     dropping self-loops and edges with unknown endpoints
//  2. Cycle breaking: DFS back-edge reversal (iterative, stack-safe)
//  3. Rank assignment: longest-path, tight-tree, or network-simplex
//     (a documented alias for tight-tree)
//  4. Dummy insertion: long edges become chains of synthetic routing nodes
//     so every segment spans exactly one level
//  5. Crossing minimization: barycenter or median sweeps, keeping the best
//     ordering seen across all iterations
//  6. Coordinate assignment: simple even spacing, or an iterative
//     alignment/compaction pass on top of it
//  7. Edge routing: polylines through dummy-node positions
//  8. Result building: positions, bounds, and summary statistics
//
// # Totality
//
// The engine never returns an error for graph content. Malformed edges are
// silently filtered at ingestion, unreachable nodes default to level 0, and
// an empty graph yields an all-zero result. Only option validation (at
// [New]) can fail.
//
// # Determinism and concurrency
//
// Layout is a pure function of input and options: no randomness, no retained
// state between calls. All iteration follows insertion order, never Go map
// order, so two calls with identical input produce identical results. One
// Engine must not be used for overlapping concurrent calls; use one engine
// per goroutine or serialize access.
package layout
