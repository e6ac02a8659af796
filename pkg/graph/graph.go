// Package graph defines the serialization format for input graphs and
// computed layouts.
//
// The format is the canonical wire representation used by the CLI, the HTTP
// API, the cache, and the store. It is human-readable JSON designed for
// round-trip fidelity: a graph can be read, laid out, written, and re-read
// without loss.
//
// Edge endpoints may be written either as a raw node id or as an object
// carrying one:
//
//	{"id": "e1", "source": "a", "target": {"id": "b"}}
//
// Both forms decode to the same [Endpoint]; downstream consumers only ever
// see ids.
package graph

import (
	"encoding/json"
	"fmt"
)

// Graph is the input to the layout engine: a directed graph that may be
// cyclic or disconnected. Malformed edges (unknown endpoints, self-loops)
// are tolerated here and filtered during layout ingestion.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a graph vertex. Only ID participates in layout; Label and Meta are
// display fields carried through untouched.
//
// Node ids are expected to be unique. Duplicates are not rejected: the last
// occurrence wins during layout ingestion.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes. Source and Target accept
// either a raw id string or an {"id": ...} object in JSON.
type Edge struct {
	ID     string         `json:"id,omitempty" bson:"id,omitempty"`
	Source Endpoint       `json:"source" bson:"source"`
	Target Endpoint       `json:"target" bson:"target"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Key returns the edge's identifier: the declared ID when present, otherwise
// a deterministic "source->target" fallback. Synthetic routing-node names are
// derived from this, so it must be stable across calls.
func (e *Edge) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return fmt.Sprintf("%s->%s", e.Source.ID, e.Target.ID)
}

// Endpoint is a normalized edge endpoint. It decodes from either a JSON
// string or an object with an "id" field, and always encodes as a string.
type Endpoint struct {
	ID string `bson:"id"`
}

// UnmarshalJSON accepts "nodeID" or {"id": "nodeID"}.
func (p *Endpoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.ID = s
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("edge endpoint must be a string or an object with an id: %w", err)
	}
	p.ID = obj.ID
	return nil
}

// MarshalJSON always emits the raw id string.
func (p Endpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ID)
}
