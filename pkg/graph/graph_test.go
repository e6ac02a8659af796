package graph

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/strata/pkg/errors"
)

func TestEndpointUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "String", input: `"a"`, want: "a"},
		{name: "Object", input: `{"id": "b"}`, want: "b"},
		{name: "ObjectExtraFields", input: `{"id": "c", "label": "C"}`, want: "c"},
		{name: "Number", input: `42`, wantErr: true},
		{name: "Array", input: `["a"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Endpoint
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.ID != tt.want {
				t.Errorf("ID = %q, want %q", p.ID, tt.want)
			}
		})
	}
}

func TestEndpointMarshal(t *testing.T) {
	data, err := json.Marshal(Endpoint{ID: "node-1"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"node-1"` {
		t.Errorf("marshal = %s, want %q", data, `"node-1"`)
	}
}

func TestEdgeKey(t *testing.T) {
	withID := Edge{ID: "e1", Source: Endpoint{ID: "a"}, Target: Endpoint{ID: "b"}}
	if withID.Key() != "e1" {
		t.Errorf("Key() = %q, want e1", withID.Key())
	}

	noID := Edge{Source: Endpoint{ID: "a"}, Target: Endpoint{ID: "b"}}
	if noID.Key() != "a->b" {
		t.Errorf("Key() = %q, want a->b", noID.Key())
	}
}

func TestReadGraphMixedEndpoints(t *testing.T) {
	input := `{
		"nodes": [{"id": "a"}, {"id": "b", "label": "Node B"}],
		"edges": [
			{"id": "e1", "source": "a", "target": {"id": "b"}}
		]
	}`

	g, err := ReadGraph(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges; want 2, 1", len(g.Nodes), len(g.Edges))
	}
	if g.Edges[0].Source.ID != "a" || g.Edges[0].Target.ID != "b" {
		t.Errorf("edge endpoints = %q -> %q, want a -> b", g.Edges[0].Source.ID, g.Edges[0].Target.ID)
	}
	if g.Nodes[1].DisplayLabel() != "Node B" {
		t.Errorf("DisplayLabel = %q, want Node B", g.Nodes[1].DisplayLabel())
	}
}

func TestReadGraphInvalidJSON(t *testing.T) {
	_, err := ReadGraph(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("err = %v, want INVALID_GRAPH", err)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{
			{ID: "e1", Source: Endpoint{ID: "a"}, Target: Endpoint{ID: "b"}},
			{ID: "e2", Source: Endpoint{ID: "b"}, Target: Endpoint{ID: "c"}},
		},
	}

	var buf bytes.Buffer
	if err := WriteGraph(&buf, g); err != nil {
		t.Fatal(err)
	}
	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Nodes) != len(g.Nodes) || len(got.Edges) != len(g.Edges) {
		t.Fatalf("round trip lost elements: %+v", got)
	}
	for i := range g.Edges {
		if got.Edges[i].Source.ID != g.Edges[i].Source.ID || got.Edges[i].Target.ID != g.Edges[i].Target.ID {
			t.Errorf("edge %d endpoints changed: %+v", i, got.Edges[i])
		}
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	_, err := ReadGraphFile("/nonexistent/graph.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
