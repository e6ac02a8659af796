package graph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/strata/pkg/errors"
)

// ReadGraph decodes a graph from JSON.
// Returns an INVALID_GRAPH error if the payload is not valid JSON.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to decode graph JSON")
	}
	return g, nil
}

// ReadGraphFile reads a graph from a JSON file.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "graph file %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph encodes a graph as indented JSON.
func WriteGraph(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
