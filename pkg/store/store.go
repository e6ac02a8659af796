// Package store persists computed layouts together with the graph and
// options that produced them.
//
// Two backends implement the [Store] interface:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
)

// ErrNotFound is returned when a stored layout does not exist.
var ErrNotFound = errors.New("not found")

// StoredLayout is a persisted layout document. The graph and options are
// kept alongside the result so a document is self-contained and can be
// recomputed or audited later.
type StoredLayout struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	Graph     graph.Graph    `json:"graph" bson:"graph"`
	Options   layout.Options `json:"options" bson:"options"`
	Result    layout.Result  `json:"result" bson:"result"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// New creates a stored layout document with a fresh random id.
func New(name string, g graph.Graph, opts layout.Options, result layout.Result) *StoredLayout {
	return &StoredLayout{
		ID:        uuid.NewString(),
		Name:      name,
		Graph:     g,
		Options:   opts,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a stored layout by id.
	// Returns ErrNotFound if no document exists.
	Get(ctx context.Context, id string) (*StoredLayout, error)

	// Put stores a layout, replacing any existing document with the same id.
	Put(ctx context.Context, doc *StoredLayout) error

	// Delete removes a stored layout.
	// Returns ErrNotFound if no document exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
