package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
	"github.com/matzehuels/strata/pkg/store"
)

// computeRequest is the POST /api/layouts payload. Options may be omitted to
// use the server defaults; Persist stores the document and returns its id.
type computeRequest struct {
	Name    string          `json:"name,omitempty"`
	Graph   graph.Graph     `json:"graph"`
	Options *layout.Options `json:"options,omitempty"`
	Persist bool            `json:"persist,omitempty"`
}

// computeResponse is the POST /api/layouts reply.
type computeResponse struct {
	ID     string        `json:"id,omitempty"`
	Result layout.Result `json:"result"`
	Cached bool          `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode request body"))
		return
	}

	opts := s.defaults
	if req.Options != nil {
		opts = *req.Options
	}
	eng, err := layout.New(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The cache key covers the full graph content and the effective options,
	// so any change to either computes fresh.
	graphData, err := json.Marshal(req.Graph)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidGraph, err, "encode graph"))
		return
	}
	key := s.keyer.LayoutKey(cache.Hash(graphData), KeyOpts(eng.Options()))

	var result layout.Result
	cached := false
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		if err := json.Unmarshal(data, &result); err == nil {
			cached = true
			observability.Cache().OnCacheHit(ctx, "layout")
		}
	}
	if !cached {
		observability.Cache().OnCacheMiss(ctx, "layout")
		result = eng.Layout(ctx, req.Graph)
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				s.logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	resp := computeResponse{Result: result, Cached: cached}
	status := http.StatusOK
	if req.Persist {
		doc := store.New(req.Name, req.Graph, eng.Options(), result)
		if err := s.store.Put(ctx, doc); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "persist layout"))
			return
		}
		resp.ID = doc.ID
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		s.writeError(w, r, errors.New(errors.ErrCodeLayoutNotFound, "layout not found: %s", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "fetch layout %s", id))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if err == store.ErrNotFound {
		s.writeError(w, r, errors.New(errors.ErrCodeLayoutNotFound, "layout not found: %s", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "delete layout %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// KeyOpts flattens layout options into the cache key structure. Both the
// server and the CLI derive cache keys through this, so a layout cached by
// one is visible to the other when they share a backend.
func KeyOpts(o layout.Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:           string(o.Direction),
		Ranking:             string(o.Ranking),
		Crossing:            string(o.Crossing),
		Coordinates:         string(o.Coordinates),
		LevelSeparation:     o.LevelSeparation,
		NodeSeparation:      o.NodeSeparation,
		CrossingIterations:  o.CrossingIterations,
		TightTreePasses:     o.TightTreePasses,
		AlignmentIterations: o.AlignmentIterations,
		GridSize:            o.GridSize,
		Margin:              o.Margin,
		RootNodes:           o.RootNodes,
		AlignToGrid:         o.AlignToGrid,
		Compact:             o.Compact,
	}
}
