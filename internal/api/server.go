// Package api implements the HTTP server exposing layout computation and
// persistence.
//
// Routes:
//
//	POST   /api/layouts       compute a layout (cached), optionally persist it
//	GET    /api/layouts/{id}  fetch a persisted layout document
//	DELETE /api/layouts/{id}  remove a persisted layout document
//	GET    /healthz           liveness probe
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/store"
)

// Config wires the server's collaborators. Nil fields fall back to safe
// defaults: a null cache, the standard keyer, an in-memory store, and the
// default logger.
type Config struct {
	// Defaults are the layout options used when a request omits its own.
	Defaults layout.Options
	// Cache holds computed layouts keyed by graph content and options.
	Cache cache.Cache
	// Keyer derives the cache keys.
	Keyer cache.Keyer
	// Store persists layout documents.
	Store store.Store
	// CacheTTL bounds the lifetime of cache entries; zero means no expiry.
	CacheTTL time.Duration
	// Logger receives request-level log lines.
	Logger *log.Logger
}

// Server handles layout API requests.
type Server struct {
	defaults layout.Options
	cache    cache.Cache
	keyer    cache.Keyer
	store    store.Store
	ttl      time.Duration
	logger   *log.Logger
}

// New creates a server from the given configuration.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		defaults: cfg.Defaults,
		cache:    cfg.Cache,
		keyer:    cfg.Keyer,
		store:    cfg.Store,
		ttl:      cfg.CacheTTL,
		logger:   cfg.Logger,
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layouts", s.handleCompute)
		r.Get("/layouts/{id}", s.handleGet)
		r.Delete("/layouts/{id}", s.handleDelete)
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("api server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
