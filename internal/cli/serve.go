package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/internal/api"
	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/config"
	"github.com/matzehuels/strata/pkg/store"
)

// serveCommand creates the serve command for running the layout API server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout API server",
		Long: `Run the layout API server.

The server exposes layout computation over HTTP:

  POST   /api/layouts       compute a layout, optionally persist it
  GET    /api/layouts/{id}  fetch a persisted layout
  DELETE /api/layouts/{id}  remove a persisted layout
  GET    /healthz           liveness probe

Cache and store backends are selected in the config file. Without one, the
server uses in-memory backends suitable for development.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	layoutCache, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer layoutCache.Close()

	layoutStore, err := newServerStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer layoutStore.Close(context.Background())

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend,
	)

	server := api.New(api.Config{
		Defaults: cfg.Layout,
		Cache:    layoutCache,
		Store:    layoutStore,
		CacheTTL: cfg.Cache.TTL(),
		Logger:   c.Logger,
	})
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}

// newServerCache builds the cache backend selected by the config.
func newServerCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheOff:
		return cache.NewNullCache(), nil
	case config.CacheMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheFile:
		return cache.NewFileCache(cfg.Dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// newServerStore builds the store backend selected by the config.
func newServerStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
