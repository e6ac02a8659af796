// Package config loads TOML configuration for the CLI and the API server.
//
// All sections are optional; missing values fall back to the defaults from
// [Default]. A minimal config file looks like:
//
//	[layout]
//	direction = "LR"
//	compact = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheOff    = "off"
)

// Store backend names accepted in the [store] section.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the root configuration document.
type Config struct {
	Layout layout.Options `toml:"layout"`
	Cache  CacheConfig    `toml:"cache"`
	Store  StoreConfig    `toml:"store"`
	Server ServerConfig   `toml:"server"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
	TTLSeconds    int    `toml:"ttl_seconds"`
}

// TTL returns the configured entry lifetime; zero means no expiration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// StoreConfig selects and configures the layout store backend.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is given: default
// layout options, in-memory cache and store, and the standard listen address.
func Default() Config {
	return Config{
		Layout: layout.DefaultOptions(),
		Cache:  CacheConfig{Backend: CacheMemory, TTLSeconds: 3600},
		Store:  StoreConfig{Backend: StoreMemory},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads and validates a TOML config file, filling unset values from
// [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config file")
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend names and the embedded layout options.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheFile, CacheRedis, CacheOff:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheFile && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidOption, "cache backend \"file\" requires cache.dir")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidOption, "cache backend \"redis\" requires cache.redis_addr")
	}

	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown store backend: %s", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidOption, "store backend \"mongo\" requires store.mongo_uri")
	}

	return c.Layout.Validate()
}
