package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/spokechart/spoke/pkg/pipeline"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/spoke/config.toml. Every field is optional; flags always win
// over config values, which win over built-in defaults.
type Config struct {
	Compute ComputeConfig `toml:"compute"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Serve   ServeConfig   `toml:"serve"`
}

// ComputeConfig holds defaults for chart computation.
type ComputeConfig struct {
	Metric       string  `toml:"metric"`
	Ordering     string  `toml:"ordering"`
	Iterations   int     `toml:"iterations"`
	Samples      int     `toml:"samples"`
	Patience     int     `toml:"patience"`
	Seed         uint64  `toml:"seed"`
	Workers      int     `toml:"workers"`
	SpreadWeight float64 `toml:"spread_weight"`
}

// RenderConfig holds defaults for rendering.
type RenderConfig struct {
	Scale   float64  `toml:"scale"`
	Formats []string `toml:"formats"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", "mongo", or "none".
	Backend string `toml:"backend"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo cache backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the config from its standard location, falling
// back to the zero config when the file is missing or malformed. A CLI
// must start even with a broken config file; commands surface the details
// when the user runs them with --verbose.
func LoadConfigOrDefault() Config {
	dir, err := configDir()
	if err != nil {
		return Config{}
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return Config{}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}
	}
	return cfg
}

// Apply copies config defaults onto pipeline options, leaving any value
// already set (by a flag) untouched.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Metric == "" {
		opts.Metric = c.Compute.Metric
	}
	if opts.Ordering == "" {
		opts.Ordering = c.Compute.Ordering
	}
	if opts.Iterations == 0 {
		opts.Iterations = c.Compute.Iterations
	}
	if opts.Samples == 0 {
		opts.Samples = c.Compute.Samples
	}
	if opts.Patience == 0 {
		opts.Patience = c.Compute.Patience
	}
	if opts.Seed == 0 {
		opts.Seed = c.Compute.Seed
	}
	if opts.Workers == 0 {
		opts.Workers = c.Compute.Workers
	}
	if opts.SpreadWeight == 0 {
		opts.SpreadWeight = c.Compute.SpreadWeight
	}
	if opts.Scale == 0 {
		opts.Scale = c.Render.Scale
	}
	if len(opts.Formats) == 0 && len(c.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
}
