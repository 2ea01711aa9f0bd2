// Package cli implements the spoke command-line interface.
//
// This package provides commands for projecting multivariate CSV data onto
// a radial chart, tuning the anchor arrangement, and serving charts over
// HTTP. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - project: Run the full pipeline and write chart images
//   - optimize: Search for a good anchor arrangement and inspect the trace
//   - order: Print the anchor arrangement a strategy produces
//   - serve: Expose the pipeline over HTTP for previews
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spokechart/spoke/pkg/buildinfo"
	"github.com/spokechart/spoke/pkg/cache"
	"github.com/spokechart/spoke/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "spoke"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration, if one exists.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spoke",
		Short:        "Spoke projects multivariate data onto a radial chart",
		Long:         `Spoke is a CLI tool for radial coordinate visualization: every variable becomes an anchor on a circle, every observation a point inside it, and the anchor arrangement is tuned so similar variables sit together.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend from configuration. Backend failures
// degrade to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	case "mongo":
		store, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        c.Config.Cache.Mongo.URI,
			Database:   c.Config.Cache.Mongo.Database,
			Collection: c.Config.Cache.Mongo.Collection,
		})
		if err != nil {
			c.Logger.Warn("mongo cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	default: // "file" or unset
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/spoke/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/spoke/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseColumns parses a comma-separated column list, ignoring empty parts.
func parseColumns(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
