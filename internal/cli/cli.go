// Package cli implements the relviz command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relviz/pkg/buildinfo"
	"github.com/matzehuels/relviz/pkg/cache"
	"github.com/matzehuels/relviz/pkg/config"
	"github.com/matzehuels/relviz/pkg/observability"
	"github.com/matzehuels/relviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for cache keys and display.
const appName = "relviz"

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

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "relviz turns fact files into typed relationship diagrams",
		Long: `relviz reads facts such as "class Order" or "Customer (1) has (*) Order",
resolves them against a type hierarchy declared in style files and renders
the resulting graph as DOT, SVG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/relviz/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and installs the logging hooks.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	return nil
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
	runner := pipeline.NewRunner(store, cacheKeyer(), c.Logger)
	runner.TTL = c.config.Cache.TTL
	return runner, nil
}

// newCache opens the configured backend. An unreachable Redis degrades to
// no caching with a warning, as does a file cache that cannot be created.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache("--no-cache"), nil
	}
	cfg := c.config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache("backend none"), nil
	case config.BackendRedis:
		store, err := cache.NewRedisCache(ctx, cfg.RedisURL, appName+":")
		if err != nil {
			return c.degraded(cfg.Backend, err), nil
		}
		return store, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return c.degraded(cfg.Backend, err), nil
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			return c.degraded(cfg.Backend, err), nil
		}
		return store, nil
	}
}

// degraded logs why backend could not be opened and returns a cache that
// keeps nothing.
func (c *CLI) degraded(backend string, err error) *cache.NullCache {
	store := cache.NewNullCache(backend + " unavailable")
	c.Logger.Warn("cache "+store.String(), "err", err)
	return store
}

// cacheDir returns the file cache directory: the configured one, else the
// XDG location.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// cacheKeyer scopes keys by version so that an upgrade never reads
// entries written by an older resolver.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}
