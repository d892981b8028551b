// Package cli implements the carposter command-line interface.
//
// The root command generates a poster for a car model by scraping its
// catalog page. Subcommands cover the surrounding workflow:
//   - specs: fetch and display specification fields without composing
//   - render: compose a poster from a saved specs JSON file
//   - cache: manage the local cache
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so deeper layers can log progress.
// An optional TOML config file (default ~/.config/carposter/config.toml)
// supplies defaults; explicit flags always win over config values.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/haffenloher/carposter/pkg/cache"
	"github.com/haffenloher/carposter/pkg/catalog"
	"github.com/haffenloher/carposter/pkg/fetch"
	"github.com/haffenloher/carposter/pkg/httputil"
	"github.com/haffenloher/carposter/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "carposter"

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
	Config *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, honoring the cache
// and fetch sections of the config file.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	runner := pipeline.NewRunner(backend, nil, c.Logger)

	fetcher := fetch.NewClient(fetch.Config{
		UserAgent: c.Config.Fetch.UserAgent,
		Timeout:   c.Config.FetchTimeout(),
		Headless:  c.Config.HeadlessEnabled(),
	})
	runner.Fetcher = fetcher
	runner.Catalog = catalog.NewClient(fetcher, c.urlMemo(noCache))
	runner.Images = fetch.NewImageFetcher(c.Config.Fetch.UserAgent, 0)

	return runner, nil
}

// openCache opens the configured cache backend. --no-cache always wins.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	cfg := cache.Config{
		Backend:         c.Config.Cache.Backend,
		Dir:             c.Config.Cache.Dir,
		RedisAddr:       c.Config.Cache.RedisAddr,
		RedisPassword:   c.Config.Cache.RedisPassword,
		RedisDB:         c.Config.Cache.RedisDB,
		MongoURI:        c.Config.Cache.MongoURI,
		MongoDatabase:   c.Config.Cache.MongoDatabase,
		MongoCollection: c.Config.Cache.MongoCollection,
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	return cache.Open(ctx, cfg)
}

// urlMemo opens the catalog URL memo cache. Failures disable
// memoization rather than the run.
func (c *CLI) urlMemo(noCache bool) *httputil.Cache {
	if noCache {
		return nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil
	}
	memo, err := httputil.NewCache(dir, c.Config.CacheTTL())
	if err != nil {
		return nil
	}
	return memo.Namespace("catalog:")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/carposter/).
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

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/carposter/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFileName), nil
}
