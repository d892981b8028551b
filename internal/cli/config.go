package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/haffenloher/carposter/pkg/cache"
)

// configFileName is the config file name inside the XDG config directory.
const configFileName = "config.toml"

// Config holds settings loaded from the optional TOML config file.
// Zero values mean "use the built-in default"; explicit command-line
// flags always override config values.
type Config struct {
	// Output is the default poster output path.
	Output string `toml:"output"`

	Cache CacheConfig `toml:"cache"`
	Fetch FetchConfig `toml:"fetch"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	// TTL is the catalog URL memo lifetime, e.g. "168h".
	TTL string `toml:"ttl"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	// Timeout is the HTTP request timeout, e.g. "30s".
	Timeout string `toml:"timeout"`

	// UserAgent overrides the default browser user agent.
	UserAgent string `toml:"user_agent"`

	// Headless toggles the headless browser fallback. Unset means on.
	Headless *bool `toml:"headless"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file at the default location is not an error;
// a missing file at an explicit path is.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// CacheTTL returns the configured catalog memo TTL, defaulting to the
// page cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL != "" {
		if d, err := time.ParseDuration(c.Cache.TTL); err == nil && d > 0 {
			return d
		}
	}
	return cache.TTLPage
}

// FetchTimeout returns the configured fetch timeout. Zero lets the
// fetch client apply its own default.
func (c *Config) FetchTimeout() time.Duration {
	if c.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(c.Fetch.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// HeadlessEnabled reports whether the headless browser fallback is
// enabled. Unset defaults to on.
func (c *Config) HeadlessEnabled() bool {
	if c.Fetch.Headless == nil {
		return true
	}
	return *c.Fetch.Headless
}
