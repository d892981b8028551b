// Package cache provides the caching layer for pipeline artifacts.
//
// Every stage of a poster run stores its product under a typed key:
// fetched pages, extracted specification sets, downloaded photos, and
// encoded posters. Backends share one byte-oriented interface so the
// CLI can swap the local file cache for Redis or MongoDB without the
// pipeline noticing.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is the backend interface. Get reports a miss with a false
// second return instead of an error so callers can treat misses as the
// common path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Standard TTLs per artifact type. Model pages and extracted specs
// change rarely; photos are effectively immutable; encoded posters are
// cheap to rebuild so they expire fastest.
const (
	TTLPage     = 7 * 24 * time.Hour
	TTLSpec     = 7 * 24 * time.Hour
	TTLImage    = 30 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// PosterKeyOpts are the rendering options that distinguish poster
// cache entries built from the same specification set.
type PosterKeyOpts struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// Keyer generates cache keys for the pipeline's artifact types.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// PageKey generates a key for a fetched model page.
	PageKey(brand, model, url string) string

	// SpecKey generates a key for the specification set extracted from
	// a page with the given content hash.
	SpecKey(pageHash string) string

	// ImageKey generates a key for a downloaded car photo.
	ImageKey(url string) string

	// PosterKey generates a key for an encoded poster built from the
	// specification set with the given hash.
	PosterKey(specHash string, opts PosterKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256 into prefix:hex keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// PageKey generates a key for a fetched model page.
func (k *DefaultKeyer) PageKey(brand, model, url string) string {
	return hashKey("page", brand, model, url)
}

// SpecKey generates a key for an extracted specification set.
func (k *DefaultKeyer) SpecKey(pageHash string) string {
	return hashKey("spec", pageHash)
}

// ImageKey generates a key for a downloaded car photo.
func (k *DefaultKeyer) ImageKey(url string) string {
	return hashKey("image", url)
}

// PosterKey generates a key for an encoded poster.
func (k *DefaultKeyer) PosterKey(specHash string, opts PosterKeyOpts) string {
	return hashKey("poster", specHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and parameterizes a cache backend.
type Config struct {
	Backend string // file (default), redis, mongo, none
	Dir     string // file backend directory; DefaultDir when empty

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open creates the cache backend described by cfg. The context bounds
// connection setup for the networked backends.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// DefaultDir returns the standard on-disk cache location.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "carposter")
}
