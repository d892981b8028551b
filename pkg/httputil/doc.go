// Package httputil provides HTTP utilities for the catalog and photo
// fetch paths.
//
// # Overview
//
// This package provides infrastructure shared by everything that talks
// to the network:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/carposter/)
// with configurable TTL. This dramatically speeds up repeated runs and
// keeps the load on the catalog site low.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24 * time.Hour)
//	ok, _ := cache.Get("catalog:audi/tt_rs", &page)  // Check cache
//	if !ok {
//	    page = fetchFromSite()
//	    cache.Set("catalog:audi/tt_rs", page)        // Store for later
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient
// failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff to avoid hammering a struggling server:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchPage(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/carposter/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `carposter cache clear` or by deleting
// the cache directory.
package httputil
