// Package pkg provides the core libraries for carposter poster generation.
//
// # Overview
//
// Carposter turns a car model's page on www.automobile-catalog.com into a
// printable specification poster. The pkg directory is organized around
// the pipeline stages plus shared infrastructure:
//
//  1. [catalog] + [fetch] - Resolve and download the model page
//  2. [extract] - Pull specification fields out of the page HTML
//  3. [poster] - Compose the poster image
//  4. [pipeline] - Orchestration with per-stage caching
//
// # Architecture
//
// The typical data flow:
//
//	www.automobile-catalog.com
//	         ↓
//	    [catalog] package (candidate URLs + page resolution)
//	         ↓
//	    [fetch] package (static HTTP, headless browser fallback)
//	         ↓
//	    [extract] package (table scan + regex → specification set)
//	         ↓
//	    [poster] package (canvas, flag, photo, spec columns)
//	         ↓
//	    PNG/JPEG output
//
// # Quick Start
//
// Generate a poster through the pipeline:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/haffenloher/carposter/pkg/cache"
//	    "github.com/haffenloher/carposter/pkg/pipeline"
//	)
//
//	c, _ := cache.NewFileCache(cache.DefaultDir())
//	runner := pipeline.NewRunner(c, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Brand: "AUDI",
//	    Model: "TT RS",
//	})
//	os.WriteFile("car_poster.png", result.Poster, 0o644)
//
// # Main Packages
//
// [vehicle] - The specification data model: field identifiers, the
// SpecificationSet record, value sanitization, demo reference data, and
// the brand to country mapping.
//
// [catalog] - Knowledge about www.automobile-catalog.com: page URL
// patterns, known model slugs, and the resolution client that tries
// candidate pages in order.
//
// [fetch] - Page retrieval. A static HTTP client tries first; a
// chromedp-driven headless browser takes over when the page is
// bot-protected. Also holds the model photo fetcher with retry.
//
// [extract] - Specification extraction from page HTML using goquery
// table scanning with regex fallbacks, plus photo URL discovery.
//
// [poster] - Poster composition: canvas layout, header with country
// flag, photo placement, and specification columns rendered with gg
// and imaging.
//
// [flag] and [fonts] - Drawing support: procedural country flags and
// font loading with embedded fallbacks.
//
// [pipeline] - The complete generation pipeline used by the CLI. Each
// stage result is cached under a content-addressed key; failed fetches
// degrade to the built-in reference data.
//
// [cache] - Cache backends: file (default), Redis, MongoDB, and a null
// cache for --no-cache runs.
//
// [httputil] - JSON file memoization and retry helpers for HTTP flows.
//
// [errors] - Error codes, wrapping, and input validation shared by all
// layers.
//
// [observability] - Optional hooks for pipeline, cache, and HTTP events.
//
// [io] - Import and export of extraction results as JSON documents.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/extract/...    # Specific package
//
// [vehicle]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/vehicle
// [catalog]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/catalog
// [fetch]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/fetch
// [extract]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/extract
// [poster]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/poster
// [flag]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/flag
// [fonts]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/observability
// [io]: https://pkg.go.dev/github.com/haffenloher/carposter/pkg/io
package pkg
