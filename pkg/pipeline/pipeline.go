// Package pipeline provides the core poster pipeline for carposter.
//
// This package implements the complete fetch → extract → compose flow
// behind every CLI entry point. By centralizing this logic, caching and
// fallback behavior stay identical no matter how a poster is requested.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Resolve the model's catalog page and retrieve its HTML
//  2. Extract: Pull specification fields out of the page
//  3. Compose: Draw the poster and encode it
//
// Each stage is cached independently: pages by brand/model/URL, spec
// sets by page content hash, posters by spec hash plus canvas options.
// Recoverable fetch and extraction failures degrade to the built-in
// reference data instead of failing the run; validation failures and
// compose failures are fatal.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Brand:  "Audi",
//	    Model:  "TT RS",
//	    Output: "car_poster.png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(opts.Output, result.Poster, 0o644)
//
// Run individual stages:
//
//	// Fetch and extract only
//	specs, page, err := runner.ExtractSpecs(ctx, opts)
//
//	// Compose from existing specs
//	data, err := runner.Compose(ctx, specs, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/haffenloher/carposter/pkg/cache"
	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/poster"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultWidth is the default poster width in pixels.
	DefaultWidth = 1200

	// DefaultHeight is the default poster height in pixels.
	DefaultHeight = 1600

	// DefaultOutput is the default poster file name. The extension
	// selects the encoding.
	DefaultOutput = "car_poster.png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one poster run.
// This struct supports JSON serialization for saved run records.
type Options struct {
	// Fetch options
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	PageURL string `json:"page_url,omitempty"` // fetch exactly this page, skipping slug resolution
	Demo    bool   `json:"demo,omitempty"`     // skip fetching entirely, use reference data
	Refresh bool   `json:"refresh,omitempty"`  // bypass caches and fetch fresh

	// Compose options
	Output string `json:"output,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Brand and Model are the names the poster was generated for.
	Brand string
	Model string

	// PageURL is the catalog page the specs came from. Empty in demo
	// mode and when the run fell back to reference data.
	PageURL string

	// Demo reports whether reference data was used, either because it
	// was requested or because fetching and extraction came up empty.
	Demo bool

	// UsedHeadless reports whether the page required a browser fetch.
	UsedHeadless bool

	// Specs holds the specification fields on the poster.
	Specs vehicle.SpecificationSet

	// Poster is the encoded poster image.
	Poster []byte

	// Format is the poster encoding, derived from the output path.
	Format poster.Format

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FieldCount  int
	FetchTime   time.Duration
	ExtractTime time.Duration
	ComposeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit   bool // Whether the page came from cache
	ExtractHit bool // Whether the spec set came from cache
	ComposeHit bool // Whether the encoded poster came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for fetching and extraction.
func (o *Options) ValidateForFetch() error {
	if err := errors.ValidateBrand(o.Brand); err != nil {
		return err
	}
	if err := errors.ValidateModel(o.Model); err != nil {
		return err
	}
	if o.PageURL != "" {
		if err := errors.ValidateURL(o.PageURL); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// SetComposeDefaults sets default values for composition.
func (o *Options) SetComposeDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.setLoggerDefault()
}

// ValidateForCompose validates and sets defaults for composition.
// Dimension checks run before defaulting so an explicit bad canvas fails
// instead of being silently replaced.
func (o *Options) ValidateForCompose() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	o.SetComposeDefaults()
	return errors.ValidateOutputPath(o.Output)
}

// Format returns the poster encoding derived from the output path.
func (o *Options) Format() poster.Format {
	return poster.FormatForPath(o.Output)
}

// Geometry returns the canvas geometry for the configured dimensions.
func (o *Options) Geometry() poster.Geometry {
	return poster.Geometry{Width: o.Width, Height: o.Height}
}

// PosterKeyOpts returns cache key options for poster composition.
func (o *Options) PosterKeyOpts() cache.PosterKeyOpts {
	return cache.PosterKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Format: string(o.Format()),
	}
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
