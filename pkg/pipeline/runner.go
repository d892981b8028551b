package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/haffenloher/carposter/pkg/cache"
	"github.com/haffenloher/carposter/pkg/catalog"
	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/extract"
	"github.com/haffenloher/carposter/pkg/fetch"
	"github.com/haffenloher/carposter/pkg/observability"
	"github.com/haffenloher/carposter/pkg/poster"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Page is a fetched catalog page as stored in the page cache.
type Page struct {
	URL          string `json:"url"`
	Body         []byte `json:"body"`
	UsedHeadless bool   `json:"used_headless,omitempty"`
}

// Runner encapsulates pipeline execution with caching.
// Both the CLI and embedding programs use this to avoid duplicating
// caching and fallback logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Replace Fetcher, Catalog, or Images before
// the first run to change how pages and photos are retrieved; Catalog
// wraps Fetcher, so the two are usually replaced together.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher fetch.Fetcher
	Catalog *catalog.Client
	Images  *fetch.ImageFetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The default fetch client promotes to a headless browser when the
// catalog serves a challenge page.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	fetcher := fetch.NewClient(fetch.Config{Headless: true})
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: fetcher,
		Catalog: catalog.NewClient(fetcher, nil),
		Images:  fetch.NewImageFetcher("", 0),
	}
}

// Execute runs the complete fetch → extract → compose pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Brand:  opts.Brand,
		Model:  opts.Model,
		Format: opts.Format(),
	}

	specs, err := r.resolveSpecs(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.Specs = specs
	result.Stats.FieldCount = specs.Count()

	// Stage 3: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, string(result.Format))
	data, composeHit, err := r.ComposeWithCacheInfo(ctx, specs, opts)
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, string(result.Format), len(data), result.Stats.ComposeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Poster = data
	result.CacheInfo.ComposeHit = composeHit

	r.Logger.Info("composed poster",
		"format", result.Format,
		"bytes", len(data),
		"cached", composeHit,
		"duration", result.Stats.ComposeTime)

	return result, nil
}

// resolveSpecs produces the specification set for the run: reference
// data when requested, otherwise fetch and extract with a fallback to
// reference data on recoverable failures. Cancellation always aborts
// instead of falling back.
func (r *Runner) resolveSpecs(ctx context.Context, opts Options, result *Result) (vehicle.SpecificationSet, error) {
	if opts.Demo {
		result.Demo = true
		r.Logger.Info("using reference data", "brand", opts.Brand, "model", opts.Model)
		return vehicle.DemoSpecs(), nil
	}

	hooks := observability.Pipeline()

	// Stage 1: Fetch
	fetchStart := time.Now()
	hooks.OnFetchStart(ctx, opts.Brand, opts.Model)
	page, fetchHit, err := r.FetchPageWithCacheInfo(ctx, opts)
	result.Stats.FetchTime = time.Since(fetchStart)
	hooks.OnFetchComplete(ctx, opts.Brand, opts.Model, page.URL, result.Stats.FetchTime, err)
	if err != nil {
		return r.fallbackSpecs(ctx, fmt.Errorf("fetch: %w", err), result)
	}
	result.PageURL = page.URL
	result.UsedHeadless = page.UsedHeadless
	result.CacheInfo.FetchHit = fetchHit

	r.Logger.Info("fetched page",
		"url", page.URL,
		"bytes", len(page.Body),
		"cached", fetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Extract
	extractStart := time.Now()
	hooks.OnExtractStart(ctx, page.URL)
	specs, extractHit, err := r.ExtractSpecsWithCacheInfo(ctx, page, opts)
	result.Stats.ExtractTime = time.Since(extractStart)
	hooks.OnExtractComplete(ctx, page.URL, specs.Count(), result.Stats.ExtractTime, err)
	if err != nil {
		return r.fallbackSpecs(ctx, fmt.Errorf("extract: %w", err), result)
	}
	result.CacheInfo.ExtractHit = extractHit

	r.Logger.Info("extracted specifications",
		"fields", specs.Count(),
		"cached", extractHit,
		"duration", result.Stats.ExtractTime)

	return specs, nil
}

// fallbackSpecs degrades a failed fetch or extraction to reference data.
func (r *Runner) fallbackSpecs(ctx context.Context, err error, result *Result) (vehicle.SpecificationSet, error) {
	if ctx.Err() != nil || !errors.Recoverable(err) {
		return vehicle.SpecificationSet{}, err
	}
	r.Logger.Warn("falling back to reference data", "error", err)
	result.Demo = true
	result.PageURL = ""
	result.UsedHeadless = false
	return vehicle.DemoSpecs(), nil
}

// FetchPageWithCacheInfo retrieves the model's catalog page with caching
// and returns cache hit info.
func (r *Runner) FetchPageWithCacheInfo(ctx context.Context, opts Options) (Page, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForFetch(); err != nil {
		return Page{}, false, err
	}

	// Pages cache under the explicit URL when one was given, otherwise
	// under whatever page the brand and model resolve to.
	cacheKey := r.Keyer.PageKey(opts.Brand, opts.Model, opts.PageURL)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var page Page
			if err := json.Unmarshal(data, &page); err == nil {
				observability.Cache().OnCacheHit(ctx, "page")
				return page, true, nil // Cache hit
			}
			// Corrupt entries fall through to a refetch
		}
		observability.Cache().OnCacheMiss(ctx, "page")
	}

	page, err := r.fetchPage(ctx, opts)
	if err != nil {
		return Page{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(page); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPage)
		observability.Cache().OnCacheSet(ctx, "page", len(data))
	}

	return page, false, nil // Cache miss
}

// FetchPage is a convenience wrapper that calls FetchPageWithCacheInfo and discards the cache hit info.
func (r *Runner) FetchPage(ctx context.Context, opts Options) (Page, error) {
	page, _, err := r.FetchPageWithCacheInfo(ctx, opts)
	return page, err
}

// fetchPage retrieves the page over the network, either directly when
// an explicit URL was given or by walking the catalog's candidate URLs.
func (r *Runner) fetchPage(ctx context.Context, opts Options) (Page, error) {
	if opts.PageURL != "" {
		resp, err := r.Fetcher.Fetch(ctx, fetch.Request{URL: opts.PageURL})
		if err != nil {
			return Page{}, err
		}
		if resp.StatusCode != http.StatusOK {
			return Page{}, errors.New(errors.ErrCodePageNotFound,
				"%s returned status %d", opts.PageURL, resp.StatusCode)
		}
		return Page{URL: resp.URL, Body: resp.Body, UsedHeadless: resp.UsedHeadless}, nil
	}

	mp, err := r.Catalog.FetchModelPage(ctx, opts.Brand, opts.Model, opts.Refresh)
	if err != nil {
		return Page{}, err
	}
	return Page{
		URL:          mp.Response.URL,
		Body:         mp.Response.Body,
		UsedHeadless: mp.Response.UsedHeadless,
	}, nil
}

// ExtractSpecsWithCacheInfo extracts specification fields from a fetched
// page with caching and returns cache hit info.
func (r *Runner) ExtractSpecsWithCacheInfo(ctx context.Context, page Page, opts Options) (vehicle.SpecificationSet, bool, error) {
	r.applyLogger(&opts)

	// Spec sets cache under the page content hash, so a changed page
	// re-extracts even when the page cache was hit.
	cacheKey := r.Keyer.SpecKey(cache.Hash(page.Body))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var specs vehicle.SpecificationSet
			if err := json.Unmarshal(data, &specs); err == nil {
				observability.Cache().OnCacheHit(ctx, "spec")
				return specs, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "spec")
	}

	specs, err := extract.FromHTML(string(page.Body), page.URL)
	if err != nil {
		return vehicle.SpecificationSet{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(specs); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSpec)
		observability.Cache().OnCacheSet(ctx, "spec", len(data))
	}

	return specs, false, nil // Cache miss
}

// ExtractSpecs fetches the model's page and extracts its specification
// fields without composing a poster. Unlike Execute it does not fall
// back to reference data; callers that want the fallback run the full
// pipeline.
func (r *Runner) ExtractSpecs(ctx context.Context, opts Options) (vehicle.SpecificationSet, Page, error) {
	page, _, err := r.FetchPageWithCacheInfo(ctx, opts)
	if err != nil {
		return vehicle.SpecificationSet{}, Page{}, err
	}
	specs, _, err := r.ExtractSpecsWithCacheInfo(ctx, page, opts)
	if err != nil {
		return vehicle.SpecificationSet{}, page, err
	}
	return specs, page, nil
}

// ComposeWithCacheInfo draws and encodes the poster with caching and
// returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, specs vehicle.SpecificationSet, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCompose(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PosterKey(specHash(opts.Brand, opts.Model, specs), opts.PosterKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "poster")
			return data, true, nil // Cache hit
		}
		observability.Cache().OnCacheMiss(ctx, "poster")
	}

	img, err := poster.Compose(poster.Input{
		Brand: opts.Brand,
		Model: opts.Model,
		Specs: specs,
		Photo: r.fetchPhoto(ctx, specs.ImageURL, opts),
	}, opts.Geometry())
	if err != nil {
		return nil, false, err
	}
	data, err := poster.Encode(img, opts.Format())
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	observability.Cache().OnCacheSet(ctx, "poster", len(data))

	return data, false, nil // Cache miss
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, specs vehicle.SpecificationSet, opts Options) ([]byte, error) {
	data, _, err := r.ComposeWithCacheInfo(ctx, specs, opts)
	return data, err
}

// fetchPhoto downloads and decodes the car photo named by the page.
// Photo failures leave the image panel empty rather than failing the
// run.
func (r *Runner) fetchPhoto(ctx context.Context, url string, opts Options) image.Image {
	if url == "" {
		return nil
	}

	cacheKey := r.Keyer.ImageKey(url)
	var data []byte
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "image")
			data = cached
		} else {
			observability.Cache().OnCacheMiss(ctx, "image")
		}
	}
	if data == nil {
		fetched, err := r.Images.Fetch(ctx, url)
		if err != nil {
			opts.Logger.Warn("photo download failed", "url", url, "error", err)
			return nil
		}
		data = fetched
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLImage)
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}

	img, err := fetch.DecodeImage(data)
	if err != nil {
		opts.Logger.Warn("photo decode failed", "url", url, "error", err)
		return nil
	}
	return img
}

// specHash fingerprints everything that ends up on the poster.
func specHash(brand, model string, specs vehicle.SpecificationSet) string {
	payload, _ := json.Marshal(struct {
		Brand string                   `json:"brand"`
		Model string                   `json:"model"`
		Specs vehicle.SpecificationSet `json:"specs"`
	}{brand, model, specs})
	return cache.Hash(payload)
}

// Close releases resources held by the runner: the cache connection and
// the fetch client's headless browser if one was started.
func (r *Runner) Close() error {
	if c, ok := r.Fetcher.(*fetch.Client); ok {
		c.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
// It runs before validation, which would otherwise default the logger
// to discard.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
