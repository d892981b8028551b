package catalog

import (
	"context"
	"net/http"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/fetch"
	"github.com/haffenloher/carposter/pkg/httputil"
)

// ModelPage is a successfully fetched catalog page.
type ModelPage struct {
	Candidate Candidate
	Response  fetch.Response
}

// Client walks candidate URLs for a model until one of them yields an
// unblocked page. The candidate that worked is memoized so later runs
// for the same model skip the dead slugs.
type Client struct {
	fetcher fetch.Fetcher
	urls    *httputil.Cache
}

// NewClient creates a catalog client. urls may be nil to disable URL
// memoization; callers usually pass a cache namespaced "catalog:".
func NewClient(fetcher fetch.Fetcher, urls *httputil.Cache) *Client {
	return &Client{fetcher: fetcher, urls: urls}
}

// resolved is the memoized winning candidate for a brand/model pair.
type resolved struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func urlKey(brand, model string) string {
	return brandSlug(brand) + "/" + modelSlug(model)
}

// FetchModelPage tries each candidate URL in order and returns the
// first page that comes back as an unblocked 200. Candidates that
// 404 move on to the next slug; other failures are remembered and
// surface as the cause when every candidate is exhausted. Brand and
// model are assumed validated by the caller.
func (c *Client) FetchModelPage(ctx context.Context, brand, model string, refresh bool) (*ModelPage, error) {
	candidates := c.orderedCandidates(brand, model, refresh)

	var lastErr error
	for _, cand := range candidates {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch canceled")
		}

		resp, err := c.fetcher.Fetch(ctx, fetch.Request{URL: cand.URL})
		if err != nil {
			lastErr = err
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			c.remember(brand, model, cand)
			return &ModelPage{Candidate: cand, Response: resp}, nil
		case http.StatusNotFound:
			// Wrong slug, try the next one.
		default:
			lastErr = errors.New(errors.ErrCodeNetwork, "%s returned status %d", cand.URL, resp.StatusCode)
		}
	}

	if lastErr != nil {
		return nil, errors.Wrap(errors.ErrCodePageNotFound, lastErr, "no reachable catalog page for %s %s", brand, model)
	}
	return nil, errors.New(errors.ErrCodePageNotFound, "no catalog page for %s %s", brand, model)
}

// orderedCandidates returns the candidate list, with the memoized
// winner from a previous run moved to the front.
func (c *Client) orderedCandidates(brand, model string, refresh bool) []Candidate {
	candidates := Candidates(brand, model)
	if refresh || c.urls == nil {
		return candidates
	}

	var memo resolved
	if ok, err := c.urls.Get(urlKey(brand, model), &memo); !ok || err != nil || memo.URL == "" {
		return candidates
	}

	for i, cand := range candidates {
		if cand.URL == memo.URL {
			if i > 0 {
				reordered := append([]Candidate{cand}, candidates[:i]...)
				candidates = append(reordered, candidates[i+1:]...)
			}
			return candidates
		}
	}
	// A slug pinned by hand, not one we would generate.
	return append([]Candidate{{Name: memo.Name, URL: memo.URL}}, candidates...)
}

func (c *Client) remember(brand, model string, cand Candidate) {
	if c.urls == nil {
		return
	}
	_ = c.urls.Set(urlKey(brand, model), resolved{Name: cand.Name, URL: cand.URL})
}
