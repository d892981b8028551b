// Package fetch retrieves catalog pages.
//
// The static colly fetcher is always tried first. When its response
// looks like a bot challenge or a JavaScript shell, the fetch is
// promoted to a headless browser that can wait the challenge out. Both
// paths failing is reported as FETCH_UNAVAILABLE, which callers treat
// as recoverable.
package fetch

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/observability"
)

// DefaultUserAgent is sent on every request. The catalog site serves a
// challenge page to clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Request describes a single page fetch.
type Request struct {
	URL     string
	Headers http.Header
}

// Response is the outcome of a page fetch.
type Response struct {
	URL          string
	StatusCode   int
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}

// Fetcher retrieves a single page.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// BrowserHeaders returns the header set a desktop browser would send.
func BrowserHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	return h
}

// Config controls the fetch client.
type Config struct {
	UserAgent         string        // DefaultUserAgent when empty
	Timeout           time.Duration // static request timeout
	Headless          bool          // allow promotion to a headless browser
	NavigationTimeout time.Duration // headless navigation timeout
}

// Client orchestrates the static and headless fetchers.
type Client struct {
	static   Fetcher
	headless Fetcher
	detector *Detector
}

// NewClient builds a fetch client. The headless fetcher is only
// started when cfg.Headless is set.
func NewClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		static: NewStatic(StaticConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		}),
		detector: NewDetector(0),
	}
	if cfg.Headless {
		c.headless = NewHeadless(HeadlessConfig{
			UserAgent:         cfg.UserAgent,
			NavigationTimeout: cfg.NavigationTimeout,
		})
	}
	return c
}

// Close shuts down the headless browser if one was started.
func (c *Client) Close() {
	if h, ok := c.headless.(*Headless); ok {
		h.Close()
	}
}

// Fetch retrieves a page, promoting to the headless fetcher when the
// static response is challenge-blocked or renders client-side.
func (c *Client) Fetch(ctx context.Context, req Request) (Response, error) {
	host, path := splitURL(req.URL)
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	resp, err := c.fetch(ctx, req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return resp, err
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, resp.Duration)
	return resp, nil
}

func (c *Client) fetch(ctx context.Context, req Request) (Response, error) {
	if req.Headers == nil {
		req.Headers = BrowserHeaders()
	}

	resp, err := c.static.Fetch(ctx, req)
	if err == nil && !c.detector.NeedsBrowser(resp) {
		return resp, nil
	}

	if c.headless == nil {
		if err != nil {
			return Response{}, errors.Wrap(errors.ErrCodeFetchUnavailable, err, "static fetch failed for %s", req.URL)
		}
		return resp, errors.New(errors.ErrCodeFetchUnavailable,
			"%s is challenge-blocked and headless fetching is disabled", req.URL)
	}

	hresp, herr := c.headless.Fetch(ctx, req)
	if herr != nil {
		return Response{}, errors.Wrap(errors.ErrCodeFetchUnavailable, herr, "headless fetch failed for %s", req.URL)
	}
	if c.detector.Blocked(hresp) {
		return hresp, errors.New(errors.ErrCodeFetchUnavailable,
			"%s is challenge-blocked even through the browser", req.URL)
	}
	return hresp, nil
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}
	return u.Host, u.Path
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)
