package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// StaticConfig controls the colly-based fetcher.
type StaticConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// Static fetches pages over plain HTTP using a colly collector. The
// base collector is cloned per request so fetches never share hook
// state.
type Static struct {
	cfg       StaticConfig
	transport http.RoundTripper
	base      *colly.Collector
}

// NewStatic builds a static fetcher.
func NewStatic(cfg StaticConfig) *Static {
	c := colly.NewCollector(colly.Async(false))
	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Static{
		cfg:       cfg,
		transport: transport,
		base:      c,
	}
}

// Fetch executes a single HTTP GET. An HTTP response of any status is
// returned as a Response with a nil error; the caller decides what a
// 403 or 404 means. Errors are reserved for transport failures.
func (s *Static) Fetch(ctx context.Context, req Request) (Response, error) {
	var (
		result   Response
		fetchErr error
	)
	start := time.Now()
	collector := s.buildCollector(req, start, &result, &fetchErr)

	if err := s.runCollector(ctx, collector, req.URL); err != nil {
		if result.StatusCode != 0 {
			// Colly reports non-2xx statuses as errors but the body
			// still matters for challenge detection.
			return result, nil
		}
		return Response{}, err
	}
	if fetchErr != nil && result.StatusCode == 0 {
		return Response{}, fmt.Errorf("static fetch failed: %w", fetchErr)
	}
	return result, nil
}

func (s *Static) buildCollector(req Request, start time.Time, result *Response, fetchErr *error) *colly.Collector {
	collector := s.base.Clone()
	if s.cfg.UserAgent != "" {
		collector.UserAgent = s.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	// Challenge pages come back as 403s whose body we still need.
	collector.ParseHTTPErrorResponse = true

	timeout := s.cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collector.SetRequestTimeout(timeout)
	collector.WithTransport(s.transport)

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range req.Headers {
			for _, v := range values {
				r.Headers.Add(key, v)
			}
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		*result = Response{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			*result = Response{
				URL:        r.Request.URL.String(),
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
				Duration:   time.Since(start),
			}
		}
		*fetchErr = err
	})

	return collector
}

func (s *Static) runCollector(ctx context.Context, collector *colly.Collector, url string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("static fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit %s: %w", url, err)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}

// Ensure Static implements Fetcher.
var _ Fetcher = (*Static)(nil)
