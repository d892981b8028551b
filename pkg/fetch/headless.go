package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Content poll settings. Challenge interstitials hand off to the real
// page after a few seconds; the real catalog pages are far larger than
// the interstitial shell.
const (
	contentPollAttempts  = 18
	contentPollInterval  = time.Second
	contentSizeThreshold = 5000
	contentSettleWait    = 2 * time.Second
)

// HeadlessConfig controls the chromedp-based fetcher.
type HeadlessConfig struct {
	UserAgent         string
	NavigationTimeout time.Duration
}

// Headless fetches pages through a headless Chrome instance. Each
// fetch runs in a fresh tab under a shared allocator.
type Headless struct {
	cfg         HeadlessConfig
	allocator   context.Context
	allocCancel context.CancelFunc
}

// NewHeadless creates a headless fetcher. The browser process itself
// is launched lazily on the first fetch.
func NewHeadless(cfg HeadlessConfig) *Headless {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 45 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("enable-automation", false),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Headless{
		cfg:         cfg,
		allocator:   allocCtx,
		allocCancel: allocCancel,
	}
}

// Close shuts the browser down.
func (f *Headless) Close() {
	f.allocCancel()
}

// Fetch navigates with the headless browser and returns the rendered
// DOM once the page has grown past the interstitial shell.
func (f *Headless) Fetch(ctx context.Context, req Request) (Response, error) {
	taskCtx, taskCancel := chromedp.NewContext(f.allocator)
	defer taskCancel()

	taskCtx, cancel := context.WithTimeout(taskCtx, f.cfg.NavigationTimeout)
	defer cancel()

	stop := context.AfterFunc(ctx, taskCancel)
	defer stop()

	meta := newResponseMeta()
	chromedp.ListenTarget(taskCtx, meta.captureEvent)

	start := time.Now()
	html, finalURL, err := f.runHeadless(taskCtx, req)
	if err != nil {
		return Response{}, err
	}

	status, responseURL := meta.snapshotWithFallbacks(req.URL, finalURL)
	return Response{
		URL:          responseURL,
		StatusCode:   status,
		Body:         []byte(html),
		Duration:     time.Since(start),
		UsedHeadless: true,
	}, nil
}

func (f *Headless) runHeadless(ctx context.Context, req Request) (string, string, error) {
	var (
		html     string
		finalURL string
	)
	actions := []chromedp.Action{
		f.networkSetupAction(req.Headers),
		chromedp.Navigate(req.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		waitForContent(),
		chromedp.Sleep(contentSettleWait),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(ctx, actions...); err != nil {
		return "", "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, finalURL, nil
}

// waitForContent polls the DOM until it grows past the interstitial
// size or the attempts run out. Running out is not an error; whatever
// rendered is returned and judged by the challenge detector.
func waitForContent() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for attempt := 0; attempt < contentPollAttempts; attempt++ {
			var current string
			if err := chromedp.OuterHTML("html", &current, chromedp.ByQuery).Do(ctx); err != nil {
				return err
			}
			if len(current) > contentSizeThreshold {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(contentPollInterval):
			}
		}
		return nil
	})
}

func (f *Headless) networkSetupAction(headers http.Header) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enable network domain: %w", err)
		}
		if f.cfg.UserAgent != "" {
			if err := emulation.SetUserAgentOverride(f.cfg.UserAgent).Do(ctx); err != nil {
				return fmt.Errorf("set user-agent: %w", err)
			}
		}
		if len(headers) > 0 {
			if err := network.SetExtraHTTPHeaders(toNetworkHeaders(headers)).Do(ctx); err != nil {
				return fmt.Errorf("set extra headers: %w", err)
			}
		}
		return nil
	})
}

// responseMeta captures the status and final URL of the document
// request from CDP network events.
type responseMeta struct {
	mu     sync.RWMutex
	status int
	url    string
}

func newResponseMeta() *responseMeta {
	return &responseMeta{}
}

func (m *responseMeta) captureEvent(ev any) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok || resp.Type != network.ResourceTypeDocument || resp.Response == nil {
		return
	}
	m.mu.Lock()
	m.status = int(resp.Response.Status)
	m.url = resp.Response.URL
	m.mu.Unlock()
}

func (m *responseMeta) snapshotWithFallbacks(requestURL, finalURL string) (int, string) {
	m.mu.RLock()
	status, url := m.status, m.url
	m.mu.RUnlock()

	switch {
	case url != "":
	case finalURL != "":
		url = finalURL
	default:
		url = requestURL
	}

	if status == 0 {
		status = http.StatusOK
	}
	return status, url
}

// toNetworkHeaders converts to the CDP header map. The protocol wants
// plain string values, so multi-valued headers are joined.
func toNetworkHeaders(h http.Header) network.Headers {
	headers := network.Headers{}
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		headers[key] = strings.Join(values, ", ")
	}
	return headers
}

// Ensure Headless implements Fetcher.
var _ Fetcher = (*Headless)(nil)
