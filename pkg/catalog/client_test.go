package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/fetch"
	"github.com/haffenloher/carposter/pkg/httputil"
)

// routeFetcher serves canned responses by URL and records the order
// of requests.
type routeFetcher struct {
	responses map[string]fetch.Response
	errs      map[string]error
	requested []string
}

func (f *routeFetcher) Fetch(ctx context.Context, req fetch.Request) (fetch.Response, error) {
	f.requested = append(f.requested, req.URL)
	if err, ok := f.errs[req.URL]; ok {
		return fetch.Response{}, err
	}
	if resp, ok := f.responses[req.URL]; ok {
		return resp, nil
	}
	return fetch.Response{StatusCode: 404}, nil
}

func testURLCache(t *testing.T) *httputil.Cache {
	t.Helper()
	c, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	return c.Namespace("catalog:")
}

func TestFetchModelPageWalksCandidates(t *testing.T) {
	genURL := BaseURL + "/model/audi/tt_gen_2.html"
	modelURL := BaseURL + "/model/audi/tt_rs.html"
	fetcher := &routeFetcher{responses: map[string]fetch.Response{
		genURL:   {StatusCode: 404},
		modelURL: {StatusCode: 200, Body: []byte("<html>specs</html>")},
	}}

	c := NewClient(fetcher, testURLCache(t))
	page, err := c.FetchModelPage(context.Background(), "Audi", "TT RS", false)
	if err != nil {
		t.Fatalf("FetchModelPage() error = %v", err)
	}

	if page.Candidate.URL != modelURL {
		t.Errorf("Candidate.URL = %q, want %q", page.Candidate.URL, modelURL)
	}
	if len(fetcher.requested) != 2 || fetcher.requested[0] != genURL {
		t.Errorf("requested = %v, want generation page first", fetcher.requested)
	}
}

func TestFetchModelPageRemembersWinner(t *testing.T) {
	genURL := BaseURL + "/model/audi/tt_gen_2.html"
	modelURL := BaseURL + "/model/audi/tt_rs.html"
	urls := testURLCache(t)

	first := &routeFetcher{responses: map[string]fetch.Response{
		genURL:   {StatusCode: 404},
		modelURL: {StatusCode: 200, Body: []byte("ok")},
	}}
	if _, err := NewClient(first, urls).FetchModelPage(context.Background(), "Audi", "TT RS", false); err != nil {
		t.Fatalf("first FetchModelPage() error = %v", err)
	}

	second := &routeFetcher{responses: map[string]fetch.Response{
		modelURL: {StatusCode: 200, Body: []byte("ok")},
	}}
	if _, err := NewClient(second, urls).FetchModelPage(context.Background(), "Audi", "TT RS", false); err != nil {
		t.Fatalf("second FetchModelPage() error = %v", err)
	}

	if len(second.requested) != 1 || second.requested[0] != modelURL {
		t.Errorf("second run requested = %v, want the memoized winner only", second.requested)
	}
}

func TestFetchModelPageRefreshSkipsMemo(t *testing.T) {
	genURL := BaseURL + "/model/audi/tt_gen_2.html"
	modelURL := BaseURL + "/model/audi/tt_rs.html"
	urls := testURLCache(t)

	warm := &routeFetcher{responses: map[string]fetch.Response{
		genURL:   {StatusCode: 404},
		modelURL: {StatusCode: 200, Body: []byte("ok")},
	}}
	if _, err := NewClient(warm, urls).FetchModelPage(context.Background(), "Audi", "TT RS", false); err != nil {
		t.Fatalf("warmup FetchModelPage() error = %v", err)
	}

	refreshed := &routeFetcher{responses: map[string]fetch.Response{
		genURL:   {StatusCode: 404},
		modelURL: {StatusCode: 200, Body: []byte("ok")},
	}}
	if _, err := NewClient(refreshed, urls).FetchModelPage(context.Background(), "Audi", "TT RS", true); err != nil {
		t.Fatalf("refresh FetchModelPage() error = %v", err)
	}

	if len(refreshed.requested) == 0 || refreshed.requested[0] != genURL {
		t.Errorf("refresh requested = %v, want original candidate order", refreshed.requested)
	}
}

func TestFetchModelPageAllNotFound(t *testing.T) {
	fetcher := &routeFetcher{}

	c := NewClient(fetcher, nil)
	_, err := c.FetchModelPage(context.Background(), "BMW", "M3", false)
	if err == nil {
		t.Fatal("FetchModelPage() error = nil, want PAGE_NOT_FOUND")
	}

	if got := errors.GetCode(err); got != errors.ErrCodePageNotFound {
		t.Errorf("GetCode() = %q, want %q", got, errors.ErrCodePageNotFound)
	}
	if !errors.Recoverable(err) {
		t.Error("Recoverable() = false, want true")
	}
}

func TestFetchModelPageFetchFailure(t *testing.T) {
	url := BaseURL + "/model/bmw/m3.html"
	fetcher := &routeFetcher{errs: map[string]error{
		url: fmt.Errorf("connection refused"),
	}}

	c := NewClient(fetcher, nil)
	_, err := c.FetchModelPage(context.Background(), "BMW", "M3", false)
	if err == nil {
		t.Fatal("FetchModelPage() error = nil, want wrapped failure")
	}
	if got := errors.GetCode(err); got != errors.ErrCodePageNotFound {
		t.Errorf("GetCode() = %q, want %q", got, errors.ErrCodePageNotFound)
	}
}

func TestFetchModelPageCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(&routeFetcher{}, nil)
	_, err := c.FetchModelPage(ctx, "BMW", "M3", false)
	if err == nil {
		t.Fatal("FetchModelPage() error = nil, want cancellation")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, errors.ErrCodeTimeout)
	}
}
