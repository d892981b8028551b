package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStaticFetch(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("<html><body>Audi TT RS</body></html>"))
	}))
	defer srv.Close()

	s := NewStatic(StaticConfig{UserAgent: "test-agent"})
	resp, err := s.Fetch(context.Background(), Request{
		URL:     srv.URL,
		Headers: BrowserHeaders(),
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Audi TT RS") {
		t.Errorf("Body = %q, want page content", resp.Body)
	}
	if resp.UsedHeadless {
		t.Error("UsedHeadless = true, want false")
	}
	if resp.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", resp.Duration)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent")
	}
	if gotLang != "en-US,en;q=0.9" {
		t.Errorf("Accept-Language = %q, want browser header", gotLang)
	}
}

func TestStaticFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<title>Just a moment...</title>"))
	}))
	defer srv.Close()

	s := NewStatic(StaticConfig{})
	resp, err := s.Fetch(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want body of the 403", err)
	}

	if resp.StatusCode != 403 {
		t.Errorf("StatusCode = %d, want 403", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Just a moment") {
		t.Errorf("Body = %q, want challenge body", resp.Body)
	}
}

func TestStaticFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewStatic(StaticConfig{Timeout: 2 * time.Second})
	if _, err := s.Fetch(context.Background(), Request{URL: url}); err == nil {
		t.Fatal("Fetch() error = nil, want transport error")
	}
}

func TestStaticFetchContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	s := NewStatic(StaticConfig{})
	if _, err := s.Fetch(ctx, Request{URL: srv.URL}); err == nil {
		t.Fatal("Fetch() error = nil, want cancellation error")
	}
}
