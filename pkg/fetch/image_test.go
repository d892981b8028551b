package fetch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haffenloher/carposter/pkg/errors"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestImageFetcherFetch(t *testing.T) {
	want := pngBytes(t)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(want)
	}))
	defer srv.Close()

	f := NewImageFetcher("photo-agent", 0)
	data, err := f.Fetch(context.Background(), srv.URL+"/car.png")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if !bytes.Equal(data, want) {
		t.Errorf("Fetch() returned %d bytes, want %d", len(data), len(want))
	}
	if gotUA != "photo-agent" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "photo-agent")
	}
}

func TestImageFetcherRetriesServerErrors(t *testing.T) {
	want := pngBytes(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(want)
	}))
	defer srv.Close()

	f := NewImageFetcher("", time.Second)
	data, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2", got)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Fetch() returned %d bytes, want %d", len(data), len(want))
	}
}

func TestImageFetcherNotFoundFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewImageFetcher("", 0)
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Fetch() error = nil, want network error")
	}

	if got := errors.GetCode(err); got != errors.ErrCodeNetwork {
		t.Errorf("GetCode() = %q, want %q", got, errors.ErrCodeNetwork)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1 (no retry on 404)", got)
	}
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(pngBytes(t))
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != 4 {
		t.Errorf("Bounds().Dx() = %d, want 4", got)
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	_, err := DecodeImage([]byte("not an image"))
	if err == nil {
		t.Fatal("DecodeImage() error = nil, want decode error")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeImageDecode {
		t.Errorf("GetCode() = %q, want %q", got, errors.ErrCodeImageDecode)
	}
}
