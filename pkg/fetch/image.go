package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/httputil"
)

// maxImageBytes caps photo downloads. Catalog photos are far smaller;
// the cap only guards against a misidentified URL.
const maxImageBytes = 20 << 20

// ImageFetcher downloads car photos over plain HTTP with retries.
type ImageFetcher struct {
	client    *http.Client
	userAgent string
}

// NewImageFetcher builds an image fetcher.
func NewImageFetcher(userAgent string, timeout time.Duration) *ImageFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &ImageFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: newHTTPTransport(),
		},
		userAgent: userAgent,
	}
}

// Fetch downloads the image bytes at url. Network errors and 5xx
// responses are retried with backoff; other statuses fail immediately.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500:
			return &httputil.RetryableError{Err: fmt.Errorf("server error %d", resp.StatusCode)}
		default:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "download image %s", url)
	}
	return data, nil
}

// DecodeImage decodes downloaded photo bytes. Failures carry the
// IMAGE_DECODE code so the pipeline can keep going without a photo.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "decode image")
	}
	return img, nil
}
