package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipTokens mark image sources that are page chrome rather than car
// photography.
var skipTokens = []string{"logo", "icon", "pixel"}

// findImage picks a car photo URL from the page's img tags. The first
// absolute or root-relative source that is not a skip-token match wins.
// When nothing qualifies, the fallback is the first img of any form
// whose src is longer than ten characters. Relative sources are
// resolved against the page URL, and sources that fail to resolve are
// ignored.
func findImage(doc *goquery.Document, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var picked, fallback string
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}

		resolved := resolveSrc(base, src)
		if resolved == "" {
			return true
		}
		if fallback == "" && len(src) > 10 {
			fallback = resolved
		}
		if chrome(src) {
			return true
		}
		if !absoluteOrRooted(src) {
			return true
		}

		picked = resolved
		return false
	})

	if picked != "" {
		return picked
	}
	return fallback
}

// absoluteOrRooted reports whether src is an absolute URL or a
// root-relative path. Anything else is only eligible as fallback.
func absoluteOrRooted(src string) bool {
	return strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "/")
}

// chrome reports whether an image source looks like a logo, icon, or
// tracking pixel.
func chrome(src string) bool {
	lower := strings.ToLower(src)
	for _, tok := range skipTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// resolveSrc turns a possibly relative src into an absolute URL.
func resolveSrc(base *url.URL, src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if base == nil {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
