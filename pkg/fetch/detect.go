package fetch

import (
	"bytes"
	"strings"
)

// challengeMarkers identify bot-protection interstitials. Only the
// leading challengeWindow bytes are searched; the markers sit in the
// page head when present.
var challengeMarkers = [][]byte{
	[]byte("just a moment"),
	[]byte("cf_chl"),
	[]byte("challenge"),
}

const challengeWindow = 2000

// Detector decides when a static response is unusable and the fetch
// has to be promoted to a headless browser.
type Detector struct {
	BodyLengthThreshold int
}

// NewDetector creates a detector. A zero threshold selects the
// default.
func NewDetector(threshold int) *Detector {
	if threshold == 0 {
		threshold = 2048
	}
	return &Detector{BodyLengthThreshold: threshold}
}

// Blocked reports whether the response is a bot-challenge page. A 403
// always counts; otherwise the leading bytes are scanned for known
// challenge markers.
func (d *Detector) Blocked(resp Response) bool {
	if resp.StatusCode == 403 {
		return true
	}
	return containsChallengeMarker(resp.Body)
}

// NeedsBrowser reports whether a headless fetch is required: either
// the page is challenge-blocked, or it is a JavaScript shell that only
// renders client-side.
func (d *Detector) NeedsBrowser(resp Response) bool {
	if d.Blocked(resp) {
		return true
	}
	if resp.StatusCode != 200 {
		return false
	}
	body := resp.Body
	if len(body) == 0 {
		return true
	}
	return len(body) < d.BodyLengthThreshold && scriptDensityHigh(body)
}

// containsChallengeMarker scans the leading bytes for challenge
// markers, case-insensitively.
func containsChallengeMarker(body []byte) bool {
	window := body
	if len(window) > challengeWindow {
		window = window[:challengeWindow]
	}
	lower := bytes.ToLower(window)
	for _, marker := range challengeMarkers {
		if bytes.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// scriptDensityHigh reports whether script tags cover at least a
// quarter of the document.
func scriptDensityHigh(body []byte) bool {
	lower := strings.ToLower(string(body))
	total := len(lower)
	if total == 0 {
		return false
	}

	const (
		openTag  = "<script"
		closeTag = "</script>"
	)
	scriptCoverage := 0
	searchPos := 0

	for {
		relativeStart := strings.Index(lower[searchPos:], openTag)
		if relativeStart == -1 {
			break
		}
		start := searchPos + relativeStart

		tagClose := strings.IndexByte(lower[start:], '>')
		if tagClose == -1 {
			// Treat the rest of the document as part of the malformed script.
			scriptCoverage += total - start
			break
		}
		contentStart := start + tagClose + 1

		relativeEnd := strings.Index(lower[contentStart:], closeTag)
		var nextSearch int
		if relativeEnd == -1 {
			// Script tag never closes; count the rest.
			nextSearch = total
		} else {
			nextSearch = contentStart + relativeEnd + len(closeTag)
		}

		scriptCoverage += nextSearch - start
		searchPos = nextSearch
	}

	if scriptCoverage == 0 {
		return false
	}
	return scriptCoverage*100/total >= 25
}
