// Package catalog resolves brand and model names to pages on
// www.automobile-catalog.com.
//
// The site only serves model pages at /model/BRAND/MODEL.html; there
// is no brand index to search. Page URLs are therefore built from
// slugged names, with a small table of known exact slugs for models
// whose catalog slug differs from the obvious one. Candidates are
// tried in order until one fetch comes back as an unblocked 200.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BaseURL is the catalog site root.
const BaseURL = "https://www.automobile-catalog.com"

// Candidate is one model page URL to try, with a display name for
// logs and the interactive picker.
type Candidate struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// knownModels maps brand/model pairs to exact page slugs. The site's
// slugs do not always follow from the marketing name; the TT RS for
// example lives under the generation page tt_gen_2 first.
var knownModels = []struct {
	brand, model string
	candidates   []Candidate
}{
	{
		brand: "audi", model: "tt rs",
		candidates: []Candidate{
			{Name: "Audi TT RS", URL: BaseURL + "/model/audi/tt_gen_2.html"},
			{Name: "Audi TT RS", URL: BaseURL + "/model/audi/tt_rs.html"},
		},
	},
}

// PageURL builds the pattern page URL for a brand and model. Names
// are lowercased and spaces become underscores; model hyphens become
// underscores as well.
func PageURL(brand, model string) string {
	return BaseURL + "/model/" + brandSlug(brand) + "/" + modelSlug(model) + ".html"
}

func brandSlug(brand string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(brand)), " ", "_")
}

func modelSlug(model string) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(model)), " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

// Candidates returns the ordered page URLs to try for a model. Known
// exact slugs come first; the pattern URL is appended last unless a
// known entry already points at it.
func Candidates(brand, model string) []Candidate {
	brandKey := strings.ToLower(strings.TrimSpace(brand))
	modelKey := strings.ToLower(strings.TrimSpace(model))

	var out []Candidate
	for _, known := range knownModels {
		if known.brand != brandKey {
			continue
		}
		if strings.Contains(modelKey, known.model) || strings.Contains(known.model, modelKey) {
			out = append(out, known.candidates...)
			break
		}
	}

	pattern := Candidate{Name: displayName(brand, model), URL: PageURL(brand, model)}
	for _, c := range out {
		if c.URL == pattern.URL {
			return out
		}
	}
	return append(out, pattern)
}

func displayName(brand, model string) string {
	spaced := strings.ReplaceAll(strings.TrimSpace(model), "_", " ")
	titled := cases.Title(language.English).String(spaced)
	return strings.TrimSpace(brand) + " " + titled
}
