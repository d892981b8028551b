// Package extract pulls specification fields out of a model page.
//
// Extraction runs in three tiers. Tier 1 scans structured HTML tables
// for labeled rows. Tier 2 runs field regexes over the whole page text
// and fills only fields that are still empty. Tier 3 picks a car photo
// URL from the page's img tags. A field set once is never overwritten
// by a later tier or row.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// tableMaxLen caps values taken from table cells. Table cells on the
// catalog site routinely carry footnotes, so this is looser than the
// default sanitization cap.
const tableMaxLen = 35

// labelKeywords maps each field to the substrings that identify its
// label cell. Fields are probed in tableFields order; the first field
// whose keyword matches claims the row.
var labelKeywords = map[vehicle.Field][]string{
	vehicle.FieldEngine:       {"engine", "displacement"},
	vehicle.FieldPower:        {"power", "horsepower", "hp"},
	vehicle.FieldTorque:       {"torque"},
	vehicle.FieldWeight:       {"weight", "mass"},
	vehicle.FieldAcceleration: {"acceleration", "0-100", "0-60"},
	vehicle.FieldTopSpeed:     {"top speed", "maximum speed"},
	vehicle.FieldYear:         {"year", "production"},
}

// tableFields fixes the probe order for table rows.
var tableFields = []vehicle.Field{
	vehicle.FieldEngine,
	vehicle.FieldPower,
	vehicle.FieldTorque,
	vehicle.FieldWeight,
	vehicle.FieldAcceleration,
	vehicle.FieldTopSpeed,
	vehicle.FieldYear,
}

// rejectSubstrings disqualify a table value outright. They mark rows
// that describe model variants rather than the model itself.
var rejectSubstrings = []string{
	"coupe",
	"roadster",
	"submodel",
	"belonging",
	"vers",
	"gen.",
}

// FromHTML extracts a specification set from page HTML. pageURL is used
// to resolve relative image sources and as a fallback source for the
// production year. The returned set carries whatever could be found;
// when zero data fields were populated the error has code
// [errors.ErrCodeNoFields] and the caller is expected to fall back to
// demo values. The image URL does not count as a data field.
func FromHTML(html, pageURL string) (vehicle.SpecificationSet, error) {
	var specs vehicle.SpecificationSet

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return specs, errors.Wrap(errors.ErrCodeNoFields, err, "parse page")
	}

	scanTables(doc, &specs)
	applyPatterns(doc.Text(), pageURL, &specs)
	if specs.ImageURL == "" {
		specs.ImageURL = findImage(doc, pageURL)
	}

	if specs.Count() == 0 {
		return specs, errors.New(errors.ErrCodeNoFields, "no specification fields found")
	}
	return specs, nil
}

// scanTables walks every table row and assigns label/value pairs to
// still-empty fields. Rows with fewer than two cells, rows whose value
// trips the reject list, and year rows whose value is not purely
// numeric are skipped.
func scanTables(doc *goquery.Document, specs *vehicle.SpecificationSet) {
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}

		label := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		raw := cells.Eq(1).Text()
		if label == "" || strings.TrimSpace(raw) == "" {
			return
		}

		field, ok := fieldForLabel(label)
		if !ok {
			return
		}
		if specs.Get(field) != "" {
			return
		}
		if rejected(raw) {
			return
		}
		if field == vehicle.FieldYear && !yearLike(raw) {
			return
		}

		specs.Set(field, vehicle.Sanitize(raw, tableMaxLen))
	})
}

// fieldForLabel finds the first field whose keywords match the label.
func fieldForLabel(label string) (vehicle.Field, bool) {
	for _, f := range tableFields {
		for _, kw := range labelKeywords[f] {
			if strings.Contains(label, kw) {
				return f, true
			}
		}
	}
	return "", false
}

// rejected reports whether a raw value contains a reject-list marker.
func rejected(raw string) bool {
	lower := strings.ToLower(raw)
	for _, sub := range rejectSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// yearLike checks that the leading 20 characters of a candidate year
// value consist only of digits, spaces, and hyphens. Catalog tables
// reuse "production" labels for prose rows; this guard filters those.
func yearLike(raw string) bool {
	head := strings.TrimSpace(raw)
	if len(head) > 20 {
		head = head[:20]
	}
	if head == "" {
		return false
	}
	return yearCharsRe.MatchString(head)
}
