package extract

import (
	"regexp"
	"strings"

	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Tier-2 patterns. These run over the visible page text and only fill
// fields the table scan left empty.
var (
	yearCharsRe = regexp.MustCompile(`^[\d\s\-]+$`)

	engineRe   = regexp.MustCompile(`(\d+[.,]\d+)\s*[lL](?:iter)?\s*(TFSI|TDI|TSI|FSI|V6|V8|V10|V12|W12|I4|I6)?`)
	powerRe    = regexp.MustCompile(`(?i)(\d{2,4})\s*(?:HP|PS|kW|bhp)\b`)
	torqueNmRe = regexp.MustCompile(`(?i)(\d{2,4})\s*Nm\b`)
	torqueLbRe = regexp.MustCompile(`(?i)(\d{2,4})\s*lb[- ]?ft\b`)
	weightRe   = regexp.MustCompile(`(?i)(\d{3,5})\s*(kg|lbs)\b`)
	accelRe    = regexp.MustCompile(`(?i)0\s*[-–]\s*(?:100|60)\s*(?:km/h|mph)?\D{0,20}?(\d+(?:[.,]\d+)?)\s*s(?:ec)?\b`)
	speedRe    = regexp.MustCompile(`(?i)(?:top|max(?:imum)?)\s*speed\D{0,20}?(\d{2,3})\s*(?:km/h|mph)`)

	yearRangeRe  = regexp.MustCompile(`((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2})`)
	yearSingleRe = regexp.MustCompile(`(?:19|20)\d{2}`)
)

// applyPatterns fills empty fields from regex matches on the page text.
// The production year additionally falls back to the page URL, where
// the catalog encodes it for many models. All results pass through the
// default sanitization cap.
func applyPatterns(text, pageURL string, specs *vehicle.SpecificationSet) {
	set := func(f vehicle.Field, value string) {
		specs.Set(f, vehicle.Sanitize(value, vehicle.DefaultMaxLen))
	}

	if specs.Engine == "" {
		if m := engineRe.FindStringSubmatch(text); m != nil {
			engine := strings.ReplaceAll(m[1], ",", ".") + "L"
			if m[2] != "" {
				engine += " " + m[2]
			}
			set(vehicle.FieldEngine, engine)
		}
	}

	if specs.Power == "" {
		if m := powerRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldPower, m[1]+" HP")
		}
	}

	// Metric torque wins over lb-ft when the page lists both.
	if specs.Torque == "" {
		if m := torqueNmRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldTorque, m[1]+" Nm")
		} else if m := torqueLbRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldTorque, m[1]+" lb-ft")
		}
	}

	if specs.Weight == "" {
		if m := weightRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldWeight, m[1]+" "+strings.ToLower(m[2]))
		}
	}

	if specs.Acceleration == "" {
		if m := accelRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldAcceleration, strings.ReplaceAll(m[1], ",", ".")+" s")
		}
	}

	if specs.TopSpeed == "" {
		if m := speedRe.FindStringSubmatch(text); m != nil {
			set(vehicle.FieldTopSpeed, m[1]+" km/h")
		}
	}

	if specs.Year == "" {
		year := findYear(text)
		if year == "" {
			year = findYear(pageURL)
		}
		if year != "" {
			set(vehicle.FieldYear, year)
		}
	}
}

// findYear looks for a production year range first and a single
// four-digit year second.
func findYear(s string) string {
	if m := yearRangeRe.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2]
	}
	return yearSingleRe.FindString(s)
}
