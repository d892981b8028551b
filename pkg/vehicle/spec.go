// Package vehicle defines the specification data model shared by the
// extractor, the pipeline, and the poster renderer.
//
// A [SpecificationSet] is a flat record of the technical fields a poster
// displays. Fields are plain strings as they appear on the source page
// (after sanitization); an empty string means the field is absent.
package vehicle

import (
	"strings"
)

// Field identifies a single specification datum.
type Field string

// Canonical field identifiers.
const (
	FieldYear         Field = "year"
	FieldEngine       Field = "engine"
	FieldPower        Field = "power"
	FieldTorque       Field = "torque"
	FieldWeight       Field = "weight"
	FieldAcceleration Field = "acceleration_0_100"
	FieldTopSpeed     Field = "top_speed"
	FieldImageURL     Field = "image_url"
)

// Fields lists all specification fields in display order.
var Fields = []Field{
	FieldYear,
	FieldEngine,
	FieldPower,
	FieldTorque,
	FieldWeight,
	FieldAcceleration,
	FieldTopSpeed,
	FieldImageURL,
}

// SpecificationSet holds the extracted technical data for one car model.
// All values are sanitized display strings; empty means not found.
type SpecificationSet struct {
	Year         string `json:"year,omitempty"`
	Engine       string `json:"engine,omitempty"`
	Power        string `json:"power,omitempty"`
	Torque       string `json:"torque,omitempty"`
	Weight       string `json:"weight,omitempty"`
	Acceleration string `json:"acceleration_0_100,omitempty"`
	TopSpeed     string `json:"top_speed,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// Get returns the value for a field identifier.
func (s *SpecificationSet) Get(f Field) string {
	switch f {
	case FieldYear:
		return s.Year
	case FieldEngine:
		return s.Engine
	case FieldPower:
		return s.Power
	case FieldTorque:
		return s.Torque
	case FieldWeight:
		return s.Weight
	case FieldAcceleration:
		return s.Acceleration
	case FieldTopSpeed:
		return s.TopSpeed
	case FieldImageURL:
		return s.ImageURL
	}
	return ""
}

// Set assigns the value for a field identifier. Unknown fields are ignored.
func (s *SpecificationSet) Set(f Field, value string) {
	switch f {
	case FieldYear:
		s.Year = value
	case FieldEngine:
		s.Engine = value
	case FieldPower:
		s.Power = value
	case FieldTorque:
		s.Torque = value
	case FieldWeight:
		s.Weight = value
	case FieldAcceleration:
		s.Acceleration = value
	case FieldTopSpeed:
		s.TopSpeed = value
	case FieldImageURL:
		s.ImageURL = value
	}
}

// Count returns the number of populated data fields, excluding the image URL.
// This is the number the pipeline reports and the threshold for deciding
// whether extraction produced anything usable.
func (s *SpecificationSet) Count() int {
	n := 0
	for _, f := range Fields {
		if f == FieldImageURL {
			continue
		}
		if s.Get(f) != "" {
			n++
		}
	}
	return n
}

// Merge copies fields from other into s, but only where s is still empty.
// Existing values always win.
func (s *SpecificationSet) Merge(other SpecificationSet) {
	for _, f := range Fields {
		if s.Get(f) == "" {
			s.Set(f, other.Get(f))
		}
	}
}

// DefaultMaxLen is the sanitization cap applied when a caller has no
// specific limit. Table extraction uses 35, the poster layout uses 18.
const DefaultMaxLen = 22

// ellipsis is appended when a value is truncated.
const ellipsis = '…'

// Sanitize normalizes a raw scraped value for display. Surrounding
// whitespace is trimmed, newlines and carriage returns collapse into
// single spaces, and internal runs of whitespace shrink to one space.
// Values longer than maxLen runes are cut to maxLen-1 and terminated
// with an ellipsis so the result is exactly maxLen runes long.
// maxLen <= 0 applies DefaultMaxLen.
func Sanitize(value string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	cleaned := strings.Join(strings.Fields(value), " ")
	if cleaned == "" {
		return ""
	}

	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return string(runes[:maxLen-1]) + string(ellipsis)
}

// SanitizeSet returns a copy of s with every data field passed through
// Sanitize with the given cap. The image URL is left untouched; it is a
// URL, not display text.
func SanitizeSet(s SpecificationSet, maxLen int) SpecificationSet {
	out := s
	for _, f := range Fields {
		if f == FieldImageURL {
			continue
		}
		out.Set(f, Sanitize(s.Get(f), maxLen))
	}
	return out
}
