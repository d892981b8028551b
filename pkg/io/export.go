package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Document is the on-disk JSON form of an extraction result.
type Document struct {
	Brand   string                   `json:"brand"`
	Model   string                   `json:"model"`
	PageURL string                   `json:"page_url,omitempty"`
	Specs   vehicle.SpecificationSet `json:"specs"`
}

// WriteJSON encodes a document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip
// processing.
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
