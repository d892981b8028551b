package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a JSON document from r.
//
// The input must be a JSON object with at least "brand" and "model"
// set; see the package documentation for the full format. Spec fields
// that are missing stay empty and render as "n/a" on the poster.
//
// The returned document is independent of r and can be modified
// freely. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Brand == "" {
		return nil, fmt.Errorf("document has no brand")
	}
	if doc.Model == "" {
		return nil, fmt.Errorf("document has no model")
	}
	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded
// document. The error wraps the underlying cause with the file path
// for context.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return doc, nil
}
