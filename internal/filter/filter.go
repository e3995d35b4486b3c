// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter decides which harvested records to retain based on keyword
// matches against record fields.
package filter

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Filters maps record field names (e.g. "abstract", "title", "categories")
// to keyword lists. A record is retained when any keyword occurs in the named
// field; an empty Filters retains everything.
type Filters map[string][]string

// Match reports whether rec should be retained. Matching is case-insensitive
// substring containment. Field names the record does not know never match
// and never fail.
func (f Filters) Match(rec types.Record) bool {
	if len(f) == 0 {
		return true
	}
	for field, keywords := range f {
		value, ok := rec.Field(field)
		if !ok {
			continue
		}
		value = strings.ToLower(value)
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(value, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// LoadFile reads a Filters mapping from a YAML file of the form:
//
//	abstract: [diffusion, "text to image"]
//	title: [controlnet]
func LoadFile(path string) (Filters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter file: %w", err)
	}
	var f Filters
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing filter file %s: %w", path, err)
	}
	return f, nil
}
