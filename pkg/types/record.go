// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// the harvested Record and the configuration structs consumed by the harvest,
// render, and store stages.
package types

import "strings"

// Record holds one arXiv submission's metadata as extracted from an OAI-PMH
// ListRecords response. Text fields are normalized at extraction time: trimmed,
// lowercased, internal whitespace collapsed to single spaces. Fields missing
// from the source are empty strings (or empty slices), never an error.
type Record struct {
	// Identifier is the arXiv ID (e.g. "2301.07041").
	Identifier string `json:"id" yaml:"id"`

	// URL is the abstract page, derived from the identifier.
	URL string `json:"url" yaml:"url"`

	// Title is the normalized paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the normalized paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories is the raw arXiv category string (e.g. "cs.lg stat.ml").
	Categories string `json:"categories" yaml:"categories"`

	// Created and Updated are date strings as supplied by the source
	// (YYYY-MM-DD), empty when absent.
	Created string `json:"created" yaml:"created"`
	Updated string `json:"updated" yaml:"updated"`

	// DOI is empty when the submission has none.
	DOI string `json:"doi" yaml:"doi"`

	// Authors lists "<forenames> <keyname>" strings in source order. A missing
	// name component is rendered as the literal "n/a".
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists per-author affiliations. When any author lacks one
	// the whole slice is empty.
	Affiliations []string `json:"affiliation" yaml:"affiliation"`
}

// Field returns the record value for a filter field name and whether the name
// is known. Slice fields are joined with ", " so substring filters can match
// against them.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case "id":
		return r.Identifier, true
	case "url":
		return r.URL, true
	case "title":
		return r.Title, true
	case "abstract":
		return r.Abstract, true
	case "categories":
		return r.Categories, true
	case "created":
		return r.Created, true
	case "updated":
		return r.Updated, true
	case "doi":
		return r.DOI, true
	case "authors":
		return strings.Join(r.Authors, ", "), true
	case "affiliation":
		return strings.Join(r.Affiliations, ", "), true
	}
	return "", false
}
