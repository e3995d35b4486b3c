// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oai

import (
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// abstractURLPrefix is prepended to the arXiv ID to form the record URL.
const abstractURLPrefix = "https://arxiv.org/abs/"

// namePlaceholder stands in for a missing forename or keyname.
const namePlaceholder = "n/a"

// MapRecord flattens one arXiv metadata fragment into a Record. Extraction
// never fails: missing fields map to empty strings, missing author name
// components to "n/a", and affiliations to an empty slice unless every
// author declares one.
func MapRecord(meta ArXivMeta) types.Record {
	return types.Record{
		Identifier:   normalize(meta.ID),
		URL:          abstractURLPrefix + normalize(meta.ID),
		Title:        normalize(meta.Title),
		Abstract:     normalize(meta.Abstract),
		Categories:   normalize(meta.Categories),
		Created:      normalize(meta.Created),
		Updated:      normalize(meta.Updated),
		DOI:          normalize(meta.DOI),
		Authors:      mapAuthors(meta.Authors),
		Affiliations: mapAffiliations(meta.Authors),
	}
}

// mapAuthors joins forenames and keyname per author, substituting the
// placeholder for a missing component.
func mapAuthors(authors []Author) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, nameOrPlaceholder(a.Forenames)+" "+nameOrPlaceholder(a.Keyname))
	}
	return names
}

// mapAffiliations is all-or-nothing: any author without an affiliation
// empties the result for the whole record.
func mapAffiliations(authors []Author) []string {
	if len(authors) == 0 {
		return nil
	}
	affs := make([]string, 0, len(authors))
	for _, a := range authors {
		aff := normalize(a.Affiliation)
		if aff == "" {
			return nil
		}
		affs = append(affs, aff)
	}
	return affs
}

func nameOrPlaceholder(s string) string {
	if n := normalize(s); n != "" {
		return n
	}
	return namePlaceholder
}

// normalize trims, lowercases, and collapses internal whitespace (including
// the newlines arXiv wraps long titles and abstracts with) to single spaces.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
