// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oai parses arXiv OAI-PMH ListRecords responses and maps their
// metadata fragments into flat records.
package oai

import (
	"encoding/xml"
	"fmt"
	"io"
)

// BaseURL is the arXiv OAI-PMH bulk-export endpoint.
const BaseURL = "http://export.arxiv.org/oai2"

// Response is the decoded OAI-PMH envelope of a ListRecords request.
// ListRecords is nil when the response carries no such container, which
// callers treat as a malformed response.
type Response struct {
	XMLName     xml.Name     `xml:"OAI-PMH"`
	Error       *Error       `xml:"error"`
	ListRecords *ListRecords `xml:"ListRecords"`
}

// Error is the protocol-level error element (e.g. code "noRecordsMatch").
type Error struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// ListRecords holds one page of records plus the paging cursor.
type ListRecords struct {
	Records         []RawRecord      `xml:"record"`
	ResumptionToken *ResumptionToken `xml:"resumptionToken"`
}

// ResumptionToken is the opaque server-issued cursor for the next page.
// A nil token, or one with empty text, means the list is complete.
type ResumptionToken struct {
	Value            string `xml:",chardata"`
	CompleteListSize int    `xml:"completeListSize,attr"`
	Cursor           int    `xml:"cursor,attr"`
}

// RawRecord is one <record> element: OAI header plus the arXiv metadata
// fragment.
type RawRecord struct {
	Header   Header   `xml:"header"`
	Metadata Metadata `xml:"metadata"`
}

// Header is the OAI record header.
type Header struct {
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpec    []string `xml:"setSpec"`
	Status     string   `xml:"status,attr"`
}

// Metadata wraps the arXiv metadata fragment.
type Metadata struct {
	ArXiv ArXivMeta `xml:"arXiv"`
}

// ArXivMeta is the arXiv metadata schema fragment carried inside a record.
type ArXivMeta struct {
	ID         string   `xml:"id"`
	Created    string   `xml:"created"`
	Updated    string   `xml:"updated"`
	Title      string   `xml:"title"`
	Authors    []Author `xml:"authors>author"`
	Categories string   `xml:"categories"`
	DOI        string   `xml:"doi"`
	Abstract   string   `xml:"abstract"`
}

// Author is one author element. Affiliation is empty when the author
// declares none.
type Author struct {
	Keyname     string `xml:"keyname"`
	Forenames   string `xml:"forenames"`
	Suffix      string `xml:"suffix"`
	Affiliation string `xml:"affiliation"`
}

// Parse decodes an OAI-PMH response document.
func Parse(r io.Reader) (*Response, error) {
	var resp Response
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("parsing OAI response: %w", err)
	}
	return &resp, nil
}
