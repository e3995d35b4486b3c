// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes harvested records into a static HTML fragment.
package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const defaultListID = "div_papers_list"

// fragment is the fixed structure of the output: a container div, a dated
// heading, and one paragraph per record. Titles and author names are
// entity-escaped by html/template.
var fragment = template.Must(template.New("fragment").Parse(
	`<div id="{{.ListID}}" class="list-papers">
<div class="date-papers">
<h6><b>{{.Date}}</b></h6>
{{range .Records}}<p><a href="{{.URL}}" target="_blank">{{.Title}}</a><br>
{{.AuthorLine}}
</p>
{{end}}</div></div>
`))

type fragmentData struct {
	ListID  string
	Date    string
	Records []recordView
}

type recordView struct {
	URL        string
	Title      string
	AuthorLine string
}

// Renderer writes record lists as HTML fragments. The display date is
// resolved once at construction time.
type Renderer struct {
	listID string
	date   string
}

// New builds a Renderer from cfg. The display date defaults to the day
// before now, matching the harvest date default.
func New(cfg types.RenderConfig, now time.Time) *Renderer {
	listID := cfg.ListID
	if listID == "" {
		listID = defaultListID
	}
	return &Renderer{
		listID: listID,
		date:   now.AddDate(0, 0, -1).Format("2006-01-02"),
	}
}

// Render writes the HTML fragment for records to w, in the order given.
func (r *Renderer) Render(records []types.Record, w io.Writer) error {
	data := fragmentData{
		ListID:  r.listID,
		Date:    r.date,
		Records: make([]recordView, 0, len(records)),
	}
	for _, rec := range records {
		data.Records = append(data.Records, recordView{
			URL:        rec.URL,
			Title:      rec.Title,
			AuthorLine: strings.Join(rec.Authors, ", "),
		})
	}
	return fragment.Execute(w, data)
}

// WriteFile renders the fragment to path, overwriting any existing content.
// The file is written to a temporary sibling and renamed into place so a
// failed render never leaves a truncated fragment behind.
func (r *Renderer) WriteFile(records []types.Record, path string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".render-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	renderErr := r.Render(records, tmpFile)
	closeErr := tmpFile.Close()
	if renderErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rendering fragment: %w", renderErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
