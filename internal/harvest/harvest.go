// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest walks the arXiv OAI-PMH ListRecords paging protocol and
// returns the filtered records for a category and date range.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-digest/internal/filter"
	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/internal/oai"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// baseURL is the OAI-PMH endpoint. Declared as a var so tests can
// substitute an httptest server.
var baseURL = oai.BaseURL

// ErrMalformedResponse reports a response that carried no ListRecords
// container at all. It is distinct from an exhausted resumption token, which
// is the normal end of the list. Records harvested before the malformed page
// are still returned alongside it.
var ErrMalformedResponse = errors.New("malformed OAI response: no ListRecords container")

// Harvest fetches every page of a ListRecords query, maps each metadata
// fragment to a Record, and keeps the ones cfg.Filters retains, in first-seen
// order. Rate-limited (503) requests are retried in place after
// cfg.RetryDelay; any other HTTP failure aborts the harvest with no partial
// result. When the cumulative page time reaches cfg.Budget the harvest stops
// early and returns what it has, which is a normal outcome, not an error.
//
// Progress is written to w at each page boundary.
func Harvest(ctx context.Context, client *http.Client, cfg types.HarvestConfig, w io.Writer) ([]types.Record, error) {
	if cfg.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	filters := filter.Filters(cfg.Filters)

	var limiter *rate.Limiter
	if cfg.PageDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.PageDelay), 1)
	}

	var records []types.Record
	var elapsed time.Duration
	pageURL := initialURL(cfg)
	start := time.Now()
	lastMark := start

	for page := 1; ; page++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return records, err
			}
		}

		resp, err := fetchPage(ctx, client, pageURL, cfg, w)
		if err != nil {
			return nil, err
		}

		if resp.Error != nil {
			// noRecordsMatch is an empty result, not a failure.
			if resp.Error.Code == "noRecordsMatch" {
				break
			}
			return nil, fmt.Errorf("OAI error %s: %s", resp.Error.Code, resp.Error.Message)
		}

		lr := resp.ListRecords
		if lr == nil {
			return records, ErrMalformedResponse
		}

		for _, raw := range lr.Records {
			// Deleted records carry a header status and no metadata.
			if raw.Header.Status == "deleted" {
				continue
			}
			rec := oai.MapRecord(raw.Metadata.ArXiv)
			if filters.Match(rec) {
				records = append(records, rec)
			}
		}
		fmt.Fprintf(w, "page %d: %d records retained so far\n", page, len(records))

		tok := lr.ResumptionToken
		if tok == nil || tok.Value == "" {
			break
		}
		pageURL = resumptionURL(tok.Value)

		// The budget is checked between pages only; an in-flight request or
		// a 503 backoff can overrun it.
		elapsed += time.Since(lastMark)
		if elapsed >= cfg.Budget {
			fmt.Fprintf(w, "time budget reached after %v, returning partial results\n", elapsed.Round(time.Millisecond))
			return records, nil
		}
		lastMark = time.Now()
	}

	fmt.Fprintf(w, "fetching completed in %v, %d records total\n", time.Since(start).Round(time.Millisecond), len(records))
	return records, nil
}

// fetchPage issues one GET against pageURL, retrying in place on 503, and
// parses the body as an OAI-PMH envelope.
func fetchPage(ctx context.Context, client *http.Client, pageURL string, cfg types.HarvestConfig, w io.Writer) (*oai.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.RetryDelay, w)
	if err != nil {
		return nil, fmt.Errorf("OAI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, pageURL)
	}

	return oai.Parse(resp.Body)
}

// initialURL embeds the category and date range into the ListRecords query.
func initialURL(cfg types.HarvestConfig) string {
	params := url.Values{}
	params.Set("verb", "ListRecords")
	params.Set("metadataPrefix", "arXiv")
	params.Set("set", cfg.Category)
	params.Set("from", cfg.From)
	params.Set("until", cfg.Until)
	return baseURL + "?" + params.Encode()
}

// resumptionURL builds the follow-up query from a server-issued cursor.
func resumptionURL(token string) string {
	params := url.Values{}
	params.Set("verb", "ListRecords")
	params.Set("resumptionToken", token)
	return baseURL + "?" + params.Encode()
}
