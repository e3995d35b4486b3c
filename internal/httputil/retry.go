// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DoWithRetry executes an HTTP request and retries on HTTP 503 (Service
// Unavailable, arXiv's rate-limit signal) after a fixed delay. The same
// request is retried indefinitely until a non-503 response arrives; the
// configured delay is used rather than any Retry-After value the server
// returns.
//
// On each 503 the response body is drained and closed before sleeping, and a
// notice is written to w. If the context is cancelled during a wait the
// function returns ctx.Err(). Non-503 responses, including other error
// statuses, are returned to the caller untouched.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, delay time.Duration, w io.Writer) (*http.Response, error) {
	for {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		fmt.Fprintf(w, "got 503, retrying after %v\n", delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}
