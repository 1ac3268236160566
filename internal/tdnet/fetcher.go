package tdnet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// FetchStatus tags the outcome of a page fetch. The crawler must not have
// to guess whether a missing page means "retries exhausted" or "no such
// page exists"; both end pagination, but they are distinct signals.
type FetchStatus int

const (
	// FetchOK carries usable markup.
	FetchOK FetchStatus = iota
	// FetchExhausted means transient failures used up the retry budget.
	FetchExhausted
	// FetchTerminal is a definite 404: no further pages exist for this key.
	FetchTerminal
)

// FetchResult is the tagged outcome of one fetch.
type FetchResult struct {
	Status FetchStatus
	Body   string
}

// Fetcher performs sequential HTTP GETs with a self-imposed minimum delay
// between requests and bounded retries with linear backoff. It is not safe
// for concurrent use; the crawl is single-threaded by design.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	searchURL  string
	delay      time.Duration
	maxRetries int
	userAgent  string
}

// NewFetcher creates a fetcher for the given search endpoint. The delay is
// the minimum spacing between any two requests, including retries and
// requests for different queries.
func NewFetcher(searchURL string, delay time.Duration, maxRetries int) *Fetcher {
	if delay <= 0 {
		delay = time.Second
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Fetcher{
		client:     &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		searchURL:  searchURL,
		delay:      delay,
		maxRetries: maxRetries,
		userAgent:  defaultUserAgent,
	}
}

// FetchSearchPage fetches one page of results for a query string.
func (f *Fetcher) FetchSearchPage(ctx context.Context, query string, page int) FetchResult {
	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}
	return f.FetchURL(ctx, f.searchURL+"?"+params.Encode())
}

// FetchURL fetches an arbitrary URL under the fetcher's delay and retry
// policy. A 404 is terminal and never retried; network errors and 5xx
// responses are retried up to the attempt budget.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) FetchResult {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if attempt > 1 {
			// Linear backoff on top of the base inter-request delay.
			select {
			case <-time.After(f.delay * time.Duration(attempt-1)):
			case <-ctx.Done():
				return FetchResult{Status: FetchExhausted}
			}
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return FetchResult{Status: FetchExhausted}
		}

		body, status, err := f.get(ctx, rawURL)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"url":     rawURL,
				"attempt": attempt,
			}).Warn("request failed")
			continue
		}
		switch {
		case status == http.StatusNotFound:
			return FetchResult{Status: FetchTerminal}
		case status >= 200 && status < 300:
			return FetchResult{Status: FetchOK, Body: body}
		default:
			logrus.WithFields(logrus.Fields{
				"url":     rawURL,
				"status":  status,
				"attempt": attempt,
			}).Warn("non-OK response")
		}
	}
	return FetchResult{Status: FetchExhausted}
}

// DownloadFile fetches a document and returns its bytes, using the same
// delay policy but no retries beyond the fetcher's budget.
func (f *Fetcher) DownloadFile(ctx context.Context, rawURL string) ([]byte, error) {
	res := f.FetchURL(ctx, rawURL)
	switch res.Status {
	case FetchOK:
		return []byte(res.Body), nil
	case FetchTerminal:
		return nil, fmt.Errorf("document not found: %s", rawURL)
	default:
		return nil, fmt.Errorf("failed to download %s after %d attempts", rawURL, f.maxRetries)
	}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logrus.WithError(cerr).Warnf("failed to close response body for %s", rawURL)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}
	return string(body), resp.StatusCode, nil
}
