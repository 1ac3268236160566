package tdnet

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/types"
)

const defaultMaxPages = 100

// PageFetcher fetches one page of search results for a query.
type PageFetcher interface {
	FetchSearchPage(ctx context.Context, query string, page int) FetchResult
}

// Enricher augments an entry with detail-document fields. Enrichment is
// best-effort: implementations return the entry unchanged on failure.
type Enricher interface {
	Enrich(ctx context.Context, entry types.SearchEntry) types.SearchEntry
}

// Crawler runs the tiered search queries against a paginated source,
// deduplicating results across tiers by composite identity key.
type Crawler struct {
	fetcher  PageFetcher
	tiers    []types.Tier
	enricher Enricher
	maxPages int
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithEnricher attaches a detail enrichment stage to the crawl.
func WithEnricher(e Enricher) CrawlerOption {
	return func(c *Crawler) { c.enricher = e }
}

// WithMaxPages overrides the per-query page ceiling.
func WithMaxPages(n int) CrawlerOption {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewCrawler creates a crawler over the given tier table. Tier order is
// significant: it decides which tier claims a duplicate and the final
// entry ordering.
func NewCrawler(fetcher PageFetcher, tiers []types.Tier, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetcher:  fetcher,
		tiers:    tiers,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl runs every tier query, paginating each until it is exhausted, and
// returns the deduplicated entries in discovery order. A crawl with zero
// results is a valid outcome, not an error.
func (c *Crawler) Crawl(ctx context.Context, window Window) (*types.SearchResult, error) {
	var entries []types.SearchEntry
	seen := make(map[string]struct{})
	metadata := types.Metadata{}

	logrus.WithFields(logrus.Fields{
		"start": formatWindowDate(window.Start),
		"end":   formatWindowDate(window.End),
	}).Info("starting crawl")

	for _, tier := range c.tiers {
		logrus.WithField("tier", tier.Name).Info("processing tier")

		for _, tq := range tier.Queries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			metadata.SearchTermsUsed = append(metadata.SearchTermsUsed, tq.Query)
			entries = c.crawlQuery(ctx, tq.Query, tier.Label, window, seen, entries)
		}
	}

	return &types.SearchResult{
		StartDate:  window.Start,
		EndDate:    window.End,
		Entries:    entries,
		TotalCount: len(entries),
		ScrapedAt:  time.Now(),
		Metadata:   metadata,
	}, nil
}

// crawlQuery paginates a single query until one of the stop conditions:
// a non-OK fetch, two consecutive empty pages, the window's early-stop
// signal, or the page ceiling.
func (c *Crawler) crawlQuery(ctx context.Context, query, tierLabel string, window Window, seen map[string]struct{}, entries []types.SearchEntry) []types.SearchEntry {
	log := logrus.WithField("query", query)
	log.Info("searching")

	consecutiveEmpty := 0
	for page := 1; page <= c.maxPages; page++ {
		res := c.fetcher.FetchSearchPage(ctx, query, page)
		if res.Status != FetchOK {
			if res.Status == FetchExhausted {
				log.WithField("page", page).Warn("fetch exhausted, stopping query")
			}
			return entries
		}

		candidates := ParseSearchPage(res.Body)
		if len(candidates) == 0 {
			consecutiveEmpty++
			if consecutiveEmpty >= 2 {
				return entries
			}
			continue
		}
		consecutiveEmpty = 0

		kept, stop := window.Filter(candidates)
		if stop {
			log.WithField("page", page).Info("page entirely before window start, stopping query")
			return entries
		}

		for _, cand := range kept {
			entry := cand.Entry(tierLabel)
			key := entry.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if c.enricher != nil {
				entry = c.enricher.Enrich(ctx, entry)
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func formatWindowDate(t time.Time) string {
	if t.IsZero() {
		return "unbounded"
	}
	return t.Format("2006-01-02")
}
