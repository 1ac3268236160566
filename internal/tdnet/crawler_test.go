package tdnet

import (
	"context"
	"fmt"
	"testing"

	"github.com/shanehull/tdnetscraper/internal/types"
)

// stubFetcher serves canned pages keyed by query and page number. Pages
// not present yield an empty-table response.
type stubFetcher struct {
	pages   map[string]map[int]string
	fetches int
}

func (s *stubFetcher) FetchSearchPage(_ context.Context, query string, page int) FetchResult {
	s.fetches++
	if body, ok := s.pages[query][page]; ok {
		return FetchResult{Status: FetchOK, Body: body}
	}
	return FetchResult{Status: FetchOK, Body: "<table></table>"}
}

func resultRow(datetime, code, name, title string) string {
	return fmt.Sprintf(
		`<tr><td>%s</td><td>%s</td><td>%s</td><td><a href="%s.pdf">%s</a></td></tr>`,
		datetime, code, name, code, title)
}

func pageOf(rows ...string) string {
	body := "<table>"
	for _, r := range rows {
		body += r
	}
	return body + "</table>"
}

func singleQueryTiers(queries ...string) []types.Tier {
	var tiers []types.Tier
	for i, q := range queries {
		tiers = append(tiers, types.Tier{
			Name:    fmt.Sprintf("tier%d", i+1),
			Label:   fmt.Sprintf("Tier %d", i+1),
			Queries: []types.TierQuery{{Query: q}},
		})
	}
	return tiers
}

func TestCrawlTerminatesOnConsecutiveEmptyPages(t *testing.T) {
	// Every page is an empty table; the crawl must stop after two, not
	// run to the page ceiling.
	fetcher := &stubFetcher{pages: map[string]map[int]string{}}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1"))

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", result.TotalCount)
	}
	if fetcher.fetches != 2 {
		t.Errorf("fetched %d pages, want 2 (two consecutive empties)", fetcher.fetches)
	}
}

func TestCrawlDeduplicatesAcrossTiers(t *testing.T) {
	// Three tiers return the identical single record; tier 1 also gets a
	// second page so its pagination stops naturally.
	row := resultRow("2025/01/01 10:00", "12340", "Test Company", "Test Title")
	fetcher := &stubFetcher{pages: map[string]map[int]string{
		"q1": {1: pageOf(row)},
		"q2": {1: pageOf(row)},
		"q3": {1: pageOf(row)},
	}}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1", "q2", "q3"))

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", result.TotalCount)
	}
	if got := result.Entries[0].Tier; got != "Tier 1" {
		t.Errorf("Tier = %q, want first tier to claim the duplicate", got)
	}

	seen := make(map[string]struct{})
	for _, e := range result.Entries {
		if _, dup := seen[e.Key()]; dup {
			t.Errorf("duplicate composite key in result: %q", e.Key())
		}
		seen[e.Key()] = struct{}{}
	}
}

func TestCrawlMetadataListsEveryQuery(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]map[int]string{}}
	tiers := []types.Tier{
		{Name: "tier1", Label: "Tier 1", Queries: []types.TierQuery{{Query: "a"}, {Query: "b"}}},
		{Name: "tier2", Label: "Tier 2", Queries: []types.TierQuery{{Query: "c"}}},
	}
	crawler := NewCrawler(fetcher, tiers)

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	want := []string{"a", "b", "c"}
	got := result.Metadata.SearchTermsUsed
	if len(got) != len(want) {
		t.Fatalf("SearchTermsUsed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SearchTermsUsed[%d] = %q, want %q (order must match declaration)", i, got[i], want[i])
		}
	}
}

func TestCrawlWindowContainment(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]map[int]string{
		"q1": {1: pageOf(
			resultRow("2025/01/25 09:00", "11110", "Late Co", "Too Late"),
			resultRow("2025/01/15 09:00", "22220", "Mid Co", "In Window"),
			resultRow("2025/01/05 09:00", "33330", "Early Co", "Too Early"),
		)},
	}}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1"))
	window := Window{Start: day(2025, 1, 10), End: day(2025, 1, 20)}

	result, err := crawler.Crawl(context.Background(), window)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", result.TotalCount)
	}
	for _, e := range result.Entries {
		if !window.Contains(e.PublishDate) {
			t.Errorf("entry outside window: %v", e.PublishDate)
		}
	}
}

func TestCrawlStopsWhenPageBeforeWindow(t *testing.T) {
	// Page 1 is entirely older than the window start; pagination must
	// stop without fetching page 2.
	fetcher := &stubFetcher{pages: map[string]map[int]string{
		"q1": {
			1: pageOf(resultRow("2024/12/01 09:00", "11110", "Old Co", "Old News")),
			2: pageOf(resultRow("2024/11/01 09:00", "22220", "Older Co", "Older News")),
		},
	}}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1"))

	result, err := crawler.Crawl(context.Background(), Window{Start: day(2025, 1, 1), End: day(2025, 1, 31)})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", result.TotalCount)
	}
	if fetcher.fetches != 1 {
		t.Errorf("fetched %d pages, want 1 (stop signal after page 1)", fetcher.fetches)
	}
}

type failingFetcher struct{}

func (failingFetcher) FetchSearchPage(context.Context, string, int) FetchResult {
	return FetchResult{Status: FetchExhausted}
}

func TestCrawlTreatsExhaustedAsEndOfQuery(t *testing.T) {
	crawler := NewCrawler(failingFetcher{}, singleQueryTiers("q1", "q2"))

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("an exhausted fetch must not fail the crawl: %v", err)
	}
	if result.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", result.TotalCount)
	}
	if len(result.Metadata.SearchTermsUsed) != 2 {
		t.Errorf("both queries should still be recorded, got %v", result.Metadata.SearchTermsUsed)
	}
}

type tagEnricher struct{}

func (tagEnricher) Enrich(_ context.Context, e types.SearchEntry) types.SearchEntry {
	e.Investor = "enriched"
	return e
}

func TestCrawlAppliesEnricher(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]map[int]string{
		"q1": {1: pageOf(resultRow("2025/01/01 10:00", "12340", "Test Company", "Test Title"))},
	}}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1"), WithEnricher(tagEnricher{}))

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 1 || result.Entries[0].Investor != "enriched" {
		t.Errorf("enricher not applied: %+v", result.Entries)
	}
}

func TestCrawlRespectsPageCeiling(t *testing.T) {
	// A pathological source that returns a fresh record on every page.
	fetcher := &endlessFetcher{}
	crawler := NewCrawler(fetcher, singleQueryTiers("q1"), WithMaxPages(5))

	result, err := crawler.Crawl(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if fetcher.fetches != 5 {
		t.Errorf("fetched %d pages, want 5", fetcher.fetches)
	}
	if result.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", result.TotalCount)
	}
}

type endlessFetcher struct{ fetches int }

func (e *endlessFetcher) FetchSearchPage(_ context.Context, _ string, page int) FetchResult {
	e.fetches++
	row := resultRow(fmt.Sprintf("2025/01/%02d 10:00", page), fmt.Sprintf("%05d", page), "Endless Co", fmt.Sprintf("Title %d", page))
	return FetchResult{Status: FetchOK, Body: pageOf(row)}
}
