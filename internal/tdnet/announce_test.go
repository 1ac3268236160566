package tdnet

import (
	"context"
	"testing"
	"time"
)

// stubDayFetcher serves pages keyed by day and page; missing entries are
// terminal 404s.
type stubDayFetcher struct {
	pages map[string]map[int]string
}

func (s *stubDayFetcher) FetchDayPage(_ context.Context, d time.Time, page int) FetchResult {
	if body, ok := s.pages[d.Format("20060102")][page]; ok {
		return FetchResult{Status: FetchOK, Body: body}
	}
	return FetchResult{Status: FetchTerminal}
}

func TestAnnouncementCrawlStopsOnTerminal(t *testing.T) {
	fetcher := &stubDayFetcher{pages: map[string]map[int]string{
		"20250110": {
			1: pageOf(resultRow("2025/01/10 09:00", "11110", "Day Co", "Page One")),
			2: pageOf(resultRow("2025/01/10 10:00", "22220", "Day Co 2", "Page Two")),
			// page 3 404s
		},
		// 2025-01-11 has no pages at all
	}}

	crawler := NewAnnouncementCrawler(fetcher)
	result, err := crawler.Crawl(context.Background(), day(2025, 1, 10), day(2025, 1, 11))
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", result.TotalCount)
	}
}

func TestAnnouncementCrawlStopsOnEmptyPage(t *testing.T) {
	fetcher := &stubDayFetcher{pages: map[string]map[int]string{
		"20250110": {
			1: pageOf(resultRow("2025/01/10 09:00", "11110", "Day Co", "Only Page")),
			2: "<table></table>",
			3: pageOf(resultRow("2025/01/10 11:00", "33330", "Unreached Co", "Never Fetched")),
		},
	}}

	crawler := NewAnnouncementCrawler(fetcher)
	result, err := crawler.Crawl(context.Background(), day(2025, 1, 10), day(2025, 1, 10))
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1 (empty page ends the day)", result.TotalCount)
	}
}

func TestAnnouncementCrawlRejectsInvertedRange(t *testing.T) {
	crawler := NewAnnouncementCrawler(&stubDayFetcher{})
	if _, err := crawler.Crawl(context.Background(), day(2025, 1, 11), day(2025, 1, 10)); err == nil {
		t.Error("inverted range should be rejected")
	}
}

func TestSplitRange(t *testing.T) {
	chunks := SplitRange(day(2025, 1, 1), day(2025, 3, 15), 31)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if !chunks[0].Start.Equal(day(2025, 1, 1)) || !chunks[0].End.Equal(day(2025, 1, 31)) {
		t.Errorf("chunk 0 = %v..%v", chunks[0].Start, chunks[0].End)
	}
	if !chunks[1].Start.Equal(day(2025, 2, 1)) {
		t.Errorf("chunk 1 starts %v, want day after previous chunk end", chunks[1].Start)
	}
	if !chunks[2].End.Equal(day(2025, 3, 15)) {
		t.Errorf("last chunk ends %v, want range end", chunks[2].End)
	}

	single := SplitRange(day(2025, 1, 5), day(2025, 1, 5), 31)
	if len(single) != 1 || !single[0].Start.Equal(single[0].End) {
		t.Errorf("single-day range split = %v", single)
	}
}
