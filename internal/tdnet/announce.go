package tdnet

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/types"
)

// AnnouncementListURL is the default day-paginated announcement list root.
const AnnouncementListURL = "https://www.release.tdnet.info/inbs"

// maxRangeDays is the largest window scraped in one pass before the range
// is split into sequential chunks.
const maxRangeDays = 31

// DayPageFetcher fetches one page of the announcement list for one day.
type DayPageFetcher interface {
	FetchDayPage(ctx context.Context, day time.Time, page int) FetchResult
}

// FetchDayPage fetches a single page of the per-day announcement list.
// The list uses per-day URLs; a 404 is the terminal "no further pages for
// this day" signal rather than an error.
func (f *Fetcher) FetchDayPage(ctx context.Context, day time.Time, page int) FetchResult {
	url := fmt.Sprintf("%s/I_list_%03d_%s.html", AnnouncementListURL, page, day.Format("20060102"))
	return f.FetchURL(ctx, url)
}

// AnnouncementCrawler scrapes the day-paginated announcement list for a
// date range, one day at a time.
type AnnouncementCrawler struct {
	fetcher DayPageFetcher
}

func NewAnnouncementCrawler(fetcher DayPageFetcher) *AnnouncementCrawler {
	return &AnnouncementCrawler{fetcher: fetcher}
}

// Crawl scrapes every day in [start, end] inclusive. Ranges longer than 31
// days are split into sequential chunks. Failures on a single day never
// abort the whole range.
func (a *AnnouncementCrawler) Crawl(ctx context.Context, start, end time.Time) (*types.SearchResult, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var entries []types.SearchEntry
	for _, chunk := range SplitRange(start, end, maxRangeDays) {
		for day := chunk.Start; !day.After(chunk.End); day = day.AddDate(0, 0, 1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			dayEntries := a.crawlDay(ctx, day)
			entries = append(entries, dayEntries...)
		}
	}

	return &types.SearchResult{
		StartDate:  start,
		EndDate:    end,
		Entries:    entries,
		TotalCount: len(entries),
		ScrapedAt:  time.Now(),
	}, nil
}

// crawlDay pages through one day's list until an empty page, a terminal
// 404, or an exhausted fetch.
func (a *AnnouncementCrawler) crawlDay(ctx context.Context, day time.Time) []types.SearchEntry {
	log := logrus.WithField("day", day.Format("2006-01-02"))
	log.Info("scraping announcements")

	var entries []types.SearchEntry
	for page := 1; ; page++ {
		res := a.fetcher.FetchDayPage(ctx, day, page)
		switch res.Status {
		case FetchTerminal:
			// No more pages exist for this day.
			return entries
		case FetchExhausted:
			log.WithField("page", page).Warn("fetch exhausted, stopping day")
			return entries
		}

		candidates := ParseSearchPage(res.Body)
		if len(candidates) == 0 {
			return entries
		}
		for _, cand := range candidates {
			entries = append(entries, cand.Entry(""))
		}
		log.WithFields(logrus.Fields{"page": page, "items": len(candidates)}).Info("scraped page")
	}
}

// DateRange is one chunk of a split date range, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// SplitRange splits [start, end] into consecutive chunks of at most
// maxDays days each.
func SplitRange(start, end time.Time, maxDays int) []DateRange {
	if maxDays < 1 {
		maxDays = 1
	}
	var chunks []DateRange
	for cur := start; !cur.After(end); {
		chunkEnd := cur.AddDate(0, 0, maxDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, DateRange{Start: cur, End: chunkEnd})
		cur = chunkEnd.AddDate(0, 0, 1)
	}
	return chunks
}
