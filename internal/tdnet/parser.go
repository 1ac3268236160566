package tdnet

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/types"
)

const maxDescriptionLen = 200

// Candidate is the parser's intermediate representation of one results row,
// before deduplication and model construction.
type Candidate struct {
	PublishDateTime string
	PublishDate     time.Time
	StockCode       string
	CompanyName     string
	Title           string
	PDFURL          string
	DocID           string
	Description     string
}

// Entry converts a candidate into a SearchEntry tagged with the given tier.
func (c Candidate) Entry(tier string) types.SearchEntry {
	return types.SearchEntry{
		PublishDateTime: c.PublishDateTime,
		PublishDate:     c.PublishDate,
		StockCode:       c.StockCode,
		CompanyName:     c.CompanyName,
		Title:           c.Title,
		PDFURL:          c.PDFURL,
		DocID:           c.DocID,
		Description:     c.Description,
		Tier:            tier,
	}
}

// ParseSearchPage parses one page of search results markup into candidates
// in document order. A page without a results table yields no candidates
// and no error; malformed rows are skipped without aborting the page.
func ParseSearchPage(markup string) []Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		logrus.WithError(err).Warn("failed to parse results markup")
		return nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var rows []*goquery.Selection
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		rows = append(rows, row)
	})

	var candidates []Candidate
	for i := 0; i < len(rows); i++ {
		cells := rows[i].Find("td")

		// Single wide cells are section separators, not records.
		if isSeparatorRow(cells) {
			continue
		}
		if cells.Length() < 4 {
			continue
		}

		datetimeText := strings.TrimSpace(cells.Eq(0).Text())
		fields := strings.Fields(datetimeText)
		if len(fields) == 0 {
			continue
		}
		publishDate, ok := ParseDate(fields[0])
		if !ok {
			logrus.WithField("cell", datetimeText).Debug("skipping row with unparseable date")
			continue
		}

		cand := Candidate{
			PublishDateTime: datetimeText,
			PublishDate:     publishDate,
			StockCode:       strings.TrimSpace(cells.Eq(1).Text()),
			CompanyName:     strings.TrimSpace(cells.Eq(2).Text()),
		}

		titleCell := cells.Eq(3)
		if link := titleCell.Find("a").First(); link.Length() > 0 {
			cand.Title = strings.TrimSpace(link.Text())
			cand.PDFURL = extractPDFLink(rows[i])
		} else {
			cand.Title = strings.TrimSpace(titleCell.Text())
		}
		cand.DocID = types.DocumentID(cand.PDFURL)

		// A single wide cell directly below a record row holds its
		// free-text description; consume it so it is not treated as
		// a record of its own.
		if i+1 < len(rows) {
			nextCells := rows[i+1].Find("td")
			if isSeparatorRow(nextCells) {
				cand.Description = truncate(strings.TrimSpace(nextCells.Eq(0).Text()), maxDescriptionLen)
				i++
			}
		}

		candidates = append(candidates, cand)
	}

	return candidates
}

func isSeparatorRow(cells *goquery.Selection) bool {
	if cells.Length() != 1 {
		return false
	}
	colspan, _ := cells.Eq(0).Attr("colspan")
	return colspan == "4"
}

// extractPDFLink finds the detail-document URL among a row's anchors.
func extractPDFLink(row *goquery.Selection) string {
	var href string
	row.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		h, ok := link.Attr("href")
		if !ok {
			return true
		}
		if strings.Contains(strings.ToLower(h), "pdf") || strings.Contains(h, "release.tdnet.info") {
			href = h
			return false
		}
		return true
	})
	return href
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
