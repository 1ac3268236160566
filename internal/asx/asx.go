/*
Package asx scrapes the ASX daily announcements feed and classifies
announcements against configurable keyword lists.
*/
package asx

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/shanehull/tdnetscraper/internal/types"
)

const (
	announcementsTodayURL    = "https://www.asx.com.au/asx/v2/statistics/todayAnns.do"
	announcementsPreviousURL = "https://www.asx.com.au/asx/v2/statistics/prevBusDayAnns.do"
	baseURL                  = "https://www.asx.com.au"
)

var client = &http.Client{
	Timeout: 60 * time.Second,
}

var whitespaceRe = regexp.MustCompile(`[\n\t\r\s\xA0]+`)

// ScrapeDailyFeed fetches today's (or the previous business day's)
// announcements table and returns its rows.
func ScrapeDailyFeed(previousDay bool, filterPriceSensitive bool) ([]types.Announcement, error) {
	url := announcementsTodayURL
	if previousDay {
		url = announcementsPreviousURL
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			logrus.WithError(err).Warnf("failed to close response body for %s", url)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return parseAnnouncements(doc, filterPriceSensitive), nil
}

// parseAnnouncements walks the announcement table body and collects one
// announcement per row. Rows without a document link are skipped.
func parseAnnouncements(doc *html.Node, filterPriceSensitive bool) []types.Announcement {
	var announcements []types.Announcement
	var inTableBody bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tbody" {
			inTableBody = true
		}

		if inTableBody && n.Type == html.ElementNode && n.Data == "tr" {
			ann := types.Announcement{}
			tdCount := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "td" {
					tdCount++
					processTableCell(c, tdCount, &ann)
				}
			}

			if ann.PDFURL != "" {
				if filterPriceSensitive && !ann.IsPriceSensitive {
					return
				}
				announcements = append(announcements, ann)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return announcements
}

func processTableCell(n *html.Node, tdIndex int, ann *types.Announcement) {
	switch tdIndex {
	case 1: // Ticker
		ann.Ticker = strings.TrimSpace(extractText(n))
	case 2: // Date and time
		text := strings.TrimSpace(extractText(n))
		cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

		t, err := time.Parse("02/01/2006 3:04 PM", strings.ToUpper(cleaned))
		if err == nil {
			ann.DateTime = t
		} else {
			logrus.WithField("cell", cleaned).Warn("failed to parse announcement datetime")
		}
	case 3: // Price sensitive marker
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, "pricesens") {
				ann.IsPriceSensitive = true
				break
			}
		}
	case 4: // Title and document link
		aTag := findFirstAnchor(n)
		if aTag == nil {
			return
		}
		for _, attr := range aTag.Attr {
			if attr.Key == "href" {
				ann.PDFURL = baseURL + strings.TrimSpace(attr.Val)
				break
			}
		}

		var titleBuilder strings.Builder
		for c := aTag.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				if text := strings.TrimSpace(c.Data); text != "" {
					titleBuilder.WriteString(text)
				}
			} else if c.Type == html.ElementNode && c.Data == "br" {
				break
			}
		}
		ann.Title = strings.TrimSpace(titleBuilder.String())
	}
}

func findFirstAnchor(n *html.Node) *html.Node {
	var aTag *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			aTag = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if aTag != nil {
				return
			}
			find(c)
		}
	}
	find(n)
	return aTag
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}
