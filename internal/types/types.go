/*
Package types defines the shared data model for scraped disclosure data.
*/
package types

import (
	"encoding/json"
	"path"
	"strconv"
	"strings"
	"time"
)

// TierQuery is a single query string run against the search endpoint.
type TierQuery struct {
	Query       string
	Precision   string
	Description string
}

// Tier is a named search strategy. Tiers are processed in declaration
// order; the first tier to produce a given entry claims it.
type Tier struct {
	Name    string
	Label   string
	Queries []TierQuery
}

// Amount holds a numeric value lifted from disclosure text. Sources
// occasionally print sentinels such as "N/A" where a number is expected;
// those are preserved verbatim in Raw rather than coerced to zero.
type Amount struct {
	Number int64
	Raw    string
	Valid  bool
}

// ParseAmount strips thousands separators and parses the remainder as an
// integer. Non-numeric input is kept as a raw string.
func ParseAmount(s string) Amount {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return Amount{Number: n, Valid: true}
	}
	return Amount{Raw: strings.TrimSpace(s)}
}

func (a Amount) IsZero() bool {
	return !a.Valid && a.Raw == ""
}

func (a Amount) String() string {
	if a.Valid {
		return strconv.FormatInt(a.Number, 10)
	}
	return a.Raw
}

// MarshalJSON emits a number when the amount parsed, otherwise the raw
// string, so sentinels like "N/A" survive serialization.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Valid {
		return json.Marshal(a.Number)
	}
	return json.Marshal(a.Raw)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount{Number: n, Valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Amount{Raw: s}
	return nil
}

// SearchEntry is one discovered announcement. Instances are created by the
// page parser and optionally replaced (not mutated) by the enrichment stage.
type SearchEntry struct {
	PublishDateTime string    `json:"publish_datetime"` // raw datetime text as printed in the listing
	PublishDate     time.Time `json:"-"`                // parsed date portion, used for filtering
	StockCode       string    `json:"stock_code"`
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	PDFURL          string    `json:"pdf_url"`
	DocID           string    `json:"doc_id"`
	Description     string    `json:"description"`
	Tier            string    `json:"tier"`

	// Enrichment fields, populated only on successful detail extraction.
	PDFDownloaded bool   `json:"pdf_downloaded"`
	Investor      string `json:"investor,omitempty"`
	DealSize      Amount `json:"deal_size,omitzero"`
	DealSizeUnit  string `json:"deal_size_unit,omitempty"`
	SharePrice    Amount `json:"share_price,omitzero"`
	ShareCount    Amount `json:"share_count,omitzero"`
	DealDate      string `json:"deal_date,omitempty"`
	DealStructure string `json:"deal_structure,omitempty"`
}

// Key returns the composite identity used for cross-tier deduplication.
func (e SearchEntry) Key() string {
	return e.PublishDateTime + "_" + e.StockCode + "_" + e.Title
}

// DocSentinel is the DocID value for entries without a detail link.
const DocSentinel = "N/A"

// DocumentID derives a document id from a detail-link URL by stripping the
// directory and extension. An empty link yields the sentinel.
func DocumentID(pdfURL string) string {
	if pdfURL == "" {
		return DocSentinel
	}
	base := path.Base(pdfURL)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		return DocSentinel
	}
	return base
}

// Metadata carries bookkeeping about a crawl invocation.
type Metadata struct {
	SearchTermsUsed []string `json:"search_terms_used"`
}

// SearchResult aggregates one crawl invocation. Entries are in discovery
// order: tier order, then page order, then row order.
type SearchResult struct {
	StartDate  time.Time     `json:"start_date"` // zero when the window is unbounded
	EndDate    time.Time     `json:"end_date"`
	Entries    []SearchEntry `json:"entries"`
	TotalCount int           `json:"total_count"`
	ScrapedAt  time.Time     `json:"scraped_at"`
	Metadata   Metadata      `json:"metadata"`
}

// Announcement is a single row from the ASX daily announcements feed.
type Announcement struct {
	Ticker           string
	DateTime         time.Time
	Title            string
	PDFURL           string
	IsPriceSensitive bool
}
