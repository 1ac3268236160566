package asx

import "strings"

// DefaultPIPEKeywords matches placement and capital raising headlines.
var DefaultPIPEKeywords = []string{
	"placement", "private placement", "capital raising", "capital raise",
	"share placement", "equity raising", "equity raise", "share issue",
	"securities issue", "institutional placement", "strategic placement",
	"share subscription", "convertible note", "fund raising", "fundraising",
	"share offer", "new shares", "issue of shares", "issue of securities",
	"proposed issue of securities", "proposed issue", "entitlement offer",
	"rights issue", "share purchase plan", "spp", "accelerated non-renounceable",
	"non-renounceable entitlement", "renounceable entitlement",
	"underwritten placement", "completion of placement", "successful placement",
	"institutional offer", "retail offer",
}

// DefaultAppendix5BKeywords matches quarterly cash flow report headlines.
var DefaultAppendix5BKeywords = []string{
	"quarterly activities",
	"cash flow report",
	"appendix 5b",
}

// KeywordFilter classifies headlines against an injected keyword list.
type KeywordFilter struct {
	keywords []string
}

// NewKeywordFilter builds a filter over the given keywords, matched
// case-insensitively as substrings.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &KeywordFilter{keywords: lowered}
}

// Matches reports whether any keyword appears in the headline.
func (f *KeywordFilter) Matches(headline string) bool {
	lower := strings.ToLower(headline)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Matched returns every keyword appearing in the headline, in list order.
func (f *KeywordFilter) Matched(headline string) []string {
	lower := strings.ToLower(headline)
	var matched []string
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
