package tdnet

import "github.com/shanehull/tdnetscraper/internal/types"

// SearchURL is the default search endpoint.
const SearchURL = "https://tdnet-search.appspot.com/search"

// DefaultTiers is the standard tier table for third-party allotment
// announcements, ordered from highest to lowest precision. The table is
// injected into the crawler so callers can substitute their own strategies.
func DefaultTiers() []types.Tier {
	return []types.Tier{
		{
			Name:  "tier1",
			Label: "Tier 1 (95%+)",
			Queries: []types.TierQuery{
				{
					Query:       "第三者割当 発行に関するお知らせ",
					Precision:   "95%+",
					Description: "Initial issuance announcements",
				},
				{
					Query:       "第三者割当 募集に関するお知らせ",
					Precision:   "95%+",
					Description: "Initial offering announcements",
				},
			},
		},
		{
			Name:  "tier2",
			Label: "Tier 2 (90%+)",
			Queries: []types.TierQuery{
				{
					Query:       "第三者割当 新株式 -払込完了",
					Precision:   "90%+",
					Description: "Common stock issuances (excluding completions)",
				},
				{
					Query:       "第三者割当 新株予約権 -払込完了",
					Precision:   "90%+",
					Description: "Warrant issuances (excluding completions)",
				},
			},
		},
		{
			Name:  "tier3",
			Label: "Tier 3 (85%+)",
			Queries: []types.TierQuery{
				{
					Query:       "第三者割当 割当先決定",
					Precision:   "85%+",
					Description: "Allottee decision announcements",
				},
			},
		},
	}
}
