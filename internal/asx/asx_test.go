package asx

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const sampleFeed = `
<html><body>
<table><tbody>
<tr>
  <td>ABC</td>
  <td>14/12/2025 8:30 PM</td>
  <td class="pricesens">*</td>
  <td><a href="/asx/statistics/displayAnnouncement.do?idsId=1">Completion of Placement<br>2 pages</a></td>
</tr>
<tr>
  <td>XYZ</td>
  <td>14/12/2025 9:00 AM</td>
  <td></td>
  <td><a href="/asx/statistics/displayAnnouncement.do?idsId=2">Quarterly Activities Report<br>10 pages</a></td>
</tr>
<tr>
  <td>NOL</td>
  <td>14/12/2025 9:15 AM</td>
  <td></td>
  <td>No link here</td>
</tr>
</tbody></table>
</body></html>`

func parseFeed(t *testing.T, markup string, priceSensitiveOnly bool) []parsedResult {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	anns := parseAnnouncements(doc, priceSensitiveOnly)
	var out []parsedResult
	for _, a := range anns {
		out = append(out, parsedResult{a.Ticker, a.Title, a.IsPriceSensitive})
	}
	return out
}

type parsedResult struct {
	ticker         string
	title          string
	priceSensitive bool
}

func TestParseAnnouncements(t *testing.T) {
	got := parseFeed(t, sampleFeed, false)
	if len(got) != 2 {
		t.Fatalf("parsed %d announcements, want 2 (linkless row skipped)", len(got))
	}

	if got[0].ticker != "ABC" || got[0].title != "Completion of Placement" || !got[0].priceSensitive {
		t.Errorf("first announcement = %+v", got[0])
	}
	if got[1].ticker != "XYZ" || got[1].priceSensitive {
		t.Errorf("second announcement = %+v", got[1])
	}
}

func TestParseAnnouncementsPriceSensitiveOnly(t *testing.T) {
	got := parseFeed(t, sampleFeed, true)
	if len(got) != 1 || got[0].ticker != "ABC" {
		t.Errorf("price-sensitive filter kept %+v, want only ABC", got)
	}
}

func TestKeywordFilter(t *testing.T) {
	pipe := NewKeywordFilter(DefaultPIPEKeywords)

	if !pipe.Matches("Completion of Placement to Institutional Investors") {
		t.Error("placement headline should match PIPE keywords")
	}
	if pipe.Matches("Annual General Meeting Results") {
		t.Error("unrelated headline should not match")
	}

	matched := pipe.Matched("Successful Placement and Share Purchase Plan")
	if len(matched) < 2 {
		t.Errorf("Matched returned %v, want both keywords", matched)
	}

	app5b := NewKeywordFilter(DefaultAppendix5BKeywords)
	if !app5b.Matches("Quarterly Activities and Appendix 5B Cash Flow Report") {
		t.Error("Appendix 5B headline should match")
	}
}

func TestSnippet(t *testing.T) {
	text := "The company announces a Private Placement to institutional investors at a fixed price.\nSettlement follows."

	got := Snippet(text, "private placement")
	if got == "" {
		t.Fatal("expected a snippet for a present keyword")
	}
	if !strings.Contains(strings.ToLower(got), "private placement") {
		t.Errorf("snippet %q does not contain the keyword", got)
	}
	if strings.Contains(got, "\n") {
		t.Error("snippet must flatten newlines")
	}

	if Snippet(text, "takeover") != "" {
		t.Error("absent keyword must yield an empty snippet")
	}
}
