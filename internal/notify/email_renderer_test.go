package notify

import (
	"strings"
	"testing"

	"github.com/shanehull/tdnetscraper/internal/ai"
	"github.com/shanehull/tdnetscraper/internal/types"
)

func sampleNotification() NotificationData {
	return NotificationData{
		Entry: types.SearchEntry{
			PublishDateTime: "2025/01/01 10:00",
			StockCode:       "1234",
			CompanyName:     "Test Company",
			Title:           "Third-Party Allotment Notice",
			PDFURL:          "https://example.com/doc.pdf",
			Tier:            "Tier 1 (95%+)",
			Investor:        "Test Capital",
			DealSize:        types.ParseAmount("1,500,000,000"),
			DealSizeUnit:    "円",
			DealStructure:   "Common Stock",
		},
		Analysis: &ai.DealAnalysis{
			Summary: []string{"Company raises 1.5B yen via third-party allotment."},
			DealTerms: []ai.DealObservation{
				{Category: "Pricing", Details: "Issue price of 1,250 yen, a 9% discount to market."},
			},
		},
	}
}

func TestRenderProducesBothBodies(t *testing.T) {
	msg, err := NewHTMLEmailRenderer().Render(sampleNotification())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if msg.Subject != "TDnet Alert: 1234 - Third-Party Allotment Notice" {
		t.Errorf("Subject = %q", msg.Subject)
	}

	for _, want := range []string{"1234", "Test Company", "Test Capital", "1500000000", "Common Stock"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(msg.Text, want) {
			t.Errorf("text body missing %q", want)
		}
	}

	if !strings.Contains(msg.HTML, "Issue price of 1,250 yen") {
		t.Error("HTML body missing deal term details")
	}
}

func TestRenderWithoutAnalysis(t *testing.T) {
	nd := sampleNotification()
	nd.Analysis = nil

	msg, err := NewHTMLEmailRenderer().Render(nd)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(msg.HTML, "AI Summary") || strings.Contains(msg.Text, "AI SUMMARY") {
		t.Error("analysis sections rendered without an analysis")
	}
}
