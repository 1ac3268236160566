/*
Package ai provides functionality to interact with the Gemini AI API and
summarize disclosure documents for third-party allotment deals.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// DealObservation is a single categorized finding about the deal terms.
type DealObservation struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

// DealAnalysis is the structured model output for one disclosure document.
type DealAnalysis struct {
	Summary   []string          `json:"summary"`
	DealTerms []DealObservation `json:"deal_terms"`
}

var systemInstruction = `
You are a specialized financial analyst covering Japanese equity capital markets, with a focus on third-party allotments (第三者割当) and other private placements disclosed via TDnet.

Your task is to analyze the provided disclosure text (from a PDF) and extract the financially significant terms of the transaction.

---
[CRITICAL INSTRUCTION]
For all "deal_terms", the "details" field MUST contain specific, verifiable quantitative data from the document. Prioritize:
1.  **Allottee Identity:** The named allottees (割当先) and their relationship to the issuer, with exact share counts or percentages where stated.
2.  **Pricing:** The issue price (発行価額) and its discount or premium to the recent market price, including any pricing reference period.
3.  **Size and Dilution:** Total proceeds (調達資金), number of new shares (発行新株式数), and resulting dilution relative to shares outstanding.
4.  **Instrument Terms:** For warrants (新株予約権) or convertible bonds (転換社債), the exercise or conversion price, any ratchet or reset clauses, and the exercise period.
5.  **Use of Proceeds:** The stated use of funds with amounts and timing.
6.  **Key Dates:** Payment date (払込期日), allotment date, and any lock-up or transfer restrictions.

Avoid generic statements. All claims must be tied to a number, date, or specific condition stated in the document. If the document does not disclose a term, omit it rather than speculating.
`

// GenerateDealSummary sends the disclosure text to the Gemini API and
// returns a structured analysis of the deal terms.
func GenerateDealSummary(text string, apiKey string, modelName string) (*DealAnalysis, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	prompt := fmt.Sprintf("Analyze the following disclosure text:\n\n---\n%s", text)

	systemContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: systemInstruction},
		},
		Role: "system",
	}

	userContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
		Role: "user",
	}

	contents := []*genai.Content{systemContent, userContent}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   getResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	respText := resp.Text()

	var analysis DealAnalysis
	if err := json.Unmarshal([]byte(respText), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	return &analysis, nil
}

func getResponseSchema() *genai.Schema {
	observationSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {Type: genai.TypeString, Description: "One of the defined deal term categories."},
			"details":  {Type: genai.TypeString, Description: "Specific quantitative data or transaction terms."},
		},
		Required: []string{"category", "details"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 3-5 concise bullet points summarizing the disclosure.",
			},
			"deal_terms": {
				Type:        genai.TypeArray,
				Items:       observationSchema,
				Description: "A list of specific, quantified deal term observations.",
			},
		},
		Required: []string{"summary", "deal_terms"},
	}
}
