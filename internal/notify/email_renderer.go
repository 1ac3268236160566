package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// HTMLEmailRenderer renders notifications as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("TDnet Alert: %s - %s", data.Entry.StockCode, data.Entry.Title)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients
// that don't support HTML.
func renderPlainText(data NotificationData) string {
	e := data.Entry
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s - %s\n", e.StockCode, e.CompanyName, e.Title))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("Date: %s\n", e.PublishDateTime))
	sb.WriteString(fmt.Sprintf("Tier: %s\n", e.Tier))
	sb.WriteString(fmt.Sprintf("URL: %s\n", e.PDFURL))
	sb.WriteString("\n")

	if fields := formatDealFields(e); fields != "" {
		sb.WriteString("DEAL FIELDS\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(fields + "\n")
	}

	if e.Description != "" {
		sb.WriteString("DESCRIPTION\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(e.Description + "\n\n")
	}

	if data.Analysis != nil {
		if len(data.Analysis.Summary) > 0 {
			sb.WriteString("AI SUMMARY\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, s := range data.Analysis.Summary {
				sb.WriteString(fmt.Sprintf("• %s\n", s))
			}
			sb.WriteString("\n")
		}

		if len(data.Analysis.DealTerms) > 0 {
			sb.WriteString("DEAL TERMS\n")
			sb.WriteString(strings.Repeat("-", 20) + "\n")
			for _, t := range data.Analysis.DealTerms {
				sb.WriteString(fmt.Sprintf("• [%s] %s\n", t.Category, t.Details))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
