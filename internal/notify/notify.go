/*
Package notify handles reporting of discovered disclosures via console
output and email notifications.
*/
package notify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/ai"
	"github.com/shanehull/tdnetscraper/internal/types"
)

// NotificationData is one entry plus its optional AI analysis.
type NotificationData struct {
	Entry    types.SearchEntry
	Analysis *ai.DealAnalysis
}

// RenderedMessage is a fully rendered notification ready for delivery.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

func formatDealTerms(terms []ai.DealObservation) string {
	if len(terms) == 0 {
		return "N/A"
	}
	var sb strings.Builder
	for _, t := range terms {
		sb.WriteString(fmt.Sprintf("\t- [%s] %s\n", t.Category, t.Details))
	}
	return sb.String()
}

func formatBulletList(points []string) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("\t- %s\n", p))
	}
	return sb.String()
}

func formatDealFields(e types.SearchEntry) string {
	var sb strings.Builder
	if e.Investor != "" {
		sb.WriteString(fmt.Sprintf("Investor: %s\n", e.Investor))
	}
	if !e.DealSize.IsZero() {
		sb.WriteString(fmt.Sprintf("Deal Size: %s %s\n", e.DealSize, e.DealSizeUnit))
	}
	if !e.SharePrice.IsZero() {
		sb.WriteString(fmt.Sprintf("Share Price: %s\n", e.SharePrice))
	}
	if !e.ShareCount.IsZero() {
		sb.WriteString(fmt.Sprintf("Share Count: %s\n", e.ShareCount))
	}
	if e.DealDate != "" {
		sb.WriteString(fmt.Sprintf("Deal Date: %s\n", e.DealDate))
	}
	if e.DealStructure != "" {
		sb.WriteString(fmt.Sprintf("Structure: %s\n", e.DealStructure))
	}
	return sb.String()
}

// ReportEntries prints the discovered entries to the console.
func ReportEntries(notifications []NotificationData) {
	if len(notifications) == 0 {
		fmt.Println("\n-------------------------------------------")
		fmt.Println("No new disclosures found.")
		fmt.Println("-------------------------------------------")
		return
	}

	fmt.Println("\n===========================================")
	fmt.Printf("✅ %d DISCLOSURES FOUND\n", len(notifications))
	fmt.Println("===========================================")

	for i, nd := range notifications {
		entry := nd.Entry

		aiSummaryOutput := ""
		dealTermOutput := ""

		if nd.Analysis != nil {
			if len(nd.Analysis.Summary) > 0 {
				aiSummaryOutput = fmt.Sprintf("AI Summary:\n%s", formatBulletList(nd.Analysis.Summary))
			}
			if len(nd.Analysis.DealTerms) > 0 {
				dealTermOutput = fmt.Sprintf("Deal Terms:\n%s", formatDealTerms(nd.Analysis.DealTerms))
			}
		}

		consoleOutput := fmt.Sprintf("\n--- DISCLOSURE #%d ---\n", i+1) +
			fmt.Sprintf("Code:   %s\n", entry.StockCode) +
			fmt.Sprintf("Name:   %s\n", entry.CompanyName) +
			fmt.Sprintf("Title:  %s\n", entry.Title) +
			fmt.Sprintf("Tier:   %s\n", entry.Tier) +
			fmt.Sprintf("Date:   %s\n", entry.PublishDateTime) +
			fmt.Sprintf("URL:    %s\n", entry.PDFURL) +
			formatDealFields(entry) +
			aiSummaryOutput +
			dealTermOutput

		fmt.Print(consoleOutput)
	}

	fmt.Println("\n===========================================")
	fmt.Printf("Search complete. %d disclosures reported.\n", len(notifications))
	fmt.Println("===========================================")
}

// EmailEntries renders and sends one email per notification, concurrently.
func EmailEntries(notifications []NotificationData, emailConfig EmailConfig) {
	if !emailConfig.Enabled {
		return
	}
	logrus.Infof("emailing %d disclosures (SMTP: %s:%d)", len(notifications), emailConfig.SMTPServer, emailConfig.SMTPPort)

	renderer := NewHTMLEmailRenderer()
	sender := NewEmailSender(emailConfig)

	var wg sync.WaitGroup
	for _, nd := range notifications {
		msg, err := renderer.Render(nd)
		if err != nil {
			logrus.WithError(err).Errorf("failed to render email for %s", nd.Entry.Title)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sender.Send(msg); err != nil {
				logrus.WithError(err).Errorf("failed to send email: %s", msg.Subject)
			}
		}()
	}
	wg.Wait()
}
