package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shanehull/tdnetscraper/internal/ai"
	"github.com/shanehull/tdnetscraper/internal/asx"
	"github.com/shanehull/tdnetscraper/internal/enrich"
	"github.com/shanehull/tdnetscraper/internal/export"
	"github.com/shanehull/tdnetscraper/internal/history"
	"github.com/shanehull/tdnetscraper/internal/notify"
	"github.com/shanehull/tdnetscraper/internal/pdftext"
	"github.com/shanehull/tdnetscraper/internal/store"
	"github.com/shanehull/tdnetscraper/internal/tdnet"
	"github.com/shanehull/tdnetscraper/internal/types"
)

const timezone = "Asia/Tokyo"

var (
	mode     = flag.String("mode", "search", "(-m) Scrape mode: search, announcements or asx")
	startStr = flag.String("start", "", "Start date (YYYY-MM-DD or YYYY/MM/DD)")
	endStr   = flag.String("end", "", "End date (YYYY-MM-DD or YYYY/MM/DD)")

	delay      = flag.Duration("delay", 2*time.Second, "Minimum delay between requests")
	maxRetries = flag.Int("retries", 3, "Retry attempts per request")
	maxPages   = flag.Int("max-pages", 100, "Page ceiling per search query")

	downloadPDFs = flag.Bool("download-pdfs", false, "(-d) Download detail PDFs and extract deal fields")
	outputDir    = flag.String("output-dir", "pdfs", "Directory for downloaded PDFs")

	dbPath   = flag.String("db", "", "SQLite database path for archiving results")
	csvPath  = flag.String("csv", "", "Write entries to this CSV file")
	jsonPath = flag.String("json", "", "Write the full result to this JSON file")

	filterPriceSensitive = flag.Bool("price-sensitive", false, "(-s) ASX mode: only price sensitive announcements")
	scrapePrevious       = flag.Bool("previous", false, "(-p) ASX mode: scrape the previous business day")

	smtpServer = flag.String("smtp-server", "smtp.gmail.com", "SMTP server address (default: smtp.gmail.com)")
	smtpPort   = flag.Int("smtp-port", 587, "SMTP server port (default: 587)")
	smtpUser   = flag.String("smtp-user", "", "SMTP username (email address)")
	smtpPass   = flag.String("smtp-pass", "", "SMTP password or App Password")
	toEmail    = flag.String("to-email", "", "Recipient email address")
	fromEmail  = flag.String("from-email", "", "Sender email address (default: smtp-user)")

	geminiKey   = flag.String("gemini-key", "", "Gemini API key for AI deal summaries")
	geminiModel = flag.String("gemini-model", "gemini-2.5-flash", "Gemini model name")
)

func init() {
	flag.StringVar(mode, "m", "search", "(-m) Scrape mode: search, announcements or asx (shorthand)")
	flag.BoolVar(downloadPDFs, "d", false, "(-d) Download detail PDFs and extract deal fields (shorthand)")
	flag.BoolVar(filterPriceSensitive, "s", false, "(-s) ASX mode: only price sensitive announcements (shorthand)")
	flag.BoolVar(scrapePrevious, "p", false, "(-p) ASX mode: scrape the previous business day (shorthand)")

	flag.Usage = func() {
		flagSet := flag.CommandLine
		fmt.Printf("Usage of %s:\n", "tdnetscraper")

		order := []string{
			"mode",
			"start",
			"end",
			"delay",
			"retries",
			"max-pages",
			"download-pdfs",
			"output-dir",
			"db",
			"csv",
			"json",
			"price-sensitive",
			"previous",
			"smtp-server",
			"smtp-port",
			"smtp-user",
			"smtp-pass",
			"to-email",
			"from-email",
			"gemini-key",
			"gemini-model",
		}

		for _, name := range order {
			f := flagSet.Lookup(name)
			if f != nil {
				fmt.Printf("  -%s\n", f.Name)
				fmt.Printf("    %s\n", f.Usage)
			}
		}
	}
}

func parseDateFlag(name, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, ok := tdnet.ParseDate(value)
	if !ok {
		fmt.Printf("Error: invalid -%s date %q (want YYYY-MM-DD or YYYY/MM/DD).\n", name, value)
		os.Exit(1)
	}
	return t
}

func emailConfigFromFlags() notify.EmailConfig {
	cfg := notify.EmailConfig{
		SMTPServer: *smtpServer,
		SMTPPort:   *smtpPort,
		SMTPUser:   *smtpUser,
		SMTPPass:   *smtpPass,
		ToEmail:    *toEmail,
		FromEmail:  *fromEmail,
		Enabled:    (*smtpServer != "" && *smtpUser != "" && *smtpPass != "" && *toEmail != ""),
	}
	if cfg.FromEmail == "" && cfg.SMTPUser != "" {
		cfg.FromEmail = cfg.SMTPUser
	}
	return cfg
}

func main() {
	flag.Parse()

	switch *mode {
	case "search":
		runSearch()
	case "announcements":
		runAnnouncements()
	case "asx":
		runASX()
	default:
		fmt.Printf("Error: unknown mode %q (want search, announcements or asx).\n", *mode)
		os.Exit(1)
	}
}

func runSearch() {
	ctx := context.Background()
	window := tdnet.Window{
		Start: parseDateFlag("start", *startStr),
		End:   parseDateFlag("end", *endStr),
	}

	fetcher := tdnet.NewFetcher(tdnet.SearchURL, *delay, *maxRetries)

	opts := []tdnet.CrawlerOption{tdnet.WithMaxPages(*maxPages)}
	var enricher *enrich.PDFEnricher
	if *downloadPDFs {
		var err error
		enricher, err = enrich.NewPDFEnricher(fetcher, *outputDir)
		if err != nil {
			fmt.Printf("Fatal error setting up PDF enrichment: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, tdnet.WithEnricher(enricher))
	}

	crawler := tdnet.NewCrawler(fetcher, tdnet.DefaultTiers(), opts...)

	fmt.Println("Starting TDnet search crawl.")
	result, err := crawler.Crawl(ctx, window)
	if err != nil {
		fmt.Printf("Fatal error during crawl: %v\n", err)
		os.Exit(1)
	}

	finishResult(ctx, result, enricher)
}

func runAnnouncements() {
	ctx := context.Background()
	start := parseDateFlag("start", *startStr)
	end := parseDateFlag("end", *endStr)
	if start.IsZero() || end.IsZero() {
		fmt.Println("Error: announcements mode requires both -start and -end.")
		os.Exit(1)
	}

	fetcher := tdnet.NewFetcher(tdnet.AnnouncementListURL, *delay, *maxRetries)
	crawler := tdnet.NewAnnouncementCrawler(fetcher)

	fmt.Printf("Starting TDnet announcement crawl from %s to %s.\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	result, err := crawler.Crawl(ctx, start, end)
	if err != nil {
		fmt.Printf("Fatal error during crawl: %v\n", err)
		os.Exit(1)
	}

	finishResult(ctx, result, nil)
}

// finishResult runs the shared output pipeline: archive, export, then
// report anything not yet seen today.
func finishResult(ctx context.Context, result *types.SearchResult, enricher *enrich.PDFEnricher) {
	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			fmt.Printf("Fatal error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.SaveResult(ctx, result); err != nil {
			fmt.Printf("Fatal error saving results: %v\n", err)
			os.Exit(1)
		}
	}

	if *jsonPath != "" {
		if err := export.WriteJSON(result, *jsonPath); err != nil {
			fmt.Printf("Fatal error writing JSON: %v\n", err)
			os.Exit(1)
		}
	}
	if *csvPath != "" {
		if err := export.WriteCSV(result, *csvPath); err != nil {
			fmt.Printf("Fatal error writing CSV: %v\n", err)
			os.Exit(1)
		}
	}

	if result.TotalCount == 0 {
		fmt.Println("No disclosures found for the requested range.")
		return
	}
	fmt.Printf("Found %d disclosures.\n", result.TotalCount)

	historyManager, err := history.NewManager(timezone)
	if err != nil {
		fmt.Printf("Fatal error setting up history: %v\n", err)
		os.Exit(1)
	}

	fresh := historyManager.FilterNew(result.Entries)
	notifications := buildNotifications(fresh, enricher)

	notify.ReportEntries(notifications)
	notify.EmailEntries(notifications, emailConfigFromFlags())

	historyManager.RecordReported(fresh)
}

func buildNotifications(entries []types.SearchEntry, enricher *enrich.PDFEnricher) []notify.NotificationData {
	var notifications []notify.NotificationData
	for _, e := range entries {
		nd := notify.NotificationData{Entry: e}
		if *geminiKey != "" && enricher != nil {
			if text, ok := enricher.ExtractedText(e.DocID); ok {
				analysis, err := ai.GenerateDealSummary(text, *geminiKey, *geminiModel)
				if err != nil {
					fmt.Printf("AI analysis failed for %s: %v\n", e.DocID, err)
				} else {
					nd.Analysis = analysis
				}
			}
		}
		notifications = append(notifications, nd)
	}
	return notifications
}

func runASX() {
	announcements, err := asx.ScrapeDailyFeed(*scrapePrevious, *filterPriceSensitive)
	if err != nil {
		fmt.Printf("Fatal error during scraping: %v\n", err)
		os.Exit(1)
	}
	if len(announcements) == 0 {
		fmt.Println("No announcements found today.")
		return
	}

	pipe := asx.NewKeywordFilter(asx.DefaultPIPEKeywords)
	appendix5B := asx.NewKeywordFilter(asx.DefaultAppendix5BKeywords)

	matches := 0
	for _, ann := range announcements {
		keywords := pipe.Matched(ann.Title)
		if len(keywords) == 0 || appendix5B.Matches(ann.Title) {
			continue
		}
		matches++
		fmt.Printf("\n--- MATCH #%d ---\n", matches)
		fmt.Printf("Ticker: %s\n", ann.Ticker)
		fmt.Printf("Title:  %s\n", ann.Title)
		fmt.Printf("Price Sensitive: %t\n", ann.IsPriceSensitive)
		fmt.Printf("Date:   %s\n", ann.DateTime.Format("02 Jan 2006 3:04 PM"))
		fmt.Printf("URL:    %s\n", ann.PDFURL)

		if *downloadPDFs {
			if snippet := asxSnippet(ann, keywords[0]); snippet != "" {
				fmt.Printf("Context:\n\t%s\n", snippet)
			}
		}
	}

	if matches == 0 {
		fmt.Println("No placement-related announcements found today.")
	}
}

// asxSnippet downloads the announcement document and returns the text
// around the first keyword hit. Best-effort.
func asxSnippet(ann types.Announcement, keyword string) string {
	data, err := asx.DownloadPDF(ann.PDFURL)
	if err != nil {
		fmt.Printf("PDF download failed for %s: %v\n", ann.Ticker, err)
		return ""
	}

	path := filepath.Join(*outputDir, fmt.Sprintf("%s_%s.pdf", ann.Ticker, ann.DateTime.Format("20060102_1504")))
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		return ""
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("Failed to save PDF for %s: %v\n", ann.Ticker, err)
		return ""
	}

	text, err := pdftext.ExtractFile(path)
	if err != nil {
		fmt.Printf("Text extraction failed for %s: %v\n", ann.Ticker, err)
		return ""
	}
	return asx.Snippet(text, keyword)
}
