/*
Package enrich downloads detail documents for discovered announcements and
extracts structured deal fields from their text.
*/
package enrich

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/pdftext"
	"github.com/shanehull/tdnetscraper/internal/types"
)

// Deal structure labels, checked in fixed priority order: the first
// category whose marker appears in the text wins.
const (
	StructureWarrant     = "Warrant/Stock Option"
	StructureConvertible = "Convertible Bond"
	StructureCommonStock = "Common Stock"
)

var (
	investorRe  = regexp.MustCompile(`割当先[\s：:]*([^\n\r]+)`)
	dealSizeRe  = regexp.MustCompile(`調達資金[^0-9]*([0-9,]+).*?([百千万億円]+)`)
	priceRe     = regexp.MustCompile(`発行価額[^0-9]*([0-9,]+)\s*円`)
	countRe     = regexp.MustCompile(`発行新株式数[^0-9]*([0-9,]+)\s*株`)
	dealDateRe  = regexp.MustCompile(`(?:払込期日|割当日|発行日)[^0-9]*([0-9]{4})年([0-9]{1,2})月([0-9]{1,2})日`)
	structTable = []struct {
		marker string
		label  string
	}{
		{"新株予約権", StructureWarrant},
		{"転換社債", StructureConvertible},
		{"新株式", StructureCommonStock},
	}
)

// Downloader fetches a document's bytes.
type Downloader interface {
	DownloadFile(ctx context.Context, url string) ([]byte, error)
}

// PDFEnricher downloads an entry's detail PDF, saves it under the output
// directory as {DocID}.pdf, and extracts deal fields from its text.
type PDFEnricher struct {
	downloader Downloader
	outputDir  string
	texts      map[string]string
}

// NewPDFEnricher creates an enricher saving documents under outputDir,
// which is created if absent.
func NewPDFEnricher(downloader Downloader, outputDir string) (*PDFEnricher, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &PDFEnricher{
		downloader: downloader,
		outputDir:  outputDir,
		texts:      make(map[string]string),
	}, nil
}

// Enrich returns a copy of the entry augmented with whatever deal fields
// could be extracted. Download or extraction failure leaves the entry
// unchanged; PDFDownloaded records only that the download step succeeded.
func (p *PDFEnricher) Enrich(ctx context.Context, entry types.SearchEntry) types.SearchEntry {
	if entry.PDFURL == "" || entry.DocID == types.DocSentinel {
		return entry
	}
	log := logrus.WithField("doc_id", entry.DocID)

	path, err := p.download(ctx, entry.PDFURL, entry.DocID)
	if err != nil {
		log.WithError(err).Warn("detail document download failed")
		return entry
	}
	entry.PDFDownloaded = true

	// Extraction reads back from the saved file, not the response bytes.
	text, err := pdftext.ExtractFile(path)
	if err != nil || strings.TrimSpace(text) == "" {
		log.WithError(err).Warn("text extraction yielded nothing")
		return entry
	}
	p.texts[entry.DocID] = text

	return ApplyDealDetails(entry, text)
}

// ExtractedText returns the text extracted for a document during this
// enricher's lifetime, if any.
func (p *PDFEnricher) ExtractedText(docID string) (string, bool) {
	text, ok := p.texts[docID]
	return text, ok
}

func (p *PDFEnricher) download(ctx context.Context, url, docID string) (string, error) {
	data, err := p.downloader.DownloadFile(ctx, url)
	if err != nil {
		return "", err
	}
	path := filepath.Join(p.outputDir, docID+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// ApplyDealDetails returns a copy of the entry with fields extracted from
// the deal text. Each extraction is independent; a missing field leaves
// the corresponding entry field untouched.
func ApplyDealDetails(entry types.SearchEntry, text string) types.SearchEntry {
	if text == "" {
		return entry
	}

	if m := investorRe.FindStringSubmatch(text); m != nil {
		entry.Investor = strings.TrimSpace(m[1])
	}
	if m := dealSizeRe.FindStringSubmatch(text); m != nil {
		entry.DealSize = types.ParseAmount(m[1])
		entry.DealSizeUnit = m[2]
	}
	if m := priceRe.FindStringSubmatch(text); m != nil {
		entry.SharePrice = types.ParseAmount(m[1])
	}
	if m := countRe.FindStringSubmatch(text); m != nil {
		entry.ShareCount = types.ParseAmount(m[1])
	}
	if m := dealDateRe.FindStringSubmatch(text); m != nil {
		entry.DealDate = fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
	}
	if label, ok := ClassifyStructure(text); ok {
		entry.DealStructure = label
	}

	return entry
}

// ClassifyStructure picks the deal structure label by first-match priority
// over the fixed marker table. Markers are not mutually exclusive in the
// source text; the result is single-valued regardless.
func ClassifyStructure(text string) (string, bool) {
	for _, s := range structTable {
		if strings.Contains(text, s.marker) {
			return s.label, true
		}
	}
	return "", false
}
