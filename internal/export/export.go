/*
Package export writes crawl results to JSON and CSV files.
*/
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shanehull/tdnetscraper/internal/types"
)

var csvHeader = []string{
	"publish_datetime", "stock_code", "company_name", "title", "pdf_url",
	"doc_id", "description", "tier", "pdf_downloaded", "investor",
	"deal_size", "deal_size_unit", "share_price", "share_count",
	"deal_date", "deal_structure",
}

// WriteJSON writes the full result, metadata included, as indented JSON.
func WriteJSON(result *types.SearchResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes one row per entry with a fixed header.
func WriteCSV(result *types.SearchResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range result.Entries {
		row := []string{
			e.PublishDateTime, e.StockCode, e.CompanyName, e.Title,
			e.PDFURL, e.DocID, e.Description, e.Tier,
			fmt.Sprintf("%t", e.PDFDownloaded), e.Investor,
			e.DealSize.String(), e.DealSizeUnit,
			e.SharePrice.String(), e.ShareCount.String(),
			e.DealDate, e.DealStructure,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
