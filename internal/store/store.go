/*
Package store persists crawl results to a SQLite database so repeated
runs accumulate a local archive of discovered disclosures.
*/
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shanehull/tdnetscraper/internal/types"
)

// Store wraps a SQLite database of discovered disclosure entries.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Pass ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			publish_datetime TEXT NOT NULL,
			publish_date TEXT NOT NULL,
			stock_code TEXT NOT NULL,
			company_name TEXT NOT NULL,
			title TEXT NOT NULL,
			pdf_url TEXT,
			doc_id TEXT,
			description TEXT,
			tier TEXT,
			pdf_downloaded INTEGER NOT NULL DEFAULT 0,
			investor TEXT,
			deal_size TEXT,
			deal_size_unit TEXT,
			share_price TEXT,
			share_count TEXT,
			deal_date TEXT,
			deal_structure TEXT,
			scraped_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_publish_date ON entries(publish_date);
		CREATE INDEX IF NOT EXISTS idx_entries_stock_code ON entries(stock_code);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveResult upserts every entry of a crawl result, keyed by the entry's
// composite identity. Re-running a crawl over the same window refreshes
// rows instead of duplicating them.
func (s *Store) SaveResult(ctx context.Context, result *types.SearchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR REPLACE INTO entries (
			key, publish_datetime, publish_date, stock_code, company_name,
			title, pdf_url, doc_id, description, tier, pdf_downloaded,
			investor, deal_size, deal_size_unit, share_price, share_count,
			deal_date, deal_structure, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	scrapedAt := result.ScrapedAt.Format(time.RFC3339)
	for _, e := range result.Entries {
		_, err := stmt.ExecContext(ctx,
			e.Key(), e.PublishDateTime, e.PublishDate.Format("2006-01-02"),
			e.StockCode, e.CompanyName, e.Title, e.PDFURL, e.DocID,
			e.Description, e.Tier, boolToInt(e.PDFDownloaded),
			e.Investor, e.DealSize.String(), e.DealSizeUnit,
			e.SharePrice.String(), e.ShareCount.String(),
			e.DealDate, e.DealStructure, scrapedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save entry %s: %w", e.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// EntriesBetween returns the stored entries whose publish date falls in
// [start, end], ordered by publish datetime.
func (s *Store) EntriesBetween(ctx context.Context, start, end time.Time) ([]types.SearchEntry, error) {
	query := `
		SELECT publish_datetime, publish_date, stock_code, company_name,
			title, pdf_url, doc_id, description, tier, pdf_downloaded,
			investor, deal_size, deal_size_unit, share_price, share_count,
			deal_date, deal_structure
		FROM entries
		WHERE publish_date BETWEEN ? AND ?
		ORDER BY publish_datetime
	`
	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []types.SearchEntry
	for rows.Next() {
		var e types.SearchEntry
		var publishDate, dealSize, sharePrice, shareCount string
		var downloaded int
		err := rows.Scan(
			&e.PublishDateTime, &publishDate, &e.StockCode, &e.CompanyName,
			&e.Title, &e.PDFURL, &e.DocID, &e.Description, &e.Tier,
			&downloaded, &e.Investor, &dealSize, &e.DealSizeUnit,
			&sharePrice, &shareCount, &e.DealDate, &e.DealStructure,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if t, err := time.Parse("2006-01-02", publishDate); err == nil {
			e.PublishDate = t
		}
		e.PDFDownloaded = downloaded != 0
		e.DealSize = parseStoredAmount(dealSize)
		e.SharePrice = parseStoredAmount(sharePrice)
		e.ShareCount = parseStoredAmount(shareCount)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// Count returns the total number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Amounts are stored via Amount.String, so an empty column means a zero
// Amount rather than a raw "" sentinel.
func parseStoredAmount(s string) types.Amount {
	if s == "" {
		return types.Amount{}
	}
	return types.ParseAmount(s)
}
