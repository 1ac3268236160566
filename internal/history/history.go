/*
Package history tracks which disclosure entries have already been reported,
so repeated runs within a day only surface new findings.
*/
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/tdnetscraper/internal/types"
)

const (
	historyFileName = "tdnet_report_history.json"
	historyDirName  = "tdnetscraper"
)

// History is the on-disk record: one report date plus the composite keys
// of every entry reported on that date.
type History struct {
	ReportDate      string
	ReportedEntries map[string]bool
}

// Manager loads, filters against, and persists a History file. Safe for
// concurrent use.
type Manager struct {
	history         History
	mutex           sync.Mutex
	historyFilePath string
	reportLocation  *time.Location
}

// NewManager opens the history file under the system temp directory,
// discarding any record that is not from today in the given time zone.
func NewManager(tzName string) (*Manager, error) {
	historyDir := filepath.Join(os.TempDir(), historyDirName)
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", historyDir, err)
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
	}

	m := &Manager{
		historyFilePath: filepath.Join(historyDir, historyFileName),
		reportLocation:  loc,
	}
	m.loadHistory()
	return m, nil
}

func (m *Manager) loadHistory() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	today := m.currentReportDate()
	m.history = History{
		ReportDate:      today,
		ReportedEntries: make(map[string]bool),
	}

	data, err := os.ReadFile(m.historyFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warnf("failed to read history file %s, starting fresh", m.historyFilePath)
		}
		return
	}

	var loaded History
	if err := json.Unmarshal(data, &loaded); err != nil {
		logrus.WithError(err).Warn("failed to unmarshal history JSON, starting fresh")
		return
	}

	if loaded.ReportDate == today {
		if loaded.ReportedEntries == nil {
			loaded.ReportedEntries = make(map[string]bool)
		}
		m.history = loaded
		logrus.Infof("loaded %d reported entries for %s", len(m.history.ReportedEntries), today)
	} else {
		logrus.Infof("history is from %s, starting new report history for %s", loaded.ReportDate, today)
	}
}

func (m *Manager) saveHistory() {
	m.history.ReportDate = m.currentReportDate()

	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("failed to marshal history for save")
		return
	}

	if err := os.WriteFile(m.historyFilePath, data, 0o644); err != nil {
		logrus.WithError(err).Errorf("failed to write history file %s", m.historyFilePath)
	}
}

// FilterNew returns the entries not yet recorded as reported today,
// preserving order.
func (m *Manager) FilterNew(entries []types.SearchEntry) []types.SearchEntry {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var fresh []types.SearchEntry
	for _, e := range entries {
		if !m.history.ReportedEntries[e.Key()] {
			fresh = append(fresh, e)
		}
	}
	return fresh
}

// RecordReported marks the entries as reported and persists the history.
func (m *Manager) RecordReported(entries []types.SearchEntry) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, e := range entries {
		m.history.ReportedEntries[e.Key()] = true
	}
	m.saveHistory()
}

// HistoryFilePath returns the location of the on-disk history file.
func (m *Manager) HistoryFilePath() string {
	return m.historyFilePath
}

func (m *Manager) currentReportDate() string {
	return time.Now().In(m.reportLocation).Format("2006-01-02")
}
