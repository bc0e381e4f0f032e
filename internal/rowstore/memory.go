package rowstore

import (
	"context"
	"sync"

	"github.com/beetracked/fleet-ops/internal/domain/types"
)

// Memory is an in-memory Store and SpreadsheetStore. It backs tests and
// local development runs where no Google credentials are available.
type Memory struct {
	mu           sync.RWMutex
	sheets       map[string][][]string            // tab -> rows, default spreadsheet
	spreadsheets map[string]map[string][][]string // spreadsheet id -> tab -> rows
}

func NewMemory() *Memory {
	return &Memory{
		sheets:       make(map[string][][]string),
		spreadsheets: make(map[string]map[string][][]string),
	}
}

// Seed replaces the contents of a tab in the default spreadsheet.
func (m *Memory) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = rows
}

func (m *Memory) Append(_ context.Context, sheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = append(m.sheets[sheet], row)
	return nil
}

func (m *Memory) Rows(_ context.Context, sheet string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sheets[sheet]
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *Memory) FindByID(_ context.Context, sheet, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sheets[sheet]
	if len(rows) == 0 {
		return nil, nil
	}
	headers := rows[0]
	for _, row := range rows[1:] {
		if len(row) > 0 && IDMatches(row[0], id) {
			return ZipRecord(headers, row), nil
		}
	}
	return nil, nil
}

func (m *Memory) UpdateByID(_ context.Context, sheet, id string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.sheets[sheet]
	for i, r := range rows {
		if len(r) > 0 && IDMatches(r[0], id) {
			rows[i] = row
			return nil
		}
	}
	return types.ErrRowNotFound
}

func (m *Memory) tab(spreadsheetID string) map[string][][]string {
	tabs, ok := m.spreadsheets[spreadsheetID]
	if !ok {
		tabs = make(map[string][][]string)
		m.spreadsheets[spreadsheetID] = tabs
	}
	return tabs
}

func (m *Memory) EnsureSheet(_ context.Context, spreadsheetID, title string, headers []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	safe := SanitizeSheetTitle(title)
	tabs := m.tab(spreadsheetID)
	if _, ok := tabs[safe]; !ok {
		tabs[safe] = [][]string{append([]string(nil), headers...)}
	}
	return safe, nil
}

func (m *Memory) AppendTo(_ context.Context, spreadsheetID, sheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tabs := m.tab(spreadsheetID)
	tabs[sheet] = append(tabs[sheet], row)
	return nil
}

func (m *Memory) RowCount(_ context.Context, spreadsheetID, sheet string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.spreadsheets[spreadsheetID][sheet]), nil
}

func (m *Memory) SheetTitles(_ context.Context, spreadsheetID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	titles := make([]string, 0, len(m.spreadsheets[spreadsheetID]))
	for t := range m.spreadsheets[spreadsheetID] {
		titles = append(titles, t)
	}
	return titles, nil
}

func (m *Memory) DataRows(_ context.Context, spreadsheetID, sheet string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.spreadsheets[spreadsheetID][sheet]
	if len(rows) <= 1 {
		return nil, nil
	}
	out := make([][]string, len(rows)-1)
	copy(out, rows[1:])
	return out, nil
}
