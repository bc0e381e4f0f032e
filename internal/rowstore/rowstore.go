// Package rowstore defines the row-oriented datastore the services write
// shift and trip rows to. The primary implementation is Google Sheets,
// with Postgres and in-memory implementations behind the same interfaces.
package rowstore

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Record is a data row keyed by the header row of its sheet.
type Record map[string]string

// Store is the single-spreadsheet store used for the fleet shift sheets.
// Sheet names here are tab titles inside the default spreadsheet.
type Store interface {
	// Append adds a row after the last data row of the sheet.
	Append(ctx context.Context, sheet string, row []string) error

	// Rows returns every row of the sheet, header row included.
	Rows(ctx context.Context, sheet string) ([][]string, error)

	// FindByID returns the first data row whose first cell matches id,
	// keyed by the header row. Returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, sheet, id string) (Record, error)

	// UpdateByID overwrites the first row whose first cell matches id.
	// Returns types.ErrRowNotFound when no row matches.
	UpdateByID(ctx context.Context, sheet, id string, row []string) error
}

// SpreadsheetStore addresses arbitrary spreadsheets by id. Used for the
// per-driver and per-biker trip spreadsheets, where tabs are created on
// demand.
type SpreadsheetStore interface {
	// EnsureSheet returns the sanitized title of the tab, creating the
	// tab with the given header row when it does not exist yet.
	EnsureSheet(ctx context.Context, spreadsheetID, title string, headers []string) (string, error)

	// AppendTo adds a row to the named tab.
	AppendTo(ctx context.Context, spreadsheetID, sheet string, row []string) error

	// RowCount returns the number of rows in the tab, header included.
	RowCount(ctx context.Context, spreadsheetID, sheet string) (int, error)

	// SheetTitles lists the tab titles of the spreadsheet.
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)

	// DataRows returns the rows of the tab excluding the header row.
	DataRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
}

// IDMatches reports whether a first-column cell refers to id. Sheets may
// return "3" or "3.0" for a numeric cell, so besides the exact string
// match both values are compared numerically when they parse as numbers.
func IDMatches(cell, id string) bool {
	if cell == id {
		return true
	}
	cf, err1 := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	idf, err2 := strconv.ParseFloat(strings.TrimSpace(id), 64)
	return err1 == nil && err2 == nil && cf == idf
}

// ZipRecord pairs the header row with a data row. Cells beyond the row
// length come back empty.
func ZipRecord(headers, row []string) Record {
	rec := make(Record, len(headers))
	for i, h := range headers {
		if i < len(row) {
			rec[h] = row[i]
		} else {
			rec[h] = ""
		}
	}
	return rec
}

var (
	forbiddenTitleChars = regexp.MustCompile(`[:\\/?*\[\]]`)
	multiSpace          = regexp.MustCompile(`\s+`)
)

// SanitizeSheetTitle turns an arbitrary name (a driver or biker name)
// into a valid sheet tab title. Characters Sheets forbids become spaces,
// whitespace collapses, the result is capped at 100 characters, and an
// empty result falls back to "SinNombre".
func SanitizeSheetTitle(title string) string {
	s := forbiddenTitleChars.ReplaceAllString(title, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	if s == "" {
		return "SinNombre"
	}
	return s
}
