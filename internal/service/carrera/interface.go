package carrera

import "context"

// SpreadsheetStore addresses the per-driver tabs of the Carreras_drivers
// spreadsheet.
type SpreadsheetStore interface {
	EnsureSheet(ctx context.Context, spreadsheetID, title string, headers []string) (string, error)
	AppendTo(ctx context.Context, spreadsheetID, sheet string, row []string) error
	RowCount(ctx context.Context, spreadsheetID, sheet string) (int, error)
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	DataRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
}
