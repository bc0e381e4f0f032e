package ecodelivery

import (
	"context"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
)

// Store addresses the Ecodelivery tab of the default spreadsheet.
type Store interface {
	Append(ctx context.Context, sheet string, row []string) error
	Rows(ctx context.Context, sheet string) ([][]string, error)
	FindByID(ctx context.Context, sheet, id string) (rowstore.Record, error)
	UpdateByID(ctx context.Context, sheet, id string, row []string) error
}

// SpreadsheetStore addresses the per-biker tabs of the Carreras_bikers
// spreadsheet.
type SpreadsheetStore interface {
	EnsureSheet(ctx context.Context, spreadsheetID, title string, headers []string) (string, error)
	AppendTo(ctx context.Context, spreadsheetID, sheet string, row []string) error
	RowCount(ctx context.Context, spreadsheetID, sheet string) (int, error)
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	DataRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
}

// PhotoUploader stores Ecodelivery photos and returns their public URLs.
type PhotoUploader interface {
	Configured() bool
	UploadEcoTurnoPhoto(ctx context.Context, dataURL, username string, momento types.Momento) (string, error)
	UploadEcoDeliveryPhoto(ctx context.Context, dataURL, username string) (string, error)
}
