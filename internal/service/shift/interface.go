package shift

import (
	"context"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
)

// Store is the slice of the row store the shift flow needs.
type Store interface {
	Append(ctx context.Context, sheet string, row []string) error
	Rows(ctx context.Context, sheet string) ([][]string, error)
	FindByID(ctx context.Context, sheet, id string) (rowstore.Record, error)
	UpdateByID(ctx context.Context, sheet, id string, row []string) error
}

// PhotoUploader stores shift photos and returns their public URLs.
type PhotoUploader interface {
	Configured() bool
	UploadTurnoPhoto(ctx context.Context, dataURL, turnoID string, tipo types.PhotoKind, momento types.Momento) (string, error)
}
