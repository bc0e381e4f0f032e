package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
)

// defaultSpreadsheet keys rows of the single-spreadsheet Store methods.
const defaultSpreadsheet = "default"

// RowRepo is a Postgres implementation of rowstore.Store and
// rowstore.SpreadsheetStore. Rows live in a single table mirroring the
// sheet layout:
//
//	CREATE TABLE sheet_rows (
//	    spreadsheet_id TEXT    NOT NULL,
//	    sheet          TEXT    NOT NULL,
//	    row_index      BIGINT  NOT NULL,
//	    cells          TEXT[]  NOT NULL,
//	    PRIMARY KEY (spreadsheet_id, sheet, row_index)
//	);
//
// Row 0 is the header row, matching the sheet convention.
type RowRepo struct {
	db *pgxpool.Pool
}

func NewRowRepo(db *pgxpool.Pool) *RowRepo {
	return &RowRepo{db: db}
}

func (r *RowRepo) Append(ctx context.Context, sheet string, row []string) error {
	return r.AppendTo(ctx, defaultSpreadsheet, sheet, row)
}

func (r *RowRepo) Rows(ctx context.Context, sheet string) ([][]string, error) {
	return r.allRows(ctx, defaultSpreadsheet, sheet)
}

func (r *RowRepo) FindByID(ctx context.Context, sheet, id string) (rowstore.Record, error) {
	rows, err := r.allRows(ctx, defaultSpreadsheet, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	for _, row := range rows[1:] {
		if len(row) > 0 && rowstore.IDMatches(row[0], id) {
			return rowstore.ZipRecord(headers, row), nil
		}
	}
	return nil, nil
}

func (r *RowRepo) UpdateByID(ctx context.Context, sheet, id string, row []string) error {
	const op = "rowRepo.UpdateByID"

	rows, err := r.allRows(ctx, defaultSpreadsheet, sheet)
	if err != nil {
		return err
	}

	rowIndex := -1
	for i, existing := range rows {
		if len(existing) > 0 && rowstore.IDMatches(existing[0], id) {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return types.ErrRowNotFound
	}

	query := `UPDATE sheet_rows SET cells = $1
              WHERE spreadsheet_id = $2 AND sheet = $3 AND row_index = $4;`

	if _, err := r.db.Exec(ctx, query, row, defaultSpreadsheet, sheet, rowIndex); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *RowRepo) EnsureSheet(ctx context.Context, spreadsheetID, title string, headers []string) (string, error) {
	const op = "rowRepo.EnsureSheet"

	safe := rowstore.SanitizeSheetTitle(title)

	var exists bool
	query := `SELECT EXISTS (
                  SELECT 1 FROM sheet_rows
                  WHERE spreadsheet_id = $1 AND sheet = $2
              );`
	if err := r.db.QueryRow(ctx, query, spreadsheetID, safe).Scan(&exists); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return safe, nil
	}

	insert := `INSERT INTO sheet_rows (spreadsheet_id, sheet, row_index, cells)
               VALUES ($1, $2, 0, $3);`
	if _, err := r.db.Exec(ctx, insert, spreadsheetID, safe, headers); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return safe, nil
}

func (r *RowRepo) AppendTo(ctx context.Context, spreadsheetID, sheet string, row []string) error {
	const op = "rowRepo.AppendTo"

	query := `INSERT INTO sheet_rows (spreadsheet_id, sheet, row_index, cells)
              SELECT $1, $2, COALESCE(MAX(row_index) + 1, 0), $3
              FROM sheet_rows
              WHERE spreadsheet_id = $1 AND sheet = $2;`

	if _, err := r.db.Exec(ctx, query, spreadsheetID, sheet, row); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *RowRepo) RowCount(ctx context.Context, spreadsheetID, sheet string) (int, error) {
	const op = "rowRepo.RowCount"

	var count int
	query := `SELECT COUNT(*) FROM sheet_rows WHERE spreadsheet_id = $1 AND sheet = $2;`
	if err := r.db.QueryRow(ctx, query, spreadsheetID, sheet).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func (r *RowRepo) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	const op = "rowRepo.SheetTitles"

	query := `SELECT DISTINCT sheet FROM sheet_rows WHERE spreadsheet_id = $1;`
	rows, err := r.db.Query(ctx, query, spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return titles, nil
}

func (r *RowRepo) DataRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	all, err := r.allRows(ctx, spreadsheetID, sheet)
	if err != nil {
		return nil, err
	}
	if len(all) <= 1 {
		return nil, nil
	}
	return all[1:], nil
}

func (r *RowRepo) allRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	const op = "rowRepo.allRows"

	query := `SELECT cells FROM sheet_rows
              WHERE spreadsheet_id = $1 AND sheet = $2
              ORDER BY row_index;`

	rows, err := r.db.Query(ctx, query, spreadsheetID, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
