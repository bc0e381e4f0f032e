package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
)

const serviceName = "fleet-ops"

// callTimeout bounds every round trip to the Sheets API, so a hung
// call cannot stall the request that triggered it.
const callTimeout = 15 * time.Second

func callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// Client is the Google Sheets implementation of rowstore.Store and
// rowstore.SpreadsheetStore. Store methods address tabs of the default
// spreadsheet, SpreadsheetStore methods address spreadsheets by id.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	const op = "sheets.New"

	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// Append adds a row after the last data row of a tab in the default
// spreadsheet. Values go in as USER_ENTERED so numeric strings become
// numbers, same as typing them in.
func (c *Client) Append(ctx context.Context, sheet string, row []string) error {
	const op = "sheets.Append"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if c.spreadsheetID == "" {
		return types.ErrSpreadsheetNotConfigured
	}

	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, sheet+"!A:AA", valueRange(row)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	metrics.RecordSheetOperation(serviceName, "append", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Rows returns all rows of a tab, header row included.
func (c *Client) Rows(ctx context.Context, sheet string) ([][]string, error) {
	const op = "sheets.Rows"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if c.spreadsheetID == "" {
		return nil, types.ErrSpreadsheetNotConfigured
	}

	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, sheet+"!A:AA").
		Context(ctx).
		Do()
	metrics.RecordSheetOperation(serviceName, "get", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return toStringRows(resp.Values), nil
}

// FindByID scans the tab for the first data row whose first cell matches
// id and returns it keyed by the header row. (nil, nil) when absent.
func (c *Client) FindByID(ctx context.Context, sheet, id string) (rowstore.Record, error) {
	rows, err := c.Rows(ctx, sheet)
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

// UpdateByID overwrites the row whose first cell matches id.
func (c *Client) UpdateByID(ctx context.Context, sheet, id string, row []string) error {
	const op = "sheets.UpdateByID"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if c.spreadsheetID == "" {
		return types.ErrSpreadsheetNotConfigured
	}

	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, sheet+"!A:A").
		Context(ctx).
		Do()
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	rowIndex := -1
	for i, r := range toStringRows(resp.Values) {
		if len(r) > 0 && rowstore.IDMatches(r[0], id) {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return types.ErrRowNotFound
	}

	// sheet rows are 1-based
	rng := fmt.Sprintf("%s!A%d:AA%d", sheet, rowIndex+1, rowIndex+1)

	start := time.Now()
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	metrics.RecordSheetOperation(serviceName, "update", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// EnsureSheet returns the sanitized tab title, creating the tab with its
// header row when missing.
func (c *Client) EnsureSheet(ctx context.Context, spreadsheetID, title string, headers []string) (string, error) {
	const op = "sheets.EnsureSheet"

	safe := rowstore.SanitizeSheetTitle(title)
	ctx = wrap.WithSheet(ctx, safe)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return "", wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == safe {
			return safe, nil
		}
	}

	start := time.Now()
	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: safe},
			}},
		},
	}).Context(ctx).Do()
	metrics.RecordSheetOperation(serviceName, "add_sheet", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return "", wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	newTitle := safe
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		newTitle = resp.Replies[0].AddSheet.Properties.Title
	}

	if len(headers) > 0 {
		rng := fmt.Sprintf("%s!A1:%s1", newTitle, columnLetter(len(headers)))
		_, err = c.svc.Spreadsheets.Values.
			Update(spreadsheetID, rng, valueRange(headers)).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
			return "", wrap.Error(ctx, fmt.Errorf("%s: write headers: %w", op, err))
		}
	}

	return newTitle, nil
}

// AppendTo adds a row to a tab of an arbitrary spreadsheet.
func (c *Client) AppendTo(ctx context.Context, spreadsheetID, sheet string, row []string) error {
	const op = "sheets.AppendTo"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, sheet+"!A:Z", valueRange(row)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	metrics.RecordSheetOperation(serviceName, "append", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// RowCount returns the number of occupied rows in the first column.
func (c *Client) RowCount(ctx context.Context, spreadsheetID, sheet string) (int, error) {
	const op = "sheets.RowCount"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.
		Get(spreadsheetID, sheet+"!A:A").
		Context(ctx).
		Do()
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return 0, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return len(resp.Values), nil
}

// SheetTitles lists the tab titles of a spreadsheet.
func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	const op = "sheets.SheetTitles"
	ctx, cancel := callCtx(ctx)
	defer cancel()

	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// DataRows returns the rows of a tab starting from row 2.
func (c *Client) DataRows(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	const op = "sheets.DataRows"
	ctx = wrap.WithSheet(ctx, sheet)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.
		Get(spreadsheetID, sheet+"!A2:Z").
		Context(ctx).
		Do()
	metrics.RecordSheetOperation(serviceName, "get", err, time.Since(start))
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionSheetsCallFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return toStringRows(resp.Values), nil
}

func valueRange(row []string) *sheetsapi.ValueRange {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheetsapi.ValueRange{Values: [][]any{cells}}
}

func toStringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = toString(v)
		}
		rows[i] = cells
	}
	return rows
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// columnLetter maps a 1-based column count to its A1 letter. The widest
// header row here is 15 columns, so a single letter is enough.
func columnLetter(n int) string {
	return string(rune('A' + n - 1))
}
