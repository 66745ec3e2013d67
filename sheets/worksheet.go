package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

const (
	// New worksheets get the same grid the form archive always had.
	defaultRows = 200
	defaultCols = 10

	valueInputRaw = "RAW"
)

// Worksheet is one tab of a Workbook.
type Worksheet struct {
	wb    *Workbook
	ID    int64
	Title string
	Index int64
}

func (w *Workbook) worksheets(ctx context.Context) ([]*Worksheet, error) {
	ss, err := w.srv.Spreadsheets.Get(w.id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list worksheets: %w", err)
	}
	out := make([]*Worksheet, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties == nil {
			continue
		}
		out = append(out, &Worksheet{wb: w, ID: s.Properties.SheetId, Title: s.Properties.Title, Index: s.Properties.Index})
	}
	return out, nil
}

// FirstWorksheet returns the tab a Google Form writes its responses to.
func (w *Workbook) FirstWorksheet(ctx context.Context) (*Worksheet, error) {
	all, err := w.worksheets(ctx)
	if err != nil {
		return nil, err
	}
	var first *Worksheet
	for _, ws := range all {
		if first == nil || ws.Index < first.Index {
			first = ws
		}
	}
	if first == nil {
		return nil, fmt.Errorf("workbook %q has no worksheets: %w", w.title, ErrWorksheetNotFound)
	}
	return first, nil
}

// Worksheet returns the tab with the given title.
func (w *Workbook) Worksheet(ctx context.Context, title string) (*Worksheet, error) {
	all, err := w.worksheets(ctx)
	if err != nil {
		return nil, err
	}
	for _, ws := range all {
		if ws.Title == title {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
}

// AddWorksheet creates a tab with the given grid size.
func (w *Workbook) AddWorksheet(ctx context.Context, title string, rows, cols int64) (*Worksheet, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title:          title,
					GridProperties: &sheets.GridProperties{RowCount: rows, ColumnCount: cols},
				},
			},
		}},
	}
	resp, err := w.srv.Spreadsheets.BatchUpdate(w.id, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to add worksheet %q: %w", title, err)
	}
	ws := &Worksheet{wb: w, Title: title}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		p := resp.Replies[0].AddSheet.Properties
		ws.ID, ws.Index = p.SheetId, p.Index
	}
	return ws, nil
}

// EnsureWorksheet returns the tab with the given title, creating it with header in row 1
// when it does not exist. The boolean reports whether it was created.
func (w *Workbook) EnsureWorksheet(ctx context.Context, title string, header []string) (*Worksheet, bool, error) {
	ws, err := w.Worksheet(ctx, title)
	if err == nil {
		return ws, false, nil
	}
	if !errors.Is(err, ErrWorksheetNotFound) {
		return nil, false, err
	}
	ws, err = w.AddWorksheet(ctx, title, defaultRows, defaultCols)
	if err != nil {
		return nil, false, err
	}
	if err := ws.UpdateRow(ctx, 1, header); err != nil {
		return nil, false, err
	}
	return ws, true, nil
}

// Values returns every non-empty row as formatted strings, row 1 first.
func (ws *Worksheet) Values(ctx context.Context) ([][]string, error) {
	resp, err := ws.wb.srv.Spreadsheets.Values.Get(ws.wb.id, quoteTitle(ws.Title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", ws.Title, err)
	}
	return toStrings(resp.Values), nil
}

// UpdateCell writes value into the 1-based (row, col) cell.
func (ws *Worksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := ws.wb.srv.Spreadsheets.Values.Update(ws.wb.id, cellRange(ws.Title, row, col), vr).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to update %s: %w", cellRange(ws.Title, row, col), err)
	}
	return nil
}

// UpdateRow writes values into a 1-based row starting at column A.
func (ws *Worksheet) UpdateRow(ctx context.Context, row int, values []string) error {
	rng := rowRange(ws.Title, row, len(values))
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	_, err := ws.wb.srv.Spreadsheets.Values.Update(ws.wb.id, rng, vr).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to update %s: %w", rng, err)
	}
	return nil
}

// AppendRow adds values as a new row after the sheet's last row. Values are stored
// as typed, so user text is never evaluated as a formula.
func (ws *Worksheet) AppendRow(ctx context.Context, values []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	_, err := ws.wb.srv.Spreadsheets.Values.Append(ws.wb.id, quoteTitle(ws.Title)+"!A1", vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append to %q: %w", ws.Title, err)
	}
	return nil
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
