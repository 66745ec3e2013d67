package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeAPI is an in-memory stand-in for the Sheets and Drive endpoints this package uses.
type fakeAPI struct {
	t     *testing.T
	mu    sync.Mutex
	id    string
	title string
	tabs  []string
	data  map[string][][]string
	names map[string]string
}

func newFakeAPI(t *testing.T, tabs ...string) *fakeAPI {
	f := &fakeAPI{t: t, id: "sid", title: "Patient_Inquiries", data: map[string][][]string{}, names: map[string]string{"Patient_Inquiries": "sid"}}
	for _, tab := range tabs {
		f.tabs = append(f.tabs, tab)
		f.data[tab] = nil
	}
	return f
}

func (f *fakeAPI) open(t *testing.T, opts Options) (*Workbook, error) {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return OpenWithClientOptions(context.Background(), opts,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
}

func (f *fakeAPI) mustOpen(t *testing.T) *Workbook {
	wb, err := f.open(t, Options{SpreadsheetID: "sid"})
	require.NoError(t, err)
	return wb
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(f.t, json.NewEncoder(w).Encode(v))
}

func (f *fakeAPI) notFound(w http.ResponseWriter) {
	f.writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{"code": 404, "message": "Requested entity was not found."}})
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	if path == "/files" {
		f.serveDrive(w, r)
		return
	}
	rest, ok := strings.CutPrefix(path, "/v4/spreadsheets/")
	if !ok {
		f.notFound(w)
		return
	}
	id, rng, hasValues := strings.Cut(rest, "/values/")
	if strings.HasSuffix(id, ":batchUpdate") {
		id = strings.TrimSuffix(id, ":batchUpdate")
		if id != f.id {
			f.notFound(w)
			return
		}
		f.serveBatchUpdate(w, r)
		return
	}
	if id != f.id {
		f.notFound(w)
		return
	}
	if !hasValues {
		f.serveSpreadsheet(w)
		return
	}
	if strings.HasSuffix(rng, ":append") {
		f.serveAppend(w, r, strings.TrimSuffix(rng, ":append"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		title, _ := splitRange(rng)
		f.writeJSON(w, http.StatusOK, map[string]any{"range": rng, "majorDimension": "ROWS", "values": f.data[title]})
	case http.MethodPut:
		f.serveUpdate(w, r, rng)
	default:
		f.notFound(w)
	}
}

func (f *fakeAPI) serveDrive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	m := regexp.MustCompile(`name = '((?:[^'\\]|\\.)*)'`).FindStringSubmatch(q)
	files := []map[string]string{}
	if m != nil {
		if id, ok := f.names[strings.ReplaceAll(m[1], `\'`, "'")]; ok {
			files = append(files, map[string]string{"id": id, "name": m[1]})
		}
	}
	f.writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (f *fakeAPI) serveSpreadsheet(w http.ResponseWriter) {
	var tabs []map[string]any
	for i, tab := range f.tabs {
		tabs = append(tabs, map[string]any{"properties": map[string]any{"sheetId": i * 100, "title": tab, "index": i}})
	}
	f.writeJSON(w, http.StatusOK, map[string]any{
		"spreadsheetId": f.id,
		"properties":    map[string]any{"title": f.title},
		"sheets":        tabs,
	})
}

func (f *fakeAPI) serveBatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req sheets.BatchUpdateSpreadsheetRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
	require.Len(f.t, req.Requests, 1)
	props := req.Requests[0].AddSheet.Properties
	f.tabs = append(f.tabs, props.Title)
	f.data[props.Title] = nil
	idx := len(f.tabs) - 1
	f.writeJSON(w, http.StatusOK, map[string]any{
		"spreadsheetId": f.id,
		"replies": []any{map[string]any{"addSheet": map[string]any{"properties": map[string]any{
			"sheetId": idx * 100, "title": props.Title, "index": idx,
			"gridProperties": map[string]any{"rowCount": props.GridProperties.RowCount, "columnCount": props.GridProperties.ColumnCount},
		}}}},
	})
}

func (f *fakeAPI) serveUpdate(w http.ResponseWriter, r *http.Request, rng string) {
	require.Equal(f.t, "RAW", r.URL.Query().Get("valueInputOption"))
	var vr sheets.ValueRange
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&vr))
	title, cell := splitRange(rng)
	row, col := parseCell(f.t, strings.Split(cell, ":")[0])
	for i, v := range vr.Values[0] {
		f.set(title, row, col+i, v.(string))
	}
	f.writeJSON(w, http.StatusOK, map[string]any{"spreadsheetId": f.id, "updatedRange": rng})
}

func (f *fakeAPI) serveAppend(w http.ResponseWriter, r *http.Request, rng string) {
	require.Equal(f.t, "RAW", r.URL.Query().Get("valueInputOption"))
	require.Equal(f.t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
	var vr sheets.ValueRange
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&vr))
	title, _ := splitRange(rng)
	row := make([]string, len(vr.Values[0]))
	for i, v := range vr.Values[0] {
		row[i] = v.(string)
	}
	f.data[title] = append(f.data[title], row)
	f.writeJSON(w, http.StatusOK, map[string]any{"spreadsheetId": f.id})
}

func (f *fakeAPI) set(title string, row, col int, v string) {
	rows := f.data[title]
	for len(rows) < row {
		rows = append(rows, nil)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = v
	f.data[title] = rows
}

// splitRange splits "'Title'!B3" into its unquoted title and cell part.
func splitRange(rng string) (string, string) {
	title, cell := rng, ""
	if i := strings.LastIndex(rng, "'!"); i >= 0 {
		title, cell = rng[:i+1], rng[i+2:]
	}
	title = strings.TrimSuffix(strings.TrimPrefix(title, "'"), "'")
	return strings.ReplaceAll(title, "''", "'"), cell
}

func parseCell(t *testing.T, cell string) (int, int) {
	i := strings.IndexAny(cell, "0123456789")
	require.Positive(t, i)
	col := 0
	for _, c := range cell[:i] {
		col = col*26 + int(c-'A'+1)
	}
	row, err := strconv.Atoi(cell[i:])
	require.NoError(t, err)
	return row, col
}
