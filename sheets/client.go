package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var (
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrWorksheetNotFound   = errors.New("worksheet not found")
)

// Sheets scope is enough to open by key; Drive read-only is needed for the name lookup.
var scopes = []string{sheets.SpreadsheetsScope, drive.DriveReadonlyScope}

// Options locates a workbook. SpreadsheetID wins over SpreadsheetName.
type Options struct {
	CredentialsFile string
	SpreadsheetID   string
	SpreadsheetName string
}

// Workbook is an opened spreadsheet.
type Workbook struct {
	srv   *sheets.Service
	id    string
	title string
}

// Open authorizes with the service account key in opts.CredentialsFile and opens the workbook.
func Open(ctx context.Context, opts Options) (*Workbook, error) {
	b, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}
	return OpenWithClientOptions(ctx, opts, option.WithHTTPClient(jwtConfig.Client(ctx)))
}

// OpenWithClientOptions opens the workbook with explicit API client options.
func OpenWithClientOptions(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Workbook, error) {
	srv, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	id := opts.SpreadsheetID
	if id == "" {
		drv, err := drive.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("unable to create Drive service: %w", err)
		}
		id, err = findByName(ctx, drv, opts.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	ss, err := srv.Spreadsheets.Get(id).Fields("spreadsheetId,properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet (ID=%s, NAME=%q): %w", orNone(opts.SpreadsheetID), opts.SpreadsheetName, err)
	}
	title := ""
	if ss.Properties != nil {
		title = ss.Properties.Title
	}
	return &Workbook{srv: srv, id: id, title: title}, nil
}

func findByName(ctx context.Context, drv *drive.Service, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), "'", `\'`), spreadsheetMimeType)
	list, err := drv.Files.List().
		Q(q).
		Fields("files(id,name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("cannot open spreadsheet (NAME=%q): %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("cannot open spreadsheet (NAME=%q): %w; share it with the service account's client_email", name, ErrSpreadsheetNotFound)
	}
	return list.Files[0].Id, nil
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// ID returns the spreadsheet key.
func (w *Workbook) ID() string { return w.id }

// Title returns the spreadsheet title.
func (w *Workbook) Title() string { return w.title }
