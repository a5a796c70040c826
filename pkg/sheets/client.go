package sheets

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// KeyColumn identifies a record row for upserts.
const KeyColumn = "company_profile_company_name"

// Sink writes flattened records to a spreadsheet.
type Sink interface {
	Upsert(ctx context.Context, rows []map[string]string) error
}

// Client talks to one sheet of one spreadsheet with a service account.
type Client struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
}

// NewClient builds a sheets client from service-account credentials.
func NewClient(ctx context.Context, spreadsheetID, sheetName string, serviceAccountJSON []byte) (*Client, error) {
	svc, err := sheetsv4.NewService(ctx,
		option.WithCredentialsJSON(serviceAccountJSON),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: create service")
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// ReadAll returns the sheet contents as records keyed by the header
// row. An empty sheet yields no records.
func (c *Client) ReadAll(ctx context.Context) ([]map[string]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrap(err, "sheets: read values")
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		header[i] = stringify(h)
	}

	records := make([]map[string]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = stringify(row[i])
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Upsert merges rows into the sheet keyed on KeyColumn: existing keys
// are replaced, new keys appended, then the sheet is rewritten.
func (c *Client) Upsert(ctx context.Context, rows []map[string]string) error {
	existing, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}

	header, grid := MergeRows(existing, rows)
	if len(grid) == 0 {
		return nil
	}

	values := make([][]any, 0, len(grid)+1)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	values = append(values, headerRow)
	for _, row := range grid {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = TruncateCell(row[h])
		}
		values = append(values, cells)
	}

	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.sheetName, &sheetsv4.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return eris.Wrap(err, "sheets: clear")
	}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.sheetName, &sheetsv4.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	return eris.Wrap(err, "sheets: update")
}

// MergeRows upserts incoming rows over existing ones keyed on
// KeyColumn, keeping the incoming version on conflict. The header is
// the existing column order extended with new columns sorted.
func MergeRows(existing, incoming []map[string]string) ([]string, []map[string]string) {
	var header []string
	seenCol := make(map[string]struct{})
	addCols := func(rows []map[string]string, sorted bool) {
		var fresh []string
		for _, row := range rows {
			for col := range row {
				if _, ok := seenCol[col]; !ok {
					seenCol[col] = struct{}{}
					fresh = append(fresh, col)
				}
			}
		}
		if sorted {
			sort.Strings(fresh)
		}
		header = append(header, fresh...)
	}
	addCols(existing, true)
	addCols(incoming, true)

	byKey := make(map[string]int)
	var merged []map[string]string
	for _, row := range append(append([]map[string]string{}, existing...), incoming...) {
		key := row[KeyColumn]
		if i, ok := byKey[key]; ok && key != "" {
			merged[i] = row
			continue
		}
		byKey[key] = len(merged)
		merged = append(merged, row)
	}

	// Rows may miss columns other rows have.
	for _, row := range merged {
		for _, col := range header {
			if _, ok := row[col]; !ok {
				row[col] = ""
			}
		}
	}
	return header, merged
}
