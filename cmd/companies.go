package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// loadCompanyFile reads a company list from a .csv or .xlsx file. The
// first column holds company names; a header row is detected by the
// literal "company" label and skipped. Names are trimmed and
// case-insensitively deduplicated, keeping file order.
func loadCompanyFile(path string) ([]string, error) {
	var names []string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		names, err = readCSVCompanies(path)
	case ".xlsx":
		names, err = readXLSXCompanies(path)
	default:
		return nil, eris.Errorf("unsupported company file type: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return cleanCompanies(names), nil
}

func readCSVCompanies(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open company csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "read company csv")
	}

	var names []string
	for _, rec := range records {
		if len(rec) > 0 {
			names = append(names, rec[0])
		}
	}
	return names, nil
}

func readXLSXCompanies(path string) ([]string, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "open company xlsx")
	}
	if len(wb.Sheets) == 0 {
		return nil, eris.New("company xlsx has no sheets")
	}

	var names []string
	for _, row := range wb.Sheets[0].Rows {
		if len(row.Cells) > 0 {
			names = append(names, row.Cells[0].String())
		}
	}
	return names, nil
}

func cleanCompanies(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "company") || strings.EqualFold(name, "company name") {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
