// Package sheet reads the spreadsheets describing the tickers to follow and
// the recorded dividend pay dates.
//
// A sheet is a local .csv or .xlsx file (first worksheet), or an http(s)
// URL of a published spreadsheet.
package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Table is the content of a sheet: a header row and data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of a header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value in row at column i, "" when the row is short.
func (t *Table) Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Rename renames headers according to aliases. Unknown headers are kept.
func (t *Table) Rename(aliases map[string]string) {
	for i, h := range t.Header {
		if to, ok := aliases[h]; ok {
			t.Header[i] = to
		}
	}
}

// Read reads a sheet from a local file or a URL.
func Read(ctx context.Context, source string) (*Table, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return readURL(ctx, source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("cannot open sheet: %w", err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(source), ".xlsx") {
		return ReadXLSX(f)
	}
	return ReadCSV(f)
}

func readURL(ctx context.Context, addr string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch sheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch sheet %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("host", req.URL.Host).Int("bytes", len(body)).Msg("sheet fetched")

	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "spreadsheetml") || strings.HasSuffix(req.URL.Path, ".xlsx") {
		return ReadXLSX(bytes.NewReader(body))
	}
	return ReadCSV(bytes.NewReader(body))
}

// ReadCSV reads a comma separated sheet. Rows may have fewer cells than the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv sheet: %w", err)
	}
	return newTable(records), nil
}

// ReadXLSX reads the first worksheet of an Excel workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read xlsx sheet: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read worksheet %q: %w", sheets[0], err)
	}
	return newTable(rows), nil
}

func newTable(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}
	t.Header = make([]string, len(records[0]))
	for i, h := range records[0] {
		t.Header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	for _, row := range records[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
