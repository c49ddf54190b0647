package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one CSV record keyed by header name. Missing columns read as "".
type Row map[string]string

// Get returns the trimmed value for key, or "" if the column is absent.
func (r Row) Get(key string) string {
	return r[key]
}

// CSVParser reads header-keyed tables. A leading UTF-8 byte order mark is
// dropped and every header and value is trimmed of surrounding whitespace.
type CSVParser struct{}

func (p *CSVParser) Rows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			if j < len(record) {
				row[h] = strings.TrimSpace(record[j])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
