// Package parser turns the rows handed over by the PDF table extractor into typed transactions.
// Physical lines are reassembled into one row per transaction, then the positional cells are
// decomposed into record fields.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// StatementDateLayout is the day.month.year format printed on statements
const StatementDateLayout = "02.01.2006"

// RawRow is one physical statement line as an ordered list of text cells
type RawRow []string

// ParseError represents a parsing error for a specific row
type ParseError struct {
	Row     int
	Column  string
	Message string
	RawData string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Message)
}

// SchemaMismatchError is returned when the assembled rows carry fewer non-empty columns than
// the statement layout needs
type SchemaMismatchError struct {
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("statement rows have %d non-empty columns, expected %d", e.Got, e.Want)
}

// ReadRawRows reads extractor output stored as CSV, one record per physical line.
// Records may have different lengths. When charset is set the input is decoded first
// (any WHATWG label such as "utf-8", "iso-8859-1" or "windows-1252").
func ReadRawRows(r io.Reader, charset string) ([]RawRow, error) {
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader := gocsv.LazyCSVReader(r)
	if cr, ok := reader.(*csv.Reader); ok {
		// cells are kept as printed and lines may have any number of cells
		cr.TrimLeadingSpace = false
		cr.FieldsPerRecord = -1
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read statement rows: %w", err)
	}

	rows := make([]RawRow, len(records))
	for i, rec := range records {
		rows[i] = RawRow(rec)
	}
	return rows, nil
}

func parseStatementDate(s string) (time.Time, error) {
	return time.Parse(StatementDateLayout, s)
}

func cell(row RawRow, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
