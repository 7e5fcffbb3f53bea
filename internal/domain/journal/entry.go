// Package journal models the historical payee/category journal and its whole-table cleanup.
package journal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// Column headers used by journal files
const (
	HeaderPayee    = "Payee"
	HeaderDate     = "Date"
	HeaderCategory = "Category"
)

// DateLayout is how journal dates are written back
const DateLayout = "01/02/2006"

// ErrValidation is the sentinel wrapped by every ValidationError
var ErrValidation = errors.New("invalid journal")

// ValidationError reports a journal table without a required column
type ValidationError struct {
	Column string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("journal file must contain a column named '%s'", e.Column)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DateError reports a journal date cell that matches none of the known layouts
type DateError struct {
	Row   int
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("row %d: unrecognized date %q", e.Row, e.Value)
}

// Entry is one journal row. Empty strings stand for missing values and a zero Date for a
// missing date.
type Entry struct {
	Payee    string
	Date     time.Time
	Category string
}

// IsEmpty reports whether every field is missing
func (e Entry) IsEmpty() bool {
	return e.Payee == "" && e.Date.IsZero() && e.Category == ""
}

// Validate checks that the table has the columns category propagation depends on
func Validate(t *table.Table) error {
	for _, required := range []string{HeaderCategory, HeaderDate} {
		if !t.Has(required) {
			return &ValidationError{Column: required}
		}
	}
	return nil
}

// FromTable validates a journal table and converts it to entries.
// Extra columns are ignored; a missing Payee column yields entries without payees.
func FromTable(t *table.Table) ([]Entry, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, t.Len())
	for i := range t.Rows {
		raw := strings.TrimSpace(t.Get(i, HeaderDate))
		date, err := ParseDate(raw)
		if err != nil {
			return nil, &DateError{Row: i + 1, Value: raw}
		}

		entries = append(entries, Entry{
			Payee:    t.Get(i, HeaderPayee),
			Date:     date,
			Category: t.Get(i, HeaderCategory),
		})
	}
	return entries, nil
}

// ToTable converts entries to a Payee/Date/Category table
func ToTable(entries []Entry) *table.Table {
	t := table.New(HeaderPayee, HeaderDate, HeaderCategory)
	for _, e := range entries {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(DateLayout)
		}
		t.Append(e.Payee, date, e.Category)
	}
	return t
}

// ParseDate parses a journal date. Journals come from this tool (month/day/year) or from
// other exports, so a few layouts are tried. An empty string is a missing date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	formats := []string{
		DateLayout,            // MM/DD/YYYY (our output)
		"2006-01-02",          // ISO 8601
		"02.01.2006",          // DD.MM.YYYY (statement)
		"2006-01-02 15:04:05", // ISO with space
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return dateOnly(t), nil
		}
	}

	// pandas writes datetimes to JSON as epoch milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) >= 12 {
		return dateOnly(time.UnixMilli(ms).UTC()), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
