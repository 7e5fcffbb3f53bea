// Package transaction defines the canonical transaction record produced from statement rows
// and the closed set of fields it can be projected onto.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// DateLayout is the output rendering of record dates (month/day/year)
const DateLayout = "01/02/2006"

// Field is one canonical column of a transaction record
type Field int

const (
	FieldPayee Field = iota
	FieldDate
	FieldAmount
	FieldTransactionType
	FieldCategory
	FieldIBAN
	FieldBIC
	FieldNote
	FieldOriginalAmount
	FieldOriginalCurrency
	FieldFxRate
)

var fieldKeys = map[Field]string{
	FieldPayee:            "payee",
	FieldDate:             "date",
	FieldAmount:           "amount",
	FieldTransactionType:  "transaction_type",
	FieldCategory:         "category",
	FieldIBAN:             "iban",
	FieldBIC:              "bic",
	FieldNote:             "note",
	FieldOriginalAmount:   "original_amount",
	FieldOriginalCurrency: "original_currency",
	FieldFxRate:           "fx_rate",
}

var fieldHeaders = map[Field]string{
	FieldPayee:            "Payee",
	FieldDate:             "Date",
	FieldAmount:           "Amount (EUR)",
	FieldTransactionType:  "Transaction type",
	FieldCategory:         "Category",
	FieldIBAN:             "IBAN",
	FieldBIC:              "BIC",
	FieldNote:             "Note",
	FieldOriginalAmount:   "Amount (Foreign Currency)",
	FieldOriginalCurrency: "Type Foreign Currency",
	FieldFxRate:           "Exchange Rate",
}

// String returns the field key
func (f Field) String() string {
	if k, ok := fieldKeys[f]; ok {
		return k
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Header returns the column header used in exported files
func (f Field) Header() string {
	return fieldHeaders[f]
}

// DefaultFields returns every field in export order
func DefaultFields() []Field {
	return []Field{
		FieldPayee, FieldDate, FieldAmount, FieldTransactionType, FieldCategory,
		FieldIBAN, FieldBIC, FieldNote, FieldOriginalAmount, FieldOriginalCurrency, FieldFxRate,
	}
}

// UnknownFieldError is returned when a projection names a column that is not part of the record
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

// ParseField resolves a field key ("original_amount") or export header ("Amount (Foreign Currency)").
// Matching is case-insensitive.
func ParseField(name string) (Field, error) {
	n := strings.TrimSpace(name)
	for _, f := range DefaultFields() {
		if strings.EqualFold(n, f.String()) || strings.EqualFold(n, f.Header()) {
			return f, nil
		}
	}
	return 0, &UnknownFieldError{Name: name}
}

// ParseFields resolves a list of column names, failing on the first unknown one
func ParseFields(names []string) ([]Field, error) {
	fields := make([]Field, 0, len(names))
	for _, n := range names {
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Record is one fully typed transaction.
// Amount is always set. The original amount triple is defaulted from Amount unless the
// statement batch carried foreign currency annotations.
type Record struct {
	Payee            string
	Date             time.Time
	Amount           decimal.Decimal
	TransactionType  *string
	Category         *string
	IBAN             *string
	BIC              *string
	Note             *string
	OriginalAmount   decimal.NullDecimal
	OriginalCurrency *string
	FxRate           decimal.NullDecimal
}

// Value renders one field as an output cell; null values render empty
func (r Record) Value(f Field) string {
	switch f {
	case FieldPayee:
		return r.Payee
	case FieldDate:
		if r.Date.IsZero() {
			return ""
		}
		return r.Date.Format(DateLayout)
	case FieldAmount:
		return r.Amount.String()
	case FieldTransactionType:
		return deref(r.TransactionType)
	case FieldCategory:
		return deref(r.Category)
	case FieldIBAN:
		return deref(r.IBAN)
	case FieldBIC:
		return deref(r.BIC)
	case FieldNote:
		return deref(r.Note)
	case FieldOriginalAmount:
		return nullDecimal(r.OriginalAmount)
	case FieldOriginalCurrency:
		return deref(r.OriginalCurrency)
	case FieldFxRate:
		return nullDecimal(r.FxRate)
	}
	return ""
}

// Project renders records onto exactly the given fields, in that order
func Project(records []Record, fields []Field) (*table.Table, error) {
	headers := make([]string, len(fields))
	for i, f := range fields {
		h := f.Header()
		if h == "" {
			return nil, &UnknownFieldError{Name: f.String()}
		}
		headers[i] = h
	}

	t := table.New(headers...)
	for _, r := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = r.Value(f)
		}
		t.Append(row...)
	}
	return t, nil
}

// StrPtr returns a pointer to s, or nil for the empty string
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
