package parser

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
	"github.com/FACorreiaa/statement-converter/pkg/money"
)

// Positions of the statement columns after empty columns are pruned
const (
	colPayee = iota
	colDate
	colAmount
	colTypeCategory
	colAccountOrOriginal
	colNote

	statementColumns
)

const typeCategorySeparator = " • "

var (
	ibanPattern           = regexp.MustCompile(`IBAN: ([\w\d]{0,30}) .+? BIC: ([\w\d]+)`)
	originalAmountPattern = regexp.MustCompile(`(?i)Original amount.? ([\d\.]+) (\w+?) .*? Exchange rate.? ([\d\.]+)`)

	// Types that are not merchant spending and carry no category
	uncategorizedTypes = []string{"Income", "Direct Debits"}
)

// grid is the rectangular view of assembled rows, exactly statementColumns wide
type grid [][]string

func (g grid) column(idx int) []string {
	col := make([]string, len(g))
	for i, row := range g {
		col[i] = row[idx]
	}
	return col
}

// pruneColumns drops columns that are empty in every row, then keeps the leading statement columns.
func pruneColumns(rows []RawRow) (grid, error) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	kept := make([]int, 0, width)
	for c := 0; c < width; c++ {
		for _, row := range rows {
			if strings.TrimSpace(cell(row, c)) != "" {
				kept = append(kept, c)
				break
			}
		}
	}

	if len(kept) < statementColumns {
		return nil, &SchemaMismatchError{Want: statementColumns, Got: len(kept)}
	}
	kept = kept[:statementColumns]

	g := make(grid, len(rows))
	for i, row := range rows {
		cells := make([]string, statementColumns)
		for j, c := range kept {
			cells[j] = cell(row, c)
		}
		g[i] = cells
	}
	return g, nil
}

// step is one pure extraction pass: it returns a new record set derived from the previous one
type step func(records []transaction.Record, g grid) ([]transaction.Record, error)

func withPayeeAndNote(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	for i, row := range g {
		out[i].Payee = row[colPayee]
		out[i].Note = transaction.StrPtr(row[colNote])
	}
	return out, nil
}

func withDate(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	for i, row := range g {
		raw := row[colDate]
		date, err := parseStatementDate(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ParseError{
				Row:     i + 1,
				Column:  transaction.FieldDate.Header(),
				Message: "date does not match DD.MM.YYYY",
				RawData: raw,
			}
		}
		out[i].Date = date
	}
	return out, nil
}

func withTypeAndCategory(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	for i, row := range g {
		txType, category := splitTypeCategory(row[colTypeCategory])
		out[i].TransactionType = txType
		out[i].Category = category
	}
	return out, nil
}

// splitTypeCategory splits "Card payment • Groceries" into type and category
func splitTypeCategory(composite string) (*string, *string) {
	if composite == "" {
		return nil, nil
	}

	parts := strings.Split(composite, typeCategorySeparator)
	if slices.Contains(uncategorizedTypes, parts[0]) {
		return nil, nil
	}

	var category *string
	if len(parts) > 1 {
		category = transaction.StrPtr(parts[1])
	}
	return transaction.StrPtr(parts[0]), category
}

func withAmount(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	for i, row := range g {
		raw := row[colAmount]
		amount, err := money.ParseEuropean(raw)
		if err != nil {
			return nil, &ParseError{
				Row:     i + 1,
				Column:  transaction.FieldAmount.Header(),
				Message: err.Error(),
				RawData: raw,
			}
		}
		out[i].Amount = amount
	}
	return out, nil
}

// withAccount extracts IBAN and BIC, but only when some row of the batch mentions an IBAN
func (f *Formatter) withAccount(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	composites := g.column(colAccountOrOriginal)
	if !f.ibanMarker.anyIn(composites) {
		for i := range out {
			out[i].IBAN, out[i].BIC = nil, nil
		}
		return out, nil
	}

	for i, composite := range composites {
		out[i].IBAN, out[i].BIC = nil, nil
		if m := ibanPattern.FindStringSubmatch(composite); m != nil {
			out[i].IBAN = transaction.StrPtr(m[1])
			out[i].BIC = transaction.StrPtr(m[2])
		}
	}
	return out, nil
}

// withOriginalAmount extracts the foreign amount, currency and rate when the batch mentions an
// original amount. Otherwise every record is treated as a plain euro transaction.
func (f *Formatter) withOriginalAmount(records []transaction.Record, g grid) ([]transaction.Record, error) {
	out := slices.Clone(records)
	composites := g.column(colAccountOrOriginal)
	if !f.originalMarker.anyIn(composites) {
		eur := money.EUR
		for i := range out {
			out[i].OriginalCurrency = &eur
			out[i].OriginalAmount = decimal.NewNullDecimal(out[i].Amount)
			out[i].FxRate = decimal.NewNullDecimal(decimal.NewFromInt(1))
		}
		return out, nil
	}

	for i, composite := range composites {
		out[i].OriginalAmount = decimal.NullDecimal{}
		out[i].OriginalCurrency = nil
		out[i].FxRate = decimal.NullDecimal{}

		m := originalAmountPattern.FindStringSubmatch(composite)
		if m == nil {
			continue
		}
		if amount, err := money.ParseDecimal(m[1]); err == nil {
			out[i].OriginalAmount = decimal.NewNullDecimal(amount)
		}
		currency := money.NormalizeCurrency(m[2])
		out[i].OriginalCurrency = &currency
		if rate, err := money.ParseDecimal(m[3]); err == nil {
			out[i].FxRate = decimal.NewNullDecimal(rate)
		}
	}
	return out, nil
}
