package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

func statementRow(payee, date, amount, typeCategory, account, note string) RawRow {
	return RawRow{payee, date, amount, typeCategory, account, note}
}

func TestFormatter_Format(t *testing.T) {
	formatter := NewFormatter(DefaultFormatterConfig())

	t.Run("formats a plain euro statement", func(t *testing.T) {
		rows := []RawRow{
			statementRow("Acme Corp", "25.12.2023", "-1.234,56 €", "Card payment • Shopping", "Card 1234", "gift"),
			{"second line of note"},
			statementRow("Employer", "27.12.2023", "2.500,00 €", "Income", "", ""),
		}

		records, err := formatter.Format(rows)
		require.NoError(t, err)
		require.Len(t, records, 2)

		acme := records[0]
		assert.Equal(t, "Acme Corp", acme.Payee)
		assert.Equal(t, "12/25/2023", acme.Value(transaction.FieldDate))
		assert.True(t, decimal.RequireFromString("-1234.56").Equal(acme.Amount))
		require.NotNil(t, acme.TransactionType)
		assert.Equal(t, "Card payment", *acme.TransactionType)
		require.NotNil(t, acme.Category)
		assert.Equal(t, "Shopping", *acme.Category)
		assert.Nil(t, acme.IBAN)
		assert.Nil(t, acme.BIC)
		assert.Equal(t, "gift", acme.Value(transaction.FieldNote))

		require.NotNil(t, acme.OriginalCurrency)
		assert.Equal(t, "EUR", *acme.OriginalCurrency)
		assert.True(t, acme.OriginalAmount.Valid)
		assert.True(t, acme.Amount.Equal(acme.OriginalAmount.Decimal))
		assert.Equal(t, "1", acme.Value(transaction.FieldFxRate))

		income := records[1]
		assert.Nil(t, income.TransactionType)
		assert.Nil(t, income.Category)
		assert.Nil(t, income.Note)
	})

	t.Run("direct debits carry no type or category", func(t *testing.T) {
		rows := []RawRow{
			statementRow("Gym", "01.02.2023", "-30,00 €", "Direct Debits • Sport", "Card 1", "monthly"),
		}

		records, err := formatter.Format(rows)
		require.NoError(t, err)
		assert.Nil(t, records[0].TransactionType)
		assert.Nil(t, records[0].Category)
	})

	t.Run("type without category", func(t *testing.T) {
		rows := []RawRow{
			statementRow("Bank", "01.02.2023", "-1,00 €", "Fees", "Card 1", "x"),
		}

		records, err := formatter.Format(rows)
		require.NoError(t, err)
		require.NotNil(t, records[0].TransactionType)
		assert.Equal(t, "Fees", *records[0].TransactionType)
		assert.Nil(t, records[0].Category)
	})

	t.Run("empty input yields no records", func(t *testing.T) {
		records, err := formatter.Format(nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestFormatter_AccountExtraction(t *testing.T) {
	formatter := NewFormatter(DefaultFormatterConfig())

	t.Run("batch with an IBAN extracts per row", func(t *testing.T) {
		rows := []RawRow{
			statementRow("Landlord", "01.03.2023", "-900,00 €", "Transfers • Rent",
				"IBAN: DE89370400440532013000 - BIC: COBADEFFXXX", "march"),
			statementRow("Cafe", "02.03.2023", "-3,20 €", "Card payment • Food", "Card 1234", ""),
		}

		records, err := formatter.Format(rows)
		require.NoError(t, err)

		require.NotNil(t, records[0].IBAN)
		assert.Equal(t, "DE89370400440532013000", *records[0].IBAN)
		require.NotNil(t, records[0].BIC)
		assert.Equal(t, "COBADEFFXXX", *records[0].BIC)

		assert.Nil(t, records[1].IBAN)
		assert.Nil(t, records[1].BIC)
	})

	t.Run("unparseable IBAN text yields nulls", func(t *testing.T) {
		rows := []RawRow{
			statementRow("Landlord", "01.03.2023", "-900,00 €", "Transfers • Rent", "IBAN missing", "march"),
		}

		records, err := formatter.Format(rows)
		require.NoError(t, err)
		assert.Nil(t, records[0].IBAN)
		assert.Nil(t, records[0].BIC)
	})
}

func TestFormatter_OriginalAmountExtraction(t *testing.T) {
	formatter := NewFormatter(DefaultFormatterConfig())

	rows := []RawRow{
		statementRow("Amazon US", "05.04.2023", "-20,00 €", "Card payment • Shopping",
			"Original amount: 21.50 usd - Exchange rate: 1.075", "order"),
		statementRow("Bakery", "06.04.2023", "-2,00 €", "Card payment • Food", "", ""),
	}

	records, err := formatter.Format(rows)
	require.NoError(t, err)

	foreign := records[0]
	require.True(t, foreign.OriginalAmount.Valid)
	assert.Equal(t, "21.5", foreign.OriginalAmount.Decimal.String())
	require.NotNil(t, foreign.OriginalCurrency)
	assert.Equal(t, "USD", *foreign.OriginalCurrency)
	require.True(t, foreign.FxRate.Valid)
	assert.Equal(t, "1.075", foreign.FxRate.Decimal.String())

	// Gating is per batch: the plain row gets nulls instead of euro defaults
	plain := records[1]
	assert.False(t, plain.OriginalAmount.Valid)
	assert.Nil(t, plain.OriginalCurrency)
	assert.False(t, plain.FxRate.Valid)
}

func TestFormatter_Errors(t *testing.T) {
	formatter := NewFormatter(DefaultFormatterConfig())

	t.Run("invalid amount", func(t *testing.T) {
		rows := []RawRow{statementRow("Acme", "01.01.2023", "12.34a", "Card • Food", "a", "n")}

		_, err := formatter.Format(rows)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Amount (EUR)", parseErr.Column)
		assert.Equal(t, 1, parseErr.Row)
		assert.Equal(t, "12.34a", parseErr.RawData)
	})

	t.Run("a junk first line fails date parsing", func(t *testing.T) {
		rows := []RawRow{
			{"Statement", "page 1", "x", "y", "z", "w"},
			statementRow("Acme", "01.01.2023", "1,00", "Card • Food", "", "n"),
		}

		_, err := formatter.Format(rows)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Date", parseErr.Column)
		assert.Equal(t, "page 1", parseErr.RawData)
	})

	t.Run("too few columns", func(t *testing.T) {
		rows := []RawRow{{"Acme", "01.01.2023", "1,00", "", "", ""}}

		_, err := formatter.Format(rows)
		var schemaErr *SchemaMismatchError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 6, schemaErr.Want)
		assert.Equal(t, 3, schemaErr.Got)
	})
}

func TestPruneColumns(t *testing.T) {
	rows := []RawRow{
		{"Acme", "", "01.01.2023", "1,00", "t", "a", "n", "extra"},
		{"Other", "", "02.01.2023", "2,00", "t", "", "", ""},
	}

	g, err := pruneColumns(rows)
	require.NoError(t, err)
	assert.Equal(t, grid{
		{"Acme", "01.01.2023", "1,00", "t", "a", "n"},
		{"Other", "02.01.2023", "2,00", "t", "", ""},
	}, g)
}
