// Package money parses statement amounts into exact decimals and recognises ISO-4217 currency codes.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// EUR is the statement currency; amounts without a foreign annotation are in euros.
const EUR = "EUR"

// ErrInvalidAmount is returned when an amount string has non-numeric residue
var ErrInvalidAmount = errors.New("invalid amount")

// ParseEuropean parses amounts printed as "1.234,56 €".
// The euro sign and thousands separators are removed and the decimal comma becomes a dot.
// No other cleanup happens: any residue makes the amount invalid.
func ParseEuropean(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, "€", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// ParseDecimal parses a plain dotted decimal such as "12.50" or "1.0834"
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// NormalizeCurrency upper-cases a currency code when it is a known ISO-4217 code.
// Unknown codes are returned unchanged so nothing extracted from a statement is lost.
func NormalizeCurrency(code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(upper) != nil {
		return upper
	}
	return code
}
