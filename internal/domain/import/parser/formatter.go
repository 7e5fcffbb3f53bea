package parser

import (
	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

// FormatterConfig configures statement row handling
type FormatterConfig struct {
	DateColumn int // Raw column holding the booking date of a transaction's first line
}

// DefaultFormatterConfig returns the layout of the supported statements
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{DateColumn: colDate}
}

// Formatter turns extractor rows into transaction records
type Formatter struct {
	config         FormatterConfig
	ibanMarker     *marker
	originalMarker *marker
}

// NewFormatter creates a formatter with the given configuration
func NewFormatter(config FormatterConfig) *Formatter {
	return &Formatter{
		config:         config,
		ibanMarker:     newMarker(false, "IBAN"),
		originalMarker: newMarker(true, "Original amount"),
	}
}

// Format assembles the rows and extracts one record per transaction.
// A malformed date or amount fails the whole batch.
func (f *Formatter) Format(rows []RawRow) ([]transaction.Record, error) {
	assembled := Assemble(rows, f.config.DateColumn)
	if len(assembled) == 0 {
		return []transaction.Record{}, nil
	}

	g, err := pruneColumns(assembled)
	if err != nil {
		return nil, err
	}

	steps := []step{
		withPayeeAndNote,
		withDate,
		withTypeAndCategory,
		withAmount,
		f.withAccount,
		f.withOriginalAmount,
	}

	records := make([]transaction.Record, len(g))
	for _, s := range steps {
		if records, err = s(records, g); err != nil {
			return nil, err
		}
	}
	return records, nil
}
