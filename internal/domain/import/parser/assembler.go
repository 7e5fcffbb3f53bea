package parser

import "strings"

// Assemble merges physical lines into one row per transaction.
// A line whose dateColumn cell parses as a statement date opens a new transaction; every other
// line has its cells appended to the pending one. Output rows may be ragged.
func Assemble(rows []RawRow, dateColumn int) []RawRow {
	assembled := make([]RawRow, 0, len(rows))
	var pending RawRow

	for _, row := range rows {
		if startsTransaction(row, dateColumn) && len(pending) > 0 {
			assembled = append(assembled, pending)
			pending = append(RawRow(nil), row...)
			continue
		}
		pending = append(pending, row...)
	}

	if len(pending) > 0 {
		assembled = append(assembled, pending)
	}
	return assembled
}

func startsTransaction(row RawRow, dateColumn int) bool {
	_, err := parseStatementDate(strings.TrimSpace(cell(row, dateColumn)))
	return err == nil
}
