// Package table holds the untyped header-plus-rows shape used at file-format boundaries.
// Domain code converts to and from typed records; column names only live here.
package table

// Table is a whole in-memory table of string cells. Empty cells stand for null values.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given header
func New(columns ...string) *Table {
	return &Table{Columns: columns, Rows: make([][]string, 0)}
}

// Index returns the position of a column or -1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains the column
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Get returns the cell of row i in the named column, "" when either is missing.
// Rows shorter than the header are treated as padded with empty cells.
func (t *Table) Get(i int, name string) string {
	idx := t.Index(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Append adds a row
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}
