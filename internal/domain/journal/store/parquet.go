package store

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/parquet-go/parquet-go"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// columnsKey holds the header order; parquet group columns are stored sorted by name
const columnsKey = "statement.columns"

type parquetCodec struct{}

func (parquetCodec) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, err
	}

	leaves := pf.Schema().Columns()
	leafNames := make([]string, len(leaves))
	for i, path := range leaves {
		leafNames[i] = path[len(path)-1]
	}

	columns := slices.Clone(leafNames)
	if stored, ok := pf.Lookup(columnsKey); ok {
		var order []string
		if err := json.Unmarshal([]byte(stored), &order); err != nil {
			return nil, err
		}
		columns = order
	}

	t := table.New(columns...)
	reader := parquet.NewReader(pf)
	defer reader.Close()

	buf := make([]parquet.Row, 128)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]string, len(columns))
			for _, v := range row {
				if v.IsNull() {
					continue
				}
				idx := t.Index(leafNames[v.Column()])
				if idx < 0 {
					continue
				}
				if v.Kind() == parquet.ByteArray {
					cells[idx] = string(v.ByteArray())
				} else {
					cells[idx] = v.String()
				}
			}
			t.Append(cells...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Write stores every column as an optional string; empty cells are written as null
func (parquetCodec) Write(path string, t *table.Table) error {
	if len(t.Columns) == 0 {
		return errors.New("cannot write a table without columns")
	}

	group := parquet.Group{}
	for _, c := range t.Columns {
		group[c] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("journal", group)

	leafIndex := make(map[string]int, len(t.Columns))
	for i, path := range schema.Columns() {
		leafIndex[path[len(path)-1]] = i
	}

	order, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewWriter(f, schema, parquet.KeyValueMetadata(columnsKey, string(order)))

	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row := make(parquet.Row, len(leafIndex))
		for ci, name := range t.Columns {
			i := leafIndex[name]
			value := ""
			if ci < len(cells) {
				value = cells[ci]
			}
			if value == "" {
				row[i] = parquet.NullValue().Level(0, 0, i)
			} else {
				row[i] = parquet.ValueOf(value).Level(0, 1, i)
			}
		}
		rows = append(rows, row)
	}

	if _, err := w.WriteRows(rows); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
