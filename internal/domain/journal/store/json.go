package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

type jsonCodec struct{}

// Read accepts an array of row objects or an object of columns keyed by row index
// ({"Payee": {"0": "Acme"}}), the layout pandas writes by default
func (jsonCodec) Read(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty JSON document")
	}

	switch data[0] {
	case '[':
		return readJSONRecords(data)
	case '{':
		return readJSONColumns(data)
	default:
		return nil, errors.New("JSON journal must be an array or an object")
	}
}

func readJSONRecords(data []byte) (*table.Table, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	t := table.New()
	objects := make([]map[string]json.RawMessage, len(raw))
	for i, r := range raw {
		keys, values, err := decodeObject(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		for _, k := range keys {
			if !t.Has(k) {
				t.Columns = append(t.Columns, k)
			}
		}
		objects[i] = values
	}

	for _, obj := range objects {
		row := make([]string, len(t.Columns))
		for ci, col := range t.Columns {
			v, ok := obj[col]
			if !ok {
				continue
			}
			s, err := jsonCell(v)
			if err != nil {
				return nil, err
			}
			row[ci] = s
		}
		t.Append(row...)
	}
	return t, nil
}

func readJSONColumns(data []byte) (*table.Table, error) {
	columns, values, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	cells := make(map[string]map[int]string, len(columns))
	indices := make(map[int]bool)
	for _, col := range columns {
		var byIndex map[string]json.RawMessage
		if err := json.Unmarshal(values[col], &byIndex); err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}

		cells[col] = make(map[int]string, len(byIndex))
		for k, v := range byIndex {
			idx, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("column %s: row index %q is not a number", col, k)
			}
			s, err := jsonCell(v)
			if err != nil {
				return nil, err
			}
			cells[col][idx] = s
			indices[idx] = true
		}
	}

	order := make([]int, 0, len(indices))
	for idx := range indices {
		order = append(order, idx)
	}
	sort.Ints(order)

	t := table.New(columns...)
	for _, idx := range order {
		row := make([]string, len(columns))
		for ci, col := range columns {
			row[ci] = cells[col][idx]
		}
		t.Append(row...)
	}
	return t, nil
}

// decodeObject decodes a JSON object keeping the order of its keys
func decodeObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}

// jsonCell renders a scalar JSON value as a table cell. Numbers keep their literal text.
func jsonCell(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unsupported JSON cell %s", raw)
	}
}

// Write stores the table as an array of row objects; empty cells become null
func (jsonCodec) Write(path string, t *table.Table) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for ci, col := range t.Columns {
			if ci > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')

			value := []byte("null")
			if ci < len(row) && row[ci] != "" {
				if value, err = json.Marshal(row[ci]); err != nil {
					return err
				}
			}
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
