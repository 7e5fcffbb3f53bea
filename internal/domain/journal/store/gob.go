package store

import (
	"encoding/gob"
	"os"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// gobCodec dumps the table as a Go binary object stream
type gobCodec struct{}

func (gobCodec) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t table.Table
	if err := gob.NewDecoder(f).Decode(&t); err != nil {
		return nil, err
	}
	if t.Rows == nil {
		t.Rows = make([][]string, 0)
	}
	return &t, nil
}

func (gobCodec) Write(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(t); err != nil {
		return err
	}
	return f.Close()
}
