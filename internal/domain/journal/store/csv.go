package store

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

type csvCodec struct{}

func (csvCodec) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := gocsv.LazyCSVReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no columns to parse from file")
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t := table.New(header...)
	for _, rec := range records[1:] {
		t.Append(rec...)
	}
	return t, nil
}

func (csvCodec) Write(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := gocsv.NewSafeCSVWriter(csv.NewWriter(f))
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(padded(row, len(t.Columns))); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
