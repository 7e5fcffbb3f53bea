package store

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

const sheetName = "Sheet1"

type excelCodec struct{}

// Read loads the first sheet; the first row is the header
func (excelCodec) Read(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}

	// trailing empty cells are not returned by the sheet reader
	t := table.New(rows[0]...)
	for _, row := range rows[1:] {
		t.Append(padded(row, len(t.Columns))...)
	}
	return t, nil
}

func (excelCodec) Write(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheetRow(f, 1, t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeSheetRow(f, i+2, padded(row, len(t.Columns))); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSheetRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
