// Package workbook writes tables to and reads tables from xlsx workbooks.
package workbook

import (
	"fmt"
	"github.com/dasnellings/argTools/table"
	"github.com/xuri/excelize/v2"
	"math"
	"strconv"
	"strings"
)

// defaultSheet is the sheet excelize creates with a new file.
const defaultSheet = "Sheet1"

// Sheet is a named table of a workbook.
type Sheet struct {
	Name  string
	Table *table.Table
}

// Write stores sheets in file in order. The table header is the first row of each
// sheet and the first column is the row index. Both are written as text, and the
// numeric value cells as numbers.
func Write(file string, sheets []Sheet) (err error) {
	if len(sheets) == 0 {
		return fmt.Errorf("%s: no sheets to write", file)
	}
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			return fmt.Errorf("%s: sheet %q: %w", file, s.Name, err)
		}
		err = writeRow(f, s.Name, 1, s.Table.Header, true)
		if err != nil {
			return fmt.Errorf("%s: sheet %q: %w", file, s.Name, err)
		}
		for r := range s.Table.Rows {
			err = writeRow(f, s.Name, r+2, s.Table.Rows[r], false)
			if err != nil {
				return fmt.Errorf("%s: sheet %q: %w", file, s.Name, err)
			}
		}
	}
	return f.SaveAs(file)
}

func writeRow(f *excelize.File, sheet string, row int, cells []string, header bool) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i := range cells {
		if header || i == 0 {
			values[i] = cells[i]
		} else {
			values[i] = cellValue(cells[i])
		}
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue returns numbers as float64 so spreadsheets can compute with them.
func cellValue(s string) interface{} {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return v
}

// Read loads one sheet of file. The first row is the header.
func Read(file, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if len(rows) == 0 {
		return table.New(), nil
	}
	ans := table.New(rows[0]...)
	for _, r := range rows[1:] {
		ans.Append(r...)
	}
	return ans, nil
}

// Sheets lists the sheet names of file in order.
func Sheets(file string) ([]string, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
