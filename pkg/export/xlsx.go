package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"sparc/entities"
)

const sheetName = "Entries"

// WriteXLSX writes the same rows as WriteCSV into a single-sheet workbook.
// Minutes and patient counts are stored as numbers.
func WriteXLSX(w io.Writer, entries []entities.TimeEntry, loc *time.Location) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := x.SetSheetRow(sheetName, "A1", &Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := x.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, e := range entries {
		cells := toCells(Row(e, loc))
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := x.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_ = x.SetColWidth(sheetName, "A", "A", 12)
	_ = x.SetColWidth(sheetName, "B", "C", 44)
	_ = x.SetColWidth(sheetName, "G", "G", 48)
	_ = x.SetColWidth(sheetName, "H", "I", 26)

	if err := x.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// toCells turns the numeric columns into ints so spreadsheets can sum them.
func toCells(row []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
		if i == 3 || i == 4 {
			if n, err := strconv.Atoi(v); err == nil {
				cells[i] = n
			}
		}
	}
	return cells
}

// ReadXLSX reads back the rows written by WriteXLSX, header included. Rows
// are padded to the header width.
func ReadXLSX(r io.Reader) ([][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()
	rows, err := x.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	for i, row := range rows {
		for len(row) < len(Header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows, nil
}
