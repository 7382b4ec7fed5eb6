package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one tabular export: a title row, a header row and data rows.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
	Widths  []float64
}

// WriteSheet renders the sheet as an xlsx workbook.
func WriteSheet(s Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if name != "Sheet1" {
		idx, err := f.NewSheet(name)
		if err != nil {
			return nil, err
		}
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	row := 1
	if s.Title != "" {
		if err := f.SetCellValue(name, "A1", s.Title); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(name, "A1", "A1", titleStyle)
		row = 3
	}

	if len(s.Headers) > 0 {
		for i, h := range s.Headers {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, h); err != nil {
				return nil, err
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(s.Headers), row)
		_ = f.SetCellStyle(name, first, last, headerStyle)
		row++
	}

	for _, values := range s.Rows {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	for i, w := range s.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
