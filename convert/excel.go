package convert

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Excel renders every sheet as a header line followed by one line per row.
// Cells holding a formula show it next to the computed value.
func Excel(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out bytes.Buffer
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		header := rows[0]
		out.WriteString(headerLine(sheet, header))
		out.WriteByte('\n')
		for i := 1; i < len(rows); i++ {
			rowIdx := i + 1 // 1-based
			out.WriteString(excelRowLine(f, sheet, rowIdx, header, rows[i]))
			out.WriteByte('\n')
		}
	}
	return out.Bytes(), nil
}

func headerLine(sheet string, header []string) string {
	var b strings.Builder
	b.WriteString("Sheet: ")
	b.WriteString(sheet)
	b.WriteString("\nHeader: ")
	b.WriteString(strings.Join(header, "\t"))
	return b.String()
}

func excelRowLine(f *excelize.File, sheet string, rowIdx int, header []string, row []string) string {
	maxCols := len(header)
	if len(row) > maxCols {
		maxCols = len(row)
	}
	values := make([]string, maxCols)
	for col := 1; col <= maxCols; col++ {
		val := ""
		if col-1 < len(row) {
			val = row[col-1]
		}
		cellRef, _ := excelize.CoordinatesToCellName(col, rowIdx)
		if formula, _ := f.GetCellFormula(sheet, cellRef); formula != "" {
			if val != "" {
				val = val + " (f=" + formula + ")"
			} else {
				val = "f=" + formula
			}
		}
		values[col-1] = val
	}
	return rowLine(rowIdx, values)
}

func rowLine(rowIdx int, values []string) string {
	return "Row " + strconv.Itoa(rowIdx) + ": " + strings.Join(values, "\t")
}
