package convert

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
)

// XLS renders legacy workbooks the same way as Excel.
func XLS(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	var out bytes.Buffer
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		rows := sheet.GetRows()
		if len(rows) == 0 {
			continue
		}
		header := xlsRowValues(rows[0].GetCols())
		out.WriteString(headerLine(sheet.GetName(), header))
		out.WriteByte('\n')
		for r := 1; r < len(rows); r++ {
			values := xlsRowValues(rows[r].GetCols())
			for len(values) < len(header) {
				values = append(values, "")
			}
			out.WriteString(rowLine(r+1, values))
			out.WriteByte('\n')
		}
	}
	return out.Bytes(), nil
}

func xlsRowValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		val := col.GetString()
		if val == "" {
			if num := col.GetFloat64(); num != 0 {
				val = strconv.FormatFloat(num, 'f', -1, 64)
			} else if in := col.GetInt64(); in != 0 {
				val = strconv.FormatInt(in, 10)
			}
		}
		out = append(out, val)
	}
	return out
}
