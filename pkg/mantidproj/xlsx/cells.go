package xlsx

import (
	"strconv"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/xuri/excelize/v2"
)

// sheetTable is a table imported from one sheet, with the sheet region it
// came from so chart series can be mapped back to its columns.
type sheetTable struct {
	table  *models.Table
	area   cellRange
	header bool
}

// readSheet converts the data region of a sheet into a table. The first row
// becomes the column names when none of its cells is numeric.
func readSheet(f *excelize.File, sheetName string, area *cellRange, params TableDetectionParams) (*sheetTable, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var bounds cellRange
	if area != nil {
		bounds = *area
	} else {
		var ok bool
		if bounds, ok = detectTable(rows, params); !ok {
			return nil, nil
		}
	}

	grid := make([][]string, 0, bounds.R2-bounds.R1+1)
	for r := bounds.R1; r <= bounds.R2; r++ {
		row := make([]string, bounds.C2-bounds.C1+1)
		if r-1 < len(rows) {
			src := rows[r-1]
			for c := bounds.C1; c <= bounds.C2 && c-1 < len(src); c++ {
				row[c-bounds.C1] = src[c-1]
			}
		}
		grid = append(grid, row)
	}

	st := &sheetTable{area: bounds, header: len(grid) > 1 && isHeaderRow(grid[0])}
	cols := bounds.C2 - bounds.C1 + 1
	names := make([]string, cols)
	for i := range names {
		names[i], _ = excelize.ColumnNumberToName(bounds.C1 + i)
	}
	if st.header {
		for i, v := range grid[0] {
			if name := columnName(v); name != "" {
				names[i] = name
			}
		}
		grid = grid[1:]
	}

	t := models.NewTable(windowName(sheetName), len(grid), cols)
	for i := range t.Columns {
		t.Columns[i].Name = names[i]
		t.Columns[i].Width = 100
	}
	for r, row := range grid {
		copy(t.Cells[r], row)
	}
	st.table = t
	return st, nil
}

// column returns the full column name for a 1-based sheet column, or "".
func (st *sheetTable) column(sheetCol int) string {
	i := sheetCol - st.area.C1
	if i < 0 || i >= len(st.table.Columns) {
		return ""
	}
	return st.table.FullColumnName(i)
}

// isHeaderRow reports whether every cell of row is non-numeric text.
func isHeaderRow(row []string) bool {
	seen := false
	for _, v := range row {
		if v == "" {
			continue
		}
		if _, isText := parseValue(v).(string); !isText {
			return false
		}
		seen = true
	}
	return seen
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// windowName turns a sheet name into a window name.
func windowName(s string) string {
	return sanitize(s, "Table")
}

// columnName turns a header cell into a column name.
func columnName(s string) string {
	return sanitize(s, "")
}

// sanitize keeps letters, digits and underscores, replacing anything else
// with "_". Names may not contain the record separator.
func sanitize(s, fallback string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
