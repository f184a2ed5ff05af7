package xlsx

import (
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// Export writes every table and matrix of tree to an Excel workbook, one
// sheet per window in depth-first folder order. Table sheets start with a
// header row of column names; each sheet's print area covers its data.
// It returns the number of sheets written.
func Export(tree *models.Tree, path string) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	used := map[string]bool{}
	count := 0
	for _, w := range tree.Windows() {
		var rows [][]string
		switch v := w.(type) {
		case *models.Table:
			header := make([]string, len(v.Columns))
			for i, c := range v.Columns {
				header[i] = c.Name
			}
			rows = append([][]string{header}, v.Cells...)
		case *models.Matrix:
			rows = v.Cells
		default:
			continue
		}

		sheet := sheetName(w.Base().Name, used)
		if count == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return 0, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return 0, err
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return 0, err
		}
		count++
	}

	if err := f.SaveAs(path); err != nil {
		return 0, err
	}
	return count, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	cols := 0
	for r, row := range rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = parseValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if len(row) > cols {
			cols = len(row)
		}
	}
	if len(rows) == 0 || cols == 0 {
		return nil
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: formatRangeRef(sheet, cellRange{R1: 1, C1: 1, R2: len(rows), C2: cols}),
		Scope:    sheet,
	})
}

// sheetName derives a unique sheet name from a window name.
func sheetName(name string, used map[string]bool) string {
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	if used[name] && len(name) > maxSheetName-3 {
		name = name[:maxSheetName-3]
	}
	name = models.UniqueName(name, func(s string) bool { return used[s] })
	used[name] = true
	return name
}
