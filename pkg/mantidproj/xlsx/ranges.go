package xlsx

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// printAreaName is the defined name Excel uses for a sheet's print area.
const printAreaName = "_xlnm.Print_Area"

// cellRange is a rectangular cell range with 1-based inclusive bounds.
type cellRange struct {
	R1, C1 int
	R2, C2 int
}

// printAreas returns the first print area of every sheet that defines one.
func printAreas(f *excelize.File) map[string]cellRange {
	result := make(map[string]cellRange)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheet, areas := parseRangeRef(dn.RefersTo)
		if sheet != "" && len(areas) > 0 {
			if _, seen := result[sheet]; !seen {
				result[sheet] = areas[0]
			}
		}
	}
	return result
}

// parseRangeRef parses a reference such as 'Sheet 1'!$A$1:$D$10, possibly a
// comma-separated list, into the sheet name and ranges.
func parseRangeRef(ref string) (string, []cellRange) {
	var areas []cellRange
	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := parseRange(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// parseRange parses $A$1:$D$10 or a single cell $B$2.
func parseRange(s string) (cellRange, bool) {
	parts := strings.Split(strings.ReplaceAll(s, "$", ""), ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return cellRange{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return cellRange{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return cellRange{}, false
	}
	return cellRange{R1: r1, C1: c1, R2: r2, C2: c2}, true
}

// formatRangeRef renders an absolute reference to r on sheet.
func formatRangeRef(sheet string, r cellRange) string {
	start, _ := excelize.CoordinatesToCellName(r.C1, r.R1, true)
	end, _ := excelize.CoordinatesToCellName(r.C2, r.R2, true)
	return "'" + sheet + "'!" + start + ":" + end
}
