package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "Time")
	f.SetCellValue(sheetName, "C2", "Counts")
	f.SetCellValue(sheetName, "B3", 1)
	f.SetCellValue(sheetName, "C3", 200.5)
	f.SetCellValue(sheetName, "B4", 2)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	st, err := readSheet(f2, sheetName, nil, DefaultTableParams())
	if err != nil {
		t.Fatalf("readSheet failed: %v", err)
	}
	if st == nil {
		t.Fatal("readSheet returned no table")
	}

	tbl := st.table
	if !st.header {
		t.Errorf("Expected header row to be detected")
	}
	if tbl.Name != "Sheet1" {
		t.Errorf("Expected table name Sheet1, got %q", tbl.Name)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0].Name != "Time" || tbl.Columns[1].Name != "Counts" {
		t.Errorf("Unexpected columns %+v", tbl.Columns)
	}
	if tbl.Rows() != 2 {
		t.Errorf("Expected 2 rows, got %d", tbl.Rows())
	}
	if tbl.Cells[0][1] != "200.5" {
		t.Errorf("Expected '200.5', got %q", tbl.Cells[0][1])
	}
	if tbl.Cells[1][1] != "" {
		t.Errorf("Expected empty cell, got %q", tbl.Cells[1][1])
	}
	if got := st.column(3); got != "Sheet1_Counts" {
		t.Errorf("column(3) = %q, expected %q", got, "Sheet1_Counts")
	}
	if got := st.column(1); got != "" {
		t.Errorf("column(1) = %q, expected empty", got)
	}
}

func TestReadSheetEmpty(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := readSheet(f, "Sheet1", nil, DefaultTableParams())
	if err != nil {
		t.Fatalf("readSheet failed: %v", err)
	}
	if st != nil {
		t.Errorf("Expected no table for an empty sheet, got %+v", st.table)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		row      []string
		expected bool
	}{
		{[]string{"x", "y"}, true},
		{[]string{"x", "", "z"}, true},
		{[]string{"x", "1"}, false},
		{[]string{"", ""}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if result := isHeaderRow(tt.row); result != tt.expected {
			t.Errorf("isHeaderRow(%q) = %v, expected %v", tt.row, result, tt.expected)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		fallback string
		expected string
	}{
		{"Sheet1", "Table", "Sheet1"},
		{"My Data", "Table", "My_Data"},
		{" time (s) ", "", "time__s_"},
		{"", "Table", "Table"},
		{"a\tb", "", "a_b"},
	}

	for _, tt := range tests {
		if result := sanitize(tt.input, tt.fallback); result != tt.expected {
			t.Errorf("sanitize(%q, %q) = %q, expected %q", tt.input, tt.fallback, result, tt.expected)
		}
	}
}

func TestDetectTable(t *testing.T) {
	rows := [][]string{
		{},
		{"", "a", "b"},
		{"", "1", ""},
	}
	got, ok := detectTable(rows, DefaultTableParams())
	if !ok {
		t.Fatal("detectTable found no table")
	}
	expected := cellRange{R1: 2, C1: 2, R2: 3, C2: 3}
	if got != expected {
		t.Errorf("detectTable = %+v, expected %+v", got, expected)
	}

	if _, ok := detectTable(nil, DefaultTableParams()); ok {
		t.Errorf("detectTable(nil) found a table")
	}
}

func TestParseRangeRef(t *testing.T) {
	tests := []struct {
		ref      string
		sheet    string
		expected []cellRange
	}{
		{"Sheet1!$A$1:$D$10", "Sheet1", []cellRange{{R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"'My Sheet'!$B$2:$B$5", "My Sheet", []cellRange{{R1: 2, C1: 2, R2: 5, C2: 2}}},
		{"Sheet1!$C$3", "Sheet1", []cellRange{{R1: 3, C1: 3, R2: 3, C2: 3}}},
		{"Sheet1!$A$1:$B$2,Sheet1!$D$1:$D$4", "Sheet1", []cellRange{{R1: 1, C1: 1, R2: 2, C2: 2}, {R1: 1, C1: 4, R2: 4, C2: 4}}},
		{"A1:B2", "", nil},
	}

	for _, tt := range tests {
		sheet, areas := parseRangeRef(tt.ref)
		if sheet != tt.sheet {
			t.Errorf("parseRangeRef(%q) sheet = %q, expected %q", tt.ref, sheet, tt.sheet)
		}
		if len(areas) != len(tt.expected) {
			t.Errorf("parseRangeRef(%q) = %+v, expected %+v", tt.ref, areas, tt.expected)
			continue
		}
		for i := range areas {
			if areas[i] != tt.expected[i] {
				t.Errorf("parseRangeRef(%q)[%d] = %+v, expected %+v", tt.ref, i, areas[i], tt.expected[i])
			}
		}
	}
}

func TestFormatRangeRef(t *testing.T) {
	ref := formatRangeRef("My Sheet", cellRange{R1: 1, C1: 1, R2: 3, C2: 2})
	if ref != "'My Sheet'!$A$1:$B$3" {
		t.Errorf("formatRangeRef = %q, expected %q", ref, "'My Sheet'!$A$1:$B$3")
	}
	sheet, areas := parseRangeRef(ref)
	if sheet != "My Sheet" || len(areas) != 1 || areas[0] != (cellRange{R1: 1, C1: 1, R2: 3, C2: 2}) {
		t.Errorf("parseRangeRef(formatRangeRef) = %q %+v", sheet, areas)
	}
}

func TestEMUToPixels(t *testing.T) {
	tests := []struct {
		emu      int64
		expected int
	}{
		{0, 0},
		{9525, 1},
		{914400, 96},
		{9524, 0},
	}
	for _, tt := range tests {
		if result := EMUToPixels(tt.emu); result != tt.expected {
			t.Errorf("EMUToPixels(%d) = %d, expected %d", tt.emu, result, tt.expected)
		}
	}
}
