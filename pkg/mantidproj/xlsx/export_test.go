package xlsx

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/xuri/excelize/v2"
)

func exportTree() *models.Tree {
	tree := models.NewTree("export")
	table := models.NewTable("Table1", 3, 2)
	table.Columns[0].Name = "time"
	table.Columns[1].Name = "counts"
	table.Cells = [][]string{{"1", "10"}, {"2", "20.5"}, {"3", "30"}}
	tree.AddWindow(models.RootFolder, table)
	tree.AddWindow(models.RootFolder, &models.Note{WindowBase: models.WindowBase{Name: "Note1"}, Text: "skipped"})

	sub := tree.AddFolder(models.RootFolder, "sub", "", "")
	matrix := models.NewMatrix("Matrix1", 2, 2)
	matrix.Cells = [][]string{{"1", "2"}, {"3", "4"}}
	tree.AddWindow(sub, matrix)
	return tree
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	n, err := Export(exportTree(), path)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Export wrote %d sheets, expected 2", n)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	defer f.Close()

	if got := strings.Join(f.GetSheetList(), ","); got != "Table1,Matrix1" {
		t.Errorf("sheets = %q, expected Table1,Matrix1", got)
	}

	tests := []struct {
		sheet    string
		cell     string
		expected string
	}{
		{"Table1", "A1", "time"},
		{"Table1", "B1", "counts"},
		{"Table1", "B3", "20.5"},
		{"Matrix1", "B2", "4"},
	}
	for _, tt := range tests {
		v, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s, %s): %v", tt.sheet, tt.cell, err)
			continue
		}
		if v != tt.expected {
			t.Errorf("GetCellValue(%s, %s) = %q, expected %q", tt.sheet, tt.cell, v, tt.expected)
		}
	}

	areas := printAreas(f)
	if areas["Table1"] != (cellRange{R1: 1, C1: 1, R2: 4, C2: 2}) {
		t.Errorf("Table1 print area = %+v", areas["Table1"])
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if _, err := Export(exportTree(), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	log, hook := test.NewNullLogger()
	opts := DefaultImportOptions()
	opts.Log = log
	p, err := Import(path, opts)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected log entries: %v", hook.AllEntries())
	}

	if p.Name != "book" {
		t.Errorf("project name = %q, expected book", p.Name)
	}
	if n := p.Tree.WindowCount(); n != 2 {
		t.Fatalf("imported %d windows, expected 2", n)
	}

	table, ok := p.Tree.FindTable("Table1")
	if !ok {
		t.Fatal("Table1 not imported")
	}
	if table.Columns[0].Name != "time" || table.Columns[1].Name != "counts" {
		t.Errorf("columns = %+v", table.Columns)
	}
	if table.Rows() != 3 || table.Cells[1][1] != "20.5" {
		t.Errorf("cells = %v", table.Cells)
	}

	// Matrix sheets carry no header row, so columns get their letters.
	matrix, ok := p.Tree.FindTable("Matrix1")
	if !ok {
		t.Fatal("Matrix1 not imported as a table")
	}
	if matrix.Columns[0].Name != "A" || matrix.Rows() != 2 || matrix.Cells[1][0] != "3" {
		t.Errorf("matrix table = %+v", matrix)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	long := strings.Repeat("x", 40)

	tests := []struct {
		name     string
		expected string
	}{
		{"Table1", "Table1"},
		{"Table1", "Table11"},
		{long, strings.Repeat("x", 31)},
		{long, strings.Repeat("x", 28)},
		{long, strings.Repeat("x", 28) + "1"},
	}

	for _, tt := range tests {
		if result := sheetName(tt.name, used); result != tt.expected {
			t.Errorf("sheetName(%q) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}
