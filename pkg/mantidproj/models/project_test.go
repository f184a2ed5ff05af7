package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"Table1": true, "Table11": true, "Graph": true}
	isTaken := func(s string) bool { return taken[s] }

	tests := []struct {
		name     string
		expected string
	}{
		{"Table2", "Table2"},
		{"Table1", "Table12"},
		{"Graph", "Graph1"},
	}

	for _, tt := range tests {
		if result := UniqueName(tt.name, isTaken); result != tt.expected {
			t.Errorf("UniqueName(%q) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestAddFolderSiblingNames(t *testing.T) {
	tree := NewTree("root")
	a := tree.AddFolder(RootFolder, "data", "", "")
	b := tree.AddFolder(RootFolder, "data", "", "")
	nested := tree.AddFolder(a, "data", "", "")

	assert.Equal(t, "data", tree.Folder(a).Name)
	assert.Equal(t, "data1", tree.Folder(b).Name)
	assert.Equal(t, "data", tree.Folder(nested).Name, "names only need to be unique among siblings")
	assert.Equal(t, []FolderID{a, b}, tree.Root().Children)
	assert.Equal(t, a, tree.Folder(nested).Parent)
}

func TestTreeNavigation(t *testing.T) {
	tree := NewTree("root")
	a := tree.AddFolder(RootFolder, "a", "", "")
	b := tree.AddFolder(a, "b", "", "")
	c := tree.AddFolder(RootFolder, "c", "", "")

	tests := []struct {
		id    FolderID
		depth int
		path  string
	}{
		{RootFolder, 0, "/"},
		{a, 1, "/a"},
		{b, 2, "/a/b"},
		{c, 1, "/c"},
	}

	for _, tt := range tests {
		if result := tree.Depth(tt.id); result != tt.depth {
			t.Errorf("Depth(%d) = %d, expected %d", tt.id, result, tt.depth)
		}
		if result := tree.Path(tt.id); result != tt.path {
			t.Errorf("Path(%d) = %q, expected %q", tt.id, result, tt.path)
		}
	}

	assert.Equal(t, []FolderID{RootFolder, a, b, c}, tree.Walk(RootFolder))
	assert.Equal(t, []FolderID{a, b}, tree.Walk(a))
}

func TestWindowsInFolderOrder(t *testing.T) {
	tree := NewTree("root")
	sub := tree.AddFolder(RootFolder, "sub", "", "")
	tree.AddWindow(sub, NewTable("Table2", 1, 1))
	tree.AddWindow(RootFolder, NewTable("Table1", 1, 1))
	tree.AddWindow(RootFolder, NewMatrix("Matrix1", 1, 1))

	var names []string
	for _, w := range tree.Windows() {
		names = append(names, w.Base().Name)
	}
	assert.Equal(t, []string{"Table1", "Matrix1", "Table2"}, names)
	assert.Equal(t, 3, tree.WindowCount())

	w, folder, ok := tree.FindWindow("Table2")
	require.True(t, ok)
	assert.Equal(t, sub, folder)
	assert.Equal(t, KindTable, w.Kind())

	_, ok = tree.FindTable("Matrix1")
	assert.False(t, ok, "FindTable must not return a matrix")
	_, ok = tree.FindMatrix("Matrix1")
	assert.True(t, ok)
	assert.False(t, tree.HasWindow("Graph1"))
}

func TestFindColumn(t *testing.T) {
	tree := NewTree("root")
	short := NewTable("Data", 1, 2)
	short.Columns[0].Name = "x"
	short.Columns[1].Name = "long_x"
	long := NewTable("Data_long", 1, 1)
	long.Columns[0].Name = "x"
	tree.AddWindow(RootFolder, short)
	tree.AddWindow(RootFolder, long)

	tests := []struct {
		full  string
		table string
		col   int
		found bool
	}{
		{"Data_x", "Data", 0, true},
		{"Data_long_x", "Data_long", 0, true},
		{"Data_y", "", -1, false},
		{"Data_", "", -1, false},
		{"Other_x", "", -1, false},
	}

	for _, tt := range tests {
		tbl, col, ok := tree.FindColumn(tt.full)
		if ok != tt.found {
			t.Errorf("FindColumn(%q) found = %v, expected %v", tt.full, ok, tt.found)
			continue
		}
		if !ok {
			continue
		}
		if tbl.Name != tt.table || col != tt.col {
			t.Errorf("FindColumn(%q) = %s, %d, expected %s, %d", tt.full, tbl.Name, col, tt.table, tt.col)
		}
	}
}

func TestRemoveWindowClearsActive(t *testing.T) {
	tree := NewTree("root")
	tree.AddWindow(RootFolder, NewTable("Table1", 1, 1))
	tree.AddWindow(RootFolder, NewTable("Table2", 1, 1))
	tree.Root().ActiveWindow = "Table2"

	assert.True(t, tree.RemoveWindow("Table2"))
	assert.Empty(t, tree.Root().ActiveWindow)
	assert.False(t, tree.RemoveWindow("Table2"))
	assert.Equal(t, 1, tree.WindowCount())
}

func TestCloneIsIndependent(t *testing.T) {
	tree := NewTree("root")
	table := NewTable("Table1", 1, 1)
	table.Cells[0][0] = "1"
	tree.AddWindow(RootFolder, table)
	plot := NewMultiLayer("Graph1")
	layer := NewLayer()
	layer.Curves = []Curve{&DataCurve{XColumn: "Table1_x", YColumn: "Table1_y", Span: DefaultSpan()}}
	plot.Layers = []*Layer{layer}
	tree.AddWindow(RootFolder, plot)

	clone, err := tree.Clone()
	require.NoError(t, err)
	assert.Equal(t, tree.WindowCount(), clone.WindowCount())

	table.Cells[0][0] = "2"
	layer.Curves[0].(*DataCurve).YColumn = "changed"
	tree.AddFolder(RootFolder, "new", "", "")

	ct, ok := clone.FindTable("Table1")
	require.True(t, ok)
	assert.Equal(t, "1", ct.Cells[0][0])
	cw, _, ok := clone.FindWindow("Graph1")
	require.True(t, ok)
	assert.Equal(t, "Table1_y", cw.(*MultiLayer).Layers[0].Curves[0].(*DataCurve).YColumn)
	assert.Len(t, clone.Folders, 1)
}

func TestTreeChangeSignals(t *testing.T) {
	p := NewProject("signals")
	calls := 0
	p.OnTreeChange(func() { calls++ })

	p.AddFolder(RootFolder, "a", "", "")
	assert.Equal(t, 1, calls)

	prev := p.BlockSignals(true)
	assert.False(t, prev)
	p.AddWindow(RootFolder, NewTable("Table1", 1, 1))
	p.NotifyTreeChange()
	assert.Equal(t, 1, calls)

	assert.True(t, p.BlockSignals(prev))
	p.NotifyTreeChange()
	assert.Equal(t, 2, calls)
}

func TestProjectBusy(t *testing.T) {
	p := NewProject("busy")
	require.True(t, p.TryBegin())
	assert.False(t, p.TryBegin())
	p.End()
	assert.True(t, p.TryBegin())
	p.End()
}

func TestNewTableDesignations(t *testing.T) {
	table := NewTable("Table1", 2, 3)
	assert.Equal(t, DesignationX, table.Columns[0].Designation)
	assert.Equal(t, DesignationY, table.Columns[2].Designation)
	assert.Equal(t, 2, table.Rows())

	table.Columns[1].Name = "counts"
	assert.Equal(t, "Table1_counts", table.FullColumnName(1))
	assert.Equal(t, 1, table.ColumnIndex("counts"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
}
