package models

// Designation is the plot role of a table column.
type Designation string

const (
	DesignationX      Designation = "X"
	DesignationY      Designation = "Y"
	DesignationZ      Designation = "Z"
	DesignationXError Designation = "xEr"
	DesignationYError Designation = "yEr"
	DesignationLabel  Designation = "L"
	DesignationNone   Designation = "N"
)

// Column describes one table column.
type Column struct {
	// Name is the short column name, e.g. "colA".
	Name string `json:"name"`
	// Designation is the plot role of the column.
	Designation Designation `json:"designation"`
	// Width is the display width in pixels.
	Width int `json:"width,omitempty"`
	// Type is the encoded column type and numeric format, e.g. "0;0/13".
	Type string `json:"type,omitempty"`
	// ReadOnly reports whether the column is locked for editing.
	ReadOnly bool `json:"read_only,omitempty"`
	// Hidden reports whether the column is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// Comment is the column comment.
	Comment string `json:"comment,omitempty"`
	// Formula is the column formula; it may embed other columns by full name.
	Formula string `json:"formula,omitempty"`
}

// Table is a spreadsheet-like window with named columns.
type Table struct {
	WindowBase
	// Columns holds the column descriptions in display order.
	Columns []Column `json:"columns"`
	// Cells holds one slice per row, each with one value per column.
	Cells [][]string `json:"cells"`
	// Extra holds records this version does not interpret, in file order.
	Extra []string `json:"extra,omitempty"`
}

// NewTable creates a table with an empty rows x cols grid.
func NewTable(name string, rows, cols int) *Table {
	t := &Table{WindowBase: WindowBase{Name: name}}
	t.Columns = make([]Column, cols)
	for i := range t.Columns {
		t.Columns[i].Designation = DesignationY
	}
	if cols > 0 {
		t.Columns[0].Designation = DesignationX
	}
	t.Cells = NewGrid(rows, cols)
	return t
}

// NewGrid allocates an empty rows x cols cell grid.
func NewGrid(rows, cols int) [][]string {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	return grid
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.Cells) }

// ColumnIndex returns the index of the column with the given short name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// FullColumnName returns the project-wide column name, e.g. "Table1_colA".
func (t *Table) FullColumnName(i int) string {
	return t.Name + "_" + t.Columns[i].Name
}
