package models

// Matrix is a regular grid of values with x/y coordinate bounds.
type Matrix struct {
	WindowBase
	// ColumnWidth is the display width of every column in pixels.
	ColumnWidth int `json:"column_width,omitempty"`
	// Formula is the generating formula, if any.
	Formula string `json:"formula,omitempty"`
	// TextFormat is the numeric display format character ('f', 'e' or 'g').
	TextFormat string `json:"text_format,omitempty"`
	// Precision is the number of displayed digits.
	Precision int `json:"precision,omitempty"`
	// X0, X1, Y0 and Y1 are the coordinate bounds.
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
	// ViewType selects table or image view.
	ViewType int `json:"view_type,omitempty"`
	// HeaderViewType selects row/column or x/y headers.
	HeaderViewType int `json:"header_view_type,omitempty"`
	// ColorPolicy selects the color map used in image view.
	ColorPolicy int `json:"color_policy,omitempty"`
	// Cells holds one slice per row.
	Cells [][]string `json:"cells"`
	Extra []string   `json:"extra,omitempty"`
}

// NewMatrix creates a matrix with an empty rows x cols grid.
func NewMatrix(name string, rows, cols int) *Matrix {
	return &Matrix{
		WindowBase: WindowBase{Name: name},
		TextFormat: "f",
		Precision:  6,
		X1:         10,
		Y1:         10,
		Cells:      NewGrid(rows, cols),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.Cells) }

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	if len(m.Cells) == 0 {
		return 0
	}
	return len(m.Cells[0])
}
