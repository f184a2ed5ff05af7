package models

// SurfaceSource tells where a surface plot takes its data from.
type SurfaceSource string

const (
	SurfaceFromFunction SurfaceSource = "function"
	SurfaceFromMatrix   SurfaceSource = "matrix"
	SurfaceFromTable    SurfaceSource = "table"
)

// SurfacePlot is a 3D plot of a function, matrix or table column.
type SurfacePlot struct {
	WindowBase
	Source SurfaceSource `json:"source"`
	// Data is the formula, the matrix name or the full z column name.
	Data string  `json:"data"`
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
	ZMin float64 `json:"z_min"`
	ZMax float64 `json:"z_max"`

	Title      string     `json:"title,omitempty"`
	Rotation   [3]float64 `json:"rotation"`
	Zoom       float64    `json:"zoom"`
	Scaling    [3]float64 `json:"scaling"`
	PlotStyle  int        `json:"plot_style"`
	CoordStyle int        `json:"coord_style"`
	FloorStyle int        `json:"floor_style"`
	Extra      []string   `json:"extra,omitempty"`
}

// NewSurfacePlot returns a surface plot with unit zoom and scaling.
func NewSurfacePlot(name string) *SurfacePlot {
	return &SurfacePlot{
		WindowBase: WindowBase{Name: name},
		Source:     SurfaceFromFunction,
		Zoom:       1,
		Scaling:    [3]float64{1, 1, 1},
	}
}
