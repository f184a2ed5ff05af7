package models

// PlotType is the stored plot-type code of a curve.
type PlotType int

const (
	PlotLine PlotType = iota
	PlotScatter
	PlotLineSymbols
	PlotVerticalBars
	PlotArea
	PlotPie
	PlotVerticalDropLines
	PlotSpline
	PlotHorizontalSteps
	PlotHistogram
	PlotHorizontalBars
	PlotVectXYXY
	PlotErrorBars
	PlotBox
	PlotVectXYAM
	PlotVerticalSteps
)

// IsBars reports whether the plot type carries bar gap/offset parameters.
func (t PlotType) IsBars() bool {
	return t == PlotVerticalBars || t == PlotHorizontalBars
}

// IsVector reports whether the plot type is a vector field.
func (t PlotType) IsVector() bool {
	return t == PlotVectXYXY || t == PlotVectXYAM
}

// CurveKind identifies the concrete type of a Curve.
type CurveKind string

const (
	CurveData        CurveKind = "data"
	CurveFunction    CurveKind = "function"
	CurveVector      CurveKind = "vector"
	CurveBox         CurveKind = "box"
	CurveHistogram   CurveKind = "histogram"
	CurvePie         CurveKind = "pie"
	CurveSpectrogram CurveKind = "spectrogram"
	CurveErrorBars   CurveKind = "error_bars"
)

// Curve is one plotted series or decoration within a Layer.
//
// The set of implementations is closed: *DataCurve, *FunctionCurve,
// *VectorCurve, *BoxCurve, *HistogramCurve, *PieCurve, *Spectrogram and
// *ErrorBars.
type Curve interface {
	CurveKind() CurveKind
	curve()
}

// CurveStyle holds the pen, symbol and fill settings shared by curve kinds.
type CurveStyle struct {
	Connect         int     `json:"connect"`
	LineColor       Color   `json:"line_color"`
	LineStyle       int     `json:"line_style"`
	LineWidth       float64 `json:"line_width"`
	SymbolSize      int     `json:"symbol_size"`
	SymbolType      int     `json:"symbol_type"`
	SymbolEdgeColor Color   `json:"symbol_edge_color"`
	SymbolFillColor Color   `json:"symbol_fill_color"`
	AreaFillColor   Color   `json:"area_fill_color"`
	AreaFill        bool    `json:"area_fill,omitempty"`
	FillPattern     int     `json:"fill_pattern,omitempty"`
}

// CurveSpan holds the data range and axis attachment of a curve.
type CurveSpan struct {
	StartRow int  `json:"start_row"`
	EndRow   int  `json:"end_row"`
	XAxis    int  `json:"x_axis"`
	YAxis    int  `json:"y_axis"`
	Visible  bool `json:"visible"`
}

// DefaultSpan is the span of a curve over the whole data range.
func DefaultSpan() CurveSpan {
	return CurveSpan{StartRow: 0, EndRow: -1, XAxis: AxisBottom, YAxis: AxisLeft, Visible: true}
}

// BarParams holds the bar gap and offset, in percent.
type BarParams struct {
	Gap    int `json:"gap"`
	Offset int `json:"offset"`
}

// DataCurve plots one table column against another.
type DataCurve struct {
	Type    PlotType   `json:"type"`
	XColumn string     `json:"x_column"`
	YColumn string     `json:"y_column"`
	Style   CurveStyle `json:"style"`
	// Bars is set for bar plot types.
	Bars *BarParams `json:"bars,omitempty"`
	Span CurveSpan  `json:"span"`
}

// HistogramCurve bins the values of one column.
type HistogramCurve struct {
	XColumn string     `json:"x_column,omitempty"`
	YColumn string     `json:"y_column"`
	Style   CurveStyle `json:"style"`
	Bars    BarParams  `json:"bars"`
	AutoBin bool       `json:"auto_bin"`
	BinSize float64    `json:"bin_size"`
	Begin   float64    `json:"begin"`
	End     float64    `json:"end"`
	Span    CurveSpan  `json:"span"`
}

// VectorCurve draws arrows from (XColumn, YColumn) to either an end point
// (VectXYXY) or an angle/magnitude pair (VectXYAM).
type VectorCurve struct {
	Type    PlotType   `json:"type"`
	XColumn string     `json:"x_column"`
	YColumn string     `json:"y_column"`
	// EndX holds the end-x column (XYXY) or the angle column (XYAM).
	EndX string `json:"end_x"`
	// EndY holds the end-y column (XYXY) or the magnitude column (XYAM).
	EndY       string     `json:"end_y"`
	Style      CurveStyle `json:"style"`
	Color      Color      `json:"color"`
	PenWidth   float64    `json:"pen_width"`
	HeadLength int        `json:"head_length"`
	HeadAngle  int        `json:"head_angle"`
	Filled     bool       `json:"filled,omitempty"`
	Position   int        `json:"position"`
	Span       CurveSpan  `json:"span"`
}

// BoxCurve draws a box-and-whiskers summary of one column at position X.
type BoxCurve struct {
	YColumn           string     `json:"y_column"`
	X                 float64    `json:"x"`
	Style             CurveStyle `json:"style"`
	MaxStyle          int        `json:"max_style"`
	P99Style          int        `json:"p99_style"`
	MeanStyle         int        `json:"mean_style"`
	P1Style           int        `json:"p1_style"`
	MinStyle          int        `json:"min_style"`
	BoxStyle          int        `json:"box_style"`
	BoxWidth          int        `json:"box_width"`
	BoxRangeType      int        `json:"box_range_type"`
	BoxRange          float64    `json:"box_range"`
	WhiskersRangeType int        `json:"whiskers_range_type"`
	WhiskersRange     float64    `json:"whiskers_range"`
	Span              CurveSpan  `json:"span"`
}

// PieCurve draws one column as a pie.
type PieCurve struct {
	YColumn          string  `json:"y_column"`
	PenColor         Color   `json:"pen_color"`
	PenWidth         float64 `json:"pen_width"`
	PenStyle         int     `json:"pen_style"`
	FirstColor       Color   `json:"first_color"`
	BrushStyle       int     `json:"brush_style"`
	StartRow         int     `json:"start_row"`
	EndRow           int     `json:"end_row"`
	Visible          bool    `json:"visible"`
	StartAzimuth     float64 `json:"start_azimuth"`
	ViewAngle        float64 `json:"view_angle"`
	Thickness        float64 `json:"thickness"`
	HorizontalOffset float64 `json:"horizontal_offset"`
	EdgeDistance     float64 `json:"edge_distance"`
	CounterClockwise bool    `json:"counter_clockwise,omitempty"`
	AutoLabels       bool    `json:"auto_labels,omitempty"`
	Values           bool    `json:"values,omitempty"`
	Percentages      bool    `json:"percentages,omitempty"`
	Categories       bool    `json:"categories,omitempty"`
	FixedLabels      bool    `json:"fixed_labels,omitempty"`
}

// FunctionCurve is evaluated from a formula over a domain.
type FunctionCurve struct {
	// FunctionType is 0 for y(x), 1 for parametric, 2 for polar.
	FunctionType int        `json:"function_type"`
	Name         string     `json:"name"`
	Formulas     []string   `json:"formulas"`
	Variable     string     `json:"variable"`
	From         float64    `json:"from"`
	To           float64    `json:"to"`
	Points       int        `json:"points"`
	Style        CurveStyle `json:"style"`
	XAxis        int        `json:"x_axis"`
	YAxis        int        `json:"y_axis"`
	Visible      bool       `json:"visible"`
}

// ErrorBars decorates a master curve with error magnitudes from a column.
type ErrorBars struct {
	// Direction is 0 for horizontal and 1 for vertical bars.
	Direction   int     `json:"direction"`
	MasterX     string  `json:"master_x"`
	MasterY     string  `json:"master_y"`
	ErrorColumn string  `json:"error_column"`
	Width       float64 `json:"width"`
	CapLength   int     `json:"cap_length"`
	Color       Color   `json:"color"`
	Through     bool    `json:"through,omitempty"`
	Plus        bool    `json:"plus"`
	Minus       bool    `json:"minus"`
}

// ColorBar is the color scale shown next to a spectrogram.
type ColorBar struct {
	Axis  int `json:"axis"`
	Width int `json:"width"`
}

// Spectrogram draws a matrix as an image and/or contour lines.
type Spectrogram struct {
	// Matrix is the name of the source matrix.
	Matrix string `json:"matrix"`
	// ColorPolicy is "GrayScale", "Default" or "Custom".
	ColorPolicy string `json:"color_policy"`
	// ColorMapFile references an external color map file, if any.
	ColorMapFile     string    `json:"color_map_file,omitempty"`
	Image            bool      `json:"image"`
	ContourLines     bool      `json:"contour_lines"`
	Levels           int       `json:"levels"`
	PenColor         Color     `json:"pen_color,omitempty"`
	PenWidth         float64   `json:"pen_width"`
	PenStyle         int       `json:"pen_style"`
	IntensityChanged bool      `json:"intensity_changed,omitempty"`
	ColorBar         *ColorBar `json:"color_bar,omitempty"`
	Visible          bool      `json:"visible"`
}

// GrayScale reports whether the spectrogram uses the gray-scale color map.
func (s *Spectrogram) GrayScale() bool { return s.ColorPolicy == "GrayScale" }

func (*DataCurve) CurveKind() CurveKind      { return CurveData }
func (*FunctionCurve) CurveKind() CurveKind  { return CurveFunction }
func (*VectorCurve) CurveKind() CurveKind    { return CurveVector }
func (*BoxCurve) CurveKind() CurveKind       { return CurveBox }
func (*HistogramCurve) CurveKind() CurveKind { return CurveHistogram }
func (*PieCurve) CurveKind() CurveKind       { return CurvePie }
func (*Spectrogram) CurveKind() CurveKind    { return CurveSpectrogram }
func (*ErrorBars) CurveKind() CurveKind      { return CurveErrorBars }

func (*DataCurve) curve()      {}
func (*FunctionCurve) curve()  {}
func (*VectorCurve) curve()    {}
func (*BoxCurve) curve()       {}
func (*HistogramCurve) curve() {}
func (*PieCurve) curve()       {}
func (*Spectrogram) curve()    {}
func (*ErrorBars) curve()      {}
