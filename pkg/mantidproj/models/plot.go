package models

// Axis positions, in the order used by per-axis records.
const (
	AxisLeft = iota
	AxisRight
	AxisBottom
	AxisTop
)

// Color is a stored color: either a palette index ("14") or a name ("#ff0000").
type Color string

// Margins holds page margins in pixels.
type Margins struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// MultiLayer is a 2D plot page containing one or more layers.
type MultiLayer struct {
	WindowBase
	// Rows and Cols describe the layer arrangement grid.
	Rows int `json:"rows"`
	Cols int `json:"cols"`
	// Margins are the page margins.
	Margins Margins `json:"margins"`
	// RowSpacing and ColSpacing are the gaps between layers.
	RowSpacing int `json:"row_spacing"`
	ColSpacing int `json:"col_spacing"`
	// CanvasWidth and CanvasHeight are the default layer canvas size.
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`
	// HAlign and VAlign are the layer alignment flags.
	HAlign int `json:"h_align"`
	VAlign int `json:"v_align"`
	// ScaleLayersOnPrint scales layers to the printed page.
	ScaleLayersOnPrint bool `json:"scale_layers_on_print,omitempty"`
	// PrintCropmarks prints crop marks around the page.
	PrintCropmarks bool `json:"print_cropmarks,omitempty"`
	// Layers are the plot layers in stacking order.
	Layers []*Layer `json:"layers"`
}

// NewMultiLayer returns a plot page with the default page layout.
func NewMultiLayer(name string) *MultiLayer {
	return &MultiLayer{
		WindowBase:   WindowBase{Name: name},
		Rows:         1,
		Cols:         1,
		Margins:      Margins{Left: 5, Right: 5, Top: 5, Bottom: 5},
		RowSpacing:   5,
		ColSpacing:   5,
		CanvasWidth:  400,
		CanvasHeight: 300,
	}
}

// Scale describes the scale of one axis.
type Scale struct {
	Axis       int     `json:"axis"`
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Step       float64 `json:"step"`
	MajorTicks int     `json:"major_ticks"`
	MinorTicks int     `json:"minor_ticks"`
	// Type is the scale engine: 0 linear, 1 logarithmic.
	Type     int  `json:"type"`
	Inverted bool `json:"inverted,omitempty"`
}

// Legend is the layer legend box.
type Legend struct {
	Text  string `json:"text"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Frame int    `json:"frame"`
}

// TextMarker is a free text label placed on a layer.
type TextMarker struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Text string `json:"text"`
}

// LineMarker is an arrow or line drawn on a layer, in plot coordinates.
type LineMarker struct {
	X0         float64 `json:"x0"`
	Y0         float64 `json:"y0"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	Width      float64 `json:"width"`
	Color      Color   `json:"color"`
	StartArrow bool    `json:"start_arrow,omitempty"`
	EndArrow   bool    `json:"end_arrow,omitempty"`
}

// Layer is one set of axes and curves within a MultiLayer.
type Layer struct {
	Geometry        Rect      `json:"geometry"`
	Title           string    `json:"title,omitempty"`
	TitleColor      Color     `json:"title_color,omitempty"`
	TitleAlign      int       `json:"title_align,omitempty"`
	Background      Color     `json:"background,omitempty"`
	BackgroundAlpha int       `json:"background_alpha,omitempty"`
	BorderWidth     int       `json:"border_width,omitempty"`
	BorderColor     Color     `json:"border_color,omitempty"`
	Margin          int       `json:"margin,omitempty"`
	EnabledAxes     [4]bool   `json:"enabled_axes"`
	AxisTitles      [4]string `json:"axis_titles"`
	Scales          []Scale   `json:"scales,omitempty"`
	MajorTicks      [4]int    `json:"major_ticks"`
	MinorTicks      [4]int    `json:"minor_ticks"`
	MinorTickLength int       `json:"minor_tick_length"`
	MajorTickLength int       `json:"major_tick_length"`
	// Grid holds the raw grid record fields.
	Grid        []string     `json:"grid,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	TextMarkers []TextMarker `json:"text_markers,omitempty"`
	LineMarkers []LineMarker `json:"line_markers,omitempty"`
	// Curves are the plotted items in drawing order.
	Curves []Curve  `json:"curves"`
	Extra  []string `json:"extra,omitempty"`
}

// NewLayer returns a layer with the default axes enabled.
func NewLayer() *Layer {
	return &Layer{
		Geometry:        Rect{W: 400, H: 300},
		EnabledAxes:     [4]bool{true, false, true, false},
		MajorTicks:      [4]int{3, 3, 3, 3},
		MinorTicks:      [4]int{1, 1, 1, 1},
		MinorTickLength: 5,
		MajorTickLength: 9,
	}
}
