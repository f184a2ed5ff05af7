package format

import "github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"

// Version gates for record kinds whose presence, rather than field order,
// changed between releases.
const (
	// HeaderDesignationsSince: table header entries carry [X]/[Y] suffixes.
	HeaderDesignationsSince = 72
	// TableColTypeSince: tables carry a ColType record.
	TableColTypeSince = 78
	// NoteContentSince: note text is wrapped in <content> tags.
	NoteContentSince = 78
	// PageLayoutSince: multi-layer plots carry margin/spacing/canvas/alignment.
	PageLayoutSince = 84
	// MatrixViewSince: matrices carry view type and color policy records.
	MatrixViewSince = 88
	// FunctionBlockSince: function curves are written as <Function> blocks.
	FunctionBlockSince = 88
)

// Layout lists the field names of a record for an inclusive version range.
type Layout struct {
	From   int
	To     int
	Fields []string
}

// LayoutTable maps version ranges to field layouts for one record kind.
type LayoutTable []Layout

// For returns the field names for version, or nil when no range matches.
func (t LayoutTable) For(version int) []string {
	for _, l := range t {
		if version >= l.From && version <= l.To {
			return l.Fields
		}
	}
	return nil
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// StyleFields are the pen/symbol/fill fields shared by curve records.
var StyleFields = []string{
	"connect", "lineColor", "lineStyle", "lineWidth", "symbolSize", "symbolType",
	"symbolEdgeColor", "symbolFillColor", "areaFillColor", "areaFill",
}

// StyleColorFields are the StyleFields holding palette colors.
var StyleColorFields = []string{"lineColor", "symbolEdgeColor", "symbolFillColor", "areaFillColor"}

var dataCurvePrefix = []string{"curve", "yColumn", "plotType", "xColumn"}
var boxCurvePrefix = []string{"curve", "yColumn", "plotType", "x"}

// CurveHead is the fixed leading part of data, histogram and vector curves.
var CurveHead = LayoutTable{
	{0, 76, concat(dataCurvePrefix, StyleFields)},
	{77, Latest, concat(dataCurvePrefix, StyleFields, []string{"fillPattern"})},
}

// BoxHead is the leading part of box curves; field 3 is a position.
var BoxHead = LayoutTable{
	{0, 76, concat(boxCurvePrefix, StyleFields)},
	{77, Latest, concat(boxCurvePrefix, StyleFields, []string{"fillPattern"})},
}

// BarFields follow the head of bar curves.
var BarFields = LayoutTable{
	{0, Latest, []string{"gap", "offset"}},
}

// HistogramFields follow the head of histogram curves.
var HistogramFields = LayoutTable{
	{0, Latest, []string{"gap", "offset", "autoBin", "binSize", "begin", "end"}},
}

// VectorFields follow the head of vector curves. Files up to 77 use the old
// fixed order without a pen width.
var VectorFields = LayoutTable{
	{0, 77, []string{"vectorColor", "headLength", "headAngle", "filled", "position", "endX", "endY"}},
	{78, Latest, []string{"endX", "endY", "vectorColor", "penWidth", "headLength", "headAngle", "filled", "position"}},
}

// BoxFields follow the head of box curves.
var BoxFields = LayoutTable{
	{0, 71, []string{"maxStyle", "p99Style", "meanStyle", "p1Style", "minStyle", "boxStyle", "boxWidth"}},
	{72, Latest, []string{"maxStyle", "p99Style", "meanStyle", "p1Style", "minStyle", "boxStyle", "boxWidth",
		"boxRangeType", "boxRange", "whiskersRangeType", "whiskersRange"}},
}

// CurveTrailer closes every data, histogram, vector, box and inline
// function curve record.
var CurveTrailer = LayoutTable{
	{0, 77, nil},
	{78, 87, []string{"startRow", "endRow"}},
	{88, 89, []string{"startRow", "endRow", "xAxis", "yAxis"}},
	{90, Latest, []string{"startRow", "endRow", "xAxis", "yAxis", "visible"}},
}

// FunctionCurveHead is the inline FunctionCurve record; its style block
// starts one field earlier than in data curves.
var FunctionCurveHead = LayoutTable{
	{0, 76, concat([]string{"FunctionCurve", "spec", "formula"}, StyleFields)},
	{77, Latest, concat([]string{"FunctionCurve", "spec", "formula"}, StyleFields, []string{"fillPattern"})},
}

var pieBase = []string{"PieCurve", "yColumn", "penColor", "penWidth", "penStyle", "firstColor", "brushStyle",
	"startRow", "endRow", "visible"}

// PieFields is the PieCurve record.
var PieFields = LayoutTable{
	{0, 92, pieBase},
	{93, Latest, concat(pieBase, []string{"startAzimuth", "viewAngle", "thickness", "hOffset", "edgeDist",
		"counterClockwise", "autoLabels", "values", "percentages", "categories", "fixedLabels"})},
}

// ErrorBarFields is the ErrorBars record.
var ErrorBarFields = LayoutTable{
	{0, Latest, []string{"ErrorBars", "direction", "masterX", "masterY", "errColumn", "width", "cap", "color",
		"through", "plus", "minus"}},
}

// ScaleFields is the per-axis scale record.
var ScaleFields = LayoutTable{
	{0, 71, []string{"scale", "axis", "from", "to", "step", "majorTicks", "minorTicks", "type"}},
	{72, Latest, []string{"scale", "axis", "from", "to", "step", "majorTicks", "minorTicks", "type", "inverted"}},
}

// CurveLayout returns the complete field list of a curve record of plot
// type t under version.
func CurveLayout(t models.PlotType, version int) []string {
	switch {
	case t == models.PlotBox:
		return concat(BoxHead.For(version), BoxFields.For(version), CurveTrailer.For(version))
	case t == models.PlotHistogram:
		return concat(CurveHead.For(version), HistogramFields.For(version), CurveTrailer.For(version))
	case t.IsVector():
		return concat(CurveHead.For(version), VectorFields.For(version), CurveTrailer.For(version))
	case t.IsBars():
		return concat(CurveHead.For(version), BarFields.For(version), CurveTrailer.For(version))
	}
	return concat(CurveHead.For(version), CurveTrailer.For(version))
}

// FunctionCurveLayout returns the field list of an inline FunctionCurve.
func FunctionCurveLayout(version int) []string {
	return concat(FunctionCurveHead.For(version), CurveTrailer.For(version))
}

// StyleLayout returns the style fields written in a <Function> Style record.
func StyleLayout(version int) []string {
	if version >= 77 {
		return concat([]string{"Style"}, StyleFields, []string{"fillPattern"})
	}
	return concat([]string{"Style"}, StyleFields)
}
