package output

import (
	"fmt"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

const version = format.CurrentVersion

func writeMultiLayer(w *writer, ml *models.MultiLayer, base models.WindowBase) {
	w.open("multiLayer")
	w.record(base.Name, itoa(len(ml.Layers)), itoa(ml.Rows), itoa(ml.Cols), base.Birth)
	writeCommon(w, base)
	w.record("Margins", itoa(ml.Margins.Left), itoa(ml.Margins.Right), itoa(ml.Margins.Top), itoa(ml.Margins.Bottom))
	w.record("Spacing", itoa(ml.RowSpacing), itoa(ml.ColSpacing))
	w.record("LayerCanvasSize", itoa(ml.CanvasWidth), itoa(ml.CanvasHeight))
	w.record("Alignment", itoa(ml.HAlign), itoa(ml.VAlign))
	w.line(format.InlineTag("ScaleLayersOnPrint", btoa(ml.ScaleLayersOnPrint)))
	w.line(format.InlineTag("PrintCropmarks", btoa(ml.PrintCropmarks)))
	for _, layer := range ml.Layers {
		writeLayer(w, layer)
	}
	w.close("multiLayer")
}

func writeLayer(w *writer, l *models.Layer) {
	w.open("graph")
	w.line(format.EncodeRect(l.Geometry))
	w.record("PlotTitle", l.Title, string(l.TitleColor), itoa(l.TitleAlign))
	w.record("Background", string(l.Background), itoa(l.BackgroundAlpha))
	w.record("Border", itoa(l.BorderWidth), string(l.BorderColor))
	w.record("Margin", itoa(l.Margin))

	axes := []string{"EnabledAxes"}
	titles := []string{"AxesTitles"}
	major := []string{"MajorTicks"}
	minor := []string{"MinorTicks"}
	for i := 0; i < 4; i++ {
		axes = append(axes, btoa(l.EnabledAxes[i]))
		titles = append(titles, l.AxisTitles[i])
		major = append(major, itoa(l.MajorTicks[i]))
		minor = append(minor, itoa(l.MinorTicks[i]))
	}
	w.record(axes...)
	w.record(titles...)
	for _, s := range l.Scales {
		r := format.Record{"scale": "scale"}
		r.SetInt("axis", s.Axis)
		r.SetFloat("from", s.From)
		r.SetFloat("to", s.To)
		r.SetFloat("step", s.Step)
		r.SetInt("majorTicks", s.MajorTicks)
		r.SetInt("minorTicks", s.MinorTicks)
		r.SetInt("type", s.Type)
		r.SetBool("inverted", s.Inverted)
		w.line(r.Line(format.ScaleFields.For(version)))
	}
	w.record(major...)
	w.record(minor...)
	w.record("TicksLength", itoa(l.MinorTickLength), itoa(l.MajorTickLength))
	if len(l.Grid) > 0 {
		w.record(append([]string{"grid"}, l.Grid...)...)
	}
	if l.Legend != nil {
		w.record("Legend", escapeText(l.Legend.Text), itoa(l.Legend.X), itoa(l.Legend.Y), itoa(l.Legend.Frame))
	}
	for _, m := range l.TextMarkers {
		w.record("TextMarker", itoa(m.X), itoa(m.Y), escapeText(m.Text))
	}
	for _, m := range l.LineMarkers {
		w.record("LineMarker", ftoa(m.X0), ftoa(m.Y0), ftoa(m.X1), ftoa(m.Y1), ftoa(m.Width),
			string(m.Color), btoa(m.StartArrow), btoa(m.EndArrow))
	}
	for _, c := range l.Curves {
		writeCurve(w, c)
	}
	w.lines(l.Extra)
	w.close("graph")
}

func escapeText(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// writeCurve encodes one curve with the current version's layout.
func writeCurve(w *writer, c models.Curve) {
	switch c := c.(type) {
	case *models.DataCurve:
		r := curveHead(c.Type, c.XColumn, c.YColumn, c.Style)
		if c.Bars != nil {
			r.SetInt("gap", c.Bars.Gap)
			r.SetInt("offset", c.Bars.Offset)
		}
		putSpan(r, c.Span)
		w.line(r.Line(format.CurveLayout(c.Type, version)))

	case *models.HistogramCurve:
		r := curveHead(models.PlotHistogram, c.XColumn, c.YColumn, c.Style)
		r.SetInt("gap", c.Bars.Gap)
		r.SetInt("offset", c.Bars.Offset)
		r.SetBool("autoBin", c.AutoBin)
		r.SetFloat("binSize", c.BinSize)
		r.SetFloat("begin", c.Begin)
		r.SetFloat("end", c.End)
		putSpan(r, c.Span)
		w.line(r.Line(format.CurveLayout(models.PlotHistogram, version)))

	case *models.VectorCurve:
		r := curveHead(c.Type, c.XColumn, c.YColumn, c.Style)
		r["endX"] = c.EndX
		r["endY"] = c.EndY
		r["vectorColor"] = string(c.Color)
		r.SetFloat("penWidth", c.PenWidth)
		r.SetInt("headLength", c.HeadLength)
		r.SetInt("headAngle", c.HeadAngle)
		r.SetBool("filled", c.Filled)
		r.SetInt("position", c.Position)
		putSpan(r, c.Span)
		w.line(r.Line(format.CurveLayout(c.Type, version)))

	case *models.BoxCurve:
		r := format.Record{"curve": "curve", "yColumn": c.YColumn}
		r.SetInt("plotType", int(models.PlotBox))
		r.SetFloat("x", c.X)
		putStyle(r, c.Style)
		r.SetInt("maxStyle", c.MaxStyle)
		r.SetInt("p99Style", c.P99Style)
		r.SetInt("meanStyle", c.MeanStyle)
		r.SetInt("p1Style", c.P1Style)
		r.SetInt("minStyle", c.MinStyle)
		r.SetInt("boxStyle", c.BoxStyle)
		r.SetInt("boxWidth", c.BoxWidth)
		r.SetInt("boxRangeType", c.BoxRangeType)
		r.SetFloat("boxRange", c.BoxRange)
		r.SetInt("whiskersRangeType", c.WhiskersRangeType)
		r.SetFloat("whiskersRange", c.WhiskersRange)
		putSpan(r, c.Span)
		w.line(r.Line(format.CurveLayout(models.PlotBox, version)))

	case *models.PieCurve:
		r := format.Record{
			"PieCurve":   "PieCurve",
			"yColumn":    c.YColumn,
			"penColor":   string(c.PenColor),
			"firstColor": string(c.FirstColor),
		}
		r.SetFloat("penWidth", c.PenWidth)
		r.SetInt("penStyle", c.PenStyle)
		r.SetInt("brushStyle", c.BrushStyle)
		r.SetInt("startRow", c.StartRow)
		r.SetInt("endRow", c.EndRow)
		r.SetBool("visible", c.Visible)
		r.SetFloat("startAzimuth", c.StartAzimuth)
		r.SetFloat("viewAngle", c.ViewAngle)
		r.SetFloat("thickness", c.Thickness)
		r.SetFloat("hOffset", c.HorizontalOffset)
		r.SetFloat("edgeDist", c.EdgeDistance)
		r.SetBool("counterClockwise", c.CounterClockwise)
		r.SetBool("autoLabels", c.AutoLabels)
		r.SetBool("values", c.Values)
		r.SetBool("percentages", c.Percentages)
		r.SetBool("categories", c.Categories)
		r.SetBool("fixedLabels", c.FixedLabels)
		w.line(r.Line(format.PieFields.For(version)))

	case *models.FunctionCurve:
		writeFunction(w, c)

	case *models.ErrorBars:
		r := format.Record{
			"ErrorBars": "ErrorBars",
			"masterX":   c.MasterX,
			"masterY":   c.MasterY,
			"errColumn": c.ErrorColumn,
			"color":     string(c.Color),
		}
		r.SetInt("direction", c.Direction)
		r.SetFloat("width", c.Width)
		r.SetInt("cap", c.CapLength)
		r.SetBool("through", c.Through)
		r.SetBool("plus", c.Plus)
		r.SetBool("minus", c.Minus)
		w.line(r.Line(format.ErrorBarFields.For(version)))

	case *models.Spectrogram:
		writeSpectrogram(w, c)

	default:
		w.err = fmt.Errorf("cannot write curve of type %T", c)
	}
}

func curveHead(t models.PlotType, x, y string, style models.CurveStyle) format.Record {
	r := format.Record{"curve": "curve", "xColumn": x, "yColumn": y}
	r.SetInt("plotType", int(t))
	putStyle(r, style)
	return r
}

func putStyle(r format.Record, s models.CurveStyle) {
	r.SetInt("connect", s.Connect)
	r["lineColor"] = string(s.LineColor)
	r.SetInt("lineStyle", s.LineStyle)
	r.SetFloat("lineWidth", s.LineWidth)
	r.SetInt("symbolSize", s.SymbolSize)
	r.SetInt("symbolType", s.SymbolType)
	r["symbolEdgeColor"] = string(s.SymbolEdgeColor)
	r["symbolFillColor"] = string(s.SymbolFillColor)
	r["areaFillColor"] = string(s.AreaFillColor)
	r.SetBool("areaFill", s.AreaFill)
	r.SetInt("fillPattern", s.FillPattern)
}

func putSpan(r format.Record, s models.CurveSpan) {
	r.SetInt("startRow", s.StartRow)
	r.SetInt("endRow", s.EndRow)
	r.SetInt("xAxis", s.XAxis)
	r.SetInt("yAxis", s.YAxis)
	r.SetBool("visible", s.Visible)
}

// writeFunction emits the <Function> block form.
func writeFunction(w *writer, c *models.FunctionCurve) {
	w.open("Function")
	w.record("Type", itoa(c.FunctionType))
	w.record("Name", c.Name)
	w.record(append([]string{"Function"}, c.Formulas...)...)
	w.record("Vars", c.Variable)
	w.record("Range", ftoa(c.From), ftoa(c.To))
	w.record("Points", itoa(c.Points))
	r := format.Record{"Style": "Style"}
	putStyle(r, c.Style)
	w.line(r.Line(format.StyleLayout(version)))
	w.record("Axes", itoa(c.XAxis), itoa(c.YAxis))
	w.record("Visible", btoa(c.Visible))
	w.close("Function")
}

// writeSpectrogram emits a <spectrogram> block with tab-indented sub-records.
func writeSpectrogram(w *writer, s *models.Spectrogram) {
	sub := func(tag, value string) {
		w.line(format.Separator + format.InlineTag(tag, value))
	}
	w.open("spectrogram")
	sub("matrix", s.Matrix)
	sub("ColorPolicy", s.ColorPolicy)
	if s.ColorMapFile != "" {
		sub("ColorMapFile", s.ColorMapFile)
	}
	sub("Image", btoa(s.Image))
	sub("ContourLines", btoa(s.ContourLines))
	sub("Levels", itoa(s.Levels))
	sub("PenColor", string(s.PenColor))
	sub("PenWidth", ftoa(s.PenWidth))
	sub("PenStyle", itoa(s.PenStyle))
	sub("IntensityChanged", btoa(s.IntensityChanged))
	if s.ColorBar != nil {
		sub("ColorBar", format.Join("", itoa(s.ColorBar.Axis), itoa(s.ColorBar.Width)))
	}
	sub("Visible", btoa(s.Visible))
	w.close("spectrogram")
}
