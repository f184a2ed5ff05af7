package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// chartKind is the plot family of an OOXML chart element.
type chartKind int

const (
	chartLine chartKind = iota
	chartBar
	chartArea
	chartPie
	chartScatter
)

// chartTypeMap maps OOXML chart element tags to the plot family they import as.
var chartTypeMap = map[string]chartKind{
	"lineChart":     chartLine,
	"line3DChart":   chartLine,
	"stockChart":    chartLine,
	"radarChart":    chartLine,
	"barChart":      chartBar,
	"bar3DChart":    chartBar,
	"areaChart":     chartArea,
	"area3DChart":   chartArea,
	"pieChart":      chartPie,
	"pie3DChart":    chartPie,
	"doughnutChart": chartPie,
	"ofPieChart":    chartPie,
	"scatterChart":  chartScatter,
	"bubbleChart":   chartScatter,
}

// chartSeries holds the cell references of one series.
type chartSeries struct {
	name   string
	xRange string
	yRange string
}

// chart holds what the importer needs from one embedded chart.
type chart struct {
	name       string
	kind       chartKind
	title      string
	yAxisTitle string
	yAxisRange []float64
	series     []chartSeries
	left       int
	top        int
	width      int
	height     int
}

// readCharts returns the charts of an xlsx file keyed by sheet name. Sheets
// without drawings, and drawings whose chart parts are missing, contribute
// nothing.
func readCharts(xlsxPath string) (map[string][]chart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	pkg := newPackage(&r.Reader)

	const workbook = "xl/workbook.xml"
	data, err := pkg.read(workbook)
	if err != nil {
		return nil, err
	}
	sheets, err := workbookSheets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", workbook, err)
	}
	rels, err := pkg.relationships(workbook)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]chart)
	for _, rel := range ofKind(rels, relWorksheet) {
		name, ok := sheets[rel.id]
		if !ok {
			continue
		}
		charts, err := pkg.sheetCharts(rel.target)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		if len(charts) > 0 {
			result[name] = charts
		}
	}
	return result, nil
}

// sheetCharts reads the charts anchored in the drawings of one worksheet.
func (p *ooxmlPackage) sheetCharts(sheetPart string) ([]chart, error) {
	rels, err := p.relationships(sheetPart)
	if errors.Is(err, errPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var charts []chart
	for _, drawing := range ofKind(rels, relDrawing) {
		found, err := p.drawingCharts(drawing.target)
		if err != nil {
			return nil, err
		}
		charts = append(charts, found...)
	}
	return charts, nil
}

// drawingCharts reads the charts of one drawing part in anchor order.
func (p *ooxmlPackage) drawingCharts(drawingPart string) ([]chart, error) {
	data, err := p.read(drawingPart)
	if errors.Is(err, errPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	positions := parseDrawingForCharts(data)
	if len(positions) == 0 {
		return nil, nil
	}
	rels, err := p.relationships(drawingPart)
	if errors.Is(err, errPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string)
	for _, r := range ofKind(rels, relChart) {
		targets[r.id] = r.target
	}

	var charts []chart
	for _, pos := range positions {
		target, ok := targets[pos.rID]
		if !ok {
			continue
		}
		data, err := p.read(target)
		if errors.Is(err, errPartNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		c := parseChartXML(data)
		c.name, c.left, c.top, c.width, c.height = pos.name, pos.left, pos.top, pos.width, pos.height
		charts = append(charts, c)
	}
	return charts, nil
}

// chartPosition holds position info from drawing.xml.
type chartPosition struct {
	rID    string
	name   string
	left   int
	top    int
	width  int
	height int
}

// parseDrawingForCharts parses drawing XML to find chart positions in
// document order.
func parseDrawingForCharts(data []byte) []chartPosition {
	var result []chartPosition
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "graphicFrame" {
			if pos := parseGraphicFrameContent(decoder); pos.rID != "" {
				result = append(result, pos)
			}
		}
	}
	return result
}

// parseGraphicFrameContent parses graphicFrame content.
func parseGraphicFrameContent(decoder *xml.Decoder) chartPosition {
	var pos chartPosition
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						pos.name = attr.Value
					}
				}
			case "xfrm":
				pos.left, pos.top, pos.width, pos.height = decodeXfrm(decoder, t)
				depth--
			case "chart":
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						pos.rID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return pos
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) chart {
	var c chart
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, &c)
		}
	}
	return c
}

// parseChartElement parses the c:chart element.
func parseChartElement(decoder *xml.Decoder, c *chart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				c.title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				parsePlotArea(decoder, c)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartTitle parses a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var title string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := elementText(decoder); err == nil {
					title = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return title
}

// parsePlotArea parses the plot area element. The first chart type element
// decides the plot family.
func parsePlotArea(decoder *xml.Decoder, c *chart) {
	depth := 1
	typed := false

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if kind, ok := chartTypeMap[t.Name.Local]; ok {
				if !typed {
					c.kind, typed = kind, true
				}
				c.series = append(c.series, parseChartSeries(decoder)...)
				depth--
			} else if t.Name.Local == "valAx" && c.yAxisTitle == "" {
				c.yAxisTitle, c.yAxisRange = parseValueAxis(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartSeries parses series elements within a chart type.
func parseChartSeries(decoder *xml.Decoder) []chartSeries {
	var series []chartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "ser" {
				series = append(series, parseSingleSeries(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return series
}

// parseSingleSeries parses a single series element. Scatter charts use
// xVal/yVal where category charts use cat/val.
func parseSingleSeries(decoder *xml.Decoder) chartSeries {
	var s chartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.name = parseSeriesName(decoder)
				depth--
			case "cat", "xVal":
				s.xRange = parseSeriesRange(decoder)
				depth--
			case "val", "yVal":
				s.yRange = parseSeriesRange(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return s
}

// parseSeriesName parses a series name from its tx element.
func parseSeriesName(decoder *xml.Decoder) string {
	var name string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "v" {
				if txt, err := elementText(decoder); err == nil {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return name
}

// parseSeriesRange parses the range reference of a cat or val element.
func parseSeriesRange(decoder *xml.Decoder) string {
	var ref string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" && ref == "" {
				if txt, err := elementText(decoder); err == nil {
					ref = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return ref
}

// parseValueAxis parses a value axis element.
func parseValueAxis(decoder *xml.Decoder) (title string, axisRange []float64) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				title = parseChartTitle(decoder)
				depth--
			case "scaling":
				axisRange = parseAxisScaling(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return
}

// parseAxisScaling parses an axis scaling element.
func parseAxisScaling(decoder *xml.Decoder) []float64 {
	var min, max *float64
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			for _, attr := range t.Attr {
				if attr.Name.Local != "val" {
					continue
				}
				v, err := strconv.ParseFloat(attr.Value, 64)
				if err != nil {
					continue
				}
				switch t.Name.Local {
				case "min":
					min = &v
				case "max":
					max = &v
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if min != nil && max != nil {
		return []float64{*min, *max}
	}
	return nil
}

// toMultiLayer builds a plot window whose curves are bound to the imported
// tables. Series whose ranges do not fall in an imported table are dropped;
// a chart without any bound series yields nil.
func (c chart) toMultiLayer(tables map[string]*sheetTable) *models.MultiLayer {
	w, h := c.width, c.height
	if w <= 0 || h <= 0 {
		w, h = 400, 300
	}
	layer := models.NewLayer()
	layer.Geometry = models.Rect{W: w, H: h}
	layer.Title = c.title
	layer.AxisTitles[models.AxisLeft] = c.yAxisTitle
	if len(c.yAxisRange) == 2 {
		layer.Scales = append(layer.Scales, models.Scale{
			Axis:       models.AxisLeft,
			From:       c.yAxisRange[0],
			To:         c.yAxisRange[1],
			MajorTicks: 5,
			MinorTicks: 5,
		})
	}

	var legend []string
	for i, s := range c.series {
		if curve := c.bindSeries(i, s, tables); curve != nil {
			layer.Curves = append(layer.Curves, curve)
			if s.name != "" {
				legend = append(legend, s.name)
			}
		}
	}
	if len(layer.Curves) == 0 {
		return nil
	}
	if len(legend) > 0 {
		layer.Legend = &models.Legend{Text: strings.Join(legend, "\n"), X: w - 100, Y: 10}
	}

	name := c.name
	if name == "" {
		name = "Graph"
	}
	ml := models.NewMultiLayer(sanitize(name, "Graph"))
	ml.Geometry = models.Geometry{X: c.left, Y: c.top, W: w, H: h}
	ml.CanvasWidth, ml.CanvasHeight = w, h
	ml.Layers = []*models.Layer{layer}
	return ml
}

func (c chart) bindSeries(i int, s chartSeries, tables map[string]*sheetTable) models.Curve {
	sheet, yAreas := parseRangeRef(s.yRange)
	st := tables[sheet]
	if st == nil || len(yAreas) == 0 {
		return nil
	}
	yArea := yAreas[0]
	y := st.column(yArea.C1)
	if y == "" {
		return nil
	}

	first := st.area.R1
	if st.header {
		first++
	}
	start, end := yArea.R1-first, yArea.R2-first
	if start < 0 {
		start = 0
	}
	color := models.Color(strconv.Itoa(i % 24))

	if c.kind == chartPie {
		return &models.PieCurve{
			YColumn: y, PenColor: "0", PenWidth: 1, PenStyle: 1, FirstColor: color, BrushStyle: 1,
			StartRow: start, EndRow: end, Visible: true,
			StartAzimuth: 270, ViewAngle: 90, Thickness: 33, EdgeDistance: 25,
			AutoLabels: true, Percentages: true,
		}
	}

	x := st.firstX()
	if xSheet, xAreas := parseRangeRef(s.xRange); len(xAreas) > 0 && tables[xSheet] == st {
		if col := st.column(xAreas[0].C1); col != "" {
			x = col
		}
	}
	if x == "" {
		return nil
	}

	style := models.CurveStyle{Connect: 1, LineColor: color, LineWidth: 1, SymbolEdgeColor: color, SymbolFillColor: color}
	dc := &models.DataCurve{XColumn: x, YColumn: y, Style: style, Span: models.DefaultSpan()}
	dc.Span.StartRow, dc.Span.EndRow = start, end
	switch c.kind {
	case chartBar:
		dc.Type = models.PlotVerticalBars
		dc.Bars = &models.BarParams{}
	case chartArea:
		dc.Type = models.PlotArea
		dc.Style.AreaFill = true
		dc.Style.AreaFillColor = color
	case chartScatter:
		dc.Type = models.PlotScatter
		dc.Style.Connect = 0
		dc.Style.SymbolType = 1
		dc.Style.SymbolSize = 7
	default:
		dc.Type = models.PlotLine
	}
	return dc
}

// firstX returns the full name of the first X column of st, or of its first
// column when none is designated X.
func (st *sheetTable) firstX() string {
	t := st.table
	for i, c := range t.Columns {
		if c.Designation == models.DesignationX {
			return t.FullColumnName(i)
		}
	}
	if len(t.Columns) > 0 {
		return t.FullColumnName(0)
	}
	return ""
}
