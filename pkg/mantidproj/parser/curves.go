package parser

import (
	"fmt"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// readCurve decodes a "curve" record. The plot type in field 2 selects the
// layout of the remaining fields.
func (l *loader) readCurve(fields []string) (models.Curve, error) {
	if err := mustFields(fields, 4); err != nil {
		return nil, err
	}
	t := models.PlotType(format.Atoi(fields[2], 0))
	r := format.Decode(fields, format.CurveLayout(t, l.version))
	style := l.decodeStyle(r)
	span := decodeSpan(r)

	if t == models.PlotBox {
		y, err := l.resolveColumn(r.String("yColumn"))
		if err != nil {
			return nil, err
		}
		return &models.BoxCurve{
			YColumn:           y,
			X:                 r.Float("x", 0),
			Style:             style,
			MaxStyle:          r.Int("maxStyle", 0),
			P99Style:          r.Int("p99Style", 0),
			MeanStyle:         r.Int("meanStyle", 0),
			P1Style:           r.Int("p1Style", 0),
			MinStyle:          r.Int("minStyle", 0),
			BoxStyle:          r.Int("boxStyle", 0),
			BoxWidth:          r.Int("boxWidth", 80),
			BoxRangeType:      r.Int("boxRangeType", 0),
			BoxRange:          r.Float("boxRange", 0),
			WhiskersRangeType: r.Int("whiskersRangeType", 0),
			WhiskersRange:     r.Float("whiskersRange", 0),
			Span:              span,
		}, nil
	}

	x, err := l.resolveColumn(r.String("xColumn"))
	if err != nil && t != models.PlotHistogram {
		return nil, err
	}
	y, err := l.resolveColumn(r.String("yColumn"))
	if err != nil {
		return nil, err
	}

	switch {
	case t == models.PlotHistogram:
		return &models.HistogramCurve{
			XColumn: x,
			YColumn: y,
			Style:   style,
			Bars:    models.BarParams{Gap: r.Int("gap", 0), Offset: r.Int("offset", 0)},
			AutoBin: r.Bool("autoBin", true),
			BinSize: r.Float("binSize", 0),
			Begin:   r.Float("begin", 0),
			End:     r.Float("end", 0),
			Span:    span,
		}, nil

	case t.IsVector():
		endX, err := l.resolveColumn(r.String("endX"))
		if err != nil {
			return nil, err
		}
		endY, err := l.resolveColumn(r.String("endY"))
		if err != nil {
			return nil, err
		}
		v := &models.VectorCurve{
			Type:       t,
			XColumn:    x,
			YColumn:    y,
			EndX:       endX,
			EndY:       endY,
			Style:      style,
			Color:      l.color(r, "vectorColor"),
			PenWidth:   r.Float("penWidth", style.LineWidth),
			HeadLength: r.Int("headLength", 4),
			HeadAngle:  r.Int("headAngle", 45),
			Filled:     r.Bool("filled", false),
			Position:   r.Int("position", 0),
			Span:       span,
		}
		return v, nil
	}

	c := &models.DataCurve{Type: t, XColumn: x, YColumn: y, Style: style, Span: span}
	if t.IsBars() {
		c.Bars = &models.BarParams{Gap: r.Int("gap", 0), Offset: r.Int("offset", 0)}
	}
	return c, nil
}

// decodeStyle reads the shared pen/symbol/fill block of a curve record.
func (l *loader) decodeStyle(r format.Record) models.CurveStyle {
	return models.CurveStyle{
		Connect:         r.Int("connect", 1),
		LineColor:       l.color(r, "lineColor"),
		LineStyle:       r.Int("lineStyle", 0),
		LineWidth:       r.Float("lineWidth", 1),
		SymbolSize:      r.Int("symbolSize", 0),
		SymbolType:      r.Int("symbolType", 0),
		SymbolEdgeColor: l.color(r, "symbolEdgeColor"),
		SymbolFillColor: l.color(r, "symbolFillColor"),
		AreaFillColor:   l.color(r, "areaFillColor"),
		AreaFill:        r.Bool("areaFill", false),
		FillPattern:     r.Int("fillPattern", 0),
	}
}

// decodeSpan reads the trailer fields present in the record's version.
func decodeSpan(r format.Record) models.CurveSpan {
	s := models.DefaultSpan()
	s.StartRow = r.Int("startRow", s.StartRow)
	s.EndRow = r.Int("endRow", s.EndRow)
	s.XAxis = r.Int("xAxis", s.XAxis)
	s.YAxis = r.Int("yAxis", s.YAxis)
	s.Visible = r.Bool("visible", s.Visible)
	return s
}

// readPie decodes a PieCurve record.
func (l *loader) readPie(fields []string) (models.Curve, error) {
	if err := mustFields(fields, 2); err != nil {
		return nil, err
	}
	r := format.Decode(fields, format.PieFields.For(l.version))
	y, err := l.resolveColumn(r.String("yColumn"))
	if err != nil {
		return nil, err
	}
	return &models.PieCurve{
		YColumn:          y,
		PenColor:         l.color(r, "penColor"),
		PenWidth:         r.Float("penWidth", 1),
		PenStyle:         r.Int("penStyle", 1),
		FirstColor:       l.color(r, "firstColor"),
		BrushStyle:       r.Int("brushStyle", 1),
		StartRow:         r.Int("startRow", 0),
		EndRow:           r.Int("endRow", -1),
		Visible:          r.Bool("visible", true),
		StartAzimuth:     r.Float("startAzimuth", 270),
		ViewAngle:        r.Float("viewAngle", 90),
		Thickness:        r.Float("thickness", 33),
		HorizontalOffset: r.Float("hOffset", 0),
		EdgeDistance:     r.Float("edgeDist", 25),
		CounterClockwise: r.Bool("counterClockwise", false),
		AutoLabels:       r.Bool("autoLabels", true),
		Values:           r.Bool("values", false),
		Percentages:      r.Bool("percentages", true),
		Categories:       r.Bool("categories", false),
		FixedLabels:      r.Bool("fixedLabels", false),
	}, nil
}

// readErrorBars decodes a deferred ErrorBars record once every curve of the
// layer is known. The master curve is found by its (x, y) column pair.
func (l *loader) readErrorBars(layer *models.Layer, r format.Record) (models.Curve, error) {
	masterX := l.names.Resolve(r.String("masterX"))
	masterY := l.names.Resolve(r.String("masterY"))
	if !hasMaster(layer, masterX, masterY) {
		return nil, unresolved("error bar master curve", masterX+","+masterY)
	}
	errCol, err := l.resolveColumn(r.String("errColumn"))
	if err != nil {
		return nil, err
	}
	return &models.ErrorBars{
		Direction:   r.Int("direction", 1),
		MasterX:     masterX,
		MasterY:     masterY,
		ErrorColumn: errCol,
		Width:       r.Float("width", 1),
		CapLength:   r.Int("cap", 8),
		Color:       l.color(r, "color"),
		Through:     r.Bool("through", false),
		Plus:        r.Bool("plus", true),
		Minus:       r.Bool("minus", true),
	}, nil
}

func hasMaster(layer *models.Layer, x, y string) bool {
	for _, c := range layer.Curves {
		switch c := c.(type) {
		case *models.DataCurve:
			if c.XColumn == x && c.YColumn == y {
				return true
			}
		case *models.HistogramCurve:
			if c.XColumn == x && c.YColumn == y {
				return true
			}
		}
	}
	return false
}

// mustFields guards records that need at least n fields.
func mustFields(fields []string, n int) error {
	if len(fields) < n {
		return fmt.Errorf("%s record has %d fields, need %d", fields[0], len(fields), n)
	}
	return nil
}
