package parser

import (
	"errors"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

const (
	tagGraph       = "graph"
	tagFunction    = "Function"
	tagSpectrogram = "spectrogram"
)

// buildMultiLayer reads a <multiLayer> block and its <graph> layers.
func buildMultiLayer(l *loader, body *lineSource) (models.Window, error) {
	h, err := readHeader(body, []string{"caption", "layers", "rows", "cols", "birth"})
	if err != nil {
		return nil, err
	}
	ml := models.NewMultiLayer(h.String("caption"))
	ml.Birth = h.String("birth")
	ml.Rows = h.Int("rows", 1)
	ml.Cols = h.Int("cols", 1)

	fail := func(err error) (models.Window, error) {
		var ee *EntityError
		if errors.As(err, &ee) {
			return ml, err
		}
		return ml, NewEntityError(ml.Name, tagMultiLayer, body.lineNo(), err)
	}

	for {
		line, ok := body.next()
		if !ok {
			break
		}
		if tag, ok := format.IsBareOpen(line); ok && tag == tagGraph {
			graph, base, err := body.block(tagGraph)
			if err != nil {
				return ml, err
			}
			layer, err := l.readLayer(newLineSource(graph, base))
			if err != nil {
				return fail(err)
			}
			ml.Layers = append(ml.Layers, layer)
			continue
		}
		if name, v, ok := format.Inline(line); ok {
			switch name {
			case "ScaleLayersOnPrint":
				ml.ScaleLayersOnPrint = format.ParseBool(v, false)
				continue
			case "PrintCropmarks":
				ml.PrintCropmarks = format.ParseBool(v, false)
				continue
			}
		}
		fields := format.Fields(line)
		if done, err := l.applyCommon(&ml.WindowBase, fields); done {
			if err != nil {
				return fail(err)
			}
			continue
		}
		if l.version < format.PageLayoutSince {
			continue
		}
		r := format.Decode(fields, []string{"key", "a", "b", "c", "d"})
		switch fields[0] {
		case "Margins":
			ml.Margins = models.Margins{Left: r.Int("a", 5), Right: r.Int("b", 5), Top: r.Int("c", 5), Bottom: r.Int("d", 5)}
		case "Spacing":
			ml.RowSpacing, ml.ColSpacing = r.Int("a", 5), r.Int("b", 5)
		case "LayerCanvasSize":
			ml.CanvasWidth, ml.CanvasHeight = r.Int("a", 400), r.Int("b", 300)
		case "Alignment":
			ml.HAlign, ml.VAlign = r.Int("a", 0), r.Int("b", 0)
		}
	}
	if n := h.Int("layers", len(ml.Layers)); n != len(ml.Layers) {
		l.log.WithField("window", ml.Name).Debugf("header declares %d layers, found %d", n, len(ml.Layers))
	}
	return ml, nil
}

// readLayer reads the body of one <graph> block.
func (l *loader) readLayer(body *lineSource) (*models.Layer, error) {
	layer := models.NewLayer()
	var errorBars []format.Record

	for {
		line, ok := body.next()
		if !ok {
			break
		}
		if tag, ok := format.IsBareOpen(line); ok {
			sub, _, err := body.block(tag)
			if err != nil {
				return nil, err
			}
			switch tag {
			case tagFunction:
				layer.Curves = append(layer.Curves, l.readFunctionBlock(sub))
			case tagSpectrogram:
				sp, err := l.readSpectrogram(sub)
				if err != nil {
					return nil, err
				}
				layer.Curves = append(layer.Curves, sp)
			default:
				layer.Extra = append(layer.Extra, line)
				layer.Extra = append(layer.Extra, sub...)
				layer.Extra = append(layer.Extra, format.CloseTag(tag))
			}
			continue
		}

		fields := format.Fields(line)
		switch fields[0] {
		case "curve":
			c, err := l.readCurve(fields)
			if err != nil {
				return nil, err
			}
			layer.Curves = append(layer.Curves, c)
		case "PieCurve":
			c, err := l.readPie(fields)
			if err != nil {
				return nil, err
			}
			layer.Curves = append(layer.Curves, c)
		case "FunctionCurve":
			layer.Curves = append(layer.Curves, l.readInlineFunction(fields))
		case "ErrorBars":
			errorBars = append(errorBars, format.Decode(fields, format.ErrorBarFields.For(l.version)))
		default:
			if !l.applyLayerRecord(layer, fields) {
				layer.Extra = append(layer.Extra, line)
			}
		}
	}

	// Error bars attach to a master curve, so they are built last.
	for _, r := range errorBars {
		eb, err := l.readErrorBars(layer, r)
		if err != nil {
			return nil, err
		}
		layer.Curves = append(layer.Curves, eb)
	}
	return layer, nil
}

// applyLayerRecord decodes the fixed per-layer records.
func (l *loader) applyLayerRecord(layer *models.Layer, fields []string) bool {
	r := format.Decode(fields, []string{"key", "a", "b", "c", "d"})
	switch fields[0] {
	case format.LayerGeometryKey:
		layer.Geometry = format.DecodeRect(fields)
	case "PlotTitle":
		layer.Title = r.String("a")
		layer.TitleColor = l.color(r, "b")
		layer.TitleAlign = r.Int("c", 0)
	case "Background":
		layer.Background = l.color(r, "a")
		layer.BackgroundAlpha = r.Int("b", 255)
	case "Border":
		layer.BorderWidth = r.Int("a", 0)
		layer.BorderColor = l.color(r, "b")
	case "Margin":
		layer.Margin = r.Int("a", 0)
	case "EnabledAxes":
		for i := range layer.EnabledAxes {
			layer.EnabledAxes[i] = i+1 < len(fields) && format.ParseBool(fields[i+1], false)
		}
	case "AxesTitles":
		for i := range layer.AxisTitles {
			if i+1 < len(fields) {
				layer.AxisTitles[i] = fields[i+1]
			}
		}
	case "MajorTicks":
		for i := range layer.MajorTicks {
			if i+1 < len(fields) {
				layer.MajorTicks[i] = format.Atoi(fields[i+1], 3)
			}
		}
	case "MinorTicks":
		for i := range layer.MinorTicks {
			if i+1 < len(fields) {
				layer.MinorTicks[i] = format.Atoi(fields[i+1], 1)
			}
		}
	case "TicksLength":
		layer.MinorTickLength = r.Int("a", 5)
		layer.MajorTickLength = r.Int("b", 9)
	case "scale":
		s := format.Decode(fields, format.ScaleFields.For(l.version))
		layer.Scales = append(layer.Scales, models.Scale{
			Axis:       s.Int("axis", 0),
			From:       s.Float("from", 0),
			To:         s.Float("to", 0),
			Step:       s.Float("step", 0),
			MajorTicks: s.Int("majorTicks", 5),
			MinorTicks: s.Int("minorTicks", 5),
			Type:       s.Int("type", 0),
			Inverted:   s.Bool("inverted", false),
		})
	case "grid":
		layer.Grid = append([]string(nil), fields[1:]...)
	case "Legend":
		lg := format.Decode(fields, []string{"key", "text", "x", "y", "frame"})
		layer.Legend = &models.Legend{
			Text:  unescapeText(lg.String("text")),
			X:     lg.Int("x", 0),
			Y:     lg.Int("y", 0),
			Frame: lg.Int("frame", 0),
		}
	case "TextMarker":
		tm := format.Decode(fields, []string{"key", "x", "y", "text"})
		layer.TextMarkers = append(layer.TextMarkers, models.TextMarker{
			X:    tm.Int("x", 0),
			Y:    tm.Int("y", 0),
			Text: unescapeText(tm.String("text")),
		})
	case "LineMarker":
		lm := format.Decode(fields, []string{"key", "x0", "y0", "x1", "y1", "width", "color", "start", "end"})
		layer.LineMarkers = append(layer.LineMarkers, models.LineMarker{
			X0:         lm.Float("x0", 0),
			Y0:         lm.Float("y0", 0),
			X1:         lm.Float("x1", 0),
			Y1:         lm.Float("y1", 0),
			Width:      lm.Float("width", 1),
			Color:      l.color(lm, "color"),
			StartArrow: lm.Bool("start", false),
			EndArrow:   lm.Bool("end", false),
		})
	default:
		return false
	}
	return true
}

// color reads a color field, remapping legacy palette indices.
func (l *loader) color(r format.Record, name string) models.Color {
	return format.RemapColor(r.Color(name), l.version)
}

// unescapeText restores line breaks in single-record text fields.
func unescapeText(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// resolveColumn maps a full column reference through the rename map and
// checks that it exists.
func (l *loader) resolveColumn(name string) (string, error) {
	resolved := l.names.Resolve(name)
	if _, _, ok := l.p.Tree.FindColumn(resolved); !ok {
		return resolved, unresolved("column", name)
	}
	return resolved, nil
}
