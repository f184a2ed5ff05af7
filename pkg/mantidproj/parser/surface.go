package parser

import (
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// SurfaceFunctionFields is the layout of the SurfaceFunction record.
var SurfaceFunctionFields = []string{"key", "source", "data", "xl", "xr", "yl", "yr", "zl", "zr"}

// buildSurfacePlot reads a <SurfacePlot> block.
func buildSurfacePlot(l *loader, body *lineSource) (models.Window, error) {
	h, err := readHeader(body, []string{"caption", "birth"})
	if err != nil {
		return nil, err
	}
	sp := models.NewSurfacePlot(h.String("caption"))
	sp.Birth = h.String("birth")

	for {
		line, ok := body.next()
		if !ok {
			break
		}
		fields := format.Fields(line)
		if done, err := l.applyCommon(&sp.WindowBase, fields); done {
			if err != nil {
				return sp, NewEntityError(sp.Name, tagSurfacePlot, body.lineNo(), err)
			}
			continue
		}
		r := format.Decode(fields, []string{"key", "a", "b", "c"})
		switch fields[0] {
		case "SurfaceFunction":
			if err := l.readSurfaceSource(sp, format.Decode(fields, SurfaceFunctionFields)); err != nil {
				return sp, NewEntityError(sp.Name, tagSurfacePlot, body.lineNo(), err)
			}
		case "title":
			sp.Title = r.String("a")
		case "rotation":
			sp.Rotation = [3]float64{r.Float("a", 0), r.Float("b", 0), r.Float("c", 0)}
		case "zoom":
			sp.Zoom = r.Float("a", 1)
		case "scaling":
			sp.Scaling = [3]float64{r.Float("a", 1), r.Float("b", 1), r.Float("c", 1)}
		case "style":
			sp.PlotStyle, sp.CoordStyle, sp.FloorStyle = r.Int("a", 0), r.Int("b", 0), r.Int("c", 0)
		default:
			sp.Extra = append(sp.Extra, line)
		}
	}
	return sp, nil
}

// readSurfaceSource decodes the data source and bounds of a surface plot.
// Matrix and table sources must exist; formulas are rename-resolved.
func (l *loader) readSurfaceSource(sp *models.SurfacePlot, r format.Record) error {
	sp.Source = models.SurfaceSource(r.String("source"))
	data := r.String("data")
	switch sp.Source {
	case models.SurfaceFromMatrix:
		data = l.names.ResolveName(data)
		if _, ok := l.p.Tree.FindMatrix(data); !ok {
			return unresolved("matrix", data)
		}
	case models.SurfaceFromTable:
		resolved, err := l.resolveColumn(data)
		if err != nil {
			return err
		}
		data = resolved
	default:
		sp.Source = models.SurfaceFromFunction
		data = l.names.Resolve(data)
	}
	sp.Data = data
	sp.XMin, sp.XMax = r.Float("xl", 0), r.Float("xr", 1)
	sp.YMin, sp.YMax = r.Float("yl", 0), r.Float("yr", 1)
	sp.ZMin, sp.ZMax = r.Float("zl", 0), r.Float("zr", 1)
	return nil
}
