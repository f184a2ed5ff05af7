package output

import (
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

func writeTable(w *writer, t *models.Table, base models.WindowBase) {
	w.open("table")
	w.record(base.Name, itoa(t.Rows()), itoa(len(t.Columns)), base.Birth)
	writeCommon(w, base)

	perColumn := func(key string, value func(c models.Column) string) {
		fields := []string{key}
		for _, c := range t.Columns {
			fields = append(fields, value(c))
		}
		w.record(fields...)
	}
	perColumn("header", func(c models.Column) string { return c.Name + "[" + string(c.Designation) + "]" })
	perColumn("ColWidth", func(c models.Column) string { return itoa(c.Width) })
	perColumn("ColType", func(c models.Column) string { return c.Type })
	perColumn("ReadOnlyColumn", func(c models.Column) string { return btoa(c.ReadOnly) })
	perColumn("HiddenColumn", func(c models.Column) string { return btoa(c.Hidden) })
	perColumn("Comments", func(c models.Column) string { return c.Comment })
	for _, c := range t.Columns {
		if c.Formula != "" {
			w.record("com", c.Name, c.Formula)
		}
	}
	w.lines(t.Extra)
	writeCells(w, t.Cells)
	w.close("table")
}

// writeCells emits the <data> block; rows without any value are omitted.
func writeCells(w *writer, cells [][]string) {
	w.open("data")
	for i, row := range cells {
		if strings.Join(row, "") == "" {
			continue
		}
		w.record(append([]string{itoa(i)}, row...)...)
	}
	w.close("data")
}

func writeMatrix(w *writer, m *models.Matrix, base models.WindowBase) {
	w.open("matrix")
	w.record(base.Name, itoa(m.Rows()), itoa(m.Cols()), base.Birth)
	writeCommon(w, base)
	w.record("ColWidth", itoa(m.ColumnWidth))
	if m.Formula != "" {
		w.record("Formula", m.Formula)
	}
	w.record("TextFormat", m.TextFormat, itoa(m.Precision))
	w.record("Coordinates", ftoa(m.X0), ftoa(m.X1), ftoa(m.Y0), ftoa(m.Y1))
	w.record("ViewType", itoa(m.ViewType))
	w.record("HeaderViewType", itoa(m.HeaderViewType))
	w.record("ColorPolicy", itoa(m.ColorPolicy))
	w.lines(m.Extra)
	writeCells(w, m.Cells)
	w.close("matrix")
}

func writeNote(w *writer, n *models.Note, base models.WindowBase) {
	w.open("note")
	w.record(base.Name, base.Birth)
	writeCommon(w, base)
	w.open("content")
	if n.Text != "" {
		w.lines(escapeLines(n.Text))
	}
	w.close("content")
	w.close("note")
}

func writeSurface(w *writer, s *models.SurfacePlot, base models.WindowBase) {
	w.open("SurfacePlot")
	w.record(base.Name, base.Birth)
	writeCommon(w, base)
	w.record("SurfaceFunction", string(s.Source), s.Data,
		ftoa(s.XMin), ftoa(s.XMax), ftoa(s.YMin), ftoa(s.YMax), ftoa(s.ZMin), ftoa(s.ZMax))
	if s.Title != "" {
		w.record("title", s.Title)
	}
	w.record("rotation", ftoa(s.Rotation[0]), ftoa(s.Rotation[1]), ftoa(s.Rotation[2]))
	w.record("zoom", ftoa(s.Zoom))
	w.record("scaling", ftoa(s.Scaling[0]), ftoa(s.Scaling[1]), ftoa(s.Scaling[2]))
	w.record("style", itoa(s.PlotStyle), itoa(s.CoordStyle), itoa(s.FloorStyle))
	w.lines(s.Extra)
	w.close("SurfacePlot")
}
