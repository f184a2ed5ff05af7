package parser

import (
	"fmt"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// designations lists the header suffixes in the order they are tried.
var designations = []models.Designation{
	models.DesignationXError,
	models.DesignationYError,
	models.DesignationX,
	models.DesignationY,
	models.DesignationZ,
	models.DesignationLabel,
	models.DesignationNone,
}

// buildTable reads a <table> block.
func buildTable(l *loader, body *lineSource) (models.Window, error) {
	h, err := readHeader(body, []string{"name", "rows", "cols", "birth"})
	if err != nil {
		return nil, err
	}
	rows, cols, err := gridSize(h, tagTable)
	if err != nil {
		return nil, err
	}
	t := models.NewTable(h.String("name"), rows, cols)
	t.Birth = h.String("birth")
	if l.version < format.TableColTypeSince {
		for i := range t.Columns {
			t.Columns[i].Type = "0;0/13"
		}
	}

	for {
		line, ok := body.next()
		if !ok {
			break
		}
		if tag, ok := format.IsBareOpen(line); ok && tag == "data" {
			rows, _, err := body.block("data")
			if err != nil {
				return t, err
			}
			readCells(t.Cells, rows)
			continue
		}
		fields := format.Fields(line)
		if done, err := l.applyCommon(&t.WindowBase, fields); done {
			if err != nil {
				return t, NewEntityError(t.Name, tagTable, body.lineNo(), err)
			}
			continue
		}
		if !l.applyTableRecord(t, fields) {
			t.Extra = append(t.Extra, line)
		}
	}
	return t, nil
}

// applyTableRecord handles the per-column records of a table.
func (l *loader) applyTableRecord(t *models.Table, fields []string) bool {
	values := fields[1:]
	each := func(fn func(c *models.Column, v string)) {
		for i, v := range values {
			if i < len(t.Columns) {
				fn(&t.Columns[i], v)
			}
		}
	}
	switch fields[0] {
	case "header":
		each(func(c *models.Column, v string) { l.parseHeaderEntry(c, v) })
		if l.version < format.HeaderDesignationsSince {
			for i := range t.Columns {
				t.Columns[i].Designation = models.DesignationY
			}
			if len(t.Columns) > 0 {
				t.Columns[0].Designation = models.DesignationX
			}
		}
	case "ColWidth":
		each(func(c *models.Column, v string) { c.Width = format.Atoi(v, 100) })
	case "ColType":
		each(func(c *models.Column, v string) { c.Type = v })
	case "ReadOnlyColumn":
		each(func(c *models.Column, v string) { c.ReadOnly = format.ParseBool(v, false) })
	case "HiddenColumn":
		each(func(c *models.Column, v string) { c.Hidden = format.ParseBool(v, false) })
	case "Comments":
		each(func(c *models.Column, v string) { c.Comment = v })
	case "com":
		r := format.Decode(fields, []string{"key", "column", "formula"})
		if i := t.ColumnIndex(r.String("column")); i >= 0 {
			t.Columns[i].Formula = r.String("formula")
		}
	default:
		return false
	}
	return true
}

// parseHeaderEntry splits "colA[X]" into name and designation.
func (l *loader) parseHeaderEntry(c *models.Column, v string) {
	c.Name = v
	c.Designation = models.DesignationY
	for _, d := range designations {
		suffix := "[" + string(d) + "]"
		if strings.HasSuffix(v, suffix) {
			c.Name = strings.TrimSuffix(v, suffix)
			c.Designation = d
			return
		}
	}
}

// MaxGridCells bounds the rows*cols of a table or matrix header.
const MaxGridCells = 1 << 26

// gridSize validates the dimensions of a table or matrix header record.
func gridSize(h format.Record, tag string) (int, int, error) {
	rows, cols := h.Int("rows", 0), h.Int("cols", 0)
	if rows < 0 || cols < 0 || rows > MaxGridCells || cols > MaxGridCells || cols > 0 && rows > MaxGridCells/cols {
		return 0, 0, NewEntityError(h.String("name"), tag, 1, fmt.Errorf("invalid size %d x %d", rows, cols))
	}
	return rows, cols, nil
}

// readCells fills grid from "<row>\t<v0>\t<v1>..." records. Rows or columns
// outside the grid are ignored.
func readCells(grid [][]string, rows []string) {
	for _, line := range rows {
		fields := format.Fields(line)
		row := format.Atoi(fields[0], -1)
		if row < 0 || row >= len(grid) {
			continue
		}
		for c, v := range fields[1:] {
			if c < len(grid[row]) {
				grid[row][c] = v
			}
		}
	}
}

// buildMatrix reads a <matrix> block.
func buildMatrix(l *loader, body *lineSource) (models.Window, error) {
	h, err := readHeader(body, []string{"name", "rows", "cols", "birth"})
	if err != nil {
		return nil, err
	}
	rows, cols, err := gridSize(h, tagMatrix)
	if err != nil {
		return nil, err
	}
	m := models.NewMatrix(h.String("name"), rows, cols)
	m.Birth = h.String("birth")

	for {
		line, ok := body.next()
		if !ok {
			break
		}
		if tag, ok := format.IsBareOpen(line); ok && tag == "data" {
			rows, _, err := body.block("data")
			if err != nil {
				return m, err
			}
			readCells(m.Cells, rows)
			continue
		}
		fields := format.Fields(line)
		if done, err := l.applyCommon(&m.WindowBase, fields); done {
			if err != nil {
				return m, NewEntityError(m.Name, tagMatrix, body.lineNo(), err)
			}
			continue
		}
		r := format.Decode(fields, []string{"key", "a", "b", "c", "d"})
		switch fields[0] {
		case "ColWidth":
			m.ColumnWidth = r.Int("a", 100)
		case "Formula":
			m.Formula = strings.Join(fields[1:], format.Separator)
		case "TextFormat":
			m.TextFormat = r.String("a")
			m.Precision = r.Int("b", 6)
		case "Coordinates":
			m.X0, m.X1 = r.Float("a", 1), r.Float("b", 10)
			m.Y0, m.Y1 = r.Float("c", 1), r.Float("d", 10)
		case "ViewType":
			m.ViewType = r.Int("a", 0)
		case "HeaderViewType":
			m.HeaderViewType = r.Int("a", 0)
		case "ColorPolicy":
			m.ColorPolicy = r.Int("a", 0)
		default:
			m.Extra = append(m.Extra, line)
		}
	}
	if l.version < format.MatrixViewSince {
		m.ViewType, m.HeaderViewType, m.ColorPolicy = 0, 0, 0
	}
	return m, nil
}

// buildNote reads a <note> block.
func buildNote(l *loader, body *lineSource) (models.Window, error) {
	h, err := readHeader(body, []string{"name", "birth"})
	if err != nil {
		return nil, err
	}
	n := &models.Note{WindowBase: models.WindowBase{Name: h.String("name"), Birth: h.String("birth")}}

	var text []string
	for {
		line, ok := body.next()
		if !ok {
			break
		}
		if tag, ok := format.IsBareOpen(line); ok && tag == "content" {
			content, _, err := body.block("content")
			if err != nil {
				return n, err
			}
			for _, line := range content {
				text = append(text, format.UnescapeTextLine(line))
			}
			continue
		}
		fields := format.Fields(line)
		if done, err := l.applyCommon(&n.WindowBase, fields); done {
			if err != nil {
				return n, NewEntityError(n.Name, tagNote, body.lineNo(), err)
			}
			continue
		}
		if l.version < format.NoteContentSince {
			text = append(text, line)
			continue
		}
		return n, NewEntityError(n.Name, tagNote, body.lineNo(), fmt.Errorf("unexpected record %q", fields[0]))
	}
	n.Text = strings.Join(text, "\n")
	return n, nil
}

// buildExternalMatrix reads a <mantidmatrix> block.
func buildExternalMatrix(l *loader, body *lineSource) (models.Window, error) {
	base, workspace, extra, err := l.readExternal(body, tagMantidMatrix)
	if err != nil {
		return nil, err
	}
	return &models.ExternalMatrix{WindowBase: base, Workspace: workspace, Extra: extra}, nil
}

// buildInstrumentView reads an <instrumentwindow> block.
func buildInstrumentView(l *loader, body *lineSource) (models.Window, error) {
	base, workspace, extra, err := l.readExternal(body, tagInstrumentWindow)
	if err != nil {
		return nil, err
	}
	return &models.InstrumentView{WindowBase: base, Workspace: workspace, Extra: extra}, nil
}

func (l *loader) readExternal(body *lineSource, tag string) (models.WindowBase, string, []string, error) {
	h, err := readHeader(body, []string{"name", "workspace", "birth"})
	if err != nil {
		return models.WindowBase{}, "", nil, err
	}
	base := models.WindowBase{Name: h.String("name"), Birth: h.String("birth")}
	var extra []string
	for {
		line, ok := body.next()
		if !ok {
			break
		}
		done, err := l.applyCommon(&base, format.Fields(line))
		if err != nil {
			return base, "", nil, NewEntityError(base.Name, tag, body.lineNo(), err)
		}
		if !done {
			extra = append(extra, line)
		}
	}
	return base, h.String("workspace"), extra, nil
}
