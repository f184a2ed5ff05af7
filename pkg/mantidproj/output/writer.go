// Package output serializes a project tree: the project file writer and a
// JSON dump of the model.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// WriteOptions configures the project writer.
type WriteOptions struct {
	// Product is the header product token. Empty means MantidPlot.
	Product string
}

// writer buffers records and keeps the first write error.
type writer struct {
	w   *bufio.Writer
	err error
}

func (w *writer) line(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
		return
	}
	w.err = w.w.WriteByte('\n')
}

func (w *writer) record(fields ...string) {
	w.line(format.Join(fields...))
}

func (w *writer) open(tag string) {
	w.line(format.OpenTagLine(tag))
}

func (w *writer) close(tag string) {
	w.line(format.CloseTag(tag))
}

func (w *writer) lines(ls []string) {
	for _, l := range ls {
		w.line(l)
	}
}

// Write serializes tree in the current format version. Windows of the root
// folder come first, then every folder in depth-first order.
func Write(out io.Writer, tree *models.Tree, opts WriteOptions) error {
	product := opts.Product
	if product == "" {
		product = format.ProductMantidPlot
	}
	w := &writer{w: bufio.NewWriter(out)}

	w.line(format.HeaderFor(product, format.CurrentVersion).String())
	w.record(format.OpenTagLine("scripting-lang"), tree.ScriptingLanguage)
	w.record(format.OpenTagLine("windows"), strconv.Itoa(tree.WindowCount()))

	root := tree.Root()
	for _, win := range root.Windows {
		writeWindow(w, win, root.ActiveWindow)
	}
	writeLog(w, root.Log)

	order := tree.Walk(models.RootFolder)[1:]
	for i, id := range order {
		f := tree.Folder(id)
		fields := []string{format.OpenTagLine("folder"), f.Name, f.Birth, f.Modified}
		if id == tree.Current {
			fields = append(fields, "current")
		}
		w.record(fields...)
		w.line(format.InlineTag("open", format.FormatBool(f.Open)))
		for _, win := range f.Windows {
			writeWindow(w, win, f.ActiveWindow)
		}
		writeLog(w, f.Log)

		closes := tree.Depth(id)
		if i+1 < len(order) {
			closes = tree.Depth(id) - tree.Depth(order[i+1]) + 1
		}
		for ; closes > 0; closes-- {
			w.close("folder")
		}
	}

	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

func writeLog(w *writer, log string) {
	if log == "" {
		return
	}
	w.open("log")
	w.lines(escapeLines(log))
	w.close("log")
}

// escapeLines splits free text into lines safe to place inside a block.
func escapeLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = format.EscapeTextLine(line)
	}
	return lines
}

// writeWindow dispatches on the concrete window type. active names the
// folder's active window so its geometry carries the marker.
func writeWindow(w *writer, win models.Window, active string) {
	base := *win.Base()
	base.Geometry.Active = base.Name == active && active != ""
	switch v := win.(type) {
	case *models.Table:
		writeTable(w, v, base)
	case *models.Matrix:
		writeMatrix(w, v, base)
	case *models.Note:
		writeNote(w, v, base)
	case *models.MultiLayer:
		writeMultiLayer(w, v, base)
	case *models.SurfacePlot:
		writeSurface(w, v, base)
	case *models.ExternalMatrix:
		writeExternal(w, "mantidmatrix", base, v.Workspace, v.Extra)
	case *models.InstrumentView:
		writeExternal(w, "instrumentwindow", base, v.Workspace, v.Extra)
	default:
		w.err = fmt.Errorf("cannot write window %q of type %T", base.Name, win)
	}
}

// writeCommon emits the geometry and label records every window carries.
func writeCommon(w *writer, base models.WindowBase) {
	w.line(format.EncodeGeometry(format.GeometryKey, base.Geometry))
	w.record("WindowLabel", base.Label, strconv.Itoa(int(base.CaptionPolicy)))
}

func writeExternal(w *writer, tag string, base models.WindowBase, workspace string, extra []string) {
	w.open(tag)
	w.record(base.Name, workspace, base.Birth)
	writeCommon(w, base)
	w.lines(extra)
	w.close(tag)
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return format.FormatFloat(f) }

func btoa(b bool) string { return format.FormatBool(b) }
