package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/sirupsen/logrus"
)

// Options configures a load pass.
type Options struct {
	// AcceptedProducts lists header products to accept; nil means
	// format.DefaultProducts.
	AcceptedProducts []string
	// Log is the session log. Nil means logrus.StandardLogger().
	Log logrus.FieldLogger
	// Host constructs windows. Nil keeps windows in the model only.
	Host Host
	// Target is the folder that receives the loaded root content.
	Target models.FolderID
	// NewFolder, when set, is created below Target and receives the loaded
	// content instead. It is removed again when the load fails.
	NewFolder *FolderSpec
}

// FolderSpec names and stamps a folder created by a load.
type FolderSpec struct {
	Name     string
	Birth    string
	Modified string
}

// Result describes a completed load.
type Result struct {
	Header            format.Header
	ScriptingLanguage string
	// DeclaredWindows is the count from the <windows> record.
	DeclaredWindows int
	// Loaded is the number of windows attached to the project.
	Loaded int
	// Renamed lists the name collisions resolved on load.
	Renamed []RenamePair
	// Dropped lists windows abandoned because of entity-local failures.
	Dropped []string
	// CurrentFolder is the folder marked current in the file, if any.
	CurrentFolder models.FolderID
	// Folder is the folder that received the loaded root content.
	Folder models.FolderID
}

// Entity block tags.
const (
	tagFolder           = "folder"
	tagOpen             = "open"
	tagLog              = "log"
	tagTable            = "table"
	tagMatrix           = "matrix"
	tagNote             = "note"
	tagMultiLayer       = "multiLayer"
	tagSurfacePlot      = "SurfacePlot"
	tagMantidMatrix     = "mantidmatrix"
	tagInstrumentWindow = "instrumentwindow"
	tagScriptingLang    = "scripting-lang"
	tagWindows          = "windows"
)

type buildFunc func(l *loader, body *lineSource) (models.Window, error)

// builders maps block tags to the pass that builds them. Tables, matrices,
// notes and external windows come first so plots can resolve them by name.
var builders = map[string]struct {
	pass  int
	build buildFunc
}{
	tagTable:            {1, buildTable},
	tagMatrix:           {1, buildMatrix},
	tagNote:             {1, buildNote},
	tagMantidMatrix:     {1, buildExternalMatrix},
	tagInstrumentWindow: {1, buildInstrumentView},
	tagMultiLayer:       {2, buildMultiLayer},
	tagSurfacePlot:      {2, buildSurfacePlot},
}

type loader struct {
	ctx     context.Context
	p       *models.Project
	opts    Options
	log     logrus.FieldLogger
	host    Host
	version int
	names   *RenameMap
	result  *Result

	src       *lineSource
	bodyStart int
	// folders holds the ids created in pass 1, in file order.
	folders []models.FolderID
	// ordinal holds each attached window's position in the file.
	ordinal     map[models.Window]int
	constructed []models.Window
}

// Load parses a project stream into p. On success the loaded folders and
// windows are attached below opts.Target. On a structural error or
// cancellation p is left exactly as it was.
func Load(ctx context.Context, r io.Reader, p *models.Project, opts Options) (*Result, error) {
	if !p.TryBegin() {
		return nil, ErrBusy
	}
	defer p.End()

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	l := &loader{
		ctx:     ctx,
		p:       p,
		opts:    opts,
		log:     opts.Log,
		host:    opts.Host,
		src:     newLineSource(lines, 0),
		result:  &Result{CurrentFolder: models.NoFolder},
		ordinal: make(map[models.Window]int),
	}
	if l.log == nil {
		l.log = logrus.StandardLogger()
	}
	if l.host == nil {
		l.host = nopHost{}
	}
	if err := l.readPreamble(); err != nil {
		return nil, err
	}

	existing := make([]string, 0, p.Tree.WindowCount())
	for _, w := range p.Tree.Windows() {
		existing = append(existing, w.Base().Name)
	}
	l.names = NewRenameMap(existing)

	snapshot, err := p.Tree.Clone()
	if err != nil {
		return nil, fmt.Errorf("snapshot project: %w", err)
	}
	prevBlocked := p.BlockSignals(true)

	if nf := opts.NewFolder; nf != nil {
		l.opts.Target = p.AddFolder(opts.Target, nf.Name, nf.Birth, nf.Modified)
	}
	l.result.Folder = l.opts.Target

	err = l.pass(1)
	if err == nil {
		err = l.pass(2)
	}
	if err != nil {
		p.Tree = snapshot
		for _, w := range l.constructed {
			l.host.DiscardWindow(w)
		}
		p.BlockSignals(prevBlocked)
		return nil, err
	}

	l.orderWindows()
	if l.result.CurrentFolder != models.NoFolder {
		p.Tree.Current = l.result.CurrentFolder
	}
	if l.result.ScriptingLanguage != "" && l.opts.Target == models.RootFolder {
		p.Tree.ScriptingLanguage = l.result.ScriptingLanguage
	}
	l.result.Loaded = len(l.constructed)
	l.result.Renamed = l.names.Pairs()
	if l.result.DeclaredWindows != l.result.Loaded+len(l.result.Dropped) {
		l.log.WithFields(logrus.Fields{
			"declared": l.result.DeclaredWindows,
			"found":    l.result.Loaded + len(l.result.Dropped),
		}).Debug("window count differs from <windows> record")
	}
	p.BlockSignals(prevBlocked)
	p.NotifyTreeChange()
	return l.result, nil
}

// readPreamble reads the header, scripting language and window count records.
func (l *loader) readPreamble() error {
	line, ok := l.src.next()
	if !ok {
		return fmt.Errorf("%w: empty stream", ErrMalformedHeader)
	}
	h, err := format.ParseHeader(line, l.opts.AcceptedProducts)
	if err != nil {
		return err
	}
	l.result.Header = h
	l.version = h.Version()

	for {
		line, ok := l.src.peek()
		if !ok {
			break
		}
		tag, _ := format.OpenTag(line)
		fields := format.Fields(line)
		if tag == tagScriptingLang {
			if len(fields) > 1 {
				l.result.ScriptingLanguage = fields[1]
			}
		} else if tag == tagWindows {
			if len(fields) > 1 {
				l.result.DeclaredWindows = format.Atoi(fields[1], 0)
			}
		} else {
			break
		}
		l.src.next()
	}
	l.bodyStart = l.src.pos
	return nil
}

// pass walks the body once, maintaining the folder cursor, and builds the
// entities assigned to pass n.
func (l *loader) pass(n int) error {
	l.src.pos = l.bodyStart
	cursor := l.opts.Target
	depth := 0
	folderIndex := 0
	entity := 0

	for {
		line, ok := l.src.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if format.IsClose(line, tagFolder) {
			if depth == 0 {
				return fmt.Errorf("%w: line %d", ErrUnbalancedFolders, l.src.lineNo())
			}
			cursor = l.p.Tree.Folder(cursor).Parent
			depth--
			continue
		}

		tag, isTag := format.OpenTag(line)
		if !isTag {
			l.log.WithField("line", l.src.lineNo()).Debug("skipping stray record")
			continue
		}

		switch {
		case tag == tagFolder:
			if n == 1 {
				cursor = l.openFolder(cursor, format.Fields(line))
			} else {
				cursor = l.folders[folderIndex]
			}
			folderIndex++
			depth++

		case tag == tagOpen:
			if _, v, ok := format.Inline(line); ok && n == 1 {
				l.p.Tree.Folder(cursor).Open = format.ParseBool(v, false)
			}

		case tag == tagLog:
			body, _, err := l.src.block(tagLog)
			if err != nil {
				return err
			}
			if n == 2 {
				f := l.p.Tree.Folder(cursor)
				f.Log += unescapeLines(body)
			}

		default:
			b, known := builders[tag]
			if !known {
				if err := l.skipUnknown(line, tag); err != nil {
					return err
				}
				continue
			}
			start := l.src.lineNo()
			body, base, err := l.src.block(tag)
			if err != nil {
				return err
			}
			entity++
			if b.pass != n {
				continue
			}
			if err := l.ctx.Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrCancelled, err)
			}
			if err := l.buildEntity(tag, b.build, newLineSource(body, base), cursor, start, entity); err != nil {
				return err
			}
		}
	}

	if depth != 0 {
		return fmt.Errorf("%w: %d folder(s) still open at end of stream", ErrTruncatedBlock, depth)
	}
	return nil
}

// openFolder creates a folder from a <folder> record below cursor.
func (l *loader) openFolder(cursor models.FolderID, fields []string) models.FolderID {
	r := format.Decode(fields, []string{"tag", "name", "birth", "modified", "current"})
	id := l.p.AddFolder(cursor, r.String("name"), r.String("birth"), r.String("modified"))
	if r.String("current") == "current" {
		l.result.CurrentFolder = id
	}
	l.folders = append(l.folders, id)
	return id
}

// skipUnknown skips an unrecognized tag. A bare opening tag skips up to its
// matching close; a tag carrying data on the same line is a single record.
func (l *loader) skipUnknown(line, tag string) error {
	l.log.WithField("tag", tag).Debug("skipping unknown block")
	if _, ok := format.IsBareOpen(line); !ok {
		return nil
	}
	_, _, err := l.src.block(tag)
	return err
}

// buildEntity runs one builder and attaches the result to folder. Entity-local
// failures drop the window and are only logged.
func (l *loader) buildEntity(tag string, build buildFunc, body *lineSource, folder models.FolderID, line, ordinal int) error {
	w, err := build(l, body)
	if err == nil {
		err = l.attach(folder, w, ordinal)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTruncatedBlock) {
		return err
	}
	name := ""
	if w != nil {
		name = w.Base().Name
	}
	var ee *EntityError
	if !errors.As(err, &ee) {
		ee = NewEntityError(name, tag, line, err)
	}
	l.log.WithFields(logrus.Fields{
		"window":    ee.Window,
		"kind":      ee.Kind,
		"line":      ee.Line,
		"reference": ee.Err.Error(),
	}).Warn("dropping window")
	l.result.Dropped = append(l.result.Dropped, ee.Window)
	return nil
}

// attach assigns the window its project-unique name, hands it to the host
// and adds it to folder.
func (l *loader) attach(folder models.FolderID, w models.Window, ordinal int) error {
	base := w.Base()
	requested := base.Name
	base.Name = l.names.Assign(requested)
	if base.Name != requested {
		l.log.WithFields(logrus.Fields{
			"requested": requested,
			"assigned":  base.Name,
		}).Info("renamed window on load")
	}
	l.resolveFormulas(w)
	if err := l.host.ConstructWindow(folder, w); err != nil {
		return err
	}
	l.constructed = append(l.constructed, w)
	l.ordinal[w] = ordinal
	l.p.AddWindow(folder, w)
	if base.Geometry.Active {
		l.p.Tree.Folder(folder).ActiveWindow = base.Name
	}
	return nil
}

// resolveFormulas rewrites the formulas of a table or matrix through the
// rename map once the window's own name is assigned, so a formula naming a
// renamed sibling from the same file follows it.
func (l *loader) resolveFormulas(w models.Window) {
	switch v := w.(type) {
	case *models.Table:
		for i := range v.Columns {
			v.Columns[i].Formula = l.names.Resolve(v.Columns[i].Formula)
		}
	case *models.Matrix:
		v.Formula = l.names.Resolve(v.Formula)
	}
}

// orderWindows restores file order inside every folder touched by the load.
// Windows present before the load keep their place in front.
func (l *loader) orderWindows() {
	rank := func(w models.Window) int {
		if n, ok := l.ordinal[w]; ok {
			return n
		}
		return -1
	}
	for i := range l.p.Tree.Folders {
		ws := l.p.Tree.Folders[i].Windows
		sort.SliceStable(ws, func(a, b int) bool { return rank(ws[a]) < rank(ws[b]) })
	}
}

// readHeader decodes the first record of an entity block.
func readHeader(body *lineSource, names []string) (format.Record, error) {
	line, ok := body.next()
	if !ok {
		return nil, fmt.Errorf("missing header record")
	}
	return format.Decode(format.Fields(line), names), nil
}

// applyCommon handles the records every window kind understands. It reports
// whether the record was consumed.
func (l *loader) applyCommon(base *models.WindowBase, fields []string) (bool, error) {
	switch fields[0] {
	case format.GeometryKey, format.TableGeometryKey:
		g, err := format.DecodeGeometry(fields)
		if err != nil {
			return true, err
		}
		base.Geometry = g
		return true, nil
	case "WindowLabel":
		r := format.Decode(fields, []string{"key", "label", "policy"})
		base.Label = r.String("label")
		base.CaptionPolicy = models.CaptionPolicy(r.Int("policy", 0))
		return true, nil
	}
	return false, nil
}
