// Package models defines the in-memory project tree.
package models

import (
	"strconv"
	"sync"

	"github.com/tiendc/go-deepcopy"
)

// Tree is an arena of folders addressed by FolderID. Folder 0 is the root.
type Tree struct {
	// Folders holds every folder; ids index into this slice.
	Folders []Folder `json:"folders"`
	// Current is the folder that was current at save time.
	Current FolderID `json:"current"`
	// ScriptingLanguage is the language recorded in the project header.
	ScriptingLanguage string `json:"scripting_language"`
}

// NewTree returns a tree holding only a root folder with the given name.
func NewTree(rootName string) *Tree {
	return &Tree{
		Folders:           []Folder{{Name: rootName, Parent: NoFolder, Open: true}},
		Current:           RootFolder,
		ScriptingLanguage: "Python",
	}
}

// Root returns the root folder.
func (t *Tree) Root() *Folder { return &t.Folders[RootFolder] }

// Folder returns the folder with the given id.
func (t *Tree) Folder(id FolderID) *Folder { return &t.Folders[id] }

// AddFolder creates a child of parent. A name already used by a sibling gets
// a numeric suffix.
func (t *Tree) AddFolder(parent FolderID, name, birth, modified string) FolderID {
	taken := make(map[string]bool)
	for _, c := range t.Folders[parent].Children {
		taken[t.Folders[c].Name] = true
	}
	name = UniqueName(name, func(s string) bool { return taken[s] })

	id := FolderID(len(t.Folders))
	t.Folders = append(t.Folders, Folder{Name: name, Birth: birth, Modified: modified, Parent: parent})
	t.Folders[parent].Children = append(t.Folders[parent].Children, id)
	return id
}

// Depth returns the nesting depth of a folder; the root has depth 0.
func (t *Tree) Depth(id FolderID) int {
	d := 0
	for p := t.Folders[id].Parent; p != NoFolder; p = t.Folders[p].Parent {
		d++
	}
	return d
}

// Path returns the slash-separated path of a folder below the root.
func (t *Tree) Path(id FolderID) string {
	if id == RootFolder {
		return "/"
	}
	path := ""
	for ; id != RootFolder; id = t.Folders[id].Parent {
		path = "/" + t.Folders[id].Name + path
	}
	return path
}

// Walk returns the folders below start (inclusive) in depth-first order.
func (t *Tree) Walk(start FolderID) []FolderID {
	order := []FolderID{start}
	for _, c := range t.Folders[start].Children {
		order = append(order, t.Walk(c)...)
	}
	return order
}

// Windows returns every window in depth-first folder order.
func (t *Tree) Windows() []Window {
	var all []Window
	for _, id := range t.Walk(RootFolder) {
		all = append(all, t.Folders[id].Windows...)
	}
	return all
}

// WindowCount returns the number of windows in the tree.
func (t *Tree) WindowCount() int {
	n := 0
	for i := range t.Folders {
		n += len(t.Folders[i].Windows)
	}
	return n
}

// FindWindow returns the window with the given name and its owning folder.
func (t *Tree) FindWindow(name string) (Window, FolderID, bool) {
	for i := range t.Folders {
		if w, ok := t.Folders[i].Window(name); ok {
			return w, FolderID(i), true
		}
	}
	return nil, NoFolder, false
}

// HasWindow reports whether a window with the given name exists.
func (t *Tree) HasWindow(name string) bool {
	_, _, ok := t.FindWindow(name)
	return ok
}

// FindTable returns the table with the given name.
func (t *Tree) FindTable(name string) (*Table, bool) {
	w, _, ok := t.FindWindow(name)
	if !ok {
		return nil, false
	}
	tbl, ok := w.(*Table)
	return tbl, ok
}

// FindMatrix returns the matrix with the given name.
func (t *Tree) FindMatrix(name string) (*Matrix, bool) {
	w, _, ok := t.FindWindow(name)
	if !ok {
		return nil, false
	}
	m, ok := w.(*Matrix)
	return m, ok
}

// FindColumn resolves a full column name such as "Table1_colA" to its table
// and column index. The longest matching table name wins.
func (t *Tree) FindColumn(full string) (*Table, int, bool) {
	var best *Table
	bestCol := -1
	for _, w := range t.Windows() {
		tbl, ok := w.(*Table)
		if !ok || len(full) <= len(tbl.Name)+1 || full[:len(tbl.Name)+1] != tbl.Name+"_" {
			continue
		}
		if best != nil && len(best.Name) >= len(tbl.Name) {
			continue
		}
		if col := tbl.ColumnIndex(full[len(tbl.Name)+1:]); col >= 0 {
			best, bestCol = tbl, col
		}
	}
	return best, bestCol, best != nil
}

// AddWindow appends w to the folder's windows.
func (t *Tree) AddWindow(id FolderID, w Window) {
	t.Folders[id].Windows = append(t.Folders[id].Windows, w)
}

// RemoveWindow detaches the named window from its folder.
func (t *Tree) RemoveWindow(name string) bool {
	for i := range t.Folders {
		f := &t.Folders[i]
		for j, w := range f.Windows {
			if w.Base().Name == name {
				f.Windows = append(f.Windows[:j], f.Windows[j+1:]...)
				if f.ActiveWindow == name {
					f.ActiveWindow = ""
				}
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the tree sharing no memory with t.
func (t *Tree) Clone() (*Tree, error) {
	var c Tree
	if err := deepcopy.Copy(&c, t); err != nil {
		return nil, err
	}
	return &c, nil
}

// Project is the in-memory project: a folder tree plus session state.
type Project struct {
	// Tree is the folder tree.
	Tree *Tree
	// Name is the project name shown on the root folder.
	Name string
	// Modified is the "unsaved changes" flag.
	Modified bool

	busy     sync.Mutex
	signals  sync.Mutex
	blocked  bool
	onChange func()
}

// NewProject returns an empty project whose root folder is named name.
func NewProject(name string) *Project {
	return &Project{Tree: NewTree(name), Name: name}
}

// TryBegin claims the project for a load or save pass. It returns false when
// another pass is already running.
func (p *Project) TryBegin() bool { return p.busy.TryLock() }

// End releases a claim taken with TryBegin.
func (p *Project) End() { p.busy.Unlock() }

// OnTreeChange registers fn to be called when folders or windows change.
func (p *Project) OnTreeChange(fn func()) {
	p.signals.Lock()
	p.onChange = fn
	p.signals.Unlock()
}

// BlockSignals suppresses tree-change notifications and returns the previous
// state.
func (p *Project) BlockSignals(block bool) bool {
	p.signals.Lock()
	defer p.signals.Unlock()
	prev := p.blocked
	p.blocked = block
	return prev
}

// NotifyTreeChange calls the tree-change handler unless signals are blocked.
func (p *Project) NotifyTreeChange() {
	p.signals.Lock()
	fn, blocked := p.onChange, p.blocked
	p.signals.Unlock()
	if fn != nil && !blocked {
		fn()
	}
}

// AddFolder creates a child folder and notifies observers.
func (p *Project) AddFolder(parent FolderID, name, birth, modified string) FolderID {
	id := p.Tree.AddFolder(parent, name, birth, modified)
	p.NotifyTreeChange()
	return id
}

// AddWindow attaches w to a folder and notifies observers.
func (p *Project) AddWindow(id FolderID, w Window) {
	p.Tree.AddWindow(id, w)
	p.NotifyTreeChange()
}

// UniqueName returns name if it is free, otherwise name followed by the
// smallest positive integer giving a free name.
func UniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for n := 1; ; n++ {
		candidate := name + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
