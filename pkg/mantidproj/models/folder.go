package models

// FolderID addresses a Folder inside a Tree.
type FolderID int

// NoFolder is the parent of the root folder.
const NoFolder FolderID = -1

// RootFolder is the id of the root folder of every Tree.
const RootFolder FolderID = 0

// Folder is a named node holding child folders and windows.
type Folder struct {
	// Name is unique among siblings.
	Name string `json:"name"`
	// Birth and Modified are timestamps as stored in the project file.
	Birth    string `json:"birth,omitempty"`
	Modified string `json:"modified,omitempty"`
	// Parent is NoFolder for the root.
	Parent FolderID `json:"parent"`
	// Children are the child folders in display order.
	Children []FolderID `json:"children,omitempty"`
	// Windows are the owned windows in display order.
	Windows []Window `json:"windows,omitempty"`
	// Open is the expand/collapse state in the folder view.
	Open bool `json:"open,omitempty"`
	// Log is the free-text results log.
	Log string `json:"log,omitempty"`
	// ActiveWindow names the window that was active in this folder.
	ActiveWindow string `json:"active_window,omitempty"`
}

// Window returns the owned window with the given name.
func (f *Folder) Window(name string) (Window, bool) {
	for _, w := range f.Windows {
		if w.Base().Name == name {
			return w, true
		}
	}
	return nil, false
}
