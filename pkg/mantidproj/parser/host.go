package parser

import "github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"

// Host is the window-construction collaborator. The loader builds each
// window's data, then hands it to the host before attaching it to its folder;
// a GUI host creates the widget there. Windows of a cancelled or failed load
// are handed back through DiscardWindow.
type Host interface {
	ConstructWindow(folder models.FolderID, w models.Window) error
	DiscardWindow(w models.Window)
}

// nopHost keeps windows in the model only.
type nopHost struct{}

func (nopHost) ConstructWindow(models.FolderID, models.Window) error { return nil }
func (nopHost) DiscardWindow(models.Window)                          {}
