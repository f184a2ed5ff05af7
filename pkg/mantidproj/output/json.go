package output

import (
	"encoding/json"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

type treeView struct {
	ScriptingLanguage string       `json:"scripting_language"`
	Current           string       `json:"current"`
	WindowCount       int          `json:"window_count"`
	Folders           []folderView `json:"folders"`
}

type folderView struct {
	*models.Folder
	Path    string       `json:"path"`
	Windows []windowView `json:"windows,omitempty"`
}

type windowView struct {
	Kind   models.Kind `json:"kind"`
	Window any         `json:"window"`
}

type multiLayerView struct {
	*models.MultiLayer
	Layers []layerView `json:"layers"`
}

type layerView struct {
	*models.Layer
	Curves []curveView `json:"curves"`
}

type curveView struct {
	Kind  models.CurveKind `json:"kind"`
	Curve models.Curve     `json:"curve"`
}

// ToJSON serializes the project tree to JSON. Windows and curves carry a
// "kind" discriminator.
func ToJSON(tree *models.Tree, pretty bool) ([]byte, error) {
	view := treeView{
		ScriptingLanguage: tree.ScriptingLanguage,
		Current:           tree.Path(tree.Current),
		WindowCount:       tree.WindowCount(),
	}
	for _, id := range tree.Walk(models.RootFolder) {
		f := tree.Folder(id)
		fv := folderView{Folder: f, Path: tree.Path(id)}
		for _, w := range f.Windows {
			fv.Windows = append(fv.Windows, viewWindow(w))
		}
		view.Folders = append(view.Folders, fv)
	}
	if pretty {
		return json.MarshalIndent(view, "", "  ")
	}
	return json.Marshal(view)
}

func viewWindow(w models.Window) windowView {
	ml, ok := w.(*models.MultiLayer)
	if !ok {
		return windowView{Kind: w.Kind(), Window: w}
	}
	mv := multiLayerView{MultiLayer: ml}
	for _, l := range ml.Layers {
		lv := layerView{Layer: l}
		for _, c := range l.Curves {
			lv.Curves = append(lv.Curves, curveView{Kind: c.CurveKind(), Curve: c})
		}
		mv.Layers = append(mv.Layers, lv)
	}
	return windowView{Kind: w.Kind(), Window: mv}
}
