package models

// Kind identifies the concrete type of a Window.
type Kind string

const (
	KindTable          Kind = "Table"
	KindMatrix         Kind = "Matrix"
	KindNote           Kind = "Note"
	KindMultiLayer     Kind = "MultiLayer"
	KindSurfacePlot    Kind = "SurfacePlot"
	KindExternalMatrix Kind = "ExternalMatrix"
	KindInstrumentView Kind = "InstrumentView"
)

// CaptionPolicy selects what a window shows in its title bar.
type CaptionPolicy int

const (
	CaptionName CaptionPolicy = iota
	CaptionLabel
	CaptionBoth
)

// WindowBase holds the attributes shared by every persisted window.
type WindowBase struct {
	// Name is unique across the whole project.
	Name string `json:"name"`
	// Label is the free-text window label.
	Label string `json:"label,omitempty"`
	// CaptionPolicy selects between name and label in the caption.
	CaptionPolicy CaptionPolicy `json:"caption_policy"`
	// Birth is the creation timestamp as stored in the project file.
	Birth string `json:"birth,omitempty"`
	// Geometry is the window placement and state.
	Geometry Geometry `json:"geometry"`
}

// Base returns the shared window attributes.
func (b *WindowBase) Base() *WindowBase { return b }

func (b *WindowBase) window() {}

// Window is a top-level persisted entity owned by exactly one Folder.
//
// The set of implementations is closed: Table, Matrix, Note, MultiLayer,
// SurfacePlot, ExternalMatrix and InstrumentView.
type Window interface {
	Base() *WindowBase
	Kind() Kind
	window()
}

// Kind implements Window.
func (*Table) Kind() Kind { return KindTable }

// Kind implements Window.
func (*Matrix) Kind() Kind { return KindMatrix }

// Kind implements Window.
func (*Note) Kind() Kind { return KindNote }

// Kind implements Window.
func (*MultiLayer) Kind() Kind { return KindMultiLayer }

// Kind implements Window.
func (*SurfacePlot) Kind() Kind { return KindSurfacePlot }

// Kind implements Window.
func (*ExternalMatrix) Kind() Kind { return KindExternalMatrix }

// Kind implements Window.
func (*InstrumentView) Kind() Kind { return KindInstrumentView }

// Note is a free-text window.
type Note struct {
	WindowBase
	// Text is the note content, lines joined by "\n".
	Text string `json:"text"`
}

// ExternalMatrix is a matrix view whose data is hosted by an external
// workspace service.
type ExternalMatrix struct {
	WindowBase
	// Workspace is the name of the hosted data workspace.
	Workspace string `json:"workspace"`
	// Extra holds records this version does not interpret, in file order.
	Extra []string `json:"extra,omitempty"`
}

// InstrumentView is an instrument display bound to an external workspace.
type InstrumentView struct {
	WindowBase
	Workspace string   `json:"workspace"`
	Extra     []string `json:"extra,omitempty"`
}
