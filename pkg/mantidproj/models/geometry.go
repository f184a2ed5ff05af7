package models

// Geometry represents the placement and display state of a window.
type Geometry struct {
	// X is the left offset in pixels.
	X int `json:"x"`
	// Y is the top offset in pixels.
	Y int `json:"y"`
	// W is the width in pixels. For minimized windows this is the restore width.
	W int `json:"w"`
	// H is the height in pixels. For minimized windows this is the restore height.
	H int `json:"h"`
	// Minimized reports whether the window is iconified.
	Minimized bool `json:"minimized,omitempty"`
	// Maximized reports whether the window fills its workspace. A maximized
	// window carries no rectangle.
	Maximized bool `json:"maximized,omitempty"`
	// Hidden reports whether the window is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// Active reports whether the window was the active window of its folder.
	Active bool `json:"active,omitempty"`
}

// Rect is a plain rectangle used for layer placement inside a plot page.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
