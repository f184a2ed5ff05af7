package format

import (
	"fmt"
	"strconv"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// Geometry record keys.
const (
	GeometryKey      = "geometry"
	TableGeometryKey = "tgeometry"
	LayerGeometryKey = "ggeometry"
)

const (
	stateMinimized = "minimized"
	stateMaximized = "maximized"
	stateActive    = "active"
	stateHidden    = "hidden"
)

// DecodeGeometry decodes the fields of a geometry record, key included.
func DecodeGeometry(fields []string) (models.Geometry, error) {
	var g models.Geometry
	if len(fields) < 2 {
		return g, fmt.Errorf("geometry record has no payload")
	}
	args := fields[1:]
	if args[0] == stateMaximized {
		g.Maximized = true
		args = args[1:]
	} else {
		if len(args) < 4 {
			return g, fmt.Errorf("geometry record needs 4 coordinates, got %d", len(args))
		}
		coords := [4]*int{&g.X, &g.Y, &g.W, &g.H}
		for i, p := range coords {
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return g, fmt.Errorf("geometry coordinate %q: %w", args[i], err)
			}
			*p = n
		}
		args = args[4:]
	}
	for _, s := range args {
		switch s {
		case stateMinimized:
			g.Minimized = true
		case stateActive:
			g.Active = true
		case stateHidden:
			g.Hidden = true
		}
	}
	return g, nil
}

// EncodeGeometry renders g as a record under key. Maximized windows use the
// short form; minimized windows carry their restore rectangle.
func EncodeGeometry(key string, g models.Geometry) string {
	if g.Maximized {
		if g.Active {
			return Join(key, stateMaximized, stateActive)
		}
		return Join(key, stateMaximized)
	}
	fields := []string{key, strconv.Itoa(g.X), strconv.Itoa(g.Y), strconv.Itoa(g.W), strconv.Itoa(g.H)}
	if g.Minimized {
		fields = append(fields, stateMinimized)
	}
	if g.Active {
		fields = append(fields, stateActive)
	} else if g.Hidden {
		fields = append(fields, stateHidden)
	}
	return Join(fields...)
}

// DecodeRect decodes a ggeometry record.
func DecodeRect(fields []string) models.Rect {
	r := Decode(fields, []string{"key", "x", "y", "w", "h"})
	return models.Rect{X: r.Int("x", 0), Y: r.Int("y", 0), W: r.Int("w", 0), H: r.Int("h", 0)}
}

// EncodeRect renders a ggeometry record.
func EncodeRect(r models.Rect) string {
	return Join(LayerGeometryKey, strconv.Itoa(r.X), strconv.Itoa(r.Y), strconv.Itoa(r.W), strconv.Itoa(r.H))
}
