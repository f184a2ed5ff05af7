package format

import (
	"strconv"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// ColorRemapBefore is the first version whose palette indices need no remap.
const ColorRemapBefore = 90

// legacyPalette maps palette indices of files older than ColorRemapBefore to
// the current palette. Indices not listed are unchanged.
var legacyPalette = map[int]int{
	13: 17,
	14: 18,
	15: 23,
}

// RemapColor translates a legacy palette index to the current palette.
// Named colors and files of version ColorRemapBefore or later pass unchanged.
func RemapColor(c models.Color, version int) models.Color {
	if version >= ColorRemapBefore {
		return c
	}
	i, err := strconv.Atoi(string(c))
	if err != nil {
		return c
	}
	if j, ok := legacyPalette[i]; ok {
		return models.Color(strconv.Itoa(j))
	}
	return c
}
