package parser

import (
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// readSpectrogram decodes the body of a <spectrogram> block. Sub-records are
// matched by tag in any order and a repeated tag overrides the earlier one.
// The referenced matrix must exist.
func (l *loader) readSpectrogram(body []string) (*models.Spectrogram, error) {
	sp := &models.Spectrogram{
		ColorPolicy: "Default",
		Image:       true,
		Levels:      10,
		PenWidth:    1,
		Visible:     true,
	}
	for _, line := range body {
		name, value, ok := format.Inline(strings.TrimSpace(line))
		if !ok {
			continue
		}
		switch name {
		case "matrix":
			sp.Matrix = value
		case "ColorPolicy":
			sp.ColorPolicy = value
		case "ColorMapFile":
			sp.ColorMapFile = value
		case "Image":
			sp.Image = format.ParseBool(value, true)
		case "ContourLines":
			sp.ContourLines = format.ParseBool(value, false)
		case "Levels":
			sp.Levels = format.Atoi(value, 10)
		case "PenColor":
			sp.PenColor = format.RemapColor(models.Color(value), l.version)
		case "PenWidth":
			sp.PenWidth = format.Atof(value, 1)
		case "PenStyle":
			sp.PenStyle = format.Atoi(value, 0)
		case "IntensityChanged":
			sp.IntensityChanged = format.ParseBool(value, false)
		case "ColorBar":
			r := format.Decode(format.Fields(strings.TrimPrefix(value, format.Separator)), []string{"axis", "width"})
			sp.ColorBar = &models.ColorBar{Axis: r.Int("axis", models.AxisRight), Width: r.Int("width", 20)}
		case "Visible":
			sp.Visible = format.ParseBool(value, true)
		}
	}

	sp.Matrix = l.names.ResolveName(sp.Matrix)
	if _, ok := l.p.Tree.FindMatrix(sp.Matrix); !ok {
		return nil, unresolved("matrix", sp.Matrix)
	}
	return sp, nil
}
