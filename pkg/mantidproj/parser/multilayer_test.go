package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadLayer loads a project holding Table1, Matrix1 and one plot whose
// single layer consists of the given records, and returns that layer.
func loadLayer(t *testing.T, layer ...string) (*models.Layer, *Result) {
	t.Helper()
	return loadLayerAt(t, header, layer...)
}

// loadLayerAt loads a single-layer graph from a file with the given header.
func loadLayerAt(t *testing.T, fileHeader string, layer ...string) (*models.Layer, *Result) {
	t.Helper()
	p := models.NewProject("layer")
	text := projectText(join(
		[]string{fileHeader},
		tableBlock("Table1", record("0", "1", "10")),
		matrixBlock("Matrix1"),
		graphBlock("Graph1", layer...),
	)...)
	res, _, err := loadText(t, p, text)
	require.NoError(t, err)
	w, _, ok := p.Tree.FindWindow("Graph1")
	if !ok {
		return nil, res
	}
	ml := w.(*models.MultiLayer)
	require.Len(t, ml.Layers, 1)
	return ml.Layers[0], res
}

func TestInlineAndBlockFunctionsDecodeAlike(t *testing.T) {
	inline := record(append(append([]string{"FunctionCurve", "1,f1,t,0,6.28,200", "cos(t);sin(t)"}, style...),
		"0", "-1", "3", "1", "0")...)
	block := []string{
		"<Function>",
		record("Type", "1"),
		record("Name", "f1"),
		record("Function", "cos(t)", "sin(t)"),
		record("Vars", "t"),
		record("Range", "0", "6.28"),
		record("Points", "200"),
		record(append([]string{"Style"}, style...)...),
		record("Axes", "3", "1"),
		record("Visible", "0"),
		"</Function>",
	}

	fromInline, _ := loadLayer(t, inline)
	fromBlock, _ := loadLayer(t, block...)
	require.NotNil(t, fromInline)
	require.NotNil(t, fromBlock)
	require.Len(t, fromInline.Curves, 1)
	require.Len(t, fromBlock.Curves, 1)

	if diff := cmp.Diff(fromInline.Curves[0], fromBlock.Curves[0]); diff != "" {
		t.Errorf("inline and block function curves differ (-inline +block):\n%s", diff)
	}

	fc := fromBlock.Curves[0].(*models.FunctionCurve)
	assert.Equal(t, []string{"cos(t)", "sin(t)"}, fc.Formulas)
	assert.Equal(t, 6.28, fc.To)
	assert.Equal(t, models.AxisTop, fc.XAxis)
	assert.False(t, fc.Visible)
}

func TestSpectrogramLastSubRecordWins(t *testing.T) {
	layer, _ := loadLayer(t,
		"<spectrogram>",
		"\t<matrix>Matrix1</matrix>",
		"\t<Levels>5</Levels>",
		"\t<ColorPolicy>GrayScale</ColorPolicy>",
		"\t<ColorBar>\t1\t30</ColorBar>",
		"\t<unknown>ignored</unknown>",
		"\t<Levels>8</Levels>",
		"\t<ContourLines>1</ContourLines>",
		"</spectrogram>",
	)
	require.NotNil(t, layer)
	require.Len(t, layer.Curves, 1)

	sp := layer.Curves[0].(*models.Spectrogram)
	assert.Equal(t, "Matrix1", sp.Matrix)
	assert.Equal(t, 8, sp.Levels)
	assert.True(t, sp.GrayScale())
	assert.True(t, sp.ContourLines)
	assert.True(t, sp.Image)
	require.NotNil(t, sp.ColorBar)
	assert.Equal(t, models.ColorBar{Axis: 1, Width: 30}, *sp.ColorBar)
}

func TestSpectrogramMissingMatrixDropsPlot(t *testing.T) {
	layer, res := loadLayer(t,
		"<spectrogram>",
		"\t<matrix>Nowhere</matrix>",
		"</spectrogram>",
	)
	assert.Nil(t, layer)
	assert.Equal(t, []string{"Graph1"}, res.Dropped)
	assert.Equal(t, 2, res.Loaded)
}

func TestErrorBarsFollowTheirMaster(t *testing.T) {
	layer, res := loadLayer(t,
		record("ErrorBars", "1", "Table1_x", "Table1_y", "Table1_y", "1", "8", "0", "0", "1", "1"),
		curveRecord("Table1_x", "Table1_y"),
	)
	require.NotNil(t, layer, "dropped: %v", res.Dropped)
	require.Len(t, layer.Curves, 2)
	assert.IsType(t, &models.DataCurve{}, layer.Curves[0])

	eb := layer.Curves[1].(*models.ErrorBars)
	assert.Equal(t, "Table1_x", eb.MasterX)
	assert.Equal(t, "Table1_y", eb.ErrorColumn)
	assert.Equal(t, 8, eb.CapLength)
	assert.True(t, eb.Plus)
}

func TestErrorBarsWithoutMaster(t *testing.T) {
	layer, res := loadLayer(t,
		record("ErrorBars", "1", "Table1_y", "Table1_x", "Table1_y", "1", "8", "0", "0", "1", "1"),
	)
	assert.Nil(t, layer)
	assert.Equal(t, []string{"Graph1"}, res.Dropped)
}

func TestLayerRecords(t *testing.T) {
	layer, _ := loadLayer(t,
		record("PlotTitle", "Counts", "0", "4"),
		record("EnabledAxes", "1", "1", "1", "0"),
		record("AxesTitles", "y", "y2", "x", ""),
		record("scale", "2", "0", "10", "2", "5", "4", "0", "1"),
		record("Legend", `first\nsecond`, "10", "20", "1"),
		record("TextMarker", "5", "6", "a label"),
		record("LineMarker", "0", "0", "1", "1", "2", "3", "0", "1"),
		"<AxisFormula>",
		"payload",
		"</AxisFormula>",
		record("FutureRecord", "x"),
	)
	require.NotNil(t, layer)

	assert.Equal(t, "Counts", layer.Title)
	assert.Equal(t, [4]bool{true, true, true, false}, layer.EnabledAxes)
	assert.Equal(t, "x", layer.AxisTitles[models.AxisBottom])
	require.Len(t, layer.Scales, 1)
	assert.Equal(t, models.Scale{Axis: 2, From: 0, To: 10, Step: 2, MajorTicks: 5, MinorTicks: 4, Type: 0, Inverted: true}, layer.Scales[0])
	require.NotNil(t, layer.Legend)
	assert.Equal(t, "first\nsecond", layer.Legend.Text)
	assert.Equal(t, []models.TextMarker{{X: 5, Y: 6, Text: "a label"}}, layer.TextMarkers)
	require.Len(t, layer.LineMarkers, 1)
	assert.True(t, layer.LineMarkers[0].EndArrow)
	assert.Equal(t, []string{"<AxisFormula>", "payload", "</AxisFormula>", record("FutureRecord", "x")}, layer.Extra)
}

func TestCurveKinds(t *testing.T) {
	fields := func(head []string, rest ...string) string {
		out := append(append([]string{}, head...), style...)
		return record(append(out, rest...)...)
	}
	trailer := []string{"0", "-1", "2", "0", "1"}

	layer, res := loadLayer(t,
		fields([]string{"curve", "Table1_y", "3", "Table1_x"}, append([]string{"40", "10"}, trailer...)...),
		fields([]string{"curve", "Table1_y", "9", ""}, append([]string{"0", "0", "0", "2.5", "0", "10"}, trailer...)...),
		fields([]string{"curve", "Table1_y", "11", "Table1_x"}, append([]string{"Table1_x", "Table1_y", "5", "2", "7", "30", "1", "0"}, trailer...)...),
		fields([]string{"curve", "Table1_y", "13", "1.5"}, append([]string{"1", "2", "3", "4", "5", "6", "70", "0", "25", "1", "5"}, trailer...)...),
		record("PieCurve", "Table1_y", "0", "1", "1", "2", "1", "0", "-1", "1"),
	)
	require.NotNil(t, layer, "dropped: %v", res.Dropped)
	require.Len(t, layer.Curves, 5)

	bars := layer.Curves[0].(*models.DataCurve)
	require.NotNil(t, bars.Bars)
	assert.Equal(t, models.BarParams{Gap: 40, Offset: 10}, *bars.Bars)

	hist := layer.Curves[1].(*models.HistogramCurve)
	assert.False(t, hist.AutoBin)
	assert.Equal(t, 2.5, hist.BinSize)
	assert.Equal(t, 10.0, hist.End)

	vec := layer.Curves[2].(*models.VectorCurve)
	assert.Equal(t, "Table1_x", vec.EndX)
	assert.Equal(t, 2.0, vec.PenWidth)
	assert.Equal(t, 7, vec.HeadLength)
	assert.True(t, vec.Filled)

	box := layer.Curves[3].(*models.BoxCurve)
	assert.Equal(t, 1.5, box.X)
	assert.Equal(t, 70, box.BoxWidth)
	assert.Equal(t, 5.0, box.WhiskersRange)

	pie := layer.Curves[4].(*models.PieCurve)
	assert.Equal(t, "Table1_y", pie.YColumn)
	assert.Equal(t, 270.0, pie.StartAzimuth)
}

func TestSurfacePlotSources(t *testing.T) {
	p := models.NewProject("surface")
	text := projectText(join(
		[]string{header},
		matrixBlock("Matrix1"),
		[]string{
			"<SurfacePlot>",
			record("Surface1", "01.01.2020 10:00"),
			record("SurfaceFunction", "matrix", "Matrix1", "0", "1", "0", "1", "-1", "1"),
			record("zoom", "1.5"),
			record("style", "1", "2", "3"),
			"</SurfacePlot>",
			"<SurfacePlot>",
			record("Surface2", ""),
			record("SurfaceFunction", "function", "sin(x*y)", "-3", "3", "-3", "3", "-1", "1"),
			"</SurfacePlot>",
			"<SurfacePlot>",
			record("Surface3", ""),
			record("SurfaceFunction", "matrix", "Gone", "0", "1", "0", "1", "0", "1"),
			"</SurfacePlot>",
		},
	)...)

	res, _, err := loadText(t, p, text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Surface3"}, res.Dropped)

	w, _, ok := p.Tree.FindWindow("Surface1")
	require.True(t, ok)
	s := w.(*models.SurfacePlot)
	assert.Equal(t, models.SurfaceFromMatrix, s.Source)
	assert.Equal(t, 1.5, s.Zoom)
	assert.Equal(t, -1.0, s.ZMin)
	assert.Equal(t, 3, s.FloorStyle)

	w, _, ok = p.Tree.FindWindow("Surface2")
	require.True(t, ok)
	assert.Equal(t, "sin(x*y)", w.(*models.SurfacePlot).Data)
}

func TestHistogramAcrossFillPatternVersions(t *testing.T) {
	bins := []string{"0", "0", "0", "2.5", "1", "9"}
	tests := []struct {
		header string
		style  []string
	}{
		{"QtiPlot 0.7.6 project file", style[:10]},
		{"QtiPlot 0.7.7 project file", style},
	}

	var got []*models.HistogramCurve
	for _, tt := range tests {
		fields := append([]string{"curve", "Table1_y", "9", "Table1_x"}, tt.style...)
		layer, res := loadLayerAt(t, tt.header, record(append(fields, bins...)...))
		require.Empty(t, res.Dropped, tt.header)
		require.Len(t, layer.Curves, 1, tt.header)
		h, ok := layer.Curves[0].(*models.HistogramCurve)
		require.True(t, ok, tt.header)
		got = append(got, h)
	}

	for i, h := range got {
		if h.AutoBin || h.BinSize != 2.5 || h.Begin != 1 || h.End != 9 {
			t.Errorf("%s: bins = (%v, %v, %v, %v), expected (false, 2.5, 1, 9)",
				tests[i].header, h.AutoBin, h.BinSize, h.Begin, h.End)
		}
	}
	assert.Equal(t, got[0].YColumn, got[1].YColumn)
	assert.Equal(t, got[0].Bars, got[1].Bars)
}
