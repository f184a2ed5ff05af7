package parser

import (
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// FormulaSeparator joins the formulas of parametric and polar functions in
// the inline FunctionCurve record.
const FormulaSeparator = ";"

// readInlineFunction decodes the legacy single-record FunctionCurve form:
//
//	FunctionCurve	<type>,<name>,<var>,<from>,<to>,<points>	<formula>	<style...>	<trailer...>
func (l *loader) readInlineFunction(fields []string) models.Curve {
	r := format.Decode(fields, format.FunctionCurveLayout(l.version))
	spec := strings.Split(r.String("spec"), ",")
	get := func(i int) string {
		if i < len(spec) {
			return spec[i]
		}
		return ""
	}
	span := decodeSpan(r)
	fc := &models.FunctionCurve{
		FunctionType: format.Atoi(get(0), 0),
		Name:         get(1),
		Variable:     get(2),
		From:         format.Atof(get(3), 0),
		To:           format.Atof(get(4), 1),
		Points:       format.Atoi(get(5), 100),
		Style:        l.decodeStyle(r),
		XAxis:        span.XAxis,
		YAxis:        span.YAxis,
		Visible:      span.Visible,
	}
	if f := r.String("formula"); f != "" {
		fc.Formulas = l.resolveAll(strings.Split(f, FormulaSeparator))
	}
	return fc
}

// readFunctionBlock decodes the body of a <Function> block. Unknown records
// are ignored.
func (l *loader) readFunctionBlock(body []string) models.Curve {
	span := models.DefaultSpan()
	fc := &models.FunctionCurve{
		To:      1,
		Points:  100,
		Style:   l.decodeStyle(format.Record{}),
		XAxis:   span.XAxis,
		YAxis:   span.YAxis,
		Visible: true,
	}
	for _, line := range body {
		fields := format.Fields(strings.TrimLeft(line, " "))
		r := format.Decode(fields, []string{"key", "a", "b"})
		switch fields[0] {
		case "Type":
			fc.FunctionType = r.Int("a", 0)
		case "Name":
			fc.Name = r.String("a")
		case "Function":
			fc.Formulas = l.resolveAll(fields[1:])
		case "Vars":
			fc.Variable = r.String("a")
		case "Range":
			fc.From, fc.To = r.Float("a", 0), r.Float("b", 1)
		case "Points":
			fc.Points = r.Int("a", 100)
		case "Style":
			fc.Style = l.decodeStyle(format.Decode(fields, format.StyleLayout(l.version)))
		case "Axes":
			fc.XAxis, fc.YAxis = r.Int("a", span.XAxis), r.Int("b", span.YAxis)
		case "Visible":
			fc.Visible = r.Bool("a", true)
		}
	}
	return fc
}

// resolveAll returns formulas rewritten through the rename map.
func (l *loader) resolveAll(formulas []string) []string {
	out := make([]string, len(formulas))
	for i, f := range formulas {
		out[i] = l.names.Resolve(f)
	}
	return out
}
