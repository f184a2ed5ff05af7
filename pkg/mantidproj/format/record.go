package format

import (
	"strconv"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// Record maps layout field names to the raw values of one record.
type Record map[string]string

// Decode zips fields with names. Fields beyond the layout are dropped and
// names beyond the fields stay absent, so getters fall back to defaults.
func Decode(fields []string, names []string) Record {
	r := make(Record, len(names))
	for i, name := range names {
		if i >= len(fields) {
			break
		}
		r[name] = fields[i]
	}
	return r
}

// Encode returns the values of names in order; absent names encode as "".
func (r Record) Encode(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = r[name]
	}
	return out
}

// Line encodes r as a tab-delimited record.
func (r Record) Line(names []string) string {
	return Join(r.Encode(names)...)
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// String returns the named field or "".
func (r Record) String(name string) string {
	return r[name]
}

// Int returns the named field as an int, or def when absent or malformed.
func (r Record) Int(name string, def int) int {
	v, ok := r[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		if f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64); ferr == nil {
			return int(f)
		}
		return def
	}
	return n
}

// Float returns the named field as a float64, or def.
func (r Record) Float(name string, def float64) float64 {
	v, ok := r[name]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the named field as a bool ("1"/"0", "true"/"false"), or def.
func (r Record) Bool(name string, def bool) bool {
	v, ok := r[name]
	if !ok {
		return def
	}
	return ParseBool(v, def)
}

// Color returns the named field as a color.
func (r Record) Color(name string) models.Color {
	return models.Color(r[name])
}

// SetInt stores an int field.
func (r Record) SetInt(name string, v int) { r[name] = strconv.Itoa(v) }

// SetFloat stores a float field with the shortest exact representation.
func (r Record) SetFloat(name string, v float64) { r[name] = FormatFloat(v) }

// SetBool stores a bool field as "1" or "0".
func (r Record) SetBool(name string, v bool) { r[name] = FormatBool(v) }

// ParseBool decodes "1"/"0" and "true"/"false".
func ParseBool(v string, def bool) bool {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	return def
}

// FormatBool encodes b as "1" or "0".
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatFloat encodes f with the shortest representation that parses back
// to the same value.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Atoi parses s, returning def on failure.
func Atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// Atof parses s, returning def on failure.
func Atof(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}
