package parser

import (
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/models"
)

// RenamePair records a window name that had to change on load.
type RenamePair struct {
	Requested string `json:"requested"`
	Assigned  string `json:"assigned"`
}

// RenameMap assigns unique window names during one load and rewrites
// references to renamed windows. Entries are append-only.
type RenameMap struct {
	taken map[string]bool
	pairs []RenamePair
}

// NewRenameMap returns a map that treats existing as already taken.
func NewRenameMap(existing []string) *RenameMap {
	m := &RenameMap{taken: make(map[string]bool, len(existing))}
	for _, name := range existing {
		m.taken[name] = true
	}
	return m
}

// Assign returns requested if it is free, otherwise a fresh name
// requested+N for the smallest unused N, recording the pair.
func (m *RenameMap) Assign(requested string) string {
	actual := models.UniqueName(requested, func(s string) bool { return m.taken[s] })
	m.taken[actual] = true
	if actual != requested {
		m.pairs = append(m.pairs, RenamePair{Requested: requested, Assigned: actual})
	}
	return actual
}

// Pairs returns the recorded renames in assignment order.
func (m *RenameMap) Pairs() []RenamePair {
	return append([]RenamePair(nil), m.pairs...)
}

// ResolveName maps a whole window name to its assigned name.
func (m *RenameMap) ResolveName(name string) string {
	for _, p := range m.pairs {
		if p.Requested == name {
			return p.Assigned
		}
	}
	return name
}

// Resolve rewrites every "requested_" prefix of an identifier in text to
// "assigned_". Matches start only at identifier boundaries, so "MyData_x" is
// not touched by a rename of "Data". The first recorded pair for a name wins.
func (m *RenameMap) Resolve(text string) string {
	if len(m.pairs) == 0 || text == "" {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		if i == 0 || !isIdentByte(text[i-1]) {
			if p, ok := m.prefixAt(text[i:]); ok {
				b.WriteString(p.Assigned)
				b.WriteByte('_')
				i += len(p.Requested) + 1
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// prefixAt returns the pair with the longest requested name such that
// s starts with requested+"_".
func (m *RenameMap) prefixAt(s string) (RenamePair, bool) {
	var best RenamePair
	found := false
	for _, p := range m.pairs {
		if len(p.Requested) <= len(best.Requested) && found {
			continue
		}
		if strings.HasPrefix(s, p.Requested+"_") {
			best, found = p, true
		}
	}
	return best, found
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
