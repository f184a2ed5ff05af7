// Package parser reads project files into a models.Project.
package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
)

const maxLineSize = 64 << 20

// lineSource is a sequential reader over the records of a stream.
type lineSource struct {
	lines []string
	pos   int
	// base is the line number of lines[0], for messages.
	base int
}

// readLines reads every line of r, stripping "\r\n" endings.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func newLineSource(lines []string, base int) *lineSource {
	return &lineSource{lines: lines, base: base}
}

// next returns the next line and advances.
func (s *lineSource) next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	s.pos++
	return s.lines[s.pos-1], true
}

// peek returns the next line without advancing.
func (s *lineSource) peek() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	return s.lines[s.pos], true
}

// lineNo returns the 1-based line number of the line last returned by next.
func (s *lineSource) lineNo() int {
	return s.base + s.pos
}

// block reads the body of a block whose opening line was just consumed, up to
// and excluding the matching close tag. Nested blocks of the same name are
// kept in the body.
func (s *lineSource) block(name string) ([]string, int, error) {
	start := s.lineNo()
	bodyStart := s.pos
	depth := 1
	for {
		line, ok := s.next()
		if !ok {
			return nil, 0, truncated(name, start)
		}
		if format.IsClose(line, name) {
			depth--
			if depth == 0 {
				return s.lines[bodyStart : s.pos-1], s.base + bodyStart, nil
			}
			continue
		}
		if n, ok := format.IsBareOpen(line); ok && n == name {
			depth++
		}
	}
}

// unescapeLines joins the lines of a free-text block, undoing
// format.EscapeTextLine.
func unescapeLines(lines []string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = format.UnescapeTextLine(line)
	}
	return strings.Join(out, "\n")
}
