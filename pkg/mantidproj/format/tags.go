// Package format holds the record grammar of project files: tags, the
// version header, per-version field layouts and the geometry codec. It is
// shared by the reader in package parser and the writer in package output.
package format

import "strings"

// Separator is the field separator of every record.
const Separator = "\t"

// Fields splits a record into its tab-separated fields.
func Fields(line string) []string {
	return strings.Split(line, Separator)
}

// Join builds a record from its fields.
func Join(fields ...string) string {
	return strings.Join(fields, Separator)
}

// OpenTag returns the tag name when the first field of line is an opening
// tag such as "<folder>" or "<open>1</open>".
func OpenTag(line string) (string, bool) {
	first := line
	if i := strings.Index(line, Separator); i >= 0 {
		first = line[:i]
	}
	if len(first) < 3 || first[0] != '<' || first[1] == '/' {
		return "", false
	}
	end := strings.IndexByte(first, '>')
	if end < 2 {
		return "", false
	}
	return first[1:end], true
}

// CloseTag returns the closing tag for name.
func CloseTag(name string) string {
	return "</" + name + ">"
}

// OpenTagLine returns the bare opening tag for name.
func OpenTagLine(name string) string {
	return "<" + name + ">"
}

// IsClose reports whether line closes a block named name.
func IsClose(line, name string) bool {
	return strings.TrimSpace(line) == CloseTag(name)
}

// Inline parses a single-line element such as "<open>1</open>".
func Inline(line string) (name, value string, ok bool) {
	line = strings.TrimSpace(line)
	name, ok = OpenTag(line)
	if !ok {
		return "", "", false
	}
	rest := line[len(name)+2:]
	if !strings.HasSuffix(rest, CloseTag(name)) {
		return "", "", false
	}
	return name, strings.TrimSuffix(rest, CloseTag(name)), true
}

// InlineTag builds a single-line element.
func InlineTag(name, value string) string {
	return OpenTagLine(name) + value + CloseTag(name)
}

// IsBareOpen reports whether line consists of the opening tag alone, i.e. it
// starts a multi-line block.
func IsBareOpen(line string) (string, bool) {
	line = strings.TrimSpace(line)
	name, ok := OpenTag(line)
	if !ok || line != OpenTagLine(name) {
		return "", false
	}
	return name, true
}

// TextEscape prefixes free-text lines that would otherwise read as tags.
const TextEscape = `\`

// EscapeTextLine protects a line of note or log text that reads as a bare
// opening or closing tag. Such lines, with any leading TextEscape
// characters, get one more TextEscape in front.
func EscapeTextLine(line string) string {
	if isTagLine(strings.TrimLeft(line, TextEscape)) {
		return TextEscape + line
	}
	return line
}

// UnescapeTextLine reverses EscapeTextLine.
func UnescapeTextLine(line string) string {
	if strings.HasPrefix(line, TextEscape) && isTagLine(strings.TrimLeft(line, TextEscape)) {
		return line[len(TextEscape):]
	}
	return line
}

func isTagLine(line string) bool {
	if _, ok := IsBareOpen(line); ok {
		return true
	}
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "</") && strings.HasSuffix(line, ">")
}
