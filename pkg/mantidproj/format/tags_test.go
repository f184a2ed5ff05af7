package format

import "testing"

func TestEscapeTextLine(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"plain text", "plain text"},
		{"</content>", `\</content>`},
		{"  </note>", `\  </note>`},
		{"<content>", `\<content>`},
		{`\</note>`, `\\</note>`},
		{`\plain`, `\plain`},
		{"<open>1</open>", "<open>1</open>"},
		{"a < b > c", "a < b > c"},
		{"", ""},
	}

	for _, tt := range tests {
		if result := EscapeTextLine(tt.line); result != tt.expected {
			t.Errorf("EscapeTextLine(%q) = %q, expected %q", tt.line, result, tt.expected)
		}
		if result := UnescapeTextLine(tt.expected); result != tt.line {
			t.Errorf("UnescapeTextLine(%q) = %q, expected %q", tt.expected, result, tt.line)
		}
	}
}
