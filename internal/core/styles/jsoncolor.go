package styles

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorizeJSON indents data and colors it with the active palette: keys in
// the primary color, strings in success, numbers in warning, literals in
// secondary. Invalid JSON is returned unchanged.
func ColorizeJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	p := CurrentPalette
	key := lipgloss.NewStyle().Foreground(p.Primary)
	str := lipgloss.NewStyle().Foreground(p.Success)
	num := lipgloss.NewStyle().Foreground(p.Warning)
	lit := lipgloss.NewStyle().Foreground(p.Secondary)
	punct := lipgloss.NewStyle().Foreground(p.Muted)

	src := buf.String()
	var out strings.Builder
	for i := 0; i < len(src); {
		switch ch := src[i]; {
		case ch == '"':
			end := stringEnd(src, i)
			tok := src[i:end]
			if strings.HasPrefix(strings.TrimLeft(src[end:], " "), ":") {
				out.WriteString(key.Render(tok))
			} else {
				out.WriteString(str.Render(tok))
			}
			i = end
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(src) && strings.IndexByte("0123456789.eE+-", src[end]) >= 0 {
				end++
			}
			out.WriteString(num.Render(src[i:end]))
			i = end
		case ch == ':' || ch == ',':
			out.WriteString(punct.Render(string(ch)))
			i++
		default:
			if word := literalAt(src, i); word != "" {
				out.WriteString(lit.Render(word))
				i += len(word)
				continue
			}
			out.WriteByte(ch)
			i++
		}
	}
	return out.String()
}

// stringEnd returns the index just past the JSON string starting at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func literalAt(s string, i int) string {
	for _, word := range []string{"true", "false", "null"} {
		if strings.HasPrefix(s[i:], word) {
			return word
		}
	}
	return ""
}
