package topics

import "strings"

// Renderer formats topic content for display. ext is the topic file's
// extension, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics as written, ending in exactly one newline
type PlainRenderer struct{}

// Render returns content with trailing blank lines collapsed
func (r *PlainRenderer) Render(content string, ext string) string {
	trimmed := strings.TrimRight(content, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
