package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer styles markdown topics for a terminal
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty or "auto" detects the
	// terminal background.
	Style string
	// Width wraps lines when positive
	Width int
}

// NewGlamourRenderer creates a renderer with automatic style detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render styles markdown. Other extensions, and content glamour fails on,
// are printed plain.
func (r *GlamourRenderer) Render(content string, ext string) string {
	plain := &PlainRenderer{}
	if ext != ".md" {
		return plain.Render(content, ext)
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" && r.Style != "auto" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return plain.Render(content, ext)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return plain.Render(content, ext)
	}
	return rendered
}
