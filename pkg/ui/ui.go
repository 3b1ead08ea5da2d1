// Package ui renders command results in one of three formats: a styled
// terminal view, plain text, or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/ui/json"
	"github.com/arthur-debert/dotty/pkg/ui/terminal"
	"github.com/arthur-debert/dotty/pkg/ui/text"
)

// Renderer is implemented by every output format
type Renderer interface {
	// RenderResult renders an add, restore or status result
	RenderResult(result interface{}) error

	// RenderError renders an error with its code and details
	RenderError(err error) error

	// RenderMessage renders a one-line message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output to
// choose between terminal and text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		disableColor()
		return text.New(output)
	case FormatJSON:
		disableColor()
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %s", format)
	}
}
