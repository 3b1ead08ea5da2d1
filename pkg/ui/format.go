package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Format selects how command results are written
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output stream
	FormatAuto Format = iota
	// FormatTerminal styles output and draws tables
	FormatTerminal
	// FormatText writes aligned columns with no escape codes
	FormatText
	// FormatJSON writes one JSON document per result
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "terminal",
	FormatText:     "text",
	FormatJSON:     "json",
}

// Formats lists the names accepted by ParseFormat, for flag completion
func Formats() []string {
	return []string{"auto", "terminal", "text", "json"}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat parses a --format value. Matching ignores case; "term" and
// "plain" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "terminal", "term":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q", s).
		WithDetail("accepted", strings.Join(Formats(), ", "))
}

// DetectFormat is FormatTerminal for a colour-capable terminal and
// FormatText for everything else, including when NO_COLOR is set.
func DetectFormat(output *os.File) Format {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return FormatText
	case !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()):
		return FormatText
	case termenv.NewOutput(output).ColorProfile() == termenv.Ascii:
		return FormatText
	}
	return FormatTerminal
}

// disableColor turns off styling in both lipgloss and pterm, for output that
// is not going to a color terminal.
func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableColor()
}
