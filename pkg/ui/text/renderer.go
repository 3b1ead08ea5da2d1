// Package text renders results as plain, unstyled lines
package text

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/ui/report"
)

// Renderer writes plain text
type Renderer struct {
	output io.Writer
}

// New creates a text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders one tab-aligned line per entry followed by the notes
func (r *Renderer) RenderResult(result interface{}) error {
	rep, ok := report.For(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, row := range rep.Rows {
		detail := row.Detail
		if row.Code != "" {
			detail = "[" + row.Code + "] " + detail
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Path, row.State, detail); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, note := range rep.Notes {
		if _, err := fmt.Fprintln(r.output, note); err != nil {
			return err
		}
	}
	if rep.Failed > 0 {
		if _, err := fmt.Fprintf(r.output, "%d of %d entries reported a problem\n", rep.Failed, len(rep.Rows)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error and its details
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	if _, werr := fmt.Fprintf(r.output, "Error: %s\n", err.Error()); werr != nil {
		return werr
	}

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, werr := fmt.Fprintf(r.output, "  %s: %v\n", k, details[k]); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a plain line
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
