// Package terminal renders results as styled tables
package terminal

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/ui/report"
	"github.com/arthur-debert/dotty/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer writes lipgloss-styled text and pterm tables
type Renderer struct {
	output io.Writer
	styles *styles.Registry
}

// New creates a terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w, styles: styles.Default()}, nil
}

// RenderResult renders a result as a header, a table of entries and notes
func (r *Renderer) RenderResult(result interface{}) error {
	rep, ok := report.For(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	if _, err := fmt.Fprintln(r.output, r.styles.Get("Header").Render("dotty "+rep.Command)); err != nil {
		return err
	}

	if len(rep.Rows) == 0 {
		if _, err := fmt.Fprintln(r.output, r.styles.Get("Muted").Render("no managed paths")); err != nil {
			return err
		}
	} else {
		table, err := r.table(rep.Rows)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.output, table); err != nil {
			return err
		}
	}

	for _, note := range rep.Notes {
		if _, err := fmt.Fprintln(r.output, r.styles.Get("Muted").Render(note)); err != nil {
			return err
		}
	}

	if rep.Failed > 0 {
		label := "failed"
		if rep.Command == "status" {
			label = "need attention"
		}
		msg := fmt.Sprintf("%d of %d %s", rep.Failed, len(rep.Rows), label)
		if _, err := fmt.Fprintln(r.output, r.styles.Get("Error").Render(msg)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) table(rows []report.Row) (string, error) {
	data := pterm.TableData{{"PATH", "STATE", "DETAIL"}}
	for _, row := range rows {
		detail := row.Detail
		if row.Code != "" {
			detail = r.styles.Get("Code").Render(row.Code) + " " + detail
		}
		data = append(data, []string{
			r.styles.Get("FilePath").Render(row.Path),
			r.styles.Get(row.State).Render(row.State),
			detail,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// RenderError renders an error, its code and any recorded details
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}

	line := pterm.Error.Prefix.Text
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line += " " + r.styles.Get("Code").Render(string(code))
	}
	if _, werr := fmt.Fprintf(r.output, "%s %s\n", line, r.styles.Get("Error").Render(err.Error())); werr != nil {
		return werr
	}

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, werr := fmt.Fprintf(r.output, "  %s: %v\n", r.styles.Get("Muted").Render(k), details[k]); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders an informational line
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.styles.Get("Info").Render(msg))
	return err
}
