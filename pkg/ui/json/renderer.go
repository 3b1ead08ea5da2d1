// Package json renders results for machine consumption
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/ui/report"
)

// Renderer encodes one JSON document per call
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderResult encodes the report for result. Unknown types are encoded
// as they are.
func (r *Renderer) RenderResult(result interface{}) error {
	if rep, ok := report.For(result); ok {
		return r.encoder.Encode(rep)
	}
	return r.encoder.Encode(result)
}

type errorDoc struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// RenderError encodes an error with its code and details
func (r *Renderer) RenderError(err error) error {
	doc := errorDoc{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		doc.Details = make(map[string]string, len(details))
		for k, v := range details {
			doc.Details[k] = fmt.Sprint(v)
		}
	}
	return r.encoder.Encode(doc)
}

// RenderMessage encodes a message
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
