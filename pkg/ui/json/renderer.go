// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/fragment"
	"github.com/arthur-debert/blocktext/pkg/layout"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// Document is the JSON shape of a rendered document.
type Document struct {
	Width     int                   `json:"width"`
	Lines     []Line                `json:"lines"`
	Spans     []annotation.Span     `json:"spans,omitempty"`
	Fragments []fragment.Fragment   `json:"fragments,omitempty"`
	Footnotes []textrender.Footnote `json:"footnotes,omitempty"`
}

// Line is one output line. Runs are omitted for borders.
type Line struct {
	Text   string       `json:"text"`
	Border bool         `json:"border,omitempty"`
	Runs   []layout.Run `json:"runs,omitempty"`
}

// FromDocument converts a rendered document to its JSON shape.
func FromDocument(doc *textrender.Document) Document {
	out := Document{
		Width:     doc.Width,
		Lines:     make([]Line, len(doc.Lines)),
		Spans:     doc.Spans,
		Fragments: doc.Fragments,
		Footnotes: doc.Footnotes,
	}
	for i, l := range doc.Lines {
		out.Lines[i] = Line{Text: l.String(), Border: l.IsBorder()}
		if !l.IsBorder() {
			out.Lines[i].Runs = l.Runs
		}
	}
	return out
}

func (r *Renderer) RenderDocument(doc *textrender.Document) error {
	return r.encoder.Encode(FromDocument(doc))
}

func (r *Renderer) RenderText(text string) error {
	return r.encoder.Encode(map[string]string{"text": text})
}

// RenderError writes err as an object. code is the root cause; details
// come from the outermost coded error.
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.RootCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}
