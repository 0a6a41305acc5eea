// Package ui writes rendered documents in the output format chosen by the
// user: plain text, styled terminal text, JSON or XML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
	"github.com/arthur-debert/blocktext/pkg/ui/json"
	"github.com/arthur-debert/blocktext/pkg/ui/terminal"
	"github.com/arthur-debert/blocktext/pkg/ui/text"
	"github.com/arthur-debert/blocktext/pkg/ui/xml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderDocument writes a finished layout document.
	RenderDocument(doc *textrender.Document) error

	// RenderText writes finished text that carries no layout, such as the
	// output of the raw backend.
	RenderText(text string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// If not a file, default to terminal format
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatXML:
		return xml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
