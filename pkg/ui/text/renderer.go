// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/blocktext/pkg/render/textrender"
)

// Renderer writes plain text.
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderDocument(doc *textrender.Document) error {
	_, err := io.WriteString(r.output, doc.String())
	return err
}

// RenderText writes text, ending it with a newline if it has none.
func (r *Renderer) RenderText(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(r.output, text)
	return err
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}
