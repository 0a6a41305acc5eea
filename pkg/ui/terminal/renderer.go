// Package terminal styles annotated runs with lipgloss for colour terminals.
package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
	"github.com/arthur-debert/blocktext/pkg/style"
)

// Renderer writes documents with every run styled by its annotations.
type Renderer struct {
	output io.Writer
	styles *style.Styles
}

// New creates a terminal renderer whose colour support follows w.
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, styles: style.New(lipgloss.NewRenderer(w))}
}

// NewWithProfile creates a terminal renderer forced to a colour profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(profile)
	return &Renderer{output: w, styles: style.New(lr)}
}

func (r *Renderer) RenderDocument(doc *textrender.Document) error {
	var b strings.Builder
	for _, line := range doc.Lines {
		if line.IsBorder() {
			b.WriteString(r.styles.Border.Render(line.String()))
		} else {
			for _, run := range line.Runs {
				if len(run.Annotations) == 0 {
					b.WriteString(run.Text)
					continue
				}
				b.WriteString(r.styles.For(run.Annotations).Render(run.Text))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderText(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(r.output, text)
	return err
}

func (r *Renderer) RenderError(err error) error {
	msg := r.styles.Error.Render("Error:") + " "
	code, text := errors.Describe(err)
	if code != errors.ErrUnknown {
		msg += r.styles.ErrorCode.Render("["+string(code)+"]") + " "
	}
	_, werr := io.WriteString(r.output, msg+text+"\n")
	return werr
}
