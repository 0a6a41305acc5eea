// Package style holds the terminal styles used for annotated output.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/blocktext/pkg/annotation"
)

// Styles are the lipgloss styles for one output renderer.
type Styles struct {
	Link      lipgloss.Style
	Emphasis  lipgloss.Style
	Strong    lipgloss.Style
	Code      lipgloss.Style
	Image     lipgloss.Style
	Pre       lipgloss.Style
	Border    lipgloss.Style
	Error     lipgloss.Style
	ErrorCode lipgloss.Style
	renderer  *lipgloss.Renderer
}

// New returns the styles bound to r, so colour support follows r's output.
func New(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Link: r.NewStyle().
			Foreground(LinkColor).
			Underline(true),
		Emphasis: r.NewStyle().
			Italic(true),
		Strong: r.NewStyle().
			Bold(true),
		Code: r.NewStyle().
			Foreground(CodeColor).
			Background(SurfaceColor),
		Image: r.NewStyle().
			Foreground(ImageColor).
			Italic(true),
		Pre: r.NewStyle().
			Foreground(CodeColor),
		Border: r.NewStyle().
			Foreground(BorderColor),
		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
		ErrorCode: r.NewStyle().
			Foreground(MutedColor),
		renderer: r,
	}
}

// For returns the style of text carrying the annotations in set. Styles of
// nested annotations are combined, inner ones last.
func (s *Styles) For(set annotation.Set) lipgloss.Style {
	st := s.renderer.NewStyle()
	for _, a := range set {
		st = st.Inherit(s.kind(a.Kind))
	}
	return st
}

func (s *Styles) kind(k annotation.Kind) lipgloss.Style {
	switch k {
	case annotation.Link:
		return s.Link
	case annotation.Emphasis:
		return s.Emphasis
	case annotation.Strong:
		return s.Strong
	case annotation.Code:
		return s.Code
	case annotation.Image:
		return s.Image
	case annotation.Preformatted:
		return s.Pre
	}
	return s.renderer.NewStyle()
}
