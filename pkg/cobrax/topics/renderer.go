package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. ext is the extension of the
// topic file, including the dot.
type Renderer interface {
	Render(content, ext string) string
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(content, ext string) string

func (f RendererFunc) Render(content, ext string) string { return f(content, ext) }

// Plain writes topics unchanged.
var Plain Renderer = RendererFunc(func(content, _ string) string { return content })

// Markdown renders .md topics with glamour and leaves other topics alone.
type Markdown struct {
	// Style is a glamour style name or a path to a style file. Empty picks
	// dark or light from the terminal background.
	Style string
	// Width is the wrap width. 0 keeps glamour's default.
	Width int
}

func (m Markdown) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if m.Style != "" {
		opts = []glamour.TermRendererOption{glamour.WithStylePath(m.Style)}
	}
	if m.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(m.Width))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
