package textrender

import (
	"fmt"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/registry"
)

// Decorator supplies the text written at annotation boundaries.
type Decorator interface {
	// Start returns the text written before a span opens.
	Start(a annotation.Annotation) string
	// End returns the text written after a span closes. ref is the
	// footnote number of a closed link, or 0.
	End(a annotation.Annotation, ref int) string
	// Image returns the text standing in for an image.
	Image(title string) string
	// Footnotes reports whether link targets are numbered and listed after
	// the document.
	Footnotes() bool
}

// RichDecorator adds no markers. Annotations are only carried on runs.
type RichDecorator struct{}

func (RichDecorator) Start(annotation.Annotation) string    { return "" }
func (RichDecorator) End(annotation.Annotation, int) string { return "" }
func (RichDecorator) Image(title string) string             { return title }
func (RichDecorator) Footnotes() bool                       { return false }

// MarkdownDecorator writes emphasis as *text*, strong as **text**, code in
// backticks, links as [text][n] with a "[n]: target" footnote and images as
// [title].
type MarkdownDecorator struct{}

func (MarkdownDecorator) Start(a annotation.Annotation) string {
	switch a.Kind {
	case annotation.Emphasis:
		return "*"
	case annotation.Strong:
		return "**"
	case annotation.Code:
		return "`"
	case annotation.Link:
		return "["
	}
	return ""
}

func (MarkdownDecorator) End(a annotation.Annotation, ref int) string {
	switch a.Kind {
	case annotation.Emphasis:
		return "*"
	case annotation.Strong:
		return "**"
	case annotation.Code:
		return "`"
	case annotation.Link:
		return fmt.Sprintf("][%d]", ref)
	}
	return ""
}

func (MarkdownDecorator) Image(title string) string {
	return "[" + title + "]"
}

func (MarkdownDecorator) Footnotes() bool { return true }

// Footnote is a numbered link target.
type Footnote struct {
	Ref    int    `json:"ref"`
	Target string `json:"target"`
}

// notes is shared by a renderer and all of its sub-renderers so footnote
// numbers stay unique across the whole document.
type notes struct {
	list []Footnote
}

func (n *notes) add(target string) int {
	ref := len(n.list) + 1
	n.list = append(n.list, Footnote{Ref: ref, Target: target})
	return ref
}

var decorators = registry.New[Decorator]("decorator")

func init() {
	registry.MustRegister[Decorator](decorators, "rich", RichDecorator{})
	registry.MustRegister[Decorator](decorators, "markdown", MarkdownDecorator{})
}

// RegisterDecorator makes d available to DecoratorByName.
func RegisterDecorator(name string, d Decorator) error {
	return decorators.Register(name, d)
}

// DecoratorNames returns the registered decorator names, sorted.
func DecoratorNames() []string {
	return decorators.Names()
}

// DecoratorByName returns the decorator registered under name. The empty
// name selects rich.
func DecoratorByName(name string) (Decorator, error) {
	if name == "" {
		name = "rich"
	}
	return decorators.Get(name)
}
