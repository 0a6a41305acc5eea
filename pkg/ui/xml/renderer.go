// Package xml writes documents as XML, one element per line with annotated
// runs as nested elements.
package xml

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/layout"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
)

var elementNames = map[annotation.Kind]string{
	annotation.Link:         "link",
	annotation.Emphasis:     "em",
	annotation.Strong:       "strong",
	annotation.Code:         "code",
	annotation.Image:        "image",
	annotation.Preformatted: "pre",
}

// Renderer writes XML.
type Renderer struct {
	output io.Writer
}

// New creates a new XML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// Build returns the XML tree of doc.
func Build(doc *textrender.Document) *etree.Document {
	x := newDocument()
	root := x.CreateElement("document")
	root.CreateAttr("width", strconv.Itoa(doc.Width))

	for _, l := range doc.Lines {
		root.CreateText("\n  ")
		if l.IsBorder() {
			root.CreateElement("border").SetText(l.String())
			continue
		}
		addLine(root.CreateElement("line"), l)
	}

	if len(doc.Fragments) > 0 {
		root.CreateText("\n  ")
		frags := root.CreateElement("fragments")
		for _, f := range doc.Fragments {
			el := frags.CreateElement("fragment")
			el.CreateAttr("name", f.Name)
			el.CreateAttr("block", strconv.Itoa(f.Position.Block))
			el.CreateAttr("line", strconv.Itoa(f.Position.Line))
		}
	}
	if len(doc.Footnotes) > 0 {
		root.CreateText("\n  ")
		notes := root.CreateElement("footnotes")
		for _, fn := range doc.Footnotes {
			el := notes.CreateElement("footnote")
			el.CreateAttr("ref", strconv.Itoa(fn.Ref))
			el.CreateAttr("target", fn.Target)
		}
	}
	root.CreateText("\n")
	return x
}

func newDocument() *etree.Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	x.CreateText("\n")
	return x
}

// addLine writes the runs of l into el. Each annotation of a run becomes an
// element, outermost first.
func addLine(el *etree.Element, l layout.Line) {
	for _, run := range l.Runs {
		parent := el
		for _, a := range run.Annotations {
			parent = parent.CreateElement(elementNames[a.Kind])
			if a.Kind == annotation.Link && a.Target != "" {
				parent.CreateAttr("href", a.Target)
			}
		}
		parent.CreateText(run.Text)
	}
}

func (r *Renderer) write(x *etree.Document) error {
	x.CreateText("\n")
	_, err := x.WriteTo(r.output)
	return err
}

func (r *Renderer) RenderDocument(doc *textrender.Document) error {
	return r.write(Build(doc))
}

func (r *Renderer) RenderText(text string) error {
	x := newDocument()
	x.CreateElement("output").SetText(text)
	return r.write(x)
}

func (r *Renderer) RenderError(err error) error {
	x := newDocument()
	el := x.CreateElement("error")
	el.CreateAttr("code", string(errors.RootCode(err)))
	el.SetText(err.Error())
	return r.write(x)
}
