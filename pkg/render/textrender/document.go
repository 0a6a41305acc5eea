package textrender

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/fragment"
	"github.com/arthur-debert/blocktext/pkg/layout"
)

// Document is the finished output of a Renderer with everything a rich
// consumer needs to style it.
type Document struct {
	Width     int                 `json:"width"`
	Lines     []layout.Line       `json:"lines"`
	Spans     []annotation.Span   `json:"spans,omitempty"`
	Fragments []fragment.Fragment `json:"fragments,omitempty"`
	Footnotes []Footnote          `json:"footnotes,omitempty"`
}

// String returns the plain text, each line terminated by "\n".
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.Lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Text returns the plain text of every line.
func (d *Document) Text() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.String()
	}
	return out
}

// Document consumes the renderer and returns the finished lines. A root
// renderer with a footnoting decorator lists link targets after the text.
func (r *Renderer) Document() (*Document, error) {
	if err := r.guard("Document"); err != nil {
		return nil, err
	}
	if err := r.checkBalanced(); err != nil {
		return nil, r.violation(err)
	}

	r.flushText()
	lines := r.lines
	var footnotes []Footnote
	if r.root && r.deco.Footnotes() && len(r.notes.list) > 0 {
		w, err := layout.NewWrapper(r.width)
		if err != nil {
			return nil, r.violation(err)
		}
		for _, fn := range r.notes.list {
			if err := w.AddText(fmt.Sprintf("[%d]: %s", fn.Ref, fn.Target), nil); err != nil {
				return nil, r.violation(err)
			}
			w.Flush()
		}
		if n := len(lines); n > 0 && !lines[n-1].IsBlank() {
			lines = append(lines, layout.Line{})
		}
		lines = append(lines, w.Take()...)
		footnotes = r.notes.list
	}
	r.consume()

	r.log.Trace().Int("lines", len(lines)).Int("footnotes", len(footnotes)).Msg("Finalized")
	return &Document{
		Width:     r.width,
		Lines:     lines,
		Spans:     r.tracker.Spans(),
		Fragments: r.frags.All(),
		Footnotes: footnotes,
	}, nil
}
