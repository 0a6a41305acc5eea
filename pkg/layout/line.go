package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arthur-debert/blocktext/pkg/annotation"
)

// Run is a contiguous span of text with the annotations active when it was
// appended.
type Run struct {
	Text        string         `json:"text"`
	Annotations annotation.Set `json:"annotations,omitempty"`
}

// Width returns the rendered width of the run in cells.
func (r Run) Width() int {
	return runewidth.StringWidth(r.Text)
}

// Line is one output line: either text runs or, when Border is set, a
// horizontal border.
type Line struct {
	Runs   []Run
	Border *Border
}

// TextLine returns a line holding a single run.
func TextLine(text string, anns annotation.Set) Line {
	var l Line
	l.Append(text, anns)
	return l
}

// BorderLine returns a line holding a fresh border of the given width.
func BorderLine(width int) Line {
	return Line{Border: NewBorder(width)}
}

// IsBorder reports whether the line is a horizontal border.
func (l Line) IsBorder() bool {
	return l.Border != nil
}

// IsBlank reports whether the line is a text line with no visible content.
func (l Line) IsBlank() bool {
	if l.IsBorder() {
		return false
	}
	for _, r := range l.Runs {
		if strings.TrimSpace(r.Text) != "" {
			return false
		}
	}
	return true
}

// Empty reports whether the line holds no runs at all.
func (l Line) Empty() bool {
	return !l.IsBorder() && len(l.Runs) == 0
}

// Width returns the rendered width of the line in cells.
func (l Line) Width() int {
	if l.IsBorder() {
		return l.Border.Width()
	}
	w := 0
	for _, r := range l.Runs {
		w += r.Width()
	}
	return w
}

// String returns the plain text of the line.
func (l Line) String() string {
	if l.IsBorder() {
		return l.Border.String()
	}
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Append adds text with the given annotations, merging into the last run
// when the annotations match.
func (l *Line) Append(text string, anns annotation.Set) {
	if text == "" {
		return
	}
	if n := len(l.Runs); n > 0 && l.Runs[n-1].Annotations.Equal(anns) {
		l.Runs[n-1].Text += text
		return
	}
	l.Runs = append(l.Runs, Run{Text: text, Annotations: anns})
}

// AppendLine moves all runs of other onto the end of l.
func (l *Line) AppendLine(other Line) {
	for _, r := range other.Runs {
		l.Append(r.Text, r.Annotations)
	}
}

// Prepend inserts text at the start of the line. Border lines are converted
// to text first so the prefix can precede them.
func (l *Line) Prepend(text string, anns annotation.Set) {
	if text == "" {
		return
	}
	if l.IsBorder() {
		*l = l.AsText(nil)
	}
	if len(l.Runs) > 0 && l.Runs[0].Annotations.Equal(anns) {
		l.Runs[0].Text = text + l.Runs[0].Text
		return
	}
	l.Runs = append([]Run{{Text: text, Annotations: anns}}, l.Runs...)
}

// PadTo appends spaces until the line is width cells wide.
func (l *Line) PadTo(width int, anns annotation.Set) {
	if l.IsBorder() {
		l.Border.StretchTo(width)
		return
	}
	if w := l.Width(); w < width {
		l.Append(strings.Repeat(" ", width-w), anns)
	}
}

// AsText returns the line as text runs; a border becomes its glyph string.
func (l Line) AsText(anns annotation.Set) Line {
	if !l.IsBorder() {
		return l
	}
	return TextLine(l.Border.String(), anns)
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := Line{}
	if l.Border != nil {
		out.Border = l.Border.Clone()
	}
	if l.Runs != nil {
		out.Runs = make([]Run, len(l.Runs))
		copy(out.Runs, l.Runs)
	}
	return out
}
