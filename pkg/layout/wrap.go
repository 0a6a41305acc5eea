package layout

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
)

// TabWidth is the tab stop used when expanding tabs in preformatted text.
const TabWidth = 8

// Wrapper accumulates inline text into lines of at most Width cells.
type Wrapper struct {
	width int

	lines   []Line
	line    Line
	lineLen int

	word    Line
	wordLen int

	// spacePending records whitespace seen since the last word or verbatim
	// text was placed; only then is a separating space emitted.
	spacePending bool
	spaceAnns    annotation.Set

	textLen int
}

// NewWrapper returns a wrapper for lines of width cells.
func NewWrapper(width int) (*Wrapper, error) {
	if width < 1 {
		return nil, errors.Newf(errors.ErrInvalidWidth, "wrap width must be at least 1, got %d", width).
			WithDetail("width", width)
	}
	return &Wrapper{width: width}, nil
}

// Width returns the configured line width.
func (w *Wrapper) Width() int {
	return w.width
}

// TextLen returns the number of cells of visible text added so far.
func (w *Wrapper) TextLen() int {
	return w.textLen
}

// Pending reports whether the wrapper holds any text, finished or not.
func (w *Wrapper) Pending() bool {
	return len(w.lines) > 0 || !w.line.Empty() || w.wordLen > 0 || !w.word.Empty()
}

// LineIndex returns the index of the line currently being filled.
func (w *Wrapper) LineIndex() int {
	return len(w.lines)
}

// AddText adds normal (wrapped) text. Whitespace runs are break
// opportunities; control characters are dropped. A character wider than the
// line is rejected before anything is added.
func (w *Wrapper) AddText(text string, anns annotation.Set) error {
	if err := w.Check(text); err != nil {
		return err
	}
	for _, c := range text {
		switch {
		case unicode.IsSpace(c):
			w.flushWord()
			w.spacePending = true
			w.spaceAnns = anns
		case unicode.IsControl(c):
		default:
			cw := runewidth.RuneWidth(c)
			w.word.Append(string(c), anns)
			w.wordLen += cw
			w.textLen += cw
		}
	}
	return nil
}

// Check returns an INVALID_WIDTH error if text holds a character wider than
// the line, which AddText could never place.
func (w *Wrapper) Check(text string) error {
	for _, c := range text {
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			continue
		}
		if cw := runewidth.RuneWidth(c); cw > w.width {
			return errors.Newf(errors.ErrInvalidWidth, "character %q is %d cells wide, line has %d", c, cw, w.width).
				WithDetail("width", w.width)
		}
	}
	return nil
}

// AddPreformatted adds text verbatim. Only '\n' ends a line, and every '\n'
// ends one, producing empty lines for consecutive breaks. Tabs expand to the
// next tab stop.
func (w *Wrapper) AddPreformatted(text string, anns annotation.Set) {
	w.flushWord()
	if w.spacePending && w.lineLen > 0 {
		w.line.Append(" ", w.spaceAnns)
		w.lineLen++
	}
	w.spacePending = false
	pieces := strings.Split(text, "\n")
	for i, piece := range pieces {
		if i > 0 {
			w.flushLine(true)
		}
		piece = w.expandTabs(strings.ReplaceAll(piece, "\r", ""))
		if piece == "" {
			continue
		}
		pw := runewidth.StringWidth(piece)
		w.line.Append(piece, anns)
		w.lineLen += pw
		w.textLen += runewidth.StringWidth(strings.TrimSpace(piece))
	}
}

func (w *Wrapper) expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := w.lineLen
	for _, c := range s {
		if c == '\t' {
			n := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(c)
		col += runewidth.RuneWidth(c)
	}
	return b.String()
}

// Flush finishes the pending word and line.
func (w *Wrapper) Flush() {
	w.flushWord()
	w.flushLine(false)
}

// Take flushes and returns all completed lines, leaving the wrapper empty.
func (w *Wrapper) Take() []Line {
	w.Flush()
	lines := w.lines
	w.lines = nil
	w.spacePending = false
	w.spaceAnns = nil
	return lines
}

func (w *Wrapper) flushWord() {
	if w.wordLen == 0 && w.word.Empty() {
		return
	}

	space := 0
	if w.lineLen > 0 && w.spacePending {
		space = 1
	}

	switch {
	case w.lineLen+space+w.wordLen <= w.width:
		if space > 0 {
			w.line.Append(" ", w.spaceAnns)
			w.lineLen++
		}
		w.line.AppendLine(w.word)
		w.lineLen += w.wordLen
	case w.wordLen <= w.width:
		w.flushLine(false)
		w.line = w.word
		w.lineLen = w.wordLen
		w.word = Line{}
	default:
		w.flushLine(false)
		w.splitWord()
	}

	w.word = Line{}
	w.wordLen = 0
	w.spacePending = false
}

// splitWord hard-splits the pending word across as many lines as needed;
// the tail stays in the current line.
func (w *Wrapper) splitWord() {
	left := w.width
	for _, run := range w.word.Runs {
		var piece strings.Builder
		for _, c := range run.Text {
			cw := runewidth.RuneWidth(c)
			if cw > left {
				w.line.Append(piece.String(), run.Annotations)
				piece.Reset()
				w.lineLen = w.width - left
				w.flushLine(false)
				left = w.width
			}
			piece.WriteRune(c)
			left -= cw
		}
		w.line.Append(piece.String(), run.Annotations)
	}
	w.lineLen = w.width - left
}

func (w *Wrapper) flushLine(force bool) {
	if !force && w.line.Empty() {
		return
	}
	w.lines = append(w.lines, w.line)
	w.line = Line{}
	w.lineLen = 0
}
