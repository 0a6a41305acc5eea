package layout

import "strings"

// Seg is one cell of a horizontal border. The bits record whether a vertical
// line meets the border from above or below.
type Seg uint8

const (
	Straight  Seg = 0
	JoinAbove Seg = 1
	JoinBelow Seg = 2
	JoinCross Seg = JoinAbove | JoinBelow
)

// Border glyphs.
const (
	GlyphHorizontal = '─'
	GlyphVertical   = '│'
	GlyphJoinAbove  = '┴'
	GlyphJoinBelow  = '┬'
	GlyphCross      = '┼'
)

// Rune returns the glyph for the segment.
func (s Seg) Rune() rune {
	switch s {
	case JoinAbove:
		return GlyphJoinAbove
	case JoinBelow:
		return GlyphJoinBelow
	case JoinCross:
		return GlyphCross
	default:
		return GlyphHorizontal
	}
}

// Border is a horizontal rule. Collapsible borders absorb an immediately
// following border instead of stacking a second line.
type Border struct {
	Segs []Seg
	// Indent is the number of blank cells before the first segment.
	Indent      int
	Collapsible bool
}

// NewBorder returns a straight border width cells wide.
func NewBorder(width int) *Border {
	if width < 0 {
		width = 0
	}
	return &Border{Segs: make([]Seg, width)}
}

// Width returns the border width in cells, indent included.
func (b *Border) Width() int {
	return b.Indent + len(b.Segs)
}

// JoinAbove marks a vertical line meeting the border from above at x.
func (b *Border) JoinAbove(x int) {
	if x >= 0 && x < len(b.Segs) {
		b.Segs[x] |= JoinAbove
	}
}

// JoinBelow marks a vertical line leaving the border downwards at x.
func (b *Border) JoinBelow(x int) {
	if x >= 0 && x < len(b.Segs) {
		b.Segs[x] |= JoinBelow
	}
}

// Merge folds other into b starting at cell pos; junctions of both are kept.
// Both indents are honoured, pos counts from the start of b's line.
func (b *Border) Merge(other *Border, pos int) {
	for i, s := range other.Segs {
		if x := pos + other.Indent - b.Indent + i; x >= 0 && x < len(b.Segs) {
			b.Segs[x] |= s
		}
	}
}

// StretchTo extends the border with straight segments up to width.
func (b *Border) StretchTo(width int) {
	for b.Width() < width {
		b.Segs = append(b.Segs, Straight)
	}
}

// VerticalsAbove returns a text line with a vertical glyph wherever a line
// meets the border from above, and spaces elsewhere.
func (b *Border) VerticalsAbove() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", b.Indent))
	for _, s := range b.Segs {
		if s&JoinAbove != 0 {
			sb.WriteRune(GlyphVertical)
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// String renders the border glyphs.
func (b *Border) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", b.Indent))
	for _, s := range b.Segs {
		sb.WriteRune(s.Rune())
	}
	return sb.String()
}

// Clone returns a copy of the border.
func (b *Border) Clone() *Border {
	out := &Border{Segs: make([]Seg, len(b.Segs)), Indent: b.Indent, Collapsible: b.Collapsible}
	copy(out.Segs, b.Segs)
	return out
}
