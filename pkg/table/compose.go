package table

import (
	"strings"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/layout"
)

// Column is one finished sub-document and the width it was rendered at.
type Column struct {
	Width int
	Lines []layout.Line
}

// Composition is the result of Compose.
type Composition struct {
	// Top is a new border to emit above the rows. It is nil when the
	// parent's own border was used or when collapse suppressed it.
	Top *layout.Border
	// Rows are the merged content lines.
	Rows []layout.Line
	// Bottom is the closing border.
	Bottom *layout.Border
	// Dropped holds, per column, how many leading lines were merged into the
	// top border.
	Dropped []int
}

// Compose merges cols into rows for a parent of the given width.
//
// parentTop is the parent's last line when that line is a border; junctions
// are added to it in place. All validation happens before parentTop is
// touched, so an error leaves it unchanged. anns are the annotations open in
// the parent and tag separators and padding.
func Compose(parentTop *layout.Border, cols []Column, collapse bool, width int, anns annotation.Set) (*Composition, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	if err := validate(cols, width); err != nil {
		return nil, err
	}

	sets := make([][]layout.Line, len(cols))
	for i, col := range cols {
		lines := make([]layout.Line, len(col.Lines))
		for j, l := range col.Lines {
			lines[j] = l.Clone()
			lines[j].PadTo(col.Width, anns)
		}
		sets[i] = lines
	}

	comp := &Composition{
		Bottom:  layout.NewBorder(width),
		Dropped: make([]int, len(cols)),
	}
	top := parentTop
	if top == nil && !collapse {
		top = layout.NewBorder(width)
		comp.Top = top
	}

	pos := 0
	for _, col := range cols[:len(cols)-1] {
		if top != nil {
			top.JoinBelow(pos + col.Width)
		}
		comp.Bottom.JoinAbove(pos + col.Width)
		pos += col.Width + 1
	}

	padding := make([]string, len(cols))
	if collapse {
		pos = 0
		for i, col := range cols {
			lines := sets[i]
			if top != nil && len(lines) > 0 && lines[0].IsBorder() {
				top.Merge(lines[0].Border, pos)
				lines = lines[1:]
				comp.Dropped[i] = 1
			}
			if n := len(lines); n > 0 && lines[n-1].IsBorder() {
				last := lines[n-1].Border
				comp.Bottom.Merge(last, pos)
				padding[i] = last.VerticalsAbove()
				lines = lines[:n-1]
			}
			sets[i] = lines
			pos += col.Width + 1
		}
	}

	height := 0
	for _, lines := range sets {
		if len(lines) > height {
			height = len(lines)
		}
	}

	sep := string(layout.GlyphVertical)
	for row := 0; row < height; row++ {
		var line layout.Line
		for i, col := range cols {
			if row < len(sets[i]) {
				line.AppendLine(sets[i][row].AsText(anns))
			} else if padding[i] != "" {
				line.Append(padding[i], anns)
			} else {
				line.Append(strings.Repeat(" ", col.Width), anns)
			}
			if i < len(cols)-1 {
				line.Append(sep, anns)
			}
		}
		comp.Rows = append(comp.Rows, line)
	}

	comp.Bottom.Collapsible = collapse
	return comp, nil
}

func validate(cols []Column, width int) error {
	total := len(cols) - 1
	for i, col := range cols {
		if col.Width < 1 {
			return errors.Newf(errors.ErrInvalidWidth, "column %d has width %d", i, col.Width).
				WithDetail("column", i)
		}
		for j, l := range col.Lines {
			if w := l.Width(); w > col.Width {
				return errors.Newf(errors.ErrColumnWidthMismatch,
					"column %d line %d is %d cells wide, column width is %d", i, j, w, col.Width).
					WithDetail("column", i).
					WithDetail("line", j).
					WithDetail("width", col.Width)
			}
		}
		total += col.Width
	}
	if total > width {
		return errors.Newf(errors.ErrColumnWidthMismatch,
			"columns need %d cells, renderer width is %d", total, width).
			WithDetail("width", width).
			WithDetail("total", total)
	}
	return nil
}
