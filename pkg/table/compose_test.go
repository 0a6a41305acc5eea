package table_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/layout"
	"github.com/arthur-debert/blocktext/pkg/table"
)

func textColumn(width int, texts ...string) table.Column {
	col := table.Column{Width: width}
	for _, t := range texts {
		col.Lines = append(col.Lines, layout.TextLine(t, nil))
	}
	return col
}

func rowStrings(comp *table.Composition) []string {
	out := make([]string, len(comp.Rows))
	for i, r := range comp.Rows {
		out[i] = r.String()
	}
	return out
}

func TestCompose_PadsToTallestColumn(t *testing.T) {
	parentTop := layout.NewBorder(11)
	cols := []table.Column{
		textColumn(3, "a", "b"),
		textColumn(3, "1", "2", "3", "4", "5"),
		textColumn(3, "x", "y", "z"),
	}

	comp, err := table.Compose(parentTop, cols, false, 11, nil)
	require.NoError(t, err)

	want := []string{
		"a  │1  │x  ",
		"b  │2  │y  ",
		"   │3  │z  ",
		"   │4  │   ",
		"   │5  │   ",
	}
	if diff := cmp.Diff(want, rowStrings(comp)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, comp.Top, "the parent border is reused")
	assert.Equal(t, "───┬───┬───", parentTop.String())
	assert.Equal(t, "───┴───┴───", comp.Bottom.String())
	assert.False(t, comp.Bottom.Collapsible)
}

func TestCompose_TopBorder(t *testing.T) {
	tests := []struct {
		name     string
		collapse bool
		wantTop  string
	}{
		{name: "fresh top border without collapse", collapse: false, wantTop: "──┬──"},
		{name: "no top border with collapse", collapse: true, wantTop: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := []table.Column{textColumn(2, "ab"), textColumn(2, "cd")}
			comp, err := table.Compose(nil, cols, tt.collapse, 5, nil)
			require.NoError(t, err)

			if tt.wantTop == "" {
				assert.Nil(t, comp.Top)
			} else {
				require.NotNil(t, comp.Top)
				assert.Equal(t, tt.wantTop, comp.Top.String())
			}
			assert.Equal(t, []string{"ab│cd"}, rowStrings(comp))
			assert.Equal(t, "──┴──", comp.Bottom.String())
			assert.Equal(t, tt.collapse, comp.Bottom.Collapsible)
		})
	}
}

func TestCompose_CollapseMergesColumnBorders(t *testing.T) {
	lead := layout.BorderLine(3)
	lead.Border.JoinBelow(1)
	trail := layout.BorderLine(3)
	trail.Border.JoinAbove(1)

	nested := table.Column{Width: 3, Lines: []layout.Line{
		lead,
		layout.TextLine("a│b", nil),
		trail,
	}}
	parentTop := layout.NewBorder(7)

	comp, err := table.Compose(parentTop, []table.Column{nested, textColumn(3, "c", "d")}, true, 7, nil)
	require.NoError(t, err)

	assert.Equal(t, "─┬─┬───", parentTop.String())
	want := []string{
		"a│b│c  ",
		" │ │d  ",
	}
	if diff := cmp.Diff(want, rowStrings(comp)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "─┴─┴───", comp.Bottom.String())
	assert.Equal(t, []int{1, 0}, comp.Dropped)
}

func TestCompose_WidthMismatch(t *testing.T) {
	tests := []struct {
		name  string
		cols  []table.Column
		width int
	}{
		{
			name:  "line wider than column",
			cols:  []table.Column{textColumn(2, "abc")},
			width: 10,
		},
		{
			name:  "columns wider than parent",
			cols:  []table.Column{textColumn(4, "a"), textColumn(4, "b")},
			width: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parentTop := layout.NewBorder(tt.width)
			_, err := table.Compose(parentTop, tt.cols, false, tt.width, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrColumnWidthMismatch))
			assert.Equal(t, layout.NewBorder(tt.width).String(), parentTop.String(), "parent border untouched")
		})
	}
}

func TestCompose_NoColumns(t *testing.T) {
	comp, err := table.Compose(nil, nil, false, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, comp)
}
