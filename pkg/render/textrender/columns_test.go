package textrender_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
)

func column(t *testing.T, parent *textrender.Renderer, width int, lines ...string) *textrender.Renderer {
	t.Helper()
	col, err := parent.NewSubRenderer(width)
	require.NoError(t, err)
	for _, l := range lines {
		require.NoError(t, col.AddInlineText(l))
		require.NoError(t, col.NewLine())
	}
	return col
}

func outputLines(t *testing.T, r *textrender.Renderer) []string {
	t.Helper()
	return strings.Split(strings.TrimSuffix(finalize(t, r), "\n"), "\n")
}

func TestColumns_PadToTallest(t *testing.T) {
	r := newRenderer(t, 11)
	require.NoError(t, r.AddHorizontalBorder())
	cols := []*textrender.Renderer{
		column(t, r, 3, "a", "b"),
		column(t, r, 3, "1", "2", "3", "4", "5"),
		column(t, r, 3, "x", "y", "z"),
	}
	require.NoError(t, r.AppendColumnsWithBorders(cols, false))

	want := []string{
		"───┬───┬───",
		"a  │1  │x  ",
		"b  │2  │y  ",
		"   │3  │z  ",
		"   │4  │   ",
		"   │5  │   ",
		"───┴───┴───",
	}
	if diff := cmp.Diff(want, outputLines(t, r)); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestColumns_CollapseWithFollowingBorder(t *testing.T) {
	tests := []struct {
		name     string
		collapse bool
		want     []string
	}{
		{
			name:     "collapsed",
			collapse: true,
			want:     []string{"A│B", "─┴─"},
		},
		{
			name:     "not collapsed",
			collapse: false,
			want:     []string{"─┬─", "A│B", "─┴─", "───"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, 3)
			cols := []*textrender.Renderer{column(t, r, 1, "A"), column(t, r, 1, "B")}
			require.NoError(t, r.AppendColumnsWithBorders(cols, tt.collapse))
			require.NoError(t, r.AddHorizontalBorder())

			if diff := cmp.Diff(tt.want, outputLines(t, r)); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColumns_IndentedBorders(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		indent int
		lead   bool
		want   []string
	}{
		{
			name:  "root block",
			width: 10,
			want:  []string{"A   │B   ", "────┴─────"},
		},
		{
			name:   "collapse inside an indented block",
			width:  12,
			indent: 2,
			want:   []string{"  A   │B   ", "  ────┴─────"},
		},
		{
			name:   "indented border takes the top junctions",
			width:  12,
			indent: 2,
			lead:   true,
			want:   []string{"  ────┬─────", "  A   │B   ", "  ────┴─────"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, tt.width)
			if tt.indent > 0 {
				require.NoError(t, r.StartIndentedBlock(tt.indent))
			}
			if tt.lead {
				require.NoError(t, r.AddHorizontalBorder())
			}
			cols := []*textrender.Renderer{column(t, r, 4, "A"), column(t, r, 4, "B")}
			require.NoError(t, r.AppendColumnsWithBorders(cols, true))
			require.NoError(t, r.AddHorizontalBorder())
			if tt.indent > 0 {
				require.NoError(t, r.EndBlock())
			}

			if diff := cmp.Diff(tt.want, outputLines(t, r)); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColumns_NestedCollapse(t *testing.T) {
	r := newRenderer(t, 7)

	outer := column(t, r, 3)
	inner := []*textrender.Renderer{column(t, outer, 1, "a"), column(t, outer, 1, "b")}
	require.NoError(t, outer.AppendColumnsWithBorders(inner, true))

	require.NoError(t, r.AddHorizontalBorder())
	cols := []*textrender.Renderer{outer, column(t, r, 3, "c", "d")}
	require.NoError(t, r.AppendColumnsWithBorders(cols, true))
	require.NoError(t, r.AddHorizontalBorder())

	want := []string{
		"───┬───",
		"a│b│c  ",
		" │ │d  ",
		"─┴─┴───",
	}
	if diff := cmp.Diff(want, outputLines(t, r)); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestColumns_Errors(t *testing.T) {
	t.Run("columns wider than parent", func(t *testing.T) {
		r := newRenderer(t, 5)
		cols := []*textrender.Renderer{column(t, r, 3, "x"), column(t, r, 3, "y")}
		assertCode(t, r.AppendColumnsWithBorders(cols, false), errors.ErrColumnWidthMismatch)
		assert.True(t, r.Empty())
		require.NoError(t, cols[0].AddInlineText("still usable"))
	})

	t.Run("line wider than column", func(t *testing.T) {
		r := newRenderer(t, 10)
		col, err := r.NewSubRenderer(3)
		require.NoError(t, err)
		require.NoError(t, col.AddBlockLine("toolong"))
		assertCode(t, r.AppendColumnsWithBorders([]*textrender.Renderer{col}, false), errors.ErrColumnWidthMismatch)
	})

	t.Run("repeated column", func(t *testing.T) {
		r := newRenderer(t, 10)
		col := column(t, r, 2, "x")
		assertCode(t, r.AppendColumnsWithBorders([]*textrender.Renderer{col, col}, false), errors.ErrInvalidInput)
	})

	t.Run("column with open block", func(t *testing.T) {
		r := newRenderer(t, 10)
		col := column(t, r, 2, "x")
		require.NoError(t, col.StartBlock())
		assertCode(t, r.AppendColumnsWithBorders([]*textrender.Renderer{col}, false), errors.ErrUnbalancedBlock)
	})

	t.Run("consumed column", func(t *testing.T) {
		r := newRenderer(t, 10)
		col := column(t, r, 2, "x")
		require.NoError(t, r.AppendColumnsWithBorders([]*textrender.Renderer{col}, false))
		assertCode(t, r.AppendColumnsWithBorders([]*textrender.Renderer{col}, false), errors.ErrConsumedRenderer)
	})
}

func TestColumns_FragmentsShiftToRows(t *testing.T) {
	r := newRenderer(t, 7)
	require.NoError(t, r.AddHorizontalBorder())

	left := column(t, r, 3, "a")
	right, err := r.NewSubRenderer(3)
	require.NoError(t, err)
	require.NoError(t, right.AddBlockLine("b"))
	require.NoError(t, right.RecordFragStart("cell"))
	require.NoError(t, right.AddBlockLine("c"))

	require.NoError(t, r.AppendColumnsWithBorders([]*textrender.Renderer{left, right}, false))

	doc, err := r.Document()
	require.NoError(t, err)
	require.Len(t, doc.Fragments, 1)
	assert.Equal(t, "cell", doc.Fragments[0].Name)
	assert.Equal(t, 2, doc.Fragments[0].Position.Line)
	assert.Equal(t, "   │c  ", doc.Text()[2])
}
