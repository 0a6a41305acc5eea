package script

import (
	"strconv"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/render"
)

// Op names.
const (
	OpAddEmptyLine         = "add_empty_line"
	OpStartBlock           = "start_block"
	OpStartIndentedBlock   = "start_indented_block"
	OpEndBlock             = "end_block"
	OpNewLine              = "new_line"
	OpNewLineHard          = "new_line_hard"
	OpAddHorizontalBorder  = "add_horizontal_border"
	OpStartPre             = "start_pre"
	OpEndPre               = "end_pre"
	OpAddPreformattedBlock = "add_preformatted_block"
	OpText                 = "text"
	OpAddBlockLine         = "add_block_line"
	OpSubrender            = "subrender"
	OpColumns              = "columns"
	OpStartLink            = "start_link"
	OpEndLink              = "end_link"
	OpStartEmphasis        = "start_emphasis"
	OpEndEmphasis          = "end_emphasis"
	OpStartStrong          = "start_strong"
	OpEndStrong            = "end_strong"
	OpStartCode            = "start_code"
	OpEndCode              = "end_code"
	OpAddImage             = "add_image"
	OpRecordFragStart      = "record_frag_start"
)

// Indenter is implemented by backends that support indented blocks.
type Indenter interface {
	StartIndentedBlock(n int) error
}

// Bounded is implemented by backends whose usable width shrinks inside
// indented blocks.
type Bounded interface {
	AvailableWidth() int
}

// simple maps argument-less ops to their renderer call.
func simple[R render.Renderer[R]](r R, name string) (func() error, bool) {
	switch name {
	case OpAddEmptyLine:
		return r.AddEmptyLine, true
	case OpStartBlock:
		return r.StartBlock, true
	case OpEndBlock:
		return r.EndBlock, true
	case OpNewLine:
		return r.NewLine, true
	case OpNewLineHard:
		return r.NewLineHard, true
	case OpAddHorizontalBorder:
		return r.AddHorizontalBorder, true
	case OpStartPre:
		return r.StartPre, true
	case OpEndPre:
		return r.EndPre, true
	case OpEndLink:
		return r.EndLink, true
	case OpStartEmphasis:
		return r.StartEmphasis, true
	case OpEndEmphasis:
		return r.EndEmphasis, true
	case OpStartStrong:
		return r.StartStrong, true
	case OpEndStrong:
		return r.EndStrong, true
	case OpStartCode:
		return r.StartCode, true
	case OpEndCode:
		return r.EndCode, true
	}
	return nil, false
}

var opNames = map[string]bool{
	OpAddEmptyLine: true, OpStartBlock: true, OpStartIndentedBlock: true, OpEndBlock: true,
	OpNewLine: true, OpNewLineHard: true, OpAddHorizontalBorder: true,
	OpStartPre: true, OpEndPre: true, OpAddPreformattedBlock: true,
	OpText: true, OpAddBlockLine: true, OpSubrender: true, OpColumns: true,
	OpStartLink: true, OpEndLink: true, OpStartEmphasis: true, OpEndEmphasis: true,
	OpStartStrong: true, OpEndStrong: true, OpStartCode: true, OpEndCode: true,
	OpAddImage: true, OpRecordFragStart: true,
}

func known(name string) bool {
	return opNames[name]
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Replay applies ops to r in order and stops at the first failure. The
// returned error carries the failing op and wraps the renderer's error.
func Replay[R render.Renderer[R]](r R, ops []Op) error {
	for i, op := range ops {
		if err := apply(r, op); err != nil {
			return errors.Wrapf(err, errors.ErrScriptOp, "op %d (%s) failed", i, op.Op).
				WithDetail("index", i).
				WithDetail("op", op.Op)
		}
	}
	return nil
}

func apply[R render.Renderer[R]](r R, op Op) error {
	if call, ok := simple(r, op.Op); ok {
		return call()
	}
	switch op.Op {
	case OpStartIndentedBlock:
		ind, ok := any(r).(Indenter)
		if !ok {
			return errors.New(errors.ErrScriptOp, "backend has no indented blocks")
		}
		return ind.StartIndentedBlock(op.Indent)
	case OpAddPreformattedBlock:
		return r.AddPreformattedBlock(op.Text)
	case OpText:
		return r.AddInlineText(op.Text)
	case OpAddBlockLine:
		return r.AddBlockLine(op.Text)
	case OpStartLink:
		return r.StartLink(op.Target)
	case OpAddImage:
		return r.AddImage(op.Title)
	case OpRecordFragStart:
		return r.RecordFragStart(op.Name)
	case OpSubrender:
		width := op.Width
		if width == 0 {
			width = r.Width()
			if b, ok := any(r).(Bounded); ok {
				width = b.AvailableWidth()
			}
		}
		sub, err := r.NewSubRenderer(width)
		if err != nil {
			return err
		}
		if err := Replay(sub, op.Ops); err != nil {
			return err
		}
		return r.AppendSubrender(sub, op.Prefixes)
	case OpColumns:
		cols := make([]R, len(op.Columns))
		for i, c := range op.Columns {
			col, err := r.NewSubRenderer(c.Width)
			if err != nil {
				return err
			}
			if err := Replay(col, c.Ops); err != nil {
				return errors.Wrapf(err, errors.ErrScriptOp, "column %d failed", i).
					WithDetail("column", i)
			}
			cols[i] = col
		}
		return r.AppendColumnsWithBorders(cols, op.Collapse)
	}
	return errors.Newf(errors.ErrScriptOp, "unknown op %q", op.Op).WithDetail("op", op.Op)
}
