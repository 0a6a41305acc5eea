// Package raw is the minimal backend of the render contract. It keeps text
// and nothing else: blocks, borders and annotations only affect pairing
// checks, and the output is the text with every whitespace run collapsed to
// one space.
package raw

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/logging"
	"github.com/arthur-debert/blocktext/pkg/render"
)

// DefaultWidth is reported by renderers created without a width.
const DefaultWidth = 80

var _ render.Renderer[*Renderer] = (*Renderer)(nil)

type block struct {
	pre  int
	mark annotation.Mark
}

// Renderer concatenates text.
type Renderer struct {
	width    int
	buf      strings.Builder
	textLen  int
	borders  bool
	blocks   []block
	pre      int
	basePre  int
	tracker  *annotation.Tracker
	consumed bool
	log      zerolog.Logger
}

// New returns a renderer of DefaultWidth.
func New() *Renderer {
	r, _ := NewWithWidth(DefaultWidth)
	return r
}

// NewWithWidth returns a renderer reporting width from Width.
func NewWithWidth(width int) (*Renderer, error) {
	return newRenderer(width, 0)
}

func newRenderer(width, pre int) (*Renderer, error) {
	if width < 1 {
		return nil, errors.Newf(errors.ErrInvalidWidth, "width must be at least 1, got %d", width).
			WithDetail("width", width)
	}
	return &Renderer{
		width:   width,
		pre:     pre,
		basePre: pre,
		tracker: annotation.NewTracker(),
		log:     logging.GetLogger("raw"),
	}, nil
}

func (r *Renderer) guard(op string) error {
	if r.consumed {
		return r.violation(errors.Newf(errors.ErrConsumedRenderer, "%s called on a consumed renderer", op).
			WithDetail("op", op))
	}
	return nil
}

func (r *Renderer) violation(err error) error {
	r.log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Renderer contract violation")
	return err
}

func (r *Renderer) write(text string) {
	r.buf.WriteString(text)
	r.textLen += utf8.RuneCountInString(text)
}

func (r *Renderer) sep() {
	r.write(" ")
}

func (r *Renderer) mark() annotation.Mark {
	if n := len(r.blocks); n > 0 {
		return r.blocks[n-1].mark
	}
	return 0
}

func (r *Renderer) blockPre() int {
	if n := len(r.blocks); n > 0 {
		return r.blocks[n-1].pre
	}
	return r.basePre
}

func (r *Renderer) AddEmptyLine() error {
	if err := r.guard("AddEmptyLine"); err != nil {
		return err
	}
	r.sep()
	return nil
}

func (r *Renderer) NewSubRenderer(width int) (*Renderer, error) {
	if err := r.guard("NewSubRenderer"); err != nil {
		return nil, err
	}
	sub, err := newRenderer(width, r.pre)
	if err != nil {
		return nil, r.violation(err)
	}
	return sub, nil
}

func (r *Renderer) StartBlock() error {
	if err := r.guard("StartBlock"); err != nil {
		return err
	}
	r.blocks = append(r.blocks, block{pre: r.pre, mark: r.tracker.Mark()})
	return nil
}

func (r *Renderer) EndBlock() error {
	if err := r.guard("EndBlock"); err != nil {
		return err
	}
	n := len(r.blocks)
	if n == 0 {
		return r.violation(errors.New(errors.ErrUnbalancedBlock, "end block without a matching start"))
	}
	b := r.blocks[n-1]
	if r.pre != b.pre {
		return r.violation(errors.Newf(errors.ErrUnbalancedPre, "block opened at pre depth %d closes at %d", b.pre, r.pre).
			WithDetail("expected", b.pre).
			WithDetail("actual", r.pre))
	}
	if err := r.tracker.CheckClosed(b.mark); err != nil {
		return r.violation(err)
	}
	r.blocks = r.blocks[:n-1]
	return nil
}

func (r *Renderer) NewLine() error {
	return r.guard("NewLine")
}

func (r *Renderer) NewLineHard() error {
	if err := r.guard("NewLineHard"); err != nil {
		return err
	}
	r.sep()
	return nil
}

// AddHorizontalBorder writes nothing but makes the renderer non-empty.
func (r *Renderer) AddHorizontalBorder() error {
	if err := r.guard("AddHorizontalBorder"); err != nil {
		return err
	}
	r.borders = true
	return nil
}

func (r *Renderer) StartPre() error {
	if err := r.guard("StartPre"); err != nil {
		return err
	}
	r.pre++
	return nil
}

func (r *Renderer) EndPre() error {
	if err := r.guard("EndPre"); err != nil {
		return err
	}
	if r.pre <= r.blockPre() {
		return r.violation(errors.New(errors.ErrUnbalancedPre, "end pre without a matching start in this block"))
	}
	r.pre--
	return nil
}

func (r *Renderer) AddPreformattedBlock(text string) error {
	if err := r.guard("AddPreformattedBlock"); err != nil {
		return err
	}
	r.write(text)
	r.sep()
	return nil
}

func (r *Renderer) AddInlineText(text string) error {
	if err := r.guard("AddInlineText"); err != nil {
		return err
	}
	r.write(text)
	return nil
}

// Width returns the configured width. Nothing is wrapped to it.
func (r *Renderer) Width() int {
	return r.width
}

func (r *Renderer) AddBlockLine(line string) error {
	if err := r.guard("AddBlockLine"); err != nil {
		return err
	}
	r.write(line)
	r.sep()
	return nil
}

func (r *Renderer) checkAppendable(other *Renderer) error {
	switch {
	case other == nil:
		return errors.New(errors.ErrInvalidInput, "nil renderer")
	case other == r:
		return errors.New(errors.ErrInvalidInput, "a renderer cannot be appended to itself")
	case other.consumed:
		return errors.New(errors.ErrConsumedRenderer, "renderer was already consumed")
	}
	return other.checkBalanced()
}

func (r *Renderer) checkBalanced() error {
	if open := len(r.blocks); open > 0 {
		return errors.Newf(errors.ErrUnbalancedBlock, "%d block(s) still open", open).
			WithDetail("open", open)
	}
	if r.pre != r.basePre {
		return errors.Newf(errors.ErrUnbalancedPre, "%d pre region(s) still open", r.pre-r.basePre).
			WithDetail("open", r.pre-r.basePre)
	}
	return r.tracker.CheckClosed(0)
}

// AppendSubrender adds the text of other followed by a space. Prefixes are
// layout and are ignored.
func (r *Renderer) AppendSubrender(other *Renderer, _ []string) error {
	if err := r.guard("AppendSubrender"); err != nil {
		return err
	}
	if err := r.checkAppendable(other); err != nil {
		return r.violation(err)
	}
	r.absorb(other)
	return nil
}

// AppendColumnsWithBorders adds the text of each column followed by a space.
func (r *Renderer) AppendColumnsWithBorders(cols []*Renderer, _ bool) error {
	if err := r.guard("AppendColumnsWithBorders"); err != nil {
		return err
	}
	seen := make(map[*Renderer]bool, len(cols))
	for i, c := range cols {
		if seen[c] {
			return r.violation(errors.Newf(errors.ErrInvalidInput, "column %d repeats an earlier column", i).
				WithDetail("column", i))
		}
		seen[c] = true
		if err := r.checkAppendable(c); err != nil {
			return r.violation(err)
		}
	}
	for _, c := range cols {
		r.absorb(c)
	}
	return nil
}

func (r *Renderer) absorb(other *Renderer) {
	r.write(other.buf.String())
	r.sep()
	r.borders = r.borders || other.borders
	other.consumed = true
}

func (r *Renderer) Empty() bool {
	return r.buf.Len() == 0 && !r.borders
}

// TextLen returns the number of characters written so far.
func (r *Renderer) TextLen() int {
	return r.textLen
}

func (r *Renderer) start(op string, a annotation.Annotation) error {
	if err := r.guard(op); err != nil {
		return err
	}
	r.tracker.Start(a, r.textLen)
	return nil
}

func (r *Renderer) end(op string, k annotation.Kind) error {
	if err := r.guard(op); err != nil {
		return err
	}
	if _, err := r.tracker.End(k, r.textLen, r.mark()); err != nil {
		return r.violation(err)
	}
	return nil
}

func (r *Renderer) StartLink(target string) error {
	return r.start("StartLink", annotation.Annotation{Kind: annotation.Link, Target: target})
}

func (r *Renderer) EndLink() error { return r.end("EndLink", annotation.Link) }

func (r *Renderer) StartEmphasis() error {
	return r.start("StartEmphasis", annotation.Annotation{Kind: annotation.Emphasis})
}

func (r *Renderer) EndEmphasis() error { return r.end("EndEmphasis", annotation.Emphasis) }

func (r *Renderer) StartStrong() error {
	return r.start("StartStrong", annotation.Annotation{Kind: annotation.Strong})
}

func (r *Renderer) EndStrong() error { return r.end("EndStrong", annotation.Strong) }

func (r *Renderer) StartCode() error {
	return r.start("StartCode", annotation.Annotation{Kind: annotation.Code})
}

func (r *Renderer) EndCode() error { return r.end("EndCode", annotation.Code) }

func (r *Renderer) AddImage(title string) error {
	if err := r.guard("AddImage"); err != nil {
		return err
	}
	r.write(title)
	r.sep()
	return nil
}

// RecordFragStart accepts the fragment and discards it.
func (r *Renderer) RecordFragStart(string) error {
	return r.guard("RecordFragStart")
}

// Finalize consumes the renderer and returns its text with each whitespace
// run replaced by a single space. Leading and trailing spaces are kept.
func (r *Renderer) Finalize() (string, error) {
	if err := r.guard("Finalize"); err != nil {
		return "", err
	}
	if err := r.checkBalanced(); err != nil {
		return "", r.violation(err)
	}
	r.consumed = true
	return collapseSpace(r.buf.String()), nil
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, c := range s {
		if unicode.IsSpace(c) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(c)
	}
	return b.String()
}
