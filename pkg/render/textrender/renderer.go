package textrender

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/blocktext/pkg/annotation"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/fragment"
	"github.com/arthur-debert/blocktext/pkg/layout"
	"github.com/arthur-debert/blocktext/pkg/logging"
	"github.com/arthur-debert/blocktext/pkg/render"
	"github.com/arthur-debert/blocktext/pkg/table"
)

var _ render.Renderer[*Renderer] = (*Renderer)(nil)

type block struct {
	ordinal int
	indent  int
	pre     int
	mark    annotation.Mark
}

// Renderer lays text out into lines of a fixed width.
type Renderer struct {
	width    int
	lines    []layout.Line
	wrap     *layout.Wrapper
	textBase int

	// blocks[0] is the implicit root block.
	blocks     []block
	blockCount int
	afterBlock bool

	pre     int
	basePre int

	tracker *annotation.Tracker
	frags   *fragment.Registry
	deco    Decorator
	notes   *notes
	root    bool

	consumed bool
	log      zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDecorator sets the decorator used at annotation boundaries. Sub
// renderers inherit it.
func WithDecorator(d Decorator) Option {
	return func(r *Renderer) {
		if d != nil {
			r.deco = d
		}
	}
}

// New returns a root renderer for lines of width cells.
func New(width int, opts ...Option) (*Renderer, error) {
	r, err := newRenderer(width, RichDecorator{}, &notes{}, 0)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(r)
	}
	r.root = true
	return r, nil
}

func newRenderer(width int, deco Decorator, n *notes, pre int) (*Renderer, error) {
	w, err := layout.NewWrapper(width)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		width:   width,
		wrap:    w,
		blocks:  []block{{pre: pre}},
		pre:     pre,
		basePre: pre,
		tracker: annotation.NewTracker(),
		frags:   fragment.NewRegistry(),
		deco:    deco,
		notes:   n,
		log:     logging.GetLogger("textrender"),
	}, nil
}

func (r *Renderer) top() *block {
	return &r.blocks[len(r.blocks)-1]
}

func (r *Renderer) innerWidth() int {
	return r.width - r.top().indent
}

func (r *Renderer) violation(err error) error {
	r.log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Renderer contract violation")
	return err
}

func (r *Renderer) guard(op string) error {
	if r.consumed {
		return r.violation(errors.Newf(errors.ErrConsumedRenderer, "%s called on a consumed renderer", op).
			WithDetail("op", op))
	}
	return nil
}

func (r *Renderer) consume() {
	r.consumed = true
}

// push adds a finished line, indented to the current block. Borders keep
// their indent as an offset and stay borders.
func (r *Renderer) push(l layout.Line) {
	if indent := r.top().indent; indent > 0 && l.IsBorder() {
		l.Border = l.Border.Clone()
		l.Border.Indent += indent
	} else if indent > 0 && !l.Empty() {
		l.Prepend(strings.Repeat(" ", indent), nil)
	}
	r.lines = append(r.lines, l)
}

func (r *Renderer) flushText() {
	for _, l := range r.wrap.Take() {
		r.push(l)
	}
}

// separate flushes pending text and makes sure the last line is blank.
func (r *Renderer) separate() {
	r.flushText()
	if n := len(r.lines); n > 0 && !r.lines[n-1].IsBlank() {
		r.lines = append(r.lines, layout.Line{})
	}
}

// resize swaps the wrapper when the current block changed the line width.
// Pending text must already be flushed.
func (r *Renderer) resize() {
	width := r.innerWidth()
	if r.wrap.Width() == width {
		return
	}
	r.textBase += r.wrap.TextLen()
	r.wrap, _ = layout.NewWrapper(width)
}

func (r *Renderer) preAnns() annotation.Set {
	return r.tracker.Active().With(annotation.Annotation{Kind: annotation.Preformatted})
}

// inline adds text to the current line according to the pre state.
func (r *Renderer) inline(text string) error {
	if r.pre > 0 {
		if text == "" {
			return nil
		}
		if r.afterBlock {
			r.separate()
			r.afterBlock = false
		}
		r.wrap.AddPreformatted(text, r.preAnns())
		return nil
	}
	if r.afterBlock && strings.TrimSpace(text) == "" {
		return nil
	}
	if err := r.wrap.Check(text); err != nil {
		return r.violation(err)
	}
	if r.afterBlock {
		r.separate()
		r.afterBlock = false
	}
	return r.wrap.AddText(text, r.tracker.Active())
}

// AddEmptyLine ends pending text and adds one blank line.
func (r *Renderer) AddEmptyLine() error {
	if err := r.guard("AddEmptyLine"); err != nil {
		return err
	}
	r.flushText()
	r.lines = append(r.lines, layout.Line{})
	return nil
}

// NewSubRenderer returns an independent renderer sharing the decorator and
// footnote numbering. It starts inside the pre regions open here.
func (r *Renderer) NewSubRenderer(width int) (*Renderer, error) {
	if err := r.guard("NewSubRenderer"); err != nil {
		return nil, err
	}
	sub, err := newRenderer(width, r.deco, r.notes, r.pre)
	if err != nil {
		return nil, r.violation(err)
	}
	r.log.Trace().Int("width", width).Int("pre", r.pre).Msg("New sub-renderer")
	return sub, nil
}

// StartBlock opens a block at the current indentation.
func (r *Renderer) StartBlock() error {
	if err := r.guard("StartBlock"); err != nil {
		return err
	}
	return r.openBlock(0)
}

// StartIndentedBlock opens a block indented n cells further than the
// current one. Lines inside wrap at the remaining width.
func (r *Renderer) StartIndentedBlock(n int) error {
	if err := r.guard("StartIndentedBlock"); err != nil {
		return err
	}
	if n < 0 {
		return r.violation(errors.Newf(errors.ErrInvalidInput, "negative indent %d", n).
			WithDetail("indent", n))
	}
	return r.openBlock(n)
}

func (r *Renderer) openBlock(extra int) error {
	indent := r.top().indent + extra
	if r.width-indent < 1 {
		return r.violation(errors.Newf(errors.ErrInvalidWidth, "indent %d leaves no room in width %d", indent, r.width).
			WithDetail("width", r.width).
			WithDetail("indent", indent))
	}
	r.separate()
	r.afterBlock = false
	r.blockCount++
	r.blocks = append(r.blocks, block{
		ordinal: r.blockCount,
		indent:  indent,
		pre:     r.pre,
		mark:    r.tracker.Mark(),
	})
	r.resize()
	r.log.Trace().Int("depth", len(r.blocks)-1).Int("indent", indent).Msg("Start block")
	return nil
}

// EndBlock closes the innermost block. Pre regions and annotation spans
// opened inside it must be closed first.
func (r *Renderer) EndBlock() error {
	if err := r.guard("EndBlock"); err != nil {
		return err
	}
	if len(r.blocks) == 1 {
		return r.violation(errors.New(errors.ErrUnbalancedBlock, "end block without a matching start"))
	}
	b := r.top()
	if r.pre != b.pre {
		return r.violation(errors.Newf(errors.ErrUnbalancedPre, "block opened at pre depth %d closes at %d", b.pre, r.pre).
			WithDetail("expected", b.pre).
			WithDetail("actual", r.pre))
	}
	if err := r.tracker.CheckClosed(b.mark); err != nil {
		return r.violation(err)
	}
	r.flushText()
	r.blocks = r.blocks[:len(r.blocks)-1]
	r.resize()
	r.afterBlock = true
	r.log.Trace().Int("depth", len(r.blocks)-1).Msg("End block")
	return nil
}

// NewLine ends the pending line. It never adds an empty line.
func (r *Renderer) NewLine() error {
	if err := r.guard("NewLine"); err != nil {
		return err
	}
	r.flushText()
	return nil
}

// NewLineHard ends the pending line, or adds a blank line when nothing is
// pending.
func (r *Renderer) NewLineHard() error {
	if err := r.guard("NewLineHard"); err != nil {
		return err
	}
	if r.wrap.Pending() {
		r.flushText()
		return nil
	}
	r.lines = append(r.lines, layout.Line{})
	return nil
}

// AddHorizontalBorder adds a border of the current width. A collapsible
// border left by a table absorbs it.
func (r *Renderer) AddHorizontalBorder() error {
	if err := r.guard("AddHorizontalBorder"); err != nil {
		return err
	}
	r.flushText()
	r.afterBlock = false
	if n := len(r.lines); n > 0 && r.lines[n-1].IsBorder() && r.lines[n-1].Border.Collapsible {
		r.lines[n-1].Border.Collapsible = false
		return nil
	}
	r.push(layout.BorderLine(r.innerWidth()))
	return nil
}

// StartPre enters a preformatted region. Regions nest.
func (r *Renderer) StartPre() error {
	if err := r.guard("StartPre"); err != nil {
		return err
	}
	r.pre++
	return nil
}

// EndPre leaves the innermost preformatted region opened in this block.
func (r *Renderer) EndPre() error {
	if err := r.guard("EndPre"); err != nil {
		return err
	}
	if r.pre <= r.top().pre {
		return r.violation(errors.New(errors.ErrUnbalancedPre, "end pre without a matching start in this block"))
	}
	r.pre--
	return nil
}

// AddPreformattedBlock adds text as verbatim lines.
func (r *Renderer) AddPreformattedBlock(text string) error {
	if err := r.guard("AddPreformattedBlock"); err != nil {
		return err
	}
	w, err := layout.NewWrapper(r.innerWidth())
	if err != nil {
		return r.violation(err)
	}
	r.flushText()
	r.afterBlock = false
	w.AddPreformatted(text, r.preAnns())
	r.textBase += w.TextLen()
	for _, l := range w.Take() {
		r.push(l)
	}
	return nil
}

// AddInlineText adds text to the current paragraph.
func (r *Renderer) AddInlineText(text string) error {
	if err := r.guard("AddInlineText"); err != nil {
		return err
	}
	return r.inline(text)
}

// Width returns the width the renderer was created with.
func (r *Renderer) Width() int {
	return r.width
}

// AvailableWidth returns the line width left inside the current block.
func (r *Renderer) AvailableWidth() int {
	return r.innerWidth()
}

// AddBlockLine adds line as its own output line, unwrapped.
func (r *Renderer) AddBlockLine(line string) error {
	if err := r.guard("AddBlockLine"); err != nil {
		return err
	}
	r.flushText()
	r.afterBlock = false
	r.textBase += runewidth.StringWidth(strings.TrimSpace(line))
	r.push(layout.TextLine(line, r.tracker.Active()))
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
	if open := len(r.blocks) - 1; open > 0 {
		return errors.Newf(errors.ErrUnbalancedBlock, "%d block(s) still open", open).
			WithDetail("open", open)
	}
	if r.pre != r.basePre {
		return errors.Newf(errors.ErrUnbalancedPre, "%d pre region(s) still open", r.pre-r.basePre).
			WithDetail("open", r.pre-r.basePre)
	}
	return r.tracker.CheckClosed(0)
}

// AppendSubrender consumes other and adds its lines, prefixed pairwise by
// prefixes.
func (r *Renderer) AppendSubrender(other *Renderer, prefixes []string) error {
	if err := r.guard("AppendSubrender"); err != nil {
		return err
	}
	if err := r.checkAppendable(other); err != nil {
		return r.violation(err)
	}
	other.flushText()
	r.flushText()
	r.afterBlock = false

	lineOffset := len(r.lines)
	for i, l := range other.lines {
		if i < len(prefixes) {
			l.Prepend(prefixes[i], nil)
		}
		r.push(l)
	}
	r.frags.Merge(other.frags, r.top().ordinal, r.blockCount, lineOffset)
	r.tracker.Merge(other.tracker.Spans(), r.TextLen())
	r.textBase += other.TextLen()
	r.blockCount += other.blockCount
	other.consume()

	r.log.Trace().Int("lines", len(other.lines)).Int("prefixes", len(prefixes)).Msg("Append sub-renderer")
	return nil
}

// AppendColumnsWithBorders consumes cols and lays them out side by side.
// Every column keeps the width it was created with.
func (r *Renderer) AppendColumnsWithBorders(cols []*Renderer, collapse bool) error {
	if err := r.guard("AppendColumnsWithBorders"); err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
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

	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		c.flushText()
		tcols[i] = table.Column{Width: c.width, Lines: c.lines}
	}

	// The parent's last border can take the top junctions, unless text is
	// still pending or it belongs to a block with another indent.
	var parentTop *layout.Border
	indent := r.top().indent
	last := len(r.lines) - 1
	if !r.wrap.Pending() && last >= 0 && r.lines[last].IsBorder() && r.lines[last].Border.Indent == indent {
		parentTop = r.lines[last].Border.Clone()
		parentTop.Indent = 0
	}

	comp, err := table.Compose(parentTop, tcols, collapse, r.innerWidth(), r.tracker.Active())
	if err != nil {
		return r.violation(err)
	}

	r.flushText()
	r.afterBlock = false
	if parentTop != nil {
		parentTop.Collapsible = false
		parentTop.Indent = indent
		r.lines[last].Border = parentTop
	} else if comp.Top != nil {
		r.push(layout.Line{Border: comp.Top})
	}
	rowStart := len(r.lines)
	for _, row := range comp.Rows {
		r.push(row)
	}
	r.push(layout.Line{Border: comp.Bottom})

	for i, c := range cols {
		r.frags.Merge(c.frags, r.top().ordinal, r.blockCount, rowStart-comp.Dropped[i])
		r.tracker.Merge(c.tracker.Spans(), r.TextLen())
		r.textBase += c.TextLen()
		r.blockCount += c.blockCount
		c.consume()
	}

	r.log.Trace().
		Int("columns", len(cols)).
		Int("rows", len(comp.Rows)).
		Bool("collapse", collapse).
		Msg("Append columns")
	return nil
}

// Empty reports whether nothing has been emitted yet.
func (r *Renderer) Empty() bool {
	return len(r.lines) == 0 && !r.wrap.Pending()
}

// TextLen returns the number of text cells emitted so far.
func (r *Renderer) TextLen() int {
	return r.textBase + r.wrap.TextLen()
}

func (r *Renderer) start(op string, a annotation.Annotation) error {
	if err := r.guard(op); err != nil {
		return err
	}
	if m := r.deco.Start(a); m != "" {
		if err := r.inline(m); err != nil {
			return err
		}
	}
	r.tracker.Start(a, r.TextLen())
	return nil
}

func (r *Renderer) end(op string, k annotation.Kind) error {
	if err := r.guard(op); err != nil {
		return err
	}
	span, err := r.tracker.End(k, r.TextLen(), r.top().mark)
	if err != nil {
		return r.violation(err)
	}
	ref := 0
	if k == annotation.Link && r.deco.Footnotes() {
		ref = r.notes.add(span.Annotation.Target)
	}
	if m := r.deco.End(span.Annotation, ref); m != "" {
		return r.inline(m)
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

// AddImage adds the decorator's stand-in text for an image, annotated as an
// image span.
func (r *Renderer) AddImage(title string) error {
	if err := r.guard("AddImage"); err != nil {
		return err
	}
	text := r.deco.Image(title)
	if r.pre == 0 {
		if err := r.wrap.Check(text); err != nil {
			return r.violation(err)
		}
	}
	r.tracker.Start(annotation.Annotation{Kind: annotation.Image}, r.TextLen())
	if err := r.inline(text); err != nil {
		_, _ = r.tracker.End(annotation.Image, r.TextLen(), r.top().mark)
		return err
	}
	if _, err := r.tracker.End(annotation.Image, r.TextLen(), r.top().mark); err != nil {
		return r.violation(err)
	}
	return nil
}

// RecordFragStart records name at the current block and line.
func (r *Renderer) RecordFragStart(name string) error {
	if err := r.guard("RecordFragStart"); err != nil {
		return err
	}
	if name == "" {
		return r.violation(errors.New(errors.ErrInvalidInput, "empty fragment name"))
	}
	line := len(r.lines) + r.wrap.LineIndex()
	// Text after a closed block starts below the paragraph separator.
	if n := len(r.lines); r.afterBlock && n > 0 && !r.lines[n-1].IsBlank() {
		line++
	}
	pos := fragment.Position{Block: r.top().ordinal, Line: line}
	if !r.frags.Record(name, pos) {
		r.log.Debug().Str("fragment", name).Msg("Duplicate fragment name, keeping the first")
	}
	return nil
}

// Finalize consumes the renderer and returns its text, one "\n" terminated
// line per output line.
func (r *Renderer) Finalize() (string, error) {
	doc, err := r.Document()
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}
