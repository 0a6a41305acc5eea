package render

// Renderer is implemented by a backend R for itself, so that every operation
// that takes or returns another renderer works on the same concrete type.
//
// Mutating operations return an error when they violate the contract; the
// renderer is left as it was before the failed call. Once a renderer has
// been appended to a parent or finalized it is consumed and every further
// mutating call fails.
type Renderer[R any] interface {
	// AddEmptyLine forces a blank line.
	AddEmptyLine() error
	// NewSubRenderer returns an independent renderer of the same kind at
	// the given width, inheriting the open preformatted state.
	NewSubRenderer(width int) (R, error)

	StartBlock() error
	EndBlock() error

	// NewLine ends the current line without producing empty lines.
	NewLine() error
	// NewLineHard ends the current line, or emits a blank line when
	// nothing is pending.
	NewLineHard() error

	AddHorizontalBorder() error

	StartPre() error
	EndPre() error
	AddPreformattedBlock(text string) error

	AddInlineText(text string) error

	Width() int

	// AddBlockLine adds one already-formatted line.
	AddBlockLine(line string) error
	// AppendSubrender consumes other and adds its lines, each preceded by
	// the prefix at the same index. Lines past the end of prefixes are
	// added unprefixed.
	AppendSubrender(other R, prefixes []string) error
	// AppendColumnsWithBorders consumes cols and lays them out side by side.
	AppendColumnsWithBorders(cols []R, collapse bool) error

	// Empty reports whether nothing at all has been emitted.
	Empty() bool
	// TextLen returns the cumulative amount of text emitted. It never
	// decreases.
	TextLen() int

	StartLink(target string) error
	EndLink() error
	StartEmphasis() error
	EndEmphasis() error
	StartStrong() error
	EndStrong() error
	StartCode() error
	EndCode() error

	AddImage(title string) error
	RecordFragStart(name string) error

	// Finalize consumes the renderer and returns its text.
	Finalize() (string, error)
}
