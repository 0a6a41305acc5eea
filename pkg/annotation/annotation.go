// Package annotation tracks inline markup spans (links, emphasis, strong,
// code, images, preformatted text) while a renderer is being filled.
package annotation

import (
	"fmt"

	"github.com/arthur-debert/blocktext/pkg/errors"
)

// Kind is an inline annotation category.
type Kind int

const (
	Link Kind = iota
	Emphasis
	Strong
	Code
	Image
	Preformatted
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Link:
		return "link"
	case Emphasis:
		return "emphasis"
	case Strong:
		return "strong"
	case Code:
		return "code"
	case Image:
		return "image"
	case Preformatted:
		return "preformatted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for c := Link; c <= Preformatted; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown annotation kind %q", string(b))
}

// Annotation is one open or closed inline span marker. Target is only set for
// links.
type Annotation struct {
	Kind   Kind   `json:"kind"`
	Target string `json:"target,omitempty"`
}

// Set is an ordered snapshot of the annotations open at some point, in the
// order they were opened.
type Set []Annotation

// Has reports whether an annotation of kind k is in the set.
func (s Set) Has(k Kind) bool {
	for _, a := range s {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// Link returns the innermost link target in the set.
func (s Set) Link() (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Kind == Link {
			return s[i].Target, true
		}
	}
	return "", false
}

// Equal reports whether both sets hold the same annotations in the same order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// With returns a copy of s with a appended.
func (s Set) With(a Annotation) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, a)
}

// Span is a closed annotation covering text offsets [Start, End).
type Span struct {
	Annotation Annotation `json:"annotation"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
}

// Mark identifies the point a block was opened at. Spans opened after a mark
// belong to that block.
type Mark int

type entry struct {
	ann   Annotation
	start int
	seq   int
}

// Tracker holds one LIFO stack per Kind. Stacks of different kinds are
// independent and may interleave freely.
type Tracker struct {
	open  []entry
	spans []Span
	seq   int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Start opens a span of ann at text offset pos.
func (t *Tracker) Start(ann Annotation, pos int) {
	t.open = append(t.open, entry{ann: ann, start: pos, seq: t.seq})
	t.seq++
}

// End closes the most recently opened span of kind k at text offset pos.
// Spans opened before floor belong to an enclosing block and cannot be
// closed from here.
func (t *Tracker) End(k Kind, pos int, floor Mark) (Span, error) {
	for i := len(t.open) - 1; i >= 0; i-- {
		e := t.open[i]
		if e.ann.Kind != k {
			continue
		}
		if e.seq < int(floor) {
			return Span{}, errors.Newf(errors.ErrUnbalancedAnnotation,
				"end %s closes a span opened outside the current block", k).
				WithDetail("kind", k.String())
		}
		t.open = append(t.open[:i], t.open[i+1:]...)
		span := Span{Annotation: e.ann, Start: e.start, End: pos}
		t.spans = append(t.spans, span)
		return span, nil
	}
	return Span{}, errors.Newf(errors.ErrUnbalancedAnnotation, "end %s without matching start", k).
		WithDetail("kind", k.String())
}

// Mark returns a mark for the current point, used when a block opens.
func (t *Tracker) Mark() Mark {
	return Mark(t.seq)
}

// OpenSince returns the annotations opened after m that are still open.
func (t *Tracker) OpenSince(m Mark) Set {
	var out Set
	for _, e := range t.open {
		if e.seq >= int(m) {
			out = append(out, e.ann)
		}
	}
	return out
}

// CheckClosed returns an error if a span opened after m is still open.
func (t *Tracker) CheckClosed(m Mark) error {
	if left := t.OpenSince(m); len(left) > 0 {
		return errors.Newf(errors.ErrUnbalancedAnnotation, "%d span(s) still open, innermost %s",
			len(left), left[len(left)-1].Kind).
			WithDetail("kind", left[len(left)-1].Kind.String()).
			WithDetail("open", len(left))
	}
	return nil
}

// Active returns a snapshot of all open annotations in opening order.
func (t *Tracker) Active() Set {
	if len(t.open) == 0 {
		return nil
	}
	out := make(Set, len(t.open))
	for i, e := range t.open {
		out[i] = e.ann
	}
	return out
}

// Depth returns how many spans of kind k are open.
func (t *Tracker) Depth(k Kind) int {
	n := 0
	for _, e := range t.open {
		if e.ann.Kind == k {
			n++
		}
	}
	return n
}

// Spans returns the closed spans in the order they were closed.
func (t *Tracker) Spans() []Span {
	return t.spans
}

// Merge adds spans closed in another tracker, shifted by offset text units.
func (t *Tracker) Merge(spans []Span, offset int) {
	for _, s := range spans {
		s.Start += offset
		s.End += offset
		t.spans = append(t.spans, s)
	}
}
