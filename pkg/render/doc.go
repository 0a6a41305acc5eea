// Package render defines the capability contract shared by every text
// backend.
//
// A walker drives a backend through Renderer while it visits a document
// tree: blocks open and close, inline text flows into the current line,
// annotations bracket inline spans, and sub-renderers hold list items and
// table cells until they are appended to their parent. Finalize consumes the
// renderer and returns the text.
//
// The contract is generic over the concrete backend so that sub-renderers
// and the values handed back to AppendSubrender and AppendColumnsWithBorders
// are statically typed:
//
//	func walk[R render.Renderer[R]](r R) error {
//		sub, err := r.NewSubRenderer(r.Width() - 2)
//		...
//		return r.AppendSubrender(sub, render.RepeatPrefix("* ", "  ", 8))
//	}
package render
