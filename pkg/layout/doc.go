// Package layout implements the line model and the width-aware word wrapper
// used by the text renderer.
//
// A Line is an ordered list of Runs (text carrying the annotations that were
// open when it was added) or a horizontal Border. The Wrapper turns a stream
// of inline text into Lines no wider than its configured width:
//
//   - text is tokenised on whitespace; runs of whitespace become a single
//     break opportunity and render as one space
//   - text appended over several calls without whitespace in between joins
//     into a single token
//   - a token wider than the line is hard-split at cell boundaries
//   - preformatted text bypasses all of the above and is split only on '\n'
//
// Cell widths are measured with go-runewidth, so East Asian wide characters
// take two cells.
package layout
