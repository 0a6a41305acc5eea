// Package table merges finished columns side by side, joined by vertical
// separators and closed by a horizontal border.
//
// Columns are the lines of already-rendered sub-documents. Compose pads short
// columns with blank lines of the column's width, joins every row with '│'
// and puts junctions ('┬', '┴') on the borders above and below each
// separator. With collapse set, borders that begin or end a column are merged
// into the surrounding borders instead of being stacked next to them.
package table
