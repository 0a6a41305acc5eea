// Package textrender is the layout backend of the render contract. It wraps
// inline text to a fixed width, nests blocks with their indentation, keeps
// the inline annotations of every run and composes tables with box-drawing
// borders.
//
// What is inserted around annotated spans is up to the Decorator: the
// default RichDecorator leaves the text alone so a consumer can style runs
// from Document, while MarkdownDecorator writes markdown-like markers and
// numbered link footnotes into the text itself.
package textrender
