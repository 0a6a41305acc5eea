package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/blocktext/pkg/errors"
)

// Format selects how a rendered document is written.
type Format int

const (
	// FormatAuto picks terminal or text from the output stream.
	FormatAuto Format = iota
	// FormatTerminal styles annotated runs for a colour terminal.
	FormatTerminal
	// FormatText writes the plain text.
	FormatText
	// FormatJSON writes lines, runs, spans, fragments and footnotes as JSON.
	FormatJSON
	// FormatXML writes the same model as an XML document.
	FormatXML
)

var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
	FormatXML:      "xml",
}

// formatAliases maps every accepted spelling to its format.
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
	"xml":      FormatXML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Structured reports whether f is machine readable. Structured formats
// also carry errors in their own shape.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatXML
}

// ParseFormat accepts a format name or alias, in any case.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s).
		WithDetail("valid", formatNames[:])
}

// DetectFormat returns FormatTerminal when output is a colour capable
// terminal and NO_COLOR is unset, FormatText otherwise.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
