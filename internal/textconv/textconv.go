// Package textconv turns chapter XHTML into readable text.
//
// Two renderings are available: [FormatMarkdown] keeps document structure
// as Markdown (headings, lists, emphasis, tables) with links reduced to
// their text, and [FormatPlain] keeps only the words and line breaks.
package textconv

import (
	"errors"
	"fmt"
	"strings"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatPlain    = "plain"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("textconv: unknown format")

// Converter converts one unit of markup into text.
type Converter interface {
	Convert(markup []byte) (string, error)
}

// Formats lists the names accepted by New.
func Formats() []string {
	return []string{FormatMarkdown, FormatPlain}
}

// New returns the converter for format. An empty format selects Markdown.
func New(format string) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown:
		return NewMarkdown(), nil
	case FormatPlain:
		return NewPlain(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

// terminate ends non-empty text with a blank line so chapters concatenated
// without separators still start on their own paragraph.
func terminate(s string) string {
	if s == "" {
		return ""
	}
	return s + "\n\n"
}
