package textconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Plain extracts the text of an XHTML document without any markup.
// Block-level elements produce line breaks; script and style content is
// skipped; whitespace runs collapse to one space.
type Plain struct{}

// NewPlain returns the plain-text converter.
func NewPlain() *Plain {
	return &Plain{}
}

// Convert implements Converter.
func (Plain) Convert(markup []byte) (string, error) {
	text, err := extractText(markup)
	if err != nil {
		return "", fmt.Errorf("textconv: plain: %w", err)
	}
	return terminate(text), nil
}

// blockTags insert a newline when they open.
var blockTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Br:         true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Tr:         true,
	atom.Blockquote: true,
	atom.Hr:         true,
	atom.Pre:        true,
	atom.Section:    true,
}

// skipTags hide their content. <title> is included so the head does not
// leak into chapter text.
var skipTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Title:  true,
}

var selfClosingSkipTagPattern = regexp.MustCompile(`(?is)<(script|style|title)\b([^>]*)/>`)

// XHTML allows <script/>, which the HTML tokenizer reads as an open tag
// that swallows the rest of the document.
func normalizeSelfClosingSkipTags(data []byte) []byte {
	if !selfClosingSkipTagPattern.Match(data) {
		return data
	}
	return selfClosingSkipTagPattern.ReplaceAll(data, []byte(`<$1$2></$1>`))
}

func extractText(data []byte) (string, error) {
	tokenizer := html.NewTokenizer(bytes.NewReader(normalizeSelfClosingSkipTags(data)))

	var buf strings.Builder
	skipDepth := 0
	lastWasNewline := true

	breakLine := func() {
		if buf.Len() > 0 && !lastWasNewline {
			buf.WriteByte('\n')
			lastWasNewline = true
		}
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return strings.TrimSpace(buf.String()), nil

		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			a := atom.Lookup(tn)
			if skipTags[a] {
				skipDepth++
			} else if skipDepth == 0 && blockTags[a] {
				breakLine()
			}

		case html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			if skipDepth == 0 && blockTags[atom.Lookup(tn)] {
				breakLine()
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if skipTags[atom.Lookup(tn)] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if text := collapseWhitespace(string(tokenizer.Text())); text != "" {
				buf.WriteString(text)
				lastWasNewline = false
			}
		}
	}
}

// collapseWhitespace folds whitespace runs into single spaces and returns ""
// for all-whitespace input. A leading or trailing run is kept as one space
// so inline elements stay separated.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
