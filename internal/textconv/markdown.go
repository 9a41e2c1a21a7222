package textconv

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// keptElements survive sanitising. Everything else loses its tags but keeps
// its text, so links read as their label and images disappear; script,
// style and title content is dropped altogether.
var keptElements = []string{
	"p", "br", "div", "span", "section", "article", "header", "footer", "aside", "main",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"blockquote", "pre", "code", "hr",
	"em", "strong", "b", "i", "u", "s", "del", "ins", "sub", "sup", "small", "mark", "cite", "q",
	"ul", "ol", "li", "dl", "dt", "dd",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
	"figure", "figcaption",
}

// Markdown renders chapter markup as lightly formatted text: headings,
// emphasis, lists and tables in Markdown syntax, links reduced to their
// text, images dropped.
type Markdown struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewMarkdown builds the Markdown converter.
func NewMarkdown() *Markdown {
	return &Markdown{
		policy: bluemonday.NewPolicy().AllowElements(keptElements...),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert implements Converter.
func (m *Markdown) Convert(markup []byte) (string, error) {
	clean := m.policy.SanitizeBytes(markup)
	out, err := m.conv.ConvertString(string(clean))
	if err != nil {
		return "", fmt.Errorf("textconv: markdown: %w", err)
	}
	return terminate(strings.TrimSpace(out)), nil
}
