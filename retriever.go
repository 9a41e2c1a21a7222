package epubtxt

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ItemReader looks up archive content by navigation reference.
type ItemReader interface {
	ReadItem(ref string) ([]byte, error)
}

// Retrieval is the outcome of fetching one chapter. Exactly one of Content
// (possibly empty) and Err is meaningful.
type Retrieval struct {
	// Reference is the reference the final lookup used.
	Reference string

	// Content is the raw chapter markup.
	Content []byte

	// Repaired is set when the fragment-stripped reference was tried.
	Repaired bool

	// Err is the reason the final lookup failed.
	Err error
}

// OK reports whether the chapter content was obtained.
func (r Retrieval) OK() bool {
	return r.Err == nil
}

// RepairReference drops everything from the first '#'.
func RepairReference(ref string) string {
	before, _, _ := strings.Cut(ref, "#")
	return before
}

// Retriever fetches chapter content for one book.
type Retriever struct {
	items     ItemReader
	bookTitle string
	logger    *slog.Logger
}

// NewRetriever returns a Retriever reading from items. bookTitle only
// appears in diagnostics. A nil logger means slog.Default().
func NewRetriever(items ItemReader, bookTitle string, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{items: items, bookTitle: bookTitle, logger: logger}
}

// Retrieve fetches the content of e. A lookup error or content that is not
// valid UTF-8 triggers one retry with the repaired reference. A first
// lookup that succeeds is returned as is, even when empty.
func (r *Retriever) Retrieve(e ChapterEntry) Retrieval {
	first := r.fetch(e.Reference)
	if first.OK() {
		return first
	}
	r.logger.Warn("failed getting chapter",
		"book", r.bookTitle, "order", e.Order, "title", e.Title, "error", first.Err)

	second := r.fetch(RepairReference(e.Reference))
	second.Repaired = true
	if second.OK() {
		r.logger.Info("success on retry",
			"book", r.bookTitle, "order", e.Order, "title", e.Title, "ref", second.Reference)
		return second
	}
	r.logger.Error("failed on retry too",
		"book", r.bookTitle, "ref", second.Reference, "error", second.Err)
	return second
}

func (r *Retriever) fetch(ref string) Retrieval {
	data, err := r.items.ReadItem(ref)
	if err != nil {
		return Retrieval{Reference: ref, Err: err}
	}
	if !utf8.Valid(data) {
		return Retrieval{Reference: ref, Err: fmt.Errorf("%w: %s", ErrInvalidEncoding, ref)}
	}
	return Retrieval{Reference: ref, Content: data}
}
