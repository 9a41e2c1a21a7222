package epubtxt

import (
	"fmt"

	"github.com/simp-lee/epubtxt/internal/epub"
)

// ChapterEntry is one chapter as listed by the table of contents.
type ChapterEntry struct {
	// Order is the play order exactly as written. It is never parsed as a
	// number; two entries may share it.
	Order string

	// Title is the first navigation label.
	Title string

	// Reference points into the archive and may carry a "#fragment".
	Reference string
}

// NavSource provides the navigation list of an opened book.
type NavSource interface {
	NavPoints() []epub.NavPoint
}

// ResolveChapters maps each navigation point to a ChapterEntry, keeping the
// navigation order. Entries are neither sorted, deduplicated nor checked
// beyond having a label and a reference; a point missing either fails with
// ErrMalformedTOC rather than shifting later titles onto the wrong chapter.
func ResolveChapters(toc NavSource) ([]ChapterEntry, error) {
	points := toc.NavPoints()
	entries := make([]ChapterEntry, 0, len(points))
	for i, np := range points {
		if len(np.Labels) == 0 {
			return nil, fmt.Errorf("%w: navigation point %d (order %q) has no label", ErrMalformedTOC, i, np.PlayOrder)
		}
		if np.Src == "" {
			return nil, fmt.Errorf("%w: navigation point %d (order %q, %q) has no content reference", ErrMalformedTOC, i, np.PlayOrder, np.Labels[0])
		}
		entries = append(entries, ChapterEntry{
			Order:     np.PlayOrder,
			Title:     np.Labels[0],
			Reference: np.Src,
		})
	}
	return entries, nil
}
