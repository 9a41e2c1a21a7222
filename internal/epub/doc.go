// Package epub opens ePub 2 and ePub 3 archives and exposes what a text
// converter needs from them: the book title, the top-level navigation list
// and content lookup by navigation reference.
//
//	book, err := epub.Open("book.epub")
//	if err != nil {
//	    return err
//	}
//	defer book.Close()
//
//	for _, np := range book.NavPoints() {
//	    data, err := book.ReadItem(np.Src)
//	    ...
//	}
//
// The navigation list comes from the NCX navMap when the book has one,
// otherwise from the ePub 3 nav document. [Book.ReadItem] resolves a
// reference relative to that document and does not strip fragments;
// callers decide how to recover from a reference such as
// "chapter01.xhtml#start" that names no archive entry.
//
// DRM-protected files are rejected with [ErrDRMProtected]. Structural
// problems that still allow reading (missing mimetype, unreadable TOC) are
// reported through [Book.Warnings].
package epub
