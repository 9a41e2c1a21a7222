// Package epubtxt converts ePub books into plain text files.
//
// For every book the table of contents is read, each top-level entry is
// fetched from the archive and converted to text, and the results are
// written twice: concatenated into {basename}.txt in the output directory,
// and one file per chapter named {basename}--{order}--{title}.txt in the
// chapter directory.
//
// A chapter whose reference cannot be read is retried once with the
// "#fragment" removed. When that fails as well the chapter is logged and
// left out; the rest of the book is still written.
//
//	p, err := epubtxt.New(epubtxt.Config{OutputDir: "out"})
//	if err != nil {
//		return err
//	}
//	res, err := p.ProcessPath("books/alice.epub")
//
// Archive access lives in internal/epub and markup conversion in
// internal/textconv.
package epubtxt
