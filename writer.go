package epubtxt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/flock"
	"golang.org/x/text/unicode/norm"
)

// orderWidth is the minimum width of the order field in chapter file names.
const orderWidth = 5

// ChapterContent is the converted text of one chapter.
type ChapterContent struct {
	Entry ChapterEntry
	Text  string
}

// Writer writes a book's aggregate and per-chapter text files.
// Both directories must exist.
type Writer struct {
	outputDir      string
	chapterDir     string
	sanitizeTitles bool
}

// NewWriter returns a Writer for the given directories.
func NewWriter(outputDir, chapterDir string, sanitizeTitles bool) *Writer {
	return &Writer{outputDir: outputDir, chapterDir: chapterDir, sanitizeTitles: sanitizeTitles}
}

// Write creates or truncates {outputDir}/{basename}.txt with all chapter
// texts concatenated in order, and one file per chapter in chapterDir.
// Files written before a failure are left in place.
//
// A lock file {outputDir}/.{basename}.lock exists only while writing; if
// another process holds it, Write fails with ErrOutputBusy and writes nothing.
func (w *Writer) Write(basename string, chapters []ChapterContent) error {
	lock := flock.New(filepath.Join(w.outputDir, LockFileName(basename)))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("%w: lock %s: %w", ErrWriteOutput, lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutputBusy, lock.Path())
	}
	defer func() {
		// Unlinked while still held so the output directory only ever
		// contains the book's text files.
		_ = os.Remove(lock.Path())
		_ = lock.Unlock()
	}()

	aggPath := filepath.Join(w.outputDir, AggregateFileName(basename))
	f, err := os.Create(aggPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, ch := range chapters {
		if _, err := bw.WriteString(ch.Text); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteOutput, aggPath, err)
		}
		name := ChapterFileName(basename, ch.Entry, w.sanitizeTitles)
		if err := os.WriteFile(filepath.Join(w.chapterDir, name), []byte(ch.Text), 0o644); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, aggPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, aggPath, err)
	}
	return nil
}

// LockFileName returns the name of the lock file guarding a book's output.
// The leading dot keeps it out of directory scans for input files.
func LockFileName(basename string) string {
	return "." + basename + ".lock"
}

// AggregateFileName returns the name of a book's aggregate text file.
func AggregateFileName(basename string) string {
	return basename + ".txt"
}

// ChapterFileName returns "{basename}--{order}--{title}.txt" with order
// zero-padded to five characters. The title is used verbatim unless
// sanitize is set.
func ChapterFileName(basename string, e ChapterEntry, sanitize bool) string {
	title := e.Title
	if sanitize {
		title = SanitizeTitle(title)
	}
	return basename + "--" + PadOrder(e.Order) + "--" + title + ".txt"
}

// PadOrder left-pads order with '0' to five characters. Longer values
// are returned unchanged.
func PadOrder(order string) string {
	if n := utf8.RuneCountInString(order); n < orderWidth {
		return strings.Repeat("0", orderWidth-n) + order
	}
	return order
}

// unsafeTitleChars cannot appear in a file name on at least one common
// file system.
const unsafeTitleChars = `/\:*?"<>|`

// SanitizeTitle makes title safe to embed in a file name: it is NFC
// normalised, control characters and unsafeTitleChars become '_', and a
// title of only dots becomes "_".
func SanitizeTitle(title string) string {
	title = norm.NFC.String(title)
	title = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(unsafeTitleChars, r) {
			return '_'
		}
		return r
	}, title)
	if strings.Trim(title, ".") == "" && title != "" {
		return "_"
	}
	return title
}
