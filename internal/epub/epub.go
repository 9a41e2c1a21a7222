package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// expectedMimetype is the required content of the "mimetype" file in a valid ePub.
const expectedMimetype = "application/epub+zip"

// Book is an opened ePub archive. Use Open or NewReader to create one.
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	zip      *zip.Reader
	zipExact map[string]*zip.File // exact-match ZIP file index
	zipLower map[string]*zip.File // lowercase ZIP file index
	closer   io.Closer            // non-nil only when created via Open()
	opfPath  string
	opfDir   string
	opf      *opfPackage

	// tocPath is the ZIP-internal path of the document the navigation
	// list was read from. Item references are relative to it.
	tocPath   string
	title     string
	navPoints []NavPoint
	warnings  []string
}

// Open opens an ePub file at the given path.
// The caller must call Close when done reading from the book.
func Open(path string) (*Book, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epub: open %s: %w", path, err)
	}

	b, err := initBook(&zrc.Reader, zrc)
	if err != nil {
		zrc.Close()
		return nil, err
	}
	return b, nil
}

// NewReader creates a Book from an io.ReaderAt with the given size.
// The caller is responsible for the lifetime of r.
func NewReader(r io.ReaderAt, size int64) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("epub: open zip: %w", err)
	}
	return initBook(zr, nil)
}

func initBook(zr *zip.Reader, closer io.Closer) (*Book, error) {
	b := &Book{
		zip:    zr,
		closer: closer,
	}
	b.buildZipIndex()
	b.validateMimetype()

	opfPath, err := b.locateOPF()
	if err != nil {
		return nil, err
	}
	b.opfPath = opfPath
	b.opfDir = path.Dir(opfPath)

	fontObfuscation, err := b.checkDRM()
	if err != nil {
		return nil, err
	}
	if fontObfuscation {
		b.warnings = append(b.warnings, "font obfuscation detected")
	}

	f := b.findFile(opfPath)
	if f == nil {
		return nil, fmt.Errorf("epub: OPF file not found in archive: %s: %w", opfPath, ErrInvalidEPub)
	}
	data, err := readZipFile(f)
	if err != nil {
		return nil, fmt.Errorf("epub: read OPF file: %w", err)
	}
	if b.opf, err = parseOPF(data); err != nil {
		return nil, err
	}

	// A missing or unreadable TOC is not fatal here; HasTOC reports it.
	b.loadTOC()

	if b.title == "" {
		b.title = b.opf.firstTitle()
	}
	return b, nil
}

// validateMimetype checks that the first ZIP entry is "mimetype" with the
// ePub media type. Deviations are recorded as warnings.
func (b *Book) validateMimetype() {
	if len(b.zip.File) == 0 {
		b.warnings = append(b.warnings, "empty ZIP archive; mimetype entry missing")
		return
	}
	first := b.zip.File[0]
	if first.Name != "mimetype" {
		b.warnings = append(b.warnings, "first ZIP entry is not \"mimetype\"")
		return
	}
	data, err := readZipFile(first)
	switch {
	case err != nil:
		b.warnings = append(b.warnings, fmt.Sprintf("cannot read mimetype entry: %v", err))
	case string(data) != expectedMimetype:
		b.warnings = append(b.warnings, fmt.Sprintf("unexpected mimetype: %q", string(data)))
	}
}

// Close releases resources held by the Book. When the Book was created via
// Open, Close closes the underlying file. Close is idempotent.
func (b *Book) Close() error {
	if b.closer != nil {
		err := b.closer.Close()
		b.closer = nil
		return err
	}
	return nil
}

// Title returns the book title: the NCX docTitle when present, otherwise
// the first dc:title of the package document. It may be empty.
func (b *Book) Title() string {
	return b.title
}

// HasTOC reports whether a navigation list was found.
func (b *Book) HasTOC() bool {
	return b.tocPath != ""
}

// NavPoints returns the top-level navigation points in document order.
func (b *Book) NavPoints() []NavPoint {
	if b.navPoints == nil {
		return nil
	}
	out := make([]NavPoint, len(b.navPoints))
	for i, np := range b.navPoints {
		out[i] = np
		out[i].Labels = append([]string(nil), np.Labels...)
	}
	return out
}

// Warnings returns the non-fatal warnings accumulated while opening the book.
func (b *Book) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

// ReadItem returns the content of the archive item a navigation reference
// points to. The reference is resolved relative to the navigation document
// and is used as-is: a reference carrying a fragment ("ch1.xhtml#s2") names
// no archive entry and fails with ErrFileNotFound.
func (b *Book) ReadItem(ref string) ([]byte, error) {
	base := b.tocPath
	if base == "" {
		base = b.opfPath
	}
	name := resolveRelativePath(base, ref)
	if name == "" {
		return nil, fmt.Errorf("epub: read item %q: unsafe reference: %w", ref, ErrFileNotFound)
	}
	data, err := b.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("epub: read item %q: %w", ref, err)
	}
	return stripBOM(data), nil
}

// ReadFile reads a file from the ePub archive by its ZIP-internal path.
// The lookup is case-insensitive as a fallback.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f := b.findFile(name)
	if f == nil {
		return nil, ErrFileNotFound
	}
	return readZipFile(f)
}

func (b *Book) buildZipIndex() {
	b.zipExact = make(map[string]*zip.File, len(b.zip.File))
	b.zipLower = make(map[string]*zip.File, len(b.zip.File))
	for _, f := range b.zip.File {
		if _, exists := b.zipExact[f.Name]; !exists {
			b.zipExact[f.Name] = f
		}
		lower := strings.ToLower(f.Name)
		if _, exists := b.zipLower[lower]; !exists {
			b.zipLower[lower] = f
		}
	}
}

// findFile tries an exact match first, then a case-insensitive one.
func (b *Book) findFile(name string) *zip.File {
	if f, ok := b.zipExact[name]; ok {
		return f
	}
	if f, ok := b.zipLower[strings.ToLower(name)]; ok {
		return f
	}
	return nil
}

// resolveOPFPath resolves a manifest href relative to the OPF directory.
func (b *Book) resolveOPFPath(href string) string {
	if href == "" {
		return ""
	}
	if b.opfDir == "." {
		return href
	}
	return path.Join(b.opfDir, href)
}
