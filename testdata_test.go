package epubtxt

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const testContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const testOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Alice</dc:title>
    <dc:identifier id="uid">alice-001</dc:identifier>
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="c1" href="c1.html" media-type="application/xhtml+xml"/>
    <item id="c2" href="c2.html" media-type="application/xhtml+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="c1"/>
    <itemref idref="c2"/>
  </spine>
</package>`

// testNCX lists two chapters; the second reference carries a fragment.
const testNCX = `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <docTitle><text>Alice</text></docTitle>
  <navMap>
    <navPoint id="np1" playOrder="1">
      <navLabel><text>Down the Rabbit-Hole</text></navLabel>
      <content src="c1.html"/>
    </navPoint>
    <navPoint id="np2" playOrder="2">
      <navLabel><text>The Pool of Tears</text></navLabel>
      <content src="c2.html#frag"/>
    </navPoint>
  </navMap>
</ncx>`

const testChapter1 = `<html><head><title>c1</title></head><body><h1>Down the Rabbit-Hole</h1><p>Alice was beginning to get very tired.</p></body></html>`

const testChapter2 = `<html><head><title>c2</title></head><body><h1>The Pool of Tears</h1><p>Curiouser and curiouser!</p></body></html>`

func testEPubFiles() map[string]string {
	return map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/toc.ncx":          testNCX,
		"OEBPS/c1.html":          testChapter1,
		"OEBPS/c2.html":          testChapter2,
	}
}

// writeTestEPub zips files into dir/name, "mimetype" first, and returns
// the archive path.
func writeTestEPub(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	names := make([]string, 0, len(files))
	for n := range files {
		if n != "mimetype" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	if _, ok := files["mimetype"]; ok {
		names = append([]string{"mimetype"}, names...)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, n := range names {
		fw, err := zw.Create(n)
		if err != nil {
			t.Fatalf("writeTestEPub: create %s: %v", n, err)
		}
		if _, err := io.WriteString(fw, files[n]); err != nil {
			t.Fatalf("writeTestEPub: write %s: %v", n, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("writeTestEPub: close writer: %v", err)
	}

	fp := filepath.Join(dir, name)
	if err := os.WriteFile(fp, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writeTestEPub: %v", err)
	}
	return fp
}

// newTestLogger returns a logger writing text records into the returned buffer.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// readDirNames lists the entries of dir, or nil when it does not exist.
func readDirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}
