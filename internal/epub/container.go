package epub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// containerPath is the well-known location of container.xml in an ePub archive.
const containerPath = "META-INF/container.xml"

const opfMediaType = "application/oebps-package+xml"

type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// locateOPF returns the ZIP-internal path of the package document.
//
// It reads META-INF/container.xml and prefers the rootfile declared with the
// OPF media type. Without a container it falls back to the first ".opf"
// entry in the archive.
func (b *Book) locateOPF() (string, error) {
	f := b.findFile(containerPath)
	if f == nil {
		for _, zf := range b.zip.File {
			if strings.HasSuffix(strings.ToLower(zf.Name), ".opf") {
				b.warnings = append(b.warnings, "container.xml missing; using "+zf.Name)
				return zf.Name, nil
			}
		}
		return "", fmt.Errorf("epub: no OPF file found in archive: %w", ErrInvalidEPub)
	}

	data, err := readZipFile(f)
	if err != nil {
		return "", fmt.Errorf("epub: read container.xml: %w", err)
	}
	var c containerXML
	if err := xml.Unmarshal(stripBOM(data), &c); err != nil {
		return "", fmt.Errorf("epub: parse container.xml: %w", err)
	}
	return pickRootFile(c.RootFiles)
}

func pickRootFile(files []rootFile) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("epub: container.xml has no rootfile entries: %w", ErrInvalidEPub)
	}
	var first string
	for _, rf := range files {
		p := strings.TrimSpace(rf.FullPath)
		if p == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), opfMediaType) {
			return p, nil
		}
		if first == "" {
			first = p
		}
	}
	if first == "" {
		return "", fmt.Errorf("epub: container.xml rootfile has empty full-path: %w", ErrInvalidEPub)
	}
	return first, nil
}
