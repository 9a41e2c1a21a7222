package epub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// opfPackage holds the parts of the package document the converter needs:
// titles, the manifest and the spine's NCX reference.
type opfPackage struct {
	XMLName  xml.Name `xml:"package"`
	Version  string   `xml:"version,attr"`
	Metadata struct {
		Titles []string `xml:"http://purl.org/dc/elements/1.1/ title"`
	} `xml:"metadata"`
	Manifest struct {
		Items []opfManifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Toc string `xml:"toc,attr"`
	} `xml:"spine"`
}

type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

const ncxMediaType = "application/x-dtbncx+xml"

func parseOPF(data []byte) (*opfPackage, error) {
	data = preprocessHTMLEntities(stripBOM(data))

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("epub: parse OPF: %w", err)
	}
	if pkg.Version == "" {
		pkg.Version = "2.0"
	}
	return &pkg, nil
}

// firstTitle returns the first non-empty dc:title.
func (p *opfPackage) firstTitle() string {
	for _, t := range p.Metadata.Titles {
		if v := strings.TrimSpace(t); v != "" {
			return v
		}
	}
	return ""
}

// ncxItem returns the manifest entry of the NCX document. The spine's toc
// attribute wins; otherwise the first item with the NCX media type is used.
func (p *opfPackage) ncxItem() (manifestItem, bool) {
	if id := strings.TrimSpace(p.Spine.Toc); id != "" {
		for _, it := range p.Manifest.Items {
			if it.ID == id {
				return manifestItem(it), true
			}
		}
	}
	for _, it := range p.Manifest.Items {
		if strings.EqualFold(strings.TrimSpace(it.MediaType), ncxMediaType) {
			return manifestItem(it), true
		}
	}
	return manifestItem{}, false
}

// navItem returns the manifest entry carrying the ePub 3 "nav" property,
// in manifest order.
func (p *opfPackage) navItem() (manifestItem, bool) {
	for _, it := range p.Manifest.Items {
		for _, prop := range strings.Fields(it.Properties) {
			if prop == "nav" {
				return manifestItem(it), true
			}
		}
	}
	return manifestItem{}, false
}
