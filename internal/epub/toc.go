package epub

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// loadTOC reads the navigation list. The NCX is preferred since it carries
// explicit play orders; ePub 3 books without one fall back to the nav
// document. Failures are recorded as warnings and leave HasTOC false.
func (b *Book) loadTOC() {
	if item, ok := b.opf.ncxItem(); ok {
		ncxPath := b.resolveOPFPath(item.Href)
		if data, ok := b.readTOCFile(ncxPath, "NCX"); ok {
			doc, err := parseNCX(data)
			if err == nil {
				b.tocPath = ncxPath
				b.title = doc.title()
				b.navPoints = doc.navPoints()
				return
			}
			b.warnings = append(b.warnings, fmt.Sprintf("failed to parse NCX file: %v", err))
		}
	}

	if item, ok := b.opf.navItem(); ok {
		navPath := b.resolveOPFPath(item.Href)
		if data, ok := b.readTOCFile(navPath, "nav document"); ok {
			points, err := parseNavDocument(data)
			if err == nil {
				b.tocPath = navPath
				b.navPoints = points
				return
			}
			b.warnings = append(b.warnings, fmt.Sprintf("failed to parse nav document: %v", err))
		}
	}
}

func (b *Book) readTOCFile(name, kind string) ([]byte, bool) {
	f := b.findFile(name)
	if f == nil {
		b.warnings = append(b.warnings, fmt.Sprintf("%s %s not found in archive", kind, name))
		return nil, false
	}
	data, err := readZipFile(f)
	if err != nil {
		b.warnings = append(b.warnings, fmt.Sprintf("failed to read %s: %v", kind, err))
		return nil, false
	}
	return data, true
}

// --- NCX (ePub 2) ---

type ncxDocument struct {
	XMLName  xml.Name      `xml:"ncx"`
	DocTitle ncxText       `xml:"docTitle"`
	Points   []ncxNavPoint `xml:"navMap>navPoint"`
}

type ncxText struct {
	Text string `xml:"text"`
}

// ncxNavPoint only decodes its own labels and content; nested navPoints
// are not part of the chapter list.
type ncxNavPoint struct {
	PlayOrder string    `xml:"playOrder,attr"`
	Labels    []ncxText `xml:"navLabel"`
	Content   struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
}

func parseNCX(data []byte) (*ncxDocument, error) {
	data = preprocessHTMLEntities(stripBOM(data))

	var doc ncxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("epub: parse NCX: %w", err)
	}
	return &doc, nil
}

func (d *ncxDocument) title() string {
	return strings.TrimSpace(d.DocTitle.Text)
}

func (d *ncxDocument) navPoints() []NavPoint {
	points := make([]NavPoint, 0, len(d.Points))
	for _, np := range d.Points {
		p := NavPoint{
			PlayOrder: strings.TrimSpace(np.PlayOrder),
			Src:       strings.TrimSpace(np.Content.Src),
		}
		for _, l := range np.Labels {
			p.Labels = append(p.Labels, strings.TrimSpace(l.Text))
		}
		points = append(points, p)
	}
	return points
}

// --- Nav document (ePub 3) ---

// parseNavDocument returns the top-level entries of the nav element typed
// "toc". Play orders are the 1-based positions. An <li> headed by a <span>
// instead of an <a> takes the href of the first link nested below it.
func parseNavDocument(data []byte) ([]NavPoint, error) {
	doc, err := html.Parse(bytes.NewReader(stripBOM(data)))
	if err != nil {
		return nil, fmt.Errorf("epub: parse nav document: %w", err)
	}

	nav := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "nav" && hasEpubType(n, "toc")
	})
	if nav == nil {
		return nil, fmt.Errorf("epub: nav document has no toc nav: %w", ErrNoTOC)
	}
	ol := findNode(nav, func(n *html.Node) bool {
		return n != nav && n.Type == html.ElementNode && n.Data == "ol"
	})
	if ol == nil {
		return []NavPoint{}, nil
	}

	var points []NavPoint
	for li := ol.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		p := NavPoint{PlayOrder: strconv.Itoa(len(points) + 1)}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if (c.Data == "a" || c.Data == "span") && len(p.Labels) == 0 {
				if label := strings.TrimSpace(textContent(c)); label != "" {
					p.Labels = []string{label}
				}
				if c.Data == "a" {
					p.Src = strings.TrimSpace(attr(c, "href"))
				}
			}
		}
		if p.Src == "" {
			p.Src = firstNestedHref(li)
		}
		points = append(points, p)
	}
	return points, nil
}

func firstNestedHref(li *html.Node) string {
	a := findNode(li, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" && strings.TrimSpace(attr(n, "href")) != ""
	})
	if a == nil {
		return ""
	}
	return strings.TrimSpace(attr(a, "href"))
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

// hasEpubType matches one token of the space-separated epub:type attribute.
func hasEpubType(n *html.Node, typeName string) bool {
	for _, t := range strings.Fields(attr(n, "epub:type")) {
		if t == typeName {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
