package epub

// NavPoint is one top-level entry of the book's navigation list.
type NavPoint struct {
	// PlayOrder is the NCX playOrder attribute, kept verbatim.
	// Entries taken from an ePub 3 nav document get their 1-based position.
	PlayOrder string

	// Labels holds the navLabel texts in document order. NCX allows one
	// label per language; most books carry exactly one.
	Labels []string

	// Src is the content reference exactly as written in the navigation
	// document. It may carry a fragment ("chapter01.xhtml#start").
	Src string
}

// manifestItem represents an entry in the OPF <manifest> element.
type manifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties string
}
