package epub

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var namedEntityPattern = regexp.MustCompile(`&([A-Za-z][A-Za-z0-9]*);`)

// xmlEntities are understood by encoding/xml and must be left alone.
var xmlEntities = map[string]bool{
	"amp": true, "lt": true, "gt": true, "quot": true, "apos": true,
}

// preprocessHTMLEntities rewrites HTML named entities (&nbsp;, &mdash;, ...)
// into numeric character references so that encoding/xml accepts OPF and NCX
// files written by careless tools. Unknown names are left untouched; names are
// retried lowercased since some books write &NBSP;.
func preprocessHTMLEntities(data []byte) []byte {
	return namedEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(match[1 : len(match)-1])
		if xmlEntities[name] {
			return match
		}
		for _, candidate := range []string{name, strings.ToLower(name)} {
			ref := "&" + candidate + ";"
			decoded := html.UnescapeString(ref)
			if decoded == ref {
				continue
			}
			var sb strings.Builder
			for _, r := range decoded {
				sb.WriteString("&#")
				sb.WriteString(strconv.Itoa(int(r)))
				sb.WriteByte(';')
			}
			return []byte(sb.String())
		}
		return match
	})
}
