package typst

import (
	"regexp"
	"strings"

	"github.com/alnah/go-silkprint/internal/doctree"
)

// htmlMode selects how accumulated raw HTML is converted.
type htmlMode int

const (
	blockHTML htmlMode = iota
	inlineHTML
)

var (
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTag     = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9-]*)\b[^>]*?(/?)>`)
)

// voidElements never take a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// depthDelta returns opened tags minus closed tags in a fragment.
func depthDelta(fragment string) int {
	delta := 0
	for _, m := range htmlTag.FindAllStringSubmatch(htmlComment.ReplaceAllString(fragment, ""), -1) {
		name := strings.ToLower(m[2])
		switch {
		case voidElements[name], m[3] == "/":
		case m[1] == "/":
			delta--
		default:
			delta++
		}
	}
	return delta
}

// accumulateHTML joins the raw HTML node at nodes[start] with the siblings
// that follow it until every tag it opened is closed again. Siblings that
// are not raw HTML are rendered to HTML so the whole span converts as one
// fragment. Unclosed tags end the span at the last sibling. It returns the
// fragment and the index of the first sibling not consumed.
func accumulateHTML(nodes []*doctree.Node, start int, mode htmlMode) (string, int) {
	var b strings.Builder
	b.WriteString(nodes[start].Literal)
	depth := depthDelta(nodes[start].Literal)

	i := start + 1
	for ; depth > 0 && i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind == doctree.HTMLBlock || n.Kind == doctree.HTMLInline {
			b.WriteString(n.Literal)
			depth += depthDelta(n.Literal)
			continue
		}
		if mode == blockHTML {
			b.WriteByte('\n')
		}
		b.WriteString(toHTML(n))
		if mode == blockHTML {
			b.WriteByte('\n')
		}
	}
	return b.String(), i
}
