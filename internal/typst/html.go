package typst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-silkprint/internal/warnings"
)

// htmlContext is where converted HTML lands in the document.
type htmlContext int

const (
	ctxBlock htmlContext = iota
	ctxInline
	// ctxTableCell places images without a figure around them.
	ctxTableCell
)

// maxImagePoints is the widest fixed image width kept as is. It matches the
// text width of an A4 page with 25mm margins.
const maxImagePoints = 454.0

// HTMLBlock converts a block-level HTML fragment to Typst markup.
func HTMLBlock(fragment string, w *warnings.Collector) string {
	return (&htmlConverter{warn: w}).convert(fragment, ctxBlock)
}

// HTMLInline converts an inline HTML fragment to Typst markup.
func HTMLInline(fragment string, w *warnings.Collector) string {
	return (&htmlConverter{warn: w}).convert(fragment, ctxInline)
}

type htmlConverter struct {
	warn *warnings.Collector
	// footnote renders a footnote reference carried through the fragment.
	// Nil renders the bare name.
	footnote func(name string) string
	// diagram collects the source of a mermaid code block and returns the
	// markup that replaces it. Nil keeps the block as code.
	diagram func(source string) string
}

// piece is the converted form of one DOM node.
type piece struct {
	out   string
	expr  bool
	block bool
	space bool
}

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	bodyParent = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
)

func (c *htmlConverter) convert(fragment string, ctx htmlContext) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyParent)
	if err != nil {
		// The parser only fails on reader errors.
		return EscapeContent(fragment)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return c.children(root, ctx)
}

// children converts the children of n and joins them. Block pieces are
// separated from their neighbors by a blank line, and whitespace between
// blocks is dropped.
func (c *htmlConverter) children(n *html.Node, ctx htmlContext) string {
	var pieces []piece
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if p := c.node(child, ctx); p.out != "" {
			pieces = append(pieces, p)
		}
	}

	var b strings.Builder
	prevBlock, afterExpr := false, false
	for i, p := range pieces {
		if ctx == ctxBlock && p.space {
			if i == 0 || i == len(pieces)-1 || pieces[i-1].block || pieces[i+1].block {
				continue
			}
		}
		switch {
		case b.Len() > 0 && (p.block || prevBlock):
			b.WriteString("\n\n")
		case afterExpr && strings.ContainsRune(".([", rune(p.out[0])):
			b.WriteByte(';')
		}
		b.WriteString(p.out)
		prevBlock, afterExpr = p.block, p.expr
	}
	if ctx == ctxBlock {
		return strings.TrimSpace(b.String())
	}
	return b.String()
}

func (c *htmlConverter) node(n *html.Node, ctx htmlContext) piece {
	switch n.Type {
	case html.TextNode:
		text := spaceRun.ReplaceAllString(n.Data, " ")
		return piece{out: EscapeContent(text), space: text == " "}
	case html.ElementNode:
		return c.element(n, ctx)
	case html.DocumentNode:
		return piece{out: c.children(n, ctx)}
	}
	// Comments and doctypes.
	return piece{}
}

func (c *htmlConverter) element(n *html.Node, ctx htmlContext) piece {
	tag := n.Data
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return c.heading(n, ctx)
	case "p", "div":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return c.alignedBlock(n, attr(n, "align"))
	case "center":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return c.alignedBlock(n, "center")
	case "table":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return piece{out: c.table(n), block: true}
	case "img":
		return c.image(n, ctx)
	case "a":
		return c.link(n, ctx)
	case "strong", "b":
		return c.wrap("#strong[", n, ctx)
	case "em", "i":
		return c.wrap("#emph[", n, ctx)
	case "del", "s", "strike":
		return c.wrap("#strike[", n, ctx)
	case "mark":
		return c.wrap("#highlight[", n, ctx)
	case "u", "ins":
		return c.wrap("#underline[", n, ctx)
	case "sub":
		return c.wrap("#sub[", n, ctx)
	case "sup":
		return c.wrap("#super[", n, ctx)
	case "small":
		return c.wrap("#text(size: 0.85em)[", n, ctx)
	case "code", "kbd", "samp", "tt":
		out, expr := inlineCode(textContent(n))
		return piece{out: out, expr: expr}
	case "pre":
		return c.pre(n, ctx)
	case "br":
		return piece{out: "\\\n"}
	case "hr":
		if ctx != ctxBlock {
			return piece{}
		}
		return piece{out: "#line(length: 100%)", block: true}
	case "dl":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return piece{out: c.descriptionList(n), block: true}
	case "ul", "ol":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return piece{out: c.list(n, tag == "ol"), block: true}
	case "blockquote":
		if ctx != ctxBlock {
			return piece{out: c.children(n, ctx)}
		}
		return piece{out: "#quote(block: true)[\n" + c.children(n, ctxBlock) + "\n]", block: true}
	case mathElement:
		body := escapeMath(textContent(n))
		if hasAttr(n, "display") {
			return piece{out: "$ " + body + " $"}
		}
		return piece{out: "$" + body + "$"}
	case footnoteElement:
		name := attr(n, "name")
		if c.footnote != nil {
			out := c.footnote(name)
			return piece{out: out, expr: endsExpr(out)}
		}
		return piece{out: "#super[" + EscapeContent(name) + "]", expr: true}
	case "thead", "tbody", "tfoot", "tr", "td", "th", "li", "span", "html", "head", "body",
		"picture", "source", "details", "summary", "figure", "figcaption", "section", "article",
		"dt", "dd":
		return piece{out: c.children(n, ctx)}
	}

	c.warn.Addf(warnings.UnsupportedHTMLTag, "unsupported HTML tag <%s>", tag)
	return piece{out: c.children(n, ctx)}
}

func (c *htmlConverter) wrap(open string, n *html.Node, ctx htmlContext) piece {
	inner := ctx
	if inner == ctxBlock {
		inner = ctxInline
	}
	return piece{out: open + c.children(n, inner) + "]", expr: true}
}

// heading converts h1..h6. Outside block context the heading degrades to
// strong text.
func (c *htmlConverter) heading(n *html.Node, ctx htmlContext) piece {
	level, _ := strconv.Atoi(n.Data[1:])
	content := cleanHeading(c.children(n, ctxInline))
	if content == "" {
		return piece{}
	}
	if ctx != ctxBlock {
		return piece{out: "#strong[" + content + "]", expr: true}
	}
	out := strings.Repeat("=", level) + " " + content
	if id := attr(n, "id"); label(id) {
		out += " <" + id + ">"
	}
	if a := alignment(attr(n, "align")); a != "" {
		out = "#align(" + a + ")[" + out + "]"
	}
	return piece{out: out, block: true}
}

// cleanHeading drops line breaks and collapses whitespace in heading
// content.
func cleanHeading(s string) string {
	s = strings.ReplaceAll(s, "\\\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

func (c *htmlConverter) alignedBlock(n *html.Node, align string) piece {
	content := c.children(n, ctxBlock)
	if content == "" {
		return piece{}
	}
	if a := alignment(align); a != "" {
		content = "#align(" + a + ")[\n" + content + "\n]"
	}
	return piece{out: content, block: true}
}

func (c *htmlConverter) link(n *html.Node, ctx htmlContext) piece {
	inner := ctx
	if inner == ctxBlock {
		inner = ctxInline
	}
	content := c.children(n, inner)
	href := attr(n, "href")

	dest := "#link(\"" + EscapeString(href) + "\")"
	if id, ok := strings.CutPrefix(href, "#"); ok {
		if !label(id) {
			return piece{out: content}
		}
		dest = "#link(<" + id + ">)"
	}
	if content == "" {
		return piece{out: dest, expr: true}
	}
	return piece{out: dest + "[" + content + "]", expr: true}
}

// image converts <img>. Remote images are replaced by their alt text.
func (c *htmlConverter) image(n *html.Node, ctx htmlContext) piece {
	src, alt := attr(n, "src"), attr(n, "alt")
	if isRemote(src) {
		c.warn.Addf(warnings.RemoteImageSkipped, "remote image %q replaced by its alt text", src)
		return piece{out: EscapeContent(alt)}
	}
	if src == "" {
		return piece{}
	}

	call := fmt.Sprintf("image(\"%s\", width: %s)", EscapeString(src), imageWidth(attr(n, "width")))
	switch ctx {
	case ctxTableCell:
		return piece{out: "#" + call, expr: true}
	case ctxInline:
		return piece{out: "#box(" + call + ")", expr: true}
	}
	return piece{out: "#figure(" + call + ")", block: true}
}

// imageWidth converts an HTML width attribute to a Typst length. Percentages
// pass through, pixel counts become points, and widths wider than the text
// area shrink to 80%.
func imageWidth(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "100%"
	}
	if strings.HasSuffix(raw, "%") {
		if _, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64); err == nil {
			return raw
		}
		return "100%"
	}
	num := strings.TrimSuffix(raw, "px")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return "100%"
	}
	if v > maxImagePoints {
		return "80%"
	}
	return num + "pt"
}

func (c *htmlConverter) pre(n *html.Node, ctx htmlContext) piece {
	body := textContent(n)
	if ctx != ctxBlock {
		out, expr := inlineCode(body)
		return piece{out: out, expr: expr}
	}
	lang := ""
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == "code" {
			for _, class := range strings.Fields(attr(child, "class")) {
				if l, ok := strings.CutPrefix(class, "language-"); ok && validLang(l) {
					lang = l
				}
			}
		}
	}
	if strings.EqualFold(lang, DiagramLanguage) && c.diagram != nil {
		return piece{out: c.diagram(body), block: true}
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	f := fence(body)
	return piece{out: f + lang + "\n" + body + f, block: true}
}

// descriptionList converts <dl> the way a Markdown description list
// renders: each <dt> opens a term and the <dd> elements after it become
// its details.
func (c *htmlConverter) descriptionList(n *html.Node) string {
	var items []string
	var term string
	var details []string
	open := false
	flush := func() {
		if !open {
			return
		}
		items = append(items, "/ "+term+": "+indent(strings.Join(details, "\n\n"), "  "))
		term, details, open = "", nil, false
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "dt":
			flush()
			term = cleanHeading(c.children(child, ctxInline))
			open = true
		case "dd":
			details = append(details, c.children(child, ctxBlock))
			open = true
		}
	}
	flush()
	return strings.Join(items, "\n")
}

// list converts <ul> and <ol>. Nested lists are indented under their item.
func (c *htmlConverter) list(n *html.Node, ordered bool) string {
	marker := "- "
	if ordered {
		marker = "+ "
	}
	var items []string
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		var inline, nested []string
		for child := li.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && (child.Data == "ul" || child.Data == "ol") {
				nested = append(nested, c.list(child, child.Data == "ol"))
				continue
			}
			if p := c.node(child, ctxInline); p.out != "" {
				inline = append(inline, p.out)
			}
		}
		item := marker + strings.TrimSpace(strings.Join(inline, ""))
		for _, sub := range nested {
			item += "\n  " + indent(sub, "  ")
		}
		items = append(items, item)
	}
	return strings.Join(items, "\n")
}

// table converts <table> in two passes: the first finds the column count,
// the second emits the cells.
func (c *htmlConverter) table(n *html.Node) string {
	rows := tableRows(n)
	columns := 0
	for _, row := range rows {
		span := 0
		for _, cell := range rowCells(row) {
			span += colspan(cell)
		}
		columns = max(columns, span)
	}
	if columns == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("#table(\n")
	fmt.Fprintf(&b, "  columns: %d,\n", columns)
	for _, row := range rows {
		for _, cell := range rowCells(row) {
			content := strings.TrimSpace(c.children(cell, ctxTableCell))
			if cell.Data == "th" && content != "" {
				content = "#strong[" + content + "]"
			}
			if a := alignment(attr(cell, "align")); a != "" {
				content = "#align(" + a + ")[" + content + "]"
			}
			if span := colspan(cell); span > 1 {
				fmt.Fprintf(&b, "  table.cell(colspan: %d)[%s],\n", span, content)
				continue
			}
			fmt.Fprintf(&b, "  [%s],\n", content)
		}
	}
	b.WriteString(")")
	return b.String()
}

// tableRows returns the rows of a table, looking through row groups.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for child := table.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "tr":
			rows = append(rows, child)
		case "thead", "tbody", "tfoot":
			rows = append(rows, tableRows(child)...)
		}
	}
	return rows
}

func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.Data == "td" || child.Data == "th") {
			cells = append(cells, child)
		}
	}
	return cells
}

func colspan(cell *html.Node) int {
	n, err := strconv.Atoi(strings.TrimSpace(attr(cell, "colspan")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// alignment maps an HTML align attribute to a Typst alignment.
func alignment(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left":
		return "left"
	case "center", "middle":
		return "center"
	case "right":
		return "right"
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// textContent concatenates the text of n's descendants without escaping.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
