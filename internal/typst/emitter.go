package typst

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-silkprint/internal/doctree"
	"github.com/alnah/go-silkprint/internal/theme"
	"github.com/alnah/go-silkprint/internal/warnings"
)

// DiagramLanguage is the code block language collected as a diagram.
const DiagramLanguage = "mermaid"

// DiagramPath returns the virtual path the n-th diagram image is served at.
func DiagramPath(n int) string {
	return fmt.Sprintf("/__mermaid_%d.svg", n)
}

// Diagram is a diagram source the emitter replaced by an image reference.
type Diagram struct {
	Index  int
	Path   string
	Source string
}

// Options are the theme flags that change emitted markup. Everything else
// about styling lives in the preamble.
type Options struct {
	// PageBreakBefore is indexed by heading level 1..6.
	PageBreakBefore [7]bool
}

// OptionsFromTheme reads the emitter flags from theme tokens.
func OptionsFromTheme(t *theme.Tokens) Options {
	var o Options
	if t == nil {
		return o
	}
	for level := 1; level <= 6; level++ {
		o.PageBreakBefore[level] = theme.Bool(t.Headings.Level(level).PageBreakBefore)
	}
	return o
}

// Result is the emitted markup plus the diagrams it references.
type Result struct {
	Markup   string
	Diagrams []Diagram
}

// Emit renders doc as Typst markup. Node-level problems never fail the
// walk: they degrade to placeholder output and a warning in w.
//
// Emission runs in two passes. The first collects footnote definitions so
// references can inline a body wherever its definition sits. The second
// renders the document, rendering each footnote body at its first
// reference. A definition nothing references is never rendered.
func Emit(doc *doctree.Node, opts Options, w *warnings.Collector) Result {
	e := newEmitter(opts, w)
	e.collectFootnotes(doc)
	markup := e.blocks(doc.Children, false)
	if markup != "" {
		markup += "\n"
	}
	return Result{Markup: markup, Diagrams: e.diagrams}
}

// emitter is the emission context of one document.
type emitter struct {
	opts Options
	warn *warnings.Collector

	defs       map[string]*doctree.Node
	footnotes  map[string]string
	rendering  map[string]bool
	referenced map[string]bool

	diagrams []Diagram
}

func newEmitter(opts Options, w *warnings.Collector) *emitter {
	return &emitter{
		opts:       opts,
		warn:       w,
		defs:       map[string]*doctree.Node{},
		footnotes:  map[string]string{},
		rendering:  map[string]bool{},
		referenced: map[string]bool{},
	}
}

// html returns an HTML converter that renders footnote references the way
// the document does.
func (e *emitter) html() *htmlConverter {
	return &htmlConverter{warn: e.warn, footnote: e.footnoteRef, diagram: e.diagram}
}

// collectFootnotes is the first pass.
func (e *emitter) collectFootnotes(doc *doctree.Node) {
	doctree.Walk(doc, func(n *doctree.Node) bool {
		if n.Kind == doctree.FootnoteDefinition {
			if _, dup := e.defs[n.Name]; !dup {
				e.defs[n.Name] = n
			}
			return false
		}
		return true
	})
}

// footnote returns the rendered body of a definition, rendering it on first
// use. ok is false for unknown names and for a definition that references
// itself while being rendered.
func (e *emitter) footnote(name string) (string, bool) {
	if body, ok := e.footnotes[name]; ok {
		return body, true
	}
	def, ok := e.defs[name]
	if !ok || e.rendering[name] {
		return "", false
	}
	e.rendering[name] = true
	body := e.blocks(def.Children, true)
	delete(e.rendering, name)
	e.footnotes[name] = body
	return body, true
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

// blocks renders sibling blocks. Tight siblings are separated by a single
// newline, others by a blank line. Raw HTML blocks absorb the following
// siblings until their tags balance.
func (e *emitter) blocks(nodes []*doctree.Node, tight bool) string {
	sep := "\n\n"
	if tight {
		sep = "\n"
	}

	var parts []string
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind == doctree.HTMLBlock {
			fragment, next := accumulateHTML(nodes, i, blockHTML)
			i = next - 1
			if out := e.html().convert(fragment, ctxBlock); out != "" {
				parts = append(parts, out)
			}
			continue
		}
		if out := e.block(n, tight); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, sep)
}

func (e *emitter) block(n *doctree.Node, tight bool) string {
	switch n.Kind {
	case doctree.Paragraph:
		return e.paragraph(n)
	case doctree.Heading:
		return e.heading(n)
	case doctree.ThematicBreak:
		return "#line(length: 100%)"
	case doctree.BlockQuote:
		return "#quote(block: true)[\n" + e.blocks(n.Children, false) + "\n]"
	case doctree.Alert:
		return fmt.Sprintf("#silk-alert(%q)[\n%s\n]", n.Name, e.blocks(n.Children, false))
	case doctree.List:
		return e.list(n)
	case doctree.CodeBlock:
		return e.codeBlock(n)
	case doctree.MathBlock:
		return "$ " + escapeMath(n.Literal) + " $"
	case doctree.Table:
		return e.table(n)
	case doctree.DescriptionList:
		return e.descriptionList(n)
	case doctree.FootnoteDefinition:
		// Inlined at the reference site.
		return ""
	}
	if n.Kind.IsInline() {
		return e.inlines([]*doctree.Node{n}, true)
	}
	return e.blocks(n.Children, tight)
}

func (e *emitter) paragraph(n *doctree.Node) string {
	if len(n.Children) == 1 && n.Children[0].Kind == doctree.Image {
		if fig, ok := e.figure(n.Children[0]); ok {
			return fig
		}
	}
	return e.inlines(n.Children, true)
}

func (e *emitter) heading(n *doctree.Node) string {
	level := min(max(n.Level, 1), 6)
	var b strings.Builder
	if e.opts.PageBreakBefore[level] {
		b.WriteString("#pagebreak(weak: true)\n")
	}
	b.WriteString(strings.Repeat("=", level))
	b.WriteByte(' ')
	b.WriteString(e.inlines(n.Children, false))
	if label(n.ID) {
		b.WriteString(" <" + n.ID + ">")
	}
	return b.String()
}

// list renders a bullet or numbered list. A tight list unwraps each item's
// paragraphs so no paragraph spacing separates them.
func (e *emitter) list(n *doctree.Node) string {
	sep := "\n\n"
	if n.Tight {
		sep = "\n"
	}

	items := make([]string, 0, len(n.Children))
	for i, item := range n.Children {
		marker := "- "
		if n.Ordered {
			marker = "+ "
			if n.Start != 1 {
				marker = fmt.Sprintf("%d. ", n.Start+i)
			}
		}
		body := e.blocks(item.Children, n.Tight)
		items = append(items, marker+indent(body, strings.Repeat(" ", len(marker))))
	}
	return strings.Join(items, sep)
}

func (e *emitter) codeBlock(n *doctree.Node) string {
	lang := n.Language()
	if strings.EqualFold(lang, DiagramLanguage) {
		return e.diagram(n.Literal)
	}

	if lang != "" && lexers.Get(lang) == nil {
		e.warn.Addf(warnings.UnknownLanguage, "unknown code block language %q", lang)
	}
	if !validLang(lang) {
		lang = ""
	}

	body := n.Literal
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	f := fence(body)
	return f + lang + "\n" + body + f
}

// diagram collects a diagram source and references its virtual image.
func (e *emitter) diagram(source string) string {
	d := Diagram{Index: len(e.diagrams), Path: DiagramPath(len(e.diagrams)), Source: source}
	e.diagrams = append(e.diagrams, d)
	return fmt.Sprintf("#figure(image(%q))", d.Path)
}

// table renders a table. A header row whose cells are all blank is dropped
// and the first data row keeps regular cell styling.
func (e *emitter) table(n *doctree.Node) string {
	var header *doctree.Node
	var rows []*doctree.Node
	columns := len(n.Aligns)
	for _, row := range n.Children {
		if row.Kind != doctree.TableRow {
			continue
		}
		columns = max(columns, len(row.Children))
		if row.Header && header == nil {
			header = row
			continue
		}
		rows = append(rows, row)
	}
	if columns == 0 {
		return ""
	}

	headerless := header == nil || blankRow(header)

	var b strings.Builder
	if headerless {
		b.WriteString("#[\n#show table.cell.where(y: 0): set text(weight: \"regular\")\n")
	}
	b.WriteString("#table(\n")
	fmt.Fprintf(&b, "  columns: %d,\n", columns)
	if a := alignList(n.Aligns); a != "" {
		fmt.Fprintf(&b, "  align: %s,\n", a)
	}
	if headerless {
		b.WriteString("  fill: silk-table-fill(header: false),\n")
	} else {
		fmt.Fprintf(&b, "  table.header(%s),\n", e.cells(header))
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s,\n", e.cells(row))
	}
	b.WriteString(")")
	if headerless {
		b.WriteString("\n]")
	}
	return b.String()
}

func (e *emitter) cells(row *doctree.Node) string {
	cells := make([]string, 0, len(row.Children))
	for _, c := range row.Children {
		cells = append(cells, "["+e.inlines(c.Children, true)+"]")
	}
	return strings.Join(cells, ", ")
}

func blankRow(row *doctree.Node) bool {
	for _, c := range row.Children {
		if strings.TrimSpace(c.PlainText()) != "" {
			return false
		}
		for _, d := range c.Children {
			if d.Kind == doctree.Image || d.Kind == doctree.HTMLInline {
				return false
			}
		}
	}
	return true
}

func alignList(aligns []doctree.Align) string {
	set := false
	parts := make([]string, len(aligns))
	for i, a := range aligns {
		switch a {
		case doctree.AlignLeft:
			parts[i], set = "left", true
		case doctree.AlignCenter:
			parts[i], set = "center", true
		case doctree.AlignRight:
			parts[i], set = "right", true
		default:
			parts[i] = "auto"
		}
	}
	if !set {
		return ""
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// descriptionList renders terms and details as a Typst term list.
func (e *emitter) descriptionList(n *doctree.Node) string {
	var items []string
	var term string
	var details []string
	flush := func() {
		if term == "" && len(details) == 0 {
			return
		}
		body := strings.Join(details, "\n\n")
		items = append(items, "/ "+term+": "+indent(body, "  "))
		term, details = "", nil
	}
	for _, c := range n.Children {
		switch c.Kind {
		case doctree.DescriptionTerm:
			flush()
			term = e.inlines(c.Children, false)
		case doctree.DescriptionDetails:
			details = append(details, e.blocks(c.Children, true))
		}
	}
	flush()
	return strings.Join(items, "\n")
}

// ---------------------------------------------------------------------------
// Inlines
// ---------------------------------------------------------------------------

// inlines renders a run of inline siblings. Raw HTML opening tags absorb
// the following siblings until their tags balance. When lineStart is set,
// text that would read as a block marker at the start of a line is escaped.
func (e *emitter) inlines(nodes []*doctree.Node, lineStart bool) string {
	var b strings.Builder
	afterExpr := false
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		var out string
		expr := false
		switch n.Kind {
		case doctree.HTMLInline:
			fragment, next := accumulateHTML(nodes, i, inlineHTML)
			i = next - 1
			out = e.html().convert(fragment, ctxInline)
			expr = endsExpr(out)
		case doctree.Text:
			out = EscapeContent(n.Literal)
			if lineStart {
				out = escapeLineStarts(out)
			}
		default:
			out, expr = e.inline(n)
		}
		if afterExpr && out != "" && strings.ContainsRune(".([", rune(out[0])) {
			b.WriteByte(';')
		}
		b.WriteString(out)
		if out != "" {
			afterExpr = expr
			lineStart = n.Kind == doctree.LineBreak
		}
	}
	return b.String()
}

// inline renders one inline node. expr reports whether the output ends in
// a code expression that a following '.', '(' or '[' would extend.
func (e *emitter) inline(n *doctree.Node) (out string, expr bool) {
	switch n.Kind {
	case doctree.SoftBreak:
		return " ", false
	case doctree.LineBreak:
		return "\\\n", false
	case doctree.Emph:
		return "#emph[" + e.inlines(n.Children, true) + "]", true
	case doctree.Strong:
		return "#strong[" + e.inlines(n.Children, true) + "]", true
	case doctree.Strikethrough:
		return "#strike[" + e.inlines(n.Children, true) + "]", true
	case doctree.Highlight:
		return "#highlight[" + e.inlines(n.Children, true) + "]", true
	case doctree.Superscript:
		return "#super[" + e.inlines(n.Children, true) + "]", true
	case doctree.Subscript:
		return "#sub[" + e.inlines(n.Children, true) + "]", true
	case doctree.Code:
		return inlineCode(n.Literal)
	case doctree.Math:
		if n.Display {
			return "$ " + escapeMath(n.Literal) + " $", false
		}
		return "$" + escapeMath(n.Literal) + "$", false
	case doctree.Link:
		return e.link(n), true
	case doctree.Image:
		return e.image(n)
	case doctree.FootnoteReference:
		out := e.footnoteRef(n.Name)
		return out, endsExpr(out)
	case doctree.TaskMarker:
		if n.Checked {
			return "☑ ", false
		}
		return "☐ ", false
	}
	return e.inlines(n.Children, false), false
}

func inlineCode(code string) (string, bool) {
	if code == "" || strings.Contains(code, "`") {
		return fmt.Sprintf("#raw(\"%s\")", EscapeString(code)), true
	}
	return "`" + code + "`", false
}

func (e *emitter) link(n *doctree.Node) string {
	text := e.inlines(n.Children, false)
	if id, ok := strings.CutPrefix(n.URL, "#"); ok {
		if !label(id) {
			return text
		}
		if text == "" {
			return "#link(<" + id + ">)"
		}
		return "#link(<" + id + ">)[" + text + "]"
	}
	dest := "#link(\"" + EscapeString(n.URL) + "\")"
	if text == "" {
		return dest
	}
	return dest + "[" + text + "]"
}

// image renders an inline image. Remote images cannot be embedded; their
// alt text stands in.
func (e *emitter) image(n *doctree.Node) (string, bool) {
	alt := n.PlainText()
	if isRemote(n.URL) {
		e.warn.Addf(warnings.RemoteImageSkipped, "remote image %q replaced by its alt text", n.URL)
		return EscapeContent(alt), false
	}
	return "#" + imageCall(n.URL, alt), true
}

// figure renders an image that stands alone in its paragraph.
func (e *emitter) figure(n *doctree.Node) (string, bool) {
	if isRemote(n.URL) {
		return "", false
	}
	alt := n.PlainText()
	if strings.TrimSpace(alt) == "" {
		return "#figure(" + imageCall(n.URL, "") + ")", true
	}
	return "#figure(" + imageCall(n.URL, alt) + ", caption: [" + EscapeContent(alt) + "])", true
}

func imageCall(src, alt string) string {
	if alt == "" {
		return fmt.Sprintf("image(\"%s\")", EscapeString(src))
	}
	return fmt.Sprintf("image(\"%s\", alt: \"%s\")", EscapeString(src), EscapeString(alt))
}

// footnoteRef inlines the definition at its first reference and points
// later references at the same footnote.
func (e *emitter) footnoteRef(name string) string {
	body, ok := e.footnote(name)
	if !ok {
		e.warn.Addf(warnings.FootnoteNotFound, "footnote %q is referenced but never defined", name)
		return "#super[" + EscapeContent(name) + "]"
	}
	lbl := footnoteLabel(name)
	if e.referenced[name] {
		return "#footnote(<" + lbl + ">)"
	}
	e.referenced[name] = true
	return "#footnote[" + body + "] <" + lbl + ">"
}

func footnoteLabel(name string) string {
	var b strings.Builder
	b.WriteString("fn-")
	for _, r := range name {
		if label(string(r)) {
			b.WriteRune(r)
		} else {
			fmt.Fprintf(&b, "_%x", r)
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// endsExpr reports whether markup ends in a code expression that a
// following '.', '(' or '[' would continue.
func endsExpr(out string) bool {
	return strings.HasSuffix(out, "]") && !strings.HasSuffix(out, `\]`) || strings.HasSuffix(out, ")")
}

// indent prefixes every line after the first with pad. Blank lines stay
// empty.
func indent(s, pad string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func escapeMath(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "$", `\$`)
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// validLang reports whether lang can follow a raw fence.
func validLang(lang string) bool {
	if lang == "" {
		return false
	}
	for _, r := range lang {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("+-_#.", r):
		default:
			return false
		}
	}
	return true
}

// DiagramSources returns the diagram sources keyed by virtual path.
func (r Result) DiagramSources() map[string]string {
	m := make(map[string]string, len(r.Diagrams))
	for _, d := range r.Diagrams {
		m[d.Path] = d.Source
	}
	return m
}

// DiagramPaths returns the virtual paths in index order.
func (r Result) DiagramPaths() []string {
	paths := make([]string, 0, len(r.Diagrams))
	for _, d := range r.Diagrams {
		paths = append(paths, d.Path)
	}
	return paths
}
