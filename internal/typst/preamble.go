package typst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-silkprint/internal/theme"
)

// Document carries the per-document settings the preamble reads besides
// the theme. Zero values defer to the theme.
type Document struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
	Lang     string

	// Paper is one of a4, letter, a5, legal.
	Paper string
	// FontSize overrides the body size, e.g. "12pt".
	FontSize string
	// Numbering is a Typst heading numbering pattern such as "1.1".
	Numbering string

	TOC       bool
	TOCDepth  int
	TitlePage bool
}

// paperNames maps accepted paper sizes to Typst paper names.
var paperNames = map[string]string{
	"a4":     "a4",
	"a5":     "a5",
	"letter": "us-letter",
	"legal":  "us-legal",
}

// PaperName returns the Typst name of a paper size and whether it is known.
func PaperName(paper string) (string, bool) {
	name, ok := paperNames[strings.ToLower(strings.TrimSpace(paper))]
	return name, ok
}

var (
	lengthValue = regexp.MustCompile(`^-?\d+(\.\d+)?(pt|mm|cm|in|em|%)$`)
	hexValue    = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	numbering   = regexp.MustCompile(`^[0-9aAiI.\-)( ]+$`)
)

// Preamble generates the set and show rules that style the emitted markup,
// plus the helpers the emitter calls. Values the theme leaves unset or
// that are malformed are left out so Typst defaults apply.
func Preamble(t *theme.Tokens, d Document) string {
	p := &prelude{}
	p.line("// Generated by silkprint. Theme: %s", t.Meta.Name)
	p.document(d)
	p.page(t, d)
	p.text(t, d)
	p.headings(t, d)
	p.code(t)
	p.blocks(t)
	p.helpers(t)
	if d.TitlePage && t.TitlePage.Enabled && d.Title != "" {
		p.titlePage(t, d)
	}
	if d.TOC {
		p.outline(t, d)
	}
	return p.String()
}

// prelude accumulates preamble lines.
type prelude struct {
	strings.Builder
}

func (p *prelude) line(format string, args ...any) {
	fmt.Fprintf(p, format, args...)
	p.WriteByte('\n')
}

// rule writes "#kind name(args)" with empty arguments dropped. Nothing is
// written when every argument is empty.
func (p *prelude) rule(kind, name string, args ...string) {
	kept := nonEmpty(args...)
	if len(kept) == 0 {
		return
	}
	p.line("#%s %s(%s)", kind, name, strings.Join(kept, ", "))
}

func (p *prelude) set(name string, args ...string) { p.rule("set", name, args...) }

// arg returns "key: value", or "" when value is empty.
func arg(key, value string) string {
	if value == "" {
		return ""
	}
	return key + ": " + value
}

func length(v string) string {
	v = strings.TrimSpace(v)
	if lengthValue.MatchString(v) {
		return v
	}
	return ""
}

func color(v string) string {
	if hexValue.MatchString(v) {
		return `rgb("` + v + `")`
	}
	return ""
}

func str(v string) string {
	if v == "" {
		return ""
	}
	return `"` + EscapeString(v) + `"`
}

func weight(w int) string {
	if w <= 0 {
		return ""
	}
	return strconv.Itoa(w)
}

// fonts renders a font family list with fallbacks.
func fonts(primary string, fallback []string) string {
	var names []string
	for _, f := range append([]string{primary}, fallback...) {
		if strings.TrimSpace(f) != "" {
			names = append(names, str(f))
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// stroke renders "width + color" with either part optional.
func stroke(width, c string) string {
	width, c = length(width), color(c)
	switch {
	case width != "" && c != "":
		return width + " + " + c
	case width != "":
		return width
	}
	return c
}

func (p *prelude) document(d Document) {
	p.set("document", arg("title", str(d.Title)), arg("author", str(d.Author)))
}

func (p *prelude) page(t *theme.Tokens, d Document) {
	paper, ok := PaperName(d.Paper)
	if !ok {
		paper, _ = PaperName(t.Page.Paper)
	}

	var margins []string
	for _, m := range []struct{ side, value string }{
		{"top", t.Page.MarginTop},
		{"bottom", t.Page.MarginBottom},
		{"left", t.Page.MarginLeft},
		{"right", t.Page.MarginRight},
	} {
		if v := length(m.value); v != "" {
			margins = append(margins, m.side+": "+v)
		}
	}
	margin := ""
	if len(margins) > 0 {
		margin = "(" + strings.Join(margins, ", ") + ")"
	}

	columns := ""
	if t.Page.Columns > 1 {
		columns = strconv.Itoa(t.Page.Columns)
	}

	p.set("page",
		arg("paper", str(paper)),
		arg("margin", margin),
		arg("fill", color(t.Page.Background)),
		arg("columns", columns),
	)
	if columns != "" {
		p.set("columns", arg("gutter", length(t.Page.ColumnGap)))
	}
	p.pageNumbers(t.PageNumbers)
}

// pageNumbers places the page counter in the header or footer.
func (p *prelude) pageNumbers(n theme.PageNumbers) {
	if !n.Enabled {
		return
	}
	format := n.Format
	if format == "" {
		format = "1"
	}
	vertical, horizontal, _ := strings.Cut(n.Position, "-")
	if horizontal == "" {
		horizontal = "center"
	}
	slot := "footer"
	if vertical == "top" {
		slot = "header"
	}
	first := 0
	if !n.FirstPage {
		first = 1
	}
	textArgs := strings.Join(nonEmpty(arg("size", length(n.Size)), arg("fill", color(n.Color)), arg("font", str(n.Font))), ", ")
	p.line("#set page(%s: context if here().page() > %d {", slot, first)
	p.line("  align(%s, text(%s)[#counter(page).display(%s)])", orDefault(alignment(horizontal), "center"), textArgs, str(format))
	p.line("})")
}

func nonEmpty(args ...string) []string {
	var kept []string
	for _, a := range args {
		if a != "" {
			kept = append(kept, a)
		}
	}
	return kept
}

func (p *prelude) text(t *theme.Tokens, d Document) {
	size := length(d.FontSize)
	if size == "" {
		size = length(t.FontSizes.Body)
	}
	italic := ""
	if t.Fonts.BodyItalic {
		italic = `"italic"`
	}
	p.set("text",
		arg("font", fonts(t.Fonts.Body, t.Fonts.BodyFallback)),
		arg("size", size),
		arg("weight", weight(t.Fonts.BodyWeight)),
		arg("style", italic),
		arg("fill", color(t.Text.Color)),
		arg("lang", str(d.Lang)),
	)

	justify := ""
	switch t.Text.Justification {
	case "justify":
		justify = "true"
	case "left":
		justify = "false"
	}
	leading := ""
	if t.Text.LineHeight > 1 {
		leading = strconv.FormatFloat(t.Text.LineHeight-1, 'f', 2, 64) + "em"
	}
	p.set("par",
		arg("justify", justify),
		arg("leading", leading),
		arg("spacing", length(t.Text.ParagraphGap)),
		arg("first-line-indent", length(t.Text.FirstLineIndent)),
	)
}

func (p *prelude) headings(t *theme.Tokens, d Document) {
	if d.Numbering != "" && numbering.MatchString(d.Numbering) {
		p.set("heading", arg("numbering", str(d.Numbering)))
	}

	font := t.Headings.Font
	if font == "" {
		font = t.Fonts.Heading
	}
	italic := ""
	if t.Fonts.HeadingItalic {
		italic = `"italic"`
	}
	p.showSet("heading", "text",
		arg("font", fonts(font, t.Fonts.HeadingFallback)),
		arg("weight", weight(t.Fonts.HeadingWeight)),
		arg("style", italic),
		arg("fill", color(t.Headings.Color)),
		arg("tracking", length(t.Headings.LetterSpacing)),
	)

	for level := 1; level <= 6; level++ {
		h := t.Headings.Level(level)
		sel := fmt.Sprintf("heading.where(level: %d)", level)
		p.showSet(sel, "text",
			arg("size", length(t.FontSizes.Level(level))),
			arg("weight", weight(h.Weight)),
			arg("tracking", length(h.LetterSpacing)),
		)
		p.showSet(sel, "block", arg("above", length(h.Above)), arg("below", length(h.Below)))
		if theme.Bool(h.Uppercase) {
			p.line("#show %s: upper", sel)
		}
		if theme.Bool(h.Border) {
			line := stroke("0.75pt", t.HorizontalRule.Color)
			p.line("#show %s: it => block(width: 100%%, inset: (bottom: 0.3em), stroke: (bottom: %s), it)", sel, line)
		}
	}
}

// showSet writes "#show selector: set name(args)".
func (p *prelude) showSet(selector, name string, args ...string) {
	kept := nonEmpty(args...)
	if len(kept) == 0 {
		return
	}
	p.line("#show %s: set %s(%s)", selector, name, strings.Join(kept, ", "))
}

func (p *prelude) code(t *theme.Tokens) {
	ligatures := ""
	if !t.Fonts.MonoLigatures {
		ligatures = "false"
	}
	p.showSet("raw", "text",
		arg("font", fonts(t.Fonts.Mono, t.Fonts.MonoFallback)),
		arg("size", length(t.FontSizes.Code)),
		arg("weight", weight(t.Fonts.MonoWeight)),
		arg("ligatures", ligatures),
	)
	p.set("raw", arg("theme", str(theme.TMThemePath)))

	cb := t.CodeBlock
	inset := strings.Join(nonEmpty(arg("x", length(cb.PaddingHorizontal)), arg("y", length(cb.PaddingVertical))), ", ")
	if inset != "" {
		inset = "(" + inset + ")"
	}
	border := stroke("0.5pt", cb.BorderColor)
	if cb.LeftAccent {
		if accent := stroke("2.5pt", cb.LeftAccentColor); accent != "" {
			border = fmt.Sprintf("(left: %s, rest: %s)", accent, border)
		}
	}
	args := nonEmpty("width: 100%",
		arg("fill", color(cb.Background)),
		arg("inset", inset),
		arg("radius", length(cb.BorderRadius)),
		arg("stroke", border),
	)
	p.line("#show raw.where(block: true): block.with(%s)", strings.Join(args, ", "))

	ci := t.CodeInline
	inline := nonEmpty(
		arg("fill", color(ci.Background)),
		arg("radius", length(ci.BorderRadius)),
		arg("stroke", stroke("0.5pt", ci.BorderColor)),
		"inset: (x: 3pt, y: 0pt)", "outset: (y: 3pt)",
	)
	p.line("#show raw.where(block: false): box.with(%s)", strings.Join(inline, ", "))
}

func (p *prelude) blocks(t *theme.Tokens) {
	p.showSet("link", "text", arg("fill", color(t.Links.Color)))
	if t.Links.Underline {
		p.line("#show link: underline")
	}

	bq := t.Blockquote
	style := ""
	if bq.Italic {
		style = `style: "italic"`
	}
	quoteText := strings.Join(nonEmpty(arg("fill", color(bq.TextColor)), style), ", ")
	quote := nonEmpty("width: 100%",
		arg("fill", color(bq.Background)),
		arg("stroke", wrapSide("left", stroke(bq.BorderWidth, bq.BorderColor))),
		arg("inset", wrapSide("left", length(bq.LeftPadding))),
	)
	p.line("#show quote.where(block: true): it => block(%s, text(%s)[#it.body])", strings.Join(quote, ", "), quoteText)

	hr := t.HorizontalRule
	p.set("line", arg("stroke", stroke(hr.Thickness, hr.Color)), arg("length", length(hr.Width)))

	hl := t.Highlight
	fill := color(hl.Fill)
	if fill != "" && hl.FillOpacity > 0 && hl.FillOpacity < 1 {
		fill += fmt.Sprintf(".transparentize(%d%%)", int((1-hl.FillOpacity)*100+0.5))
	}
	p.set("highlight", arg("fill", fill), arg("radius", length(hl.BorderRadius)))
	if c := color(hl.TextColor); c != "" {
		p.showSet("highlight", "text", arg("fill", c))
	}
	p.set("strike", arg("stroke", color(t.Emphasis.StrikethroughColor)))
	p.showSet("math.equation", "text", arg("fill", color(t.Math.Color)))

	fn := t.Footnotes
	if sep := stroke("0.5pt", fn.SeparatorColor); sep != "" {
		p.set("footnote.entry", fmt.Sprintf("separator: line(length: %s, stroke: %s)", orDefault(length(fn.SeparatorWidth), "30%"), sep))
	}
	p.showSet("footnote.entry", "text", arg("size", length(fn.TextSize)))

	l := t.List
	marker := ""
	if c := color(l.BulletColor); c != "" {
		marker = "text(fill: " + c + ")[•]"
	}
	p.set("list", arg("indent", length(l.Indent)), arg("marker", marker))
	p.set("enum", arg("indent", length(l.Indent)))

	dl := t.DescriptionList
	p.set("terms", arg("indent", length(dl.DefinitionIndent)), arg("spacing", length(dl.ItemSpacing)))
	termFont := ""
	if dl.TermFont != "" {
		termFont = fonts(dl.TermFont, nil)
	}
	if term := nonEmpty(arg("font", termFont), arg("weight", weight(dl.TermWeight)), arg("fill", color(dl.TermColor))); len(term) > 0 {
		p.line("#show terms.item: it => block[#text(%s)[#it.term] \\ #pad(left: %s, it.description)]",
			strings.Join(term, ", "), orDefault(length(dl.DefinitionIndent), "1.5em"))
	}

	im := t.Images
	if c := nonEmpty(arg("size", length(im.CaptionSize)), arg("fill", color(im.CaptionColor)), italicArg(im.CaptionItalic)); len(c) > 0 {
		p.line("#show figure.caption: set text(%s)", strings.Join(c, ", "))
	}
	switch im.CaptionPosition {
	case "above":
		p.set("figure.caption", "position: top")
	case "below":
		p.set("figure.caption", "position: bottom")
	}
}

func italicArg(on bool) string {
	if on {
		return `style: "italic"`
	}
	return ""
}

func wrapSide(side, v string) string {
	if v == "" {
		return ""
	}
	return "(" + side + ": " + v + ")"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// helpers defines silk-table-fill and silk-alert, which emitted markup
// calls.
func (p *prelude) helpers(t *theme.Tokens) {
	tb := t.Table
	header, stripe := orDefault(color(tb.HeaderBackground), "none"), orDefault(color(tb.StripeBackground), "none")
	p.line("#let silk-table-fill(header: true) = (x, y) => if header and y == 0 { %s } else if calc.even(y) { %s } else { none }", header, stripe)

	rows := orDefault(stroke(tb.RowBorderWidth, tb.RowBorderColor), "0.5pt")
	strokeFn := "(x, y) => (bottom: " + rows + ")"
	if tb.VerticalLines {
		strokeFn = "(x, y) => (bottom: " + rows + ", x: " + rows + ")"
	}
	p.set("table",
		"fill: silk-table-fill()",
		"stroke: "+strokeFn,
		arg("inset", length(tb.CellPadding)),
	)
	headerText := nonEmpty(arg("weight", weight(tb.HeaderWeight)), arg("font", fonts(tb.HeaderFont, nil)))
	if len(headerText) == 0 {
		headerText = []string{`weight: "bold"`}
	}
	p.line("#show table.cell.where(y: 0): set text(%s)", strings.Join(headerText, ", "))

	a := t.Alerts
	p.line("#let silk-alert-colors = (")
	for _, kc := range []struct{ kind, c string }{
		{"note", a.NoteColor}, {"tip", a.TipColor}, {"important", a.ImportantColor},
		{"warning", a.WarningColor}, {"caution", a.CautionColor},
	} {
		p.line("  %s: %s,", kc.kind, orDefault(color(kc.c), "luma(120)"))
	}
	p.line(")")
	p.line(`#let silk-alert-labels = (note: "Note", tip: "Tip", important: "Important", warning: "Warning", caution: "Caution")`)
	p.line(`#let silk-alert-icons = (note: "ℹ", tip: "✦", important: "❖", warning: "⚠", caution: "⛔")`)

	opacity := a.BackgroundOpacity
	if opacity <= 0 || opacity >= 1 {
		opacity = 0.08
	}
	title := "none"
	switch {
	case a.ShowIcon && a.ShowLabel:
		title = "[#silk-alert-icons.at(kind) #silk-alert-labels.at(kind)]"
	case a.ShowLabel:
		title = "silk-alert-labels.at(kind)"
	case a.ShowIcon:
		title = "silk-alert-icons.at(kind)"
	}
	p.line("#let silk-alert(kind, body) = {")
	p.line("  let c = silk-alert-colors.at(kind, default: luma(120))")
	p.line("  let title = %s", title)
	p.line("  block(width: 100%%, inset: (left: 10pt, rest: 6pt), fill: c.transparentize(%d%%), stroke: (left: %s + c), {", int((1-opacity)*100+0.5), orDefault(length(a.BorderWidth), "3pt"))
	p.line("    if title != none { text(fill: c, weight: \"bold\", title); linebreak() }")
	p.line("    body")
	p.line("  })")
	p.line("}")
}

func (p *prelude) titlePage(t *theme.Tokens, d Document) {
	tp := t.TitlePage
	font := ""
	if tp.TitleFont != "" {
		font = fonts(tp.TitleFont, nil)
	}
	titleText := nonEmpty(arg("size", orDefault(length(tp.TitleSize), "28pt")), `weight: "bold"`, arg("fill", color(tp.TitleColor)), arg("font", font))

	p.line("#page(header: none, footer: none)[")
	p.line("  #v(1fr)")
	p.line("  #align(center)[")
	p.line("    #text(%s)[%s]", strings.Join(titleText, ", "), EscapeContent(d.Title))
	if d.Subtitle != "" {
		p.line("    #v(0.6em)")
		p.line("    #text(%s)[%s]", strings.Join(nonEmpty("size: 1.3em", arg("fill", color(tp.SubtitleColor))), ", "), EscapeContent(d.Subtitle))
	}
	if d.Author != "" || d.Date != "" {
		p.line("    #v(1.5em)")
		p.line("    #line(%s)", strings.Join(nonEmpty("length: 30%", arg("stroke", stroke("0.75pt", tp.SeparatorColor))), ", "))
		p.line("    #v(1.5em)")
	}
	if d.Author != "" {
		p.line("    #text(%s)[%s]", strings.Join(nonEmpty(arg("fill", color(tp.AuthorColor))), ", "), EscapeContent(d.Author))
	}
	if d.Date != "" {
		p.line("    #v(0.4em)")
		p.line("    #text(%s)[%s]", strings.Join(nonEmpty(arg("fill", color(tp.DateColor))), ", "), EscapeContent(d.Date))
	}
	p.line("  ]")
	p.line("  #v(2fr)")
	p.line("]")
}

func (p *prelude) outline(t *theme.Tokens, d Document) {
	toc := t.TOC
	depth := d.TOCDepth
	if depth <= 0 {
		depth = toc.MaxDepth
	}
	if depth <= 0 {
		depth = 3
	}
	title := "auto"
	if toc.Title != "" {
		title = "[" + EscapeContent(toc.Title) + "]"
	}
	if c := color(toc.EntryColor); c != "" {
		p.showSet("outline.entry", "text", arg("fill", c))
	}
	if s := length(toc.TitleSize); s != "" {
		p.line("#show outline: it => { show heading: set text(size: %s); it }", s)
	}
	p.line("#outline(%s)", strings.Join(nonEmpty(arg("title", title), arg("depth", strconv.Itoa(depth)), arg("indent", orDefault(length(toc.Indent), "auto"))), ", "))
	p.line("#pagebreak(weak: true)")
}
