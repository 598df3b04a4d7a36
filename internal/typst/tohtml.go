package typst

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-silkprint/internal/doctree"
)

// Elements that carry Markdown constructs with no HTML equivalent through a
// raw HTML span.
const (
	mathElement     = "silk-math"
	footnoteElement = "silk-footnote"
)

// toHTML renders a Markdown node as HTML so it can join a raw HTML span.
func toHTML(n *doctree.Node) string {
	var b strings.Builder
	writeHTML(&b, n)
	return b.String()
}

func writeHTML(b *strings.Builder, n *doctree.Node) {
	wrap := func(tag string) {
		b.WriteString("<" + tag + ">")
		writeChildrenHTML(b, n)
		b.WriteString("</" + tag + ">")
	}

	switch n.Kind {
	case doctree.Text:
		b.WriteString(html.EscapeString(n.Literal))
	case doctree.HTMLInline, doctree.HTMLBlock:
		b.WriteString(n.Literal)
	case doctree.SoftBreak:
		b.WriteByte('\n')
	case doctree.LineBreak:
		b.WriteString("<br>")
	case doctree.Emph:
		wrap("em")
	case doctree.Strong:
		wrap("strong")
	case doctree.Strikethrough:
		wrap("del")
	case doctree.Highlight:
		wrap("mark")
	case doctree.Superscript:
		wrap("sup")
	case doctree.Subscript:
		wrap("sub")
	case doctree.Code:
		b.WriteString("<code>" + html.EscapeString(n.Literal) + "</code>")
	case doctree.Math:
		display := ""
		if n.Display {
			display = " display"
		}
		b.WriteString("<" + mathElement + display + ">" + html.EscapeString(n.Literal) + "</" + mathElement + ">")
	case doctree.MathBlock:
		b.WriteString("<p><" + mathElement + " display>" + html.EscapeString(n.Literal) + "</" + mathElement + "></p>")
	case doctree.Link:
		fmt.Fprintf(b, `<a href="%s">`, html.EscapeString(n.URL))
		writeChildrenHTML(b, n)
		b.WriteString("</a>")
	case doctree.Image:
		fmt.Fprintf(b, `<img src="%s" alt="%s">`, html.EscapeString(n.URL), html.EscapeString(n.PlainText()))
	case doctree.FootnoteReference:
		fmt.Fprintf(b, `<%s name="%s"></%s>`, footnoteElement, html.EscapeString(n.Name), footnoteElement)
	case doctree.TaskMarker:
		if n.Checked {
			b.WriteString("☑ ")
		} else {
			b.WriteString("☐ ")
		}
	case doctree.Paragraph:
		wrap("p")
	case doctree.Heading:
		tag := fmt.Sprintf("h%d", min(max(n.Level, 1), 6))
		if n.ID == "" {
			wrap(tag)
			break
		}
		fmt.Fprintf(b, `<%s id="%s">`, tag, html.EscapeString(n.ID))
		writeChildrenHTML(b, n)
		b.WriteString("</" + tag + ">")
	case doctree.ThematicBreak:
		b.WriteString("<hr>")
	case doctree.BlockQuote, doctree.Alert:
		wrap("blockquote")
	case doctree.List:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		wrap(tag)
	case doctree.Item:
		wrap("li")
	case doctree.CodeBlock:
		b.WriteString("<pre><code")
		if lang := n.Language(); lang != "" {
			fmt.Fprintf(b, ` class="language-%s"`, html.EscapeString(lang))
		}
		b.WriteString(">" + html.EscapeString(n.Literal) + "</code></pre>")
	case doctree.Table:
		b.WriteString("<table>")
		for _, row := range n.Children {
			writeRowHTML(b, row, n.Aligns)
		}
		b.WriteString("</table>")
	case doctree.DescriptionList:
		wrap("dl")
	case doctree.DescriptionTerm:
		wrap("dt")
	case doctree.DescriptionDetails:
		wrap("dd")
	default:
		writeChildrenHTML(b, n)
	}
}

func writeChildrenHTML(b *strings.Builder, n *doctree.Node) {
	for _, c := range n.Children {
		writeHTML(b, c)
	}
}

func writeRowHTML(b *strings.Builder, row *doctree.Node, aligns []doctree.Align) {
	cell := "td"
	if row.Header {
		cell = "th"
	}
	b.WriteString("<tr>")
	for i, c := range row.Children {
		attr := ""
		if i < len(aligns) {
			switch aligns[i] {
			case doctree.AlignLeft:
				attr = ` align="left"`
			case doctree.AlignCenter:
				attr = ` align="center"`
			case doctree.AlignRight:
				attr = ` align="right"`
			}
		}
		b.WriteString("<" + cell + attr + ">")
		writeChildrenHTML(b, c)
		b.WriteString("</" + cell + ">")
	}
	b.WriteString("</tr>")
}
