package pipeline

import (
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-silkprint/internal/doctree"
)

// converter turns a goldmark AST into a doctree.
type converter struct {
	source    []byte
	footnotes map[int]string // goldmark footnote index -> label
}

func newConverter(source []byte) *converter {
	return &converter{source: source, footnotes: map[int]string{}}
}

// document converts the goldmark root. Footnote definitions are appended
// after the body in the order goldmark numbered them.
func (c *converter) document(root gast.Node) *doctree.Node {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*east.FootnoteList); ok {
			for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
				f := fn.(*east.Footnote)
				c.footnotes[f.Index] = string(f.Ref)
			}
		}
	}

	doc := doctree.New(doctree.Document)
	var defs []*doctree.Node
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*east.FootnoteList); ok {
			for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
				def := &doctree.Node{Kind: doctree.FootnoteDefinition, Name: string(fn.(*east.Footnote).Ref)}
				def.Children = c.children(fn)
				defs = append(defs, def)
			}
			continue
		}
		doc.Append(c.node(n)...)
	}
	return doc.Append(defs...)
}

// children converts the children of n and post-processes inline runs.
func (c *converter) children(n gast.Node) []*doctree.Node {
	var out []*doctree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.node(child)...)
	}
	out = foldMarkers(out)
	return mergeText(out)
}

// node converts one goldmark node. Most nodes map to exactly one doctree
// node; text carrying a line break maps to two and backlinks to none.
func (c *converter) node(n gast.Node) []*doctree.Node {
	switch n := n.(type) {
	case *gast.Paragraph, *gast.TextBlock:
		return one(doctree.New(doctree.Paragraph, c.children(n)...))

	case *gast.Heading:
		h := &doctree.Node{Kind: doctree.Heading, Level: n.Level, Children: c.children(n)}
		if id, ok := n.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.ID = string(b)
			}
		}
		return one(h)

	case *gast.ThematicBreak:
		return one(doctree.New(doctree.ThematicBreak))

	case *gast.Blockquote:
		return one(doctree.New(doctree.BlockQuote, c.children(n)...))

	case *Alert:
		return one(&doctree.Node{Kind: doctree.Alert, Name: n.AlertType, Children: c.children(n)})

	case *gast.List:
		return one(&doctree.Node{
			Kind:     doctree.List,
			Ordered:  n.IsOrdered(),
			Start:    n.Start,
			Tight:    n.IsTight,
			Children: c.children(n),
		})

	case *gast.ListItem:
		return one(doctree.New(doctree.Item, c.children(n)...))

	case *gast.FencedCodeBlock:
		info := ""
		if n.Info != nil {
			info = string(n.Info.Segment.Value(c.source))
		}
		return one(&doctree.Node{Kind: doctree.CodeBlock, Info: info, Literal: RestorePlaceholders(c.lines(n))})

	case *gast.CodeBlock:
		return one(&doctree.Node{Kind: doctree.CodeBlock, Literal: RestorePlaceholders(c.lines(n))})

	case *gast.HTMLBlock:
		lit := c.lines(n)
		if n.HasClosure() {
			lit += string(n.ClosureLine.Value(c.source))
		}
		return one(&doctree.Node{Kind: doctree.HTMLBlock, Literal: RestorePlaceholders(lit)})

	case *MathBlock:
		return one(&doctree.Node{Kind: doctree.MathBlock, Literal: strings.TrimSpace(RestorePlaceholders(c.lines(n)))})

	case *east.Table:
		t := &doctree.Node{Kind: doctree.Table}
		for _, a := range n.Alignments {
			t.Aligns = append(t.Aligns, alignment(a))
		}
		t.Children = c.children(n)
		return one(t)

	case *east.TableHeader:
		return one(&doctree.Node{Kind: doctree.TableRow, Header: true, Children: c.children(n)})

	case *east.TableRow:
		return one(doctree.New(doctree.TableRow, c.children(n)...))

	case *east.TableCell:
		return one(doctree.New(doctree.TableCell, c.children(n)...))

	case *east.DefinitionList:
		return one(doctree.New(doctree.DescriptionList, c.children(n)...))

	case *east.DefinitionTerm:
		return one(doctree.New(doctree.DescriptionTerm, c.children(n)...))

	case *east.DefinitionDescription:
		return one(doctree.New(doctree.DescriptionDetails, c.children(n)...))

	case *gast.Text:
		return c.text(n)

	case *gast.String:
		return one(doctree.NewText(string(n.Value)))

	case *gast.Emphasis:
		kind := doctree.Emph
		if n.Level >= 2 {
			kind = doctree.Strong
		}
		return one(doctree.New(kind, c.children(n)...))

	case *east.Strikethrough:
		return one(doctree.New(doctree.Strikethrough, c.children(n)...))

	case *gast.CodeSpan:
		return one(&doctree.Node{Kind: doctree.Code, Literal: RestorePlaceholders(c.rawText(n))})

	case *gast.Link:
		return one(&doctree.Node{
			Kind:     doctree.Link,
			URL:      RestorePlaceholders(string(n.Destination)),
			Title:    string(n.Title),
			Children: c.children(n),
		})

	case *gast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		label := string(n.Label(c.source))
		return one(&doctree.Node{
			Kind:     doctree.Link,
			URL:      RestorePlaceholders(url),
			Children: []*doctree.Node{doctree.NewText(RestorePlaceholders(label))},
		})

	case *gast.Image:
		return one(&doctree.Node{
			Kind:     doctree.Image,
			URL:      RestorePlaceholders(string(n.Destination)),
			Title:    string(n.Title),
			Children: c.children(n),
		})

	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return one(&doctree.Node{Kind: doctree.HTMLInline, Literal: RestorePlaceholders(b.String())})

	case *MathInline:
		return one(&doctree.Node{Kind: doctree.Math, Literal: RestorePlaceholders(string(n.Value)), Display: n.Display})

	case *east.FootnoteLink:
		return one(&doctree.Node{Kind: doctree.FootnoteReference, Name: c.footnotes[n.Index]})

	case *MissingFootnote:
		return one(&doctree.Node{Kind: doctree.FootnoteReference, Name: string(n.Label)})

	case *east.FootnoteBacklink:
		return nil

	case *east.TaskCheckBox:
		return one(&doctree.Node{Kind: doctree.TaskMarker, Checked: n.IsChecked})
	}

	// Unknown node types keep their content.
	return c.children(n)
}

func (c *converter) text(n *gast.Text) []*doctree.Node {
	value := n.Segment.Value(c.source)
	if !n.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}

	out := []*doctree.Node{doctree.NewText(string(value))}
	switch {
	case n.HardLineBreak():
		out = append(out, doctree.New(doctree.LineBreak))
	case n.SoftLineBreak():
		out = append(out, doctree.New(doctree.SoftBreak))
	}
	return out
}

// lines joins the raw source lines of a block node.
func (c *converter) lines(n gast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

// rawText flattens a code span. Line endings inside the span become spaces.
func (c *converter) rawText(n gast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gast.Text:
			v := t.Segment.Value(c.source)
			if len(v) > 0 && v[len(v)-1] == '\n' {
				v = append(v[:len(v)-1:len(v)-1], ' ')
			}
			b.Write(v)
		case *gast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

func alignment(a east.Alignment) doctree.Align {
	switch a {
	case east.AlignLeft:
		return doctree.AlignLeft
	case east.AlignCenter:
		return doctree.AlignCenter
	case east.AlignRight:
		return doctree.AlignRight
	default:
		return doctree.AlignNone
	}
}

func one(n *doctree.Node) []*doctree.Node {
	return []*doctree.Node{n}
}

// mergeText joins adjacent Text nodes and substitutes emoji shortcodes in
// the merged literal.
func mergeText(nodes []*doctree.Node) []*doctree.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == doctree.Text && len(out) > 0 && out[len(out)-1].Kind == doctree.Text {
			out[len(out)-1].Literal += n.Literal
			continue
		}
		out = append(out, n)
	}
	for _, n := range out {
		if n.Kind == doctree.Text {
			n.Literal = replaceShortcodes(n.Literal)
		}
	}
	return out
}
