// Package doctree defines the parsed document tree handed from the Markdown
// parser to the Typst emitter. It is a plain tree of Nodes with typed
// attributes, independent of any parser library.
package doctree

import (
	"fmt"
	"strings"
)

// Kind identifies a node type.
type Kind int

// Block kinds.
const (
	Document Kind = iota
	Paragraph
	Heading
	ThematicBreak
	BlockQuote
	Alert
	List
	Item
	CodeBlock
	HTMLBlock
	MathBlock
	Table
	TableRow
	TableCell
	FootnoteDefinition
	DescriptionList
	DescriptionTerm
	DescriptionDetails
)

// Inline kinds.
const (
	Text Kind = iota + 100
	SoftBreak
	LineBreak
	Emph
	Strong
	Strikethrough
	Highlight
	Superscript
	Subscript
	Link
	Image
	Code
	HTMLInline
	Math
	FootnoteReference
	TaskMarker
)

var kindNames = map[Kind]string{
	Document: "Document", Paragraph: "Paragraph", Heading: "Heading",
	ThematicBreak: "ThematicBreak", BlockQuote: "BlockQuote", Alert: "Alert",
	List: "List", Item: "Item", CodeBlock: "CodeBlock", HTMLBlock: "HTMLBlock",
	MathBlock: "MathBlock", Table: "Table", TableRow: "TableRow", TableCell: "TableCell",
	FootnoteDefinition: "FootnoteDefinition", DescriptionList: "DescriptionList",
	DescriptionTerm: "DescriptionTerm", DescriptionDetails: "DescriptionDetails",
	Text: "Text", SoftBreak: "SoftBreak", LineBreak: "LineBreak", Emph: "Emph",
	Strong: "Strong", Strikethrough: "Strikethrough", Highlight: "Highlight",
	Superscript: "Superscript", Subscript: "Subscript", Link: "Link", Image: "Image",
	Code: "Code", HTMLInline: "HTMLInline", Math: "Math",
	FootnoteReference: "FootnoteReference", TaskMarker: "TaskMarker",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsInline reports whether the kind is an inline node.
func (k Kind) IsInline() bool { return k >= Text }

// Align is a table column alignment.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Node is a document tree node. Which attribute fields are meaningful
// depends on Kind:
//
//	Heading            Level, ID
//	List               Ordered, Start, Tight
//	CodeBlock          Info, Literal
//	HTMLBlock          Literal
//	MathBlock, Math    Literal, Display (inline only)
//	Text, Code         Literal
//	HTMLInline         Literal
//	Link, Image        URL, Title
//	Table              Aligns
//	TableRow           Header
//	FootnoteDefinition Name
//	FootnoteReference  Name
//	Alert              Name (note, tip, important, warning, caution)
//	TaskMarker         Checked
type Node struct {
	Kind     Kind
	Children []*Node

	Literal string
	Level   int
	ID      string
	Ordered bool
	Start   int
	Tight   bool
	Info    string
	URL     string
	Title   string
	Name    string
	Aligns  []Align
	Header  bool
	Display bool
	Checked bool
}

// New returns a node of the given kind with children.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewText returns a Text node.
func NewText(s string) *Node {
	return &Node{Kind: Text, Literal: s}
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Language returns the first word of a code block's info string.
func (n *Node) Language() string {
	lang, _, _ := strings.Cut(strings.TrimSpace(n.Info), " ")
	return lang
}

// PlainText concatenates the literal text of n and its descendants,
// rendering breaks as spaces.
func (n *Node) PlainText() string {
	var b strings.Builder
	n.plainText(&b)
	return b.String()
}

func (n *Node) plainText(b *strings.Builder) {
	switch n.Kind {
	case Text, Code, Math:
		b.WriteString(n.Literal)
	case SoftBreak, LineBreak:
		b.WriteByte(' ')
	}
	for _, c := range n.Children {
		c.plainText(b)
	}
}

// Walk visits n and its descendants depth-first in document order. When fn
// returns false the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Count returns how many nodes of each kind the tree holds.
func Count(n *Node) map[Kind]int {
	counts := map[Kind]int{}
	Walk(n, func(x *Node) bool {
		counts[x.Kind]++
		return true
	})
	return counts
}

// String renders n as a compact one-line expression such as
// Paragraph(Text("a") Strong(Text("b"))). It is meant for tests and debug
// logging.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	b.WriteString(n.Kind.String())
	switch n.Kind {
	case Text, Code, Math, HTMLInline, HTMLBlock, CodeBlock, MathBlock:
		fmt.Fprintf(b, "%q", n.Literal)
	case Heading:
		fmt.Fprintf(b, "[%d]", n.Level)
	case Link, Image:
		fmt.Fprintf(b, "[%s]", n.URL)
	case FootnoteReference, FootnoteDefinition, Alert:
		fmt.Fprintf(b, "[%s]", n.Name)
	case List:
		if n.Tight {
			b.WriteString("[tight]")
		}
	case TableRow:
		if n.Header {
			b.WriteString("[header]")
		}
	}
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.format(b)
	}
	b.WriteByte(')')
}
