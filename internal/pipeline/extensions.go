package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Node kinds for the syntax goldmark does not cover out of the box.
var (
	KindMathInline      = gast.NewNodeKind("MathInline")
	KindMathBlock       = gast.NewNodeKind("MathBlock")
	KindMissingFootnote = gast.NewNodeKind("MissingFootnote")
	KindAlert           = gast.NewNodeKind("Alert")
)

// MathInline is a $…$ or $$…$$ span inside a paragraph.
type MathInline struct {
	gast.BaseInline
	Value   []byte
	Display bool
}

func (n *MathInline) Kind() gast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// MathBlock is display math between two lines holding only $$.
type MathBlock struct {
	gast.BaseBlock
}

func (n *MathBlock) Kind() gast.NodeKind { return KindMathBlock }

// IsRaw keeps goldmark from parsing inlines inside the block.
func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// MissingFootnote is a [^label] reference with no matching definition.
type MissingFootnote struct {
	gast.BaseInline
	Label []byte
}

func (n *MissingFootnote) Kind() gast.NodeKind { return KindMissingFootnote }

func (n *MissingFootnote) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Label": string(n.Label)}, nil)
}

// Alert is a GitHub style alert blockquote such as > [!NOTE].
type Alert struct {
	gast.BaseBlock
	AlertType string
}

func (n *Alert) Kind() gast.NodeKind { return KindAlert }

func (n *Alert) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"AlertType": n.AlertType}, nil)
}

// ---------------------------------------------------------------------------
// Inline math
// ---------------------------------------------------------------------------

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse accepts $x$ and $$x$$. The opener must not be followed by a space
// and a single-dollar closer must not be preceded by a space or followed by
// a digit, so prices such as "$5 and $6" stay text.
func (p *mathInlineParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	open := 1
	display := len(line) > 1 && line[1] == '$'
	if display {
		open = 2
	}
	if open >= len(line) || util.IsSpace(line[open]) {
		return nil
	}

	for i := open; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
			continue
		case '$':
		default:
			continue
		}
		if display {
			if i+1 < len(line) && line[i+1] == '$' && i > open {
				block.Advance(i + 2)
				return &MathInline{Value: bytes.Clone(line[open:i]), Display: true}
			}
			continue
		}
		if util.IsSpace(line[i-1]) {
			continue
		}
		if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
			continue
		}
		block.Advance(i + 1)
		return &MathInline{Value: bytes.Clone(line[open:i])}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Display math block
// ---------------------------------------------------------------------------

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isMathFence(line[pos:]) {
		return nil, parser.NoChildren
	}
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isMathFence(util.TrimLeftSpace(line)) {
		newline := 1
		if line[len(line)-1] != '\n' {
			newline = 0
		}
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		return parser.Close
	}
	seg := segment
	seg.ForceNewline = true
	node.Lines().Append(seg)
	reader.AdvanceAndSetPadding(segment.Stop-segment.Start-1, segment.Padding)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

func isMathFence(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(line), []byte("$$"))
}

// ---------------------------------------------------------------------------
// Wikilinks
// ---------------------------------------------------------------------------

type wikilinkParser struct{}

func (p *wikilinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse turns [[target]] and [[target|title]] into a link to the heading
// whose generated ID matches target.
func (p *wikilinkParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 5 || line[1] != '[' {
		return nil
	}
	end := bytes.Index(line[2:], []byte("]]"))
	if end <= 0 {
		return nil
	}
	inner := line[2 : 2+end]
	if bytes.ContainsAny(inner, "[]\n") || util.IsBlank(inner) {
		return nil
	}
	target, title, ok := bytes.Cut(inner, []byte("|"))
	if !ok || util.IsBlank(title) {
		title = target
	}

	link := gast.NewLink()
	link.Destination = []byte("#" + Slug(string(target)))
	link.AppendChild(link, gast.NewString(bytes.TrimSpace(bytes.Clone(title))))
	block.Advance(2 + end + 2)
	return link
}

// Slug derives a heading ID the same way goldmark's auto heading IDs do,
// without the uniqueness suffix.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 'a' - 'A')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Undefined footnote references
// ---------------------------------------------------------------------------

// missingFootnoteParser runs after goldmark's footnote parser and claims the
// [^label] references it rejected for lack of a definition.
type missingFootnoteParser struct{}

func (p *missingFootnoteParser) Trigger() []byte {
	return []byte{'['}
}

func (p *missingFootnoteParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 4 || line[1] != '^' {
		return nil
	}
	end := bytes.IndexByte(line[2:], ']')
	if end <= 0 {
		return nil
	}
	label := line[2 : 2+end]
	if bytes.ContainsAny(label, " \t[") {
		return nil
	}
	next := 2 + end + 1
	if next < len(line) && (line[next] == ':' || line[next] == '(') {
		return nil
	}
	block.Advance(next)
	return &MissingFootnote{Label: bytes.Clone(label)}
}

// ---------------------------------------------------------------------------
// GitHub alerts
// ---------------------------------------------------------------------------

var alertMarker = regexp.MustCompile(`(?i)^\s*\[!(note|tip|important|warning|caution)\]\s*$`)

type alertTransformer struct{}

// Transform replaces blockquotes whose first line is an alert marker with
// Alert nodes holding the remaining content.
func (t *alertTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var quotes []*gast.Blockquote
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if q, ok := n.(*gast.Blockquote); ok && entering {
			quotes = append(quotes, q)
		}
		return gast.WalkContinue, nil
	})

	for _, q := range quotes {
		para, ok := q.FirstChild().(*gast.Paragraph)
		if !ok || para.Lines().Len() == 0 {
			continue
		}
		first := para.Lines().At(0)
		m := alertMarker.FindSubmatch(first.Value(source))
		if m == nil {
			continue
		}

		for c := para.FirstChild(); c != nil; {
			next := c.NextSibling()
			txt, isText := c.(*gast.Text)
			if !isText || txt.Segment.Start >= first.Stop {
				break
			}
			para.RemoveChild(para, c)
			c = next
		}
		if para.ChildCount() == 0 {
			q.RemoveChild(q, para)
		}

		alert := &Alert{AlertType: strings.ToLower(string(m[1]))}
		for c := q.FirstChild(); c != nil; {
			next := c.NextSibling()
			alert.AppendChild(alert, c)
			c = next
		}
		q.Parent().ReplaceChild(q.Parent(), q, alert)
	}
}

// silkExtension registers the parsers above with a goldmark instance.
type silkExtension struct{}

func (e *silkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&mathBlockParser{}, 90),
		),
		parser.WithInlineParsers(
			util.Prioritized(&missingFootnoteParser{}, 102),
			util.Prioritized(&wikilinkParser{}, 103),
			util.Prioritized(&mathInlineParser{}, 150),
		),
		parser.WithASTTransformers(
			util.Prioritized(&alertTransformer{}, 100),
		),
	)
}
