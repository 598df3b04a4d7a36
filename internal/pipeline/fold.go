package pipeline

import (
	"strings"

	"github.com/alnah/go-silkprint/internal/doctree"
)

type marker struct {
	kind    doctree.Kind
	open    bool
	literal string
}

var markers = map[rune]marker{
	'\uE000': {kind: doctree.Highlight, open: true, literal: "=="},
	'\uE001': {kind: doctree.Highlight, literal: "=="},
	'\uE002': {kind: doctree.Superscript, open: true, literal: "^"},
	'\uE003': {kind: doctree.Superscript, literal: "^"},
	'\uE004': {kind: doctree.Subscript, open: true, literal: "~"},
	'\uE005': {kind: doctree.Subscript, literal: "~"},
}

// frame is an open marker waiting for its closer.
type frame struct {
	marker   marker
	children []*doctree.Node
}

// foldMarkers turns placeholder markers inside Text nodes into Highlight,
// Superscript and Subscript containers. A closer matches only the innermost
// open marker; unmatched markers are restored as literal delimiters.
func foldMarkers(nodes []*doctree.Node) []*doctree.Node {
	if !hasMarkers(nodes) {
		return nodes
	}

	stack := []*frame{{}}
	emit := func(n *doctree.Node) {
		top := stack[len(stack)-1]
		top.children = append(top.children, n)
	}

	for _, n := range nodes {
		if n.Kind != doctree.Text {
			emit(n)
			continue
		}
		var text strings.Builder
		flush := func() {
			if text.Len() > 0 {
				emit(doctree.NewText(text.String()))
				text.Reset()
			}
		}
		for _, r := range n.Literal {
			m, ok := markers[r]
			if !ok {
				text.WriteRune(r)
				continue
			}
			flush()
			switch {
			case m.open:
				stack = append(stack, &frame{marker: m})
			case len(stack) > 1 && stack[len(stack)-1].marker.kind == m.kind:
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				emit(doctree.New(m.kind, top.children...))
			default:
				emit(doctree.NewText(m.literal))
			}
		}
		flush()
	}

	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		emit(doctree.NewText(top.marker.literal))
		for _, c := range top.children {
			emit(c)
		}
	}
	return stack[0].children
}

func hasMarkers(nodes []*doctree.Node) bool {
	for _, n := range nodes {
		if n.Kind != doctree.Text {
			continue
		}
		for _, r := range n.Literal {
			if _, ok := markers[r]; ok {
				return true
			}
		}
	}
	return false
}
