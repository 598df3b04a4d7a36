package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-silkprint/internal/doctree"
)

// ErrParse indicates the Markdown source could not be parsed.
var ErrParse = errors.New("markdown parsing failed")

// Parser abstracts Markdown to document tree conversion.
type Parser interface {
	Parse(ctx context.Context, content string) (*doctree.Node, error)
}

// GoldmarkParser parses Markdown with goldmark (pure Go).
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a GoldmarkParser with GFM, footnotes,
// definition lists, math, wikilinks and GitHub alerts.
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,            // Tables, strikethrough, autolinks, task lists
			extension.Footnote,       // [^1] footnotes
			extension.DefinitionList, // Term / : details
			&silkExtension{},         // Math, wikilinks, alerts, undefined footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Heading labels for #anchor links and the outline
		),
	)
	return &GoldmarkParser{md: md}
}

// Parse preprocesses content and converts it to a document tree.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (p *GoldmarkParser) Parse(ctx context.Context, content string) (*doctree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *doctree.Node
		err error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, r)}
			}
		}()
		source := []byte(Preprocess(ctx, content))
		root := p.md.Parser().Parse(text.NewReader(source))
		done <- result{doc: newConverter(source).document(root)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}
