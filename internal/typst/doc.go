// Package typst turns a doctree into Typst markup:
//   - Emit walks the document in two passes, footnotes first, and returns
//     the markup plus the diagram sources it replaced by image references
//   - HTMLBlock and HTMLInline convert raw HTML fragments
//   - Preamble generates the set and show rules for a resolved theme
//
// Nothing here fails on document content. Problems degrade to placeholder
// output and a warning.
package typst
