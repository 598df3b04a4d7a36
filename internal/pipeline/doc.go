// Package pipeline implements the Markdown front half of the conversion:
//   - Markdown preprocessing (line normalization, highlight, superscript
//     and subscript syntax)
//   - Markdown parsing via goldmark with math, wikilink and alert extensions
//   - Conversion of the goldmark AST into a doctree.Node tree
//   - Image path resolution against the document directory
//
// Typst emission is handled separately by internal/typst, which consumes
// only the doctree. This separation keeps goldmark types out of the emitter.
package pipeline
