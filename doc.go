// Package silkprint converts Markdown documents to Typst markup styled by
// TOML themes.
//
// # Quick Start
//
// Create a converter and render:
//
//	conv, err := silkprint.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Render(ctx, silkprint.Input{
//	    Markdown: "# Hello\n\nWorld",
//	}, silkprint.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.typ", []byte(result.Markup), 0o644)
//
// The markup reads its syntax highlighting theme from TMThemePath; serve
// result.TMTheme at that path to the typesetting compiler. Diagram sources
// in result.Diagrams are referenced by their Path and rendered separately.
//
// # Conversion Pipeline
//
//  1. Front matter extraction (title, author, date, theme, paper, toc, ...)
//  2. Theme resolution: extends chain, merge, palette, contrast audit,
//     syntax theme generation
//  3. Markdown preprocessing (==highlight==, ^super^, ~sub~, emoji)
//  4. Parsing via goldmark (GFM, footnotes, definition lists, math, alerts)
//  5. Emission: footnotes first, then the document body; raw HTML is
//     converted through its own sub-converter
//  6. Preamble generation from the resolved theme
//
// # Themes
//
// A theme is chosen by Options.Theme, then the front matter "theme" key,
// then DefaultTheme. Themes may extend one another up to five levels.
// Use ListThemes for the built-in catalog and WithThemeDir to add a
// directory of custom themes.
//
// # Warnings
//
// Problems that do not prevent rendering, such as unknown code languages,
// remote images, undefined footnotes or low contrast colors, are returned
// in result.Warnings instead of failing the render.
package silkprint
