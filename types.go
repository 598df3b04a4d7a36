package silkprint

import (
	"fmt"

	"github.com/alnah/go-silkprint/internal/assets"
	"github.com/alnah/go-silkprint/internal/fileutil"
	"github.com/alnah/go-silkprint/internal/hints"
	"github.com/alnah/go-silkprint/internal/theme"
	"github.com/alnah/go-silkprint/internal/typst"
	"github.com/alnah/go-silkprint/internal/warnings"
)

// DefaultTheme is applied when neither the options nor the front matter
// name a theme.
const DefaultTheme = assets.DefaultTheme

// TMThemePath is the virtual path the generated markup reads the syntax
// highlighting theme from.
const TMThemePath = theme.TMThemePath

// Paper size constants.
const (
	PaperA4     = "a4"
	PaperLetter = "letter"
	PaperA5     = "a5"
	PaperLegal  = "legal"
)

// ThemeSource selects a theme by built-in name, file path or inline TOML.
// The zero value selects nothing.
type ThemeSource = theme.Source

// BuiltinTheme selects a theme from the catalog by name.
func BuiltinTheme(name string) ThemeSource { return theme.Builtin(name) }

// ThemeFile selects a theme from a .toml file.
func ThemeFile(path string) ThemeSource { return theme.Path(path) }

// InlineTheme selects a theme given as TOML text.
func InlineTheme(toml string) ThemeSource { return theme.Inline(toml) }

// ParseThemeSource treats values that look like file paths as ThemeFile
// and everything else as BuiltinTheme.
func ParseThemeSource(value string) ThemeSource {
	if fileutil.IsFilePath(value) {
		return ThemeFile(value)
	}
	return BuiltinTheme(value)
}

// Options are per-render settings. They take precedence over the front
// matter, which takes precedence over the theme.
type Options struct {
	// Theme is the explicit theme. When unset the front matter "theme" key
	// is used, then DefaultTheme.
	Theme ThemeSource

	// Paper is one of a4, letter, a5, legal (case-insensitive).
	Paper string

	// TOC forces the table of contents on or off. Nil defers to the
	// front matter.
	TOC *bool

	// TitlePage forces the title page on or off. Nil defers to the theme.
	TitlePage *bool

	// FontDirs are extra font directories for the typesetting stage.
	// Missing directories are reported as warnings and left out of
	// Result.FontDirs.
	FontDirs []string
}

// Validate checks option values.
func (o Options) Validate() error {
	if o.Paper != "" {
		if _, ok := typst.PaperName(o.Paper); !ok {
			return fmt.Errorf("%w: %q%s", ErrInvalidPaperSize, o.Paper, hints.ForPaperSize())
		}
	}
	return nil
}

// Input is the document to render.
type Input struct {
	// Markdown is the document source, optionally starting with front matter.
	Markdown string

	// SourceDir is the directory the document lives in. Relative image
	// paths and a relative front matter theme path resolve against it.
	// Empty leaves paths unchanged.
	SourceDir string
}

// Diagram is a diagram source the emitted markup references by Path.
type Diagram = typst.Diagram

// Warning is a non-fatal diagnostic.
type Warning = warnings.Warning

// WarningKind classifies a Warning.
type WarningKind = warnings.Kind

// Warning kinds.
const (
	WarnContrastRatio           = warnings.ContrastRatio
	WarnFootnoteNotFound        = warnings.FootnoteNotFound
	WarnUnknownLanguage         = warnings.UnknownLanguage
	WarnRemoteImageSkipped      = warnings.RemoteImageSkipped
	WarnUnsupportedHTMLTag      = warnings.UnsupportedHTMLTag
	WarnUnrecognizedFrontMatter = warnings.UnrecognizedFrontMatter
	WarnFontDirNotFound         = warnings.FontDirNotFound
	WarnImageNotFound           = warnings.ImageNotFound
)

// Result is the output of a render.
type Result struct {
	// Markup is the complete Typst document: preamble then body.
	Markup string

	// Theme is the resolved theme name and Chain the themes merged for it,
	// leaf first.
	Theme string
	Chain []string

	// TMTheme is the syntax theme to serve at TMThemePath.
	TMTheme string

	// Diagrams lists diagram sources in document order.
	Diagrams []Diagram

	// FontDirs are the existing directories from Options.FontDirs.
	FontDirs []string

	// Warnings lists diagnostics in the order they were raised.
	Warnings []Warning
}

// ResolvedTheme is a theme with inheritance merged and colors resolved.
type ResolvedTheme = theme.Resolved

// ThemeInfo describes a catalog theme.
type ThemeInfo = assets.ThemeInfo
