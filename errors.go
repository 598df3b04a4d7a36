package silkprint

import (
	"errors"

	"github.com/alnah/go-silkprint/internal/config"
	"github.com/alnah/go-silkprint/internal/frontmatter"
	"github.com/alnah/go-silkprint/internal/pipeline"
	"github.com/alnah/go-silkprint/internal/theme"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidPaperSize = errors.New("invalid paper size")
	ErrInvalidThemeDir  = errors.New("invalid theme directory")

	// Front matter errors.
	ErrFrontMatter = frontmatter.ErrFrontMatter

	// Markdown parsing errors.
	ErrParse = pipeline.ErrParse

	// Theme resolution errors. Each theme error returned by Render also
	// matches one of these with errors.Is; use errors.As with the typed
	// errors below for details.
	ErrThemeNotFound         = theme.ErrThemeNotFound
	ErrThemeInvalid          = theme.ErrThemeInvalid
	ErrThemeCycle            = theme.ErrThemeCycle
	ErrThemeInheritanceDepth = theme.ErrThemeInheritanceDepth
	ErrThemeRead             = theme.ErrThemeRead

	// Project config errors.
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrConfigInvalid  = config.ErrConfigInvalid
)

// Typed theme errors.
type (
	ThemeNotFoundError = theme.NotFoundError
	ThemeInvalidError  = theme.InvalidError
	ThemeCycleError    = theme.CycleError
	ThemeDepthError    = theme.DepthError
)
