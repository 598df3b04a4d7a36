package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-silkprint/internal/assets"
	"github.com/alnah/go-silkprint/internal/hints"
)

// Sentinel errors for theme resolution.
var (
	// ErrThemeNotFound indicates a theme name unknown to the loader.
	ErrThemeNotFound = assets.ErrThemeNotFound

	// ErrThemeInvalid indicates a theme source that failed to parse.
	ErrThemeInvalid = errors.New("invalid theme")

	// ErrThemeCycle indicates an extends chain that revisits a theme.
	ErrThemeCycle = errors.New("theme inheritance cycle")

	// ErrThemeInheritanceDepth indicates an extends chain longer than MaxInheritanceDepth.
	ErrThemeInheritanceDepth = errors.New("theme inheritance too deep")

	// ErrThemeRead indicates a theme file that could not be read.
	ErrThemeRead = errors.New("failed to read theme")
)

// NotFoundError reports an unknown theme with close matches from the catalog.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q%s", ErrThemeNotFound, e.Name, hints.ForThemeNotFound(e.Suggestions))
}

func (e *NotFoundError) Unwrap() error { return ErrThemeNotFound }

// InvalidError reports a theme that failed to parse. Line and Column are
// 1-based and zero when the decoder gave no position. Source is the text of
// the offending line.
type InvalidError struct {
	Name    string
	Line    int
	Column  int
	Message string
	Source  string
}

func (e *InvalidError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v %q: %s", ErrThemeInvalid, e.Name, e.Message)
	}
	msg := fmt.Sprintf("%v %q at line %d, column %d: %s", ErrThemeInvalid, e.Name, e.Line, e.Column, e.Message)
	if strings.TrimSpace(e.Source) != "" {
		msg += fmt.Sprintf("\n  %d | %s", e.Line, e.Source)
	}
	return msg
}

func (e *InvalidError) Unwrap() error { return ErrThemeInvalid }

// CycleError reports an extends chain that loops. Chain ends with the theme
// that was reached twice.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrThemeCycle, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrThemeCycle }

// DepthError reports an extends chain longer than Max.
type DepthError struct {
	Chain []string
	Max   int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v: %s (max %d)", ErrThemeInheritanceDepth, strings.Join(e.Chain, " -> "), e.Max)
}

func (e *DepthError) Unwrap() error { return ErrThemeInheritanceDepth }
