package main

import (
	"errors"
	"os"

	silkprint "github.com/alnah/go-silkprint"
)

// Exit codes for the silkprint CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme or front matter
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, silkprint.ErrThemeRead) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, silkprint.ErrConfigNotFound) ||
		errors.Is(err, silkprint.ErrConfigParse) ||
		errors.Is(err, silkprint.ErrConfigInvalid) ||
		errors.Is(err, silkprint.ErrEmptyMarkdown) ||
		errors.Is(err, silkprint.ErrInvalidPaperSize) ||
		errors.Is(err, silkprint.ErrInvalidThemeDir) ||
		errors.Is(err, silkprint.ErrFrontMatter) ||
		errors.Is(err, silkprint.ErrThemeNotFound) ||
		errors.Is(err, silkprint.ErrThemeInvalid) ||
		errors.Is(err, silkprint.ErrThemeCycle) ||
		errors.Is(err, silkprint.ErrThemeInheritanceDepth) {
		return ExitUsage
	}

	return ExitGeneral
}
