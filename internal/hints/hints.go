// Package hints builds the "\n  hint: ..." suffixes appended to user-facing
// errors and warnings.
package hints

import (
	"strings"

	"github.com/alnah/go-silkprint/internal/fileutil"
)

// IsInContainer reports whether /.dockerenv exists. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForThemeNotFound returns hints for unknown theme names.
func ForThemeNotFound(suggestions []string) string {
	hints := make([]string, 0, 2)
	if len(suggestions) > 0 {
		hints = append(hints, "Did you mean: "+strings.Join(suggestions, ", ")+"?")
	}
	hints = append(hints, "run 'silkprint --list-themes' to see all themes")
	return formatHints(hints)
}

// ForFontDir returns hints for a font directory that does not exist.
// Containers rarely ship fonts, so the hint mentions mounting one.
func ForFontDir() string {
	hints := []string{"check the --font-dir path"}
	if IsInContainer() {
		hints = append(hints, "mount a font directory into the container")
	}
	return formatHints(hints)
}

// ForConfigNotFound points at --config and, when it was searched, the user
// config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/silkprint") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory is attached to failures creating the output directory.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPaperSize returns the list of accepted paper sizes.
func ForPaperSize() string {
	return format("Valid sizes: a4, letter, a5, legal")
}

const prefix = "\n  hint: "

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return prefix + hint
}

// formatHints puts several hints on one line, separated by semicolons.
func formatHints(hints []string) string {
	return format(strings.Join(hints, "; "))
}
