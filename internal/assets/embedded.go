package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed themes/*.toml
var themes embed.FS

// FSLoader loads themes from the root of an fs.FS.
// Implements ThemeLoader interface.
type FSLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an FSLoader over the built-in theme catalog.
func NewEmbeddedLoader() *FSLoader {
	sub, err := fs.Sub(themes, "themes")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return &FSLoader{fsys: sub}
}

// NewFSLoader creates an FSLoader reading {name}.toml files from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// LoadTheme loads a theme source by name.
func (l *FSLoader) LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := fs.ReadFile(l.fsys, name+themeExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// ThemeNames lists the themes available in the filesystem.
func (l *FSLoader) ThemeNames() ([]string, error) {
	matches, err := fs.Glob(l.fsys, "*"+themeExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(m, themeExt)
		if isInternalTheme(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ ThemeLoader = (*FSLoader)(nil)
