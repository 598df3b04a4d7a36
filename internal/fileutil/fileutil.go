// Package fileutil holds the small file system helpers shared by the
// library and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned by WriteAtomic for an empty destination.
var ErrEmptyPath = errors.New("path cannot be empty")

// WriteAtomic replaces path with content through a temporary sibling file
// renamed into place, so readers see either the old or the new content.
func WriteAtomic(path string, content []byte, perm os.FileMode) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".silkprint-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path names a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) or ending in .toml is treated as a path.
//
// Examples:
//   - "silk-light" -> false (name)
//   - "./custom.toml" -> true (relative path)
//   - "custom.toml" -> true (file in working directory)
//   - "/absolute/theme.toml" -> true (absolute)
//   - "C:\themes\mine.toml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.EqualFold(filepath.Ext(s), ".toml")
}

// IsURL reports an http or https reference.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
