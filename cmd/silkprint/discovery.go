package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	silkprint "github.com/alnah/go-silkprint"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no markdown input")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// FileToRender pairs a Markdown source with its Typst destination.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// tmThemePath is where the syntax theme is written, next to the markup.
func (f FileToRender) tmThemePath() string {
	return strings.TrimSuffix(f.OutputPath, ".typ") + ".tmTheme"
}

// diagramPath is where the n-th diagram source is written.
func (f FileToRender) diagramPath(n int) string {
	return fmt.Sprintf("%s.mermaid-%d.mmd", strings.TrimSuffix(f.OutputPath, ".typ"), n)
}

// discoverFiles finds the Markdown files under inputPath. Directory walks
// are sorted so batch output is stable.
func discoverFiles(inputPath, output string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	if output == stdoutPath || isTypstFile(output) {
		return nil, fmt.Errorf("%w: a directory input needs an output directory, got %q", ErrUsage, output)
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownFile(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .md files in %s", ErrNoInput, inputPath)
	}
	slices.SortFunc(files, func(a, b FileToRender) int { return strings.Compare(a.InputPath, b.InputPath) })
	return files, nil
}

// resolveOutputPath determines the .typ destination for a Markdown file.
// Files found under baseInputDir keep their relative layout.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".typ"

	switch {
	case output == "":
		return filepath.Join(filepath.Dir(inputPath), base)
	case output == stdoutPath, isTypstFile(output):
		return output
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(output, base)
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func isTypstFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".typ")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > silkprint.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, silkprint.MaxPoolSize)
	}
	return nil
}
