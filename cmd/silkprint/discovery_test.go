package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		want    string
	}{
		{"next to source", filepath.Join("docs", "guide.md"), "", "", filepath.Join("docs", "guide.typ")},
		{"markdown extension", "notes.markdown", "", "", "notes.typ"},
		{"explicit file", "guide.md", filepath.Join("out", "book.typ"), "", filepath.Join("out", "book.typ")},
		{"stdout", "guide.md", "-", "", "-"},
		{"output directory", "guide.md", "out", "", filepath.Join("out", "guide.typ")},
		{
			name:    "keeps relative layout",
			input:   filepath.Join("src", "part", "ch1.md"),
			output:  "out",
			baseDir: "src",
			want:    filepath.Join("out", "part", "ch1.typ"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.output, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.output, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.markdown", filepath.Join("sub", "c.md"), "skip.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(dir, "out")

	got, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	want := []FileToRender{
		{InputPath: filepath.Join(dir, "a.markdown"), OutputPath: filepath.Join(out, "a.typ")},
		{InputPath: filepath.Join(dir, "b.md"), OutputPath: filepath.Join(out, "b.typ")},
		{InputPath: filepath.Join(dir, "sub", "c.md"), OutputPath: filepath.Join(out, "sub", "c.typ")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		output  string
		wantErr error
	}{
		{"missing", filepath.Join(dir, "nope.md"), "", os.ErrNotExist},
		{"wrong extension", text, "", ErrInvalidExtension},
		{"no markdown in directory", empty, "", ErrNoInput},
		{"directory to stdout", dir, "-", ErrUsage},
		{"directory to single file", dir, "book.typ", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.input, tt.output)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestFileToRender_Sidecars(t *testing.T) {
	t.Parallel()

	f := FileToRender{OutputPath: filepath.Join("out", "guide.typ")}
	if got, want := f.tmThemePath(), filepath.Join("out", "guide.tmTheme"); got != want {
		t.Errorf("tmThemePath() = %q, want %q", got, want)
	}
	if got, want := f.diagramPath(2), filepath.Join("out", "guide.mermaid-2.mmd"); got != want {
		t.Errorf("diagramPath(2) = %q, want %q", got, want)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 16} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{-1, 17} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
