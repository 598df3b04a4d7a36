package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name      string
		themeName string
		wantErr   error
	}{
		{name: "default theme", themeName: DefaultTheme, wantErr: nil},
		{name: "base theme", themeName: "silk-light", wantErr: nil},
		{name: "syntax fallback is loadable", themeName: BaseSyntaxDark, wantErr: nil},
		{name: "unknown theme", themeName: "silk-lite", wantErr: ErrThemeNotFound},
		{name: "traversal rejected", themeName: "../go", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := loader.LoadTheme(tt.themeName)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadTheme(%q) error = %v, want %v", tt.themeName, err, tt.wantErr)
			}
			if tt.wantErr == nil && !strings.Contains(src, "[") {
				t.Errorf("LoadTheme(%q) returned content without TOML tables", tt.themeName)
			}
		})
	}
}

func TestEmbeddedLoader_ThemeNames(t *testing.T) {
	t.Parallel()

	names, err := NewEmbeddedLoader().ThemeNames()
	if err != nil {
		t.Fatalf("ThemeNames() error = %v", err)
	}

	for _, want := range []string{"silk-light", "silk-dark", "manuscript", "monochrome", DefaultTheme} {
		if !slices.Contains(names, want) {
			t.Errorf("ThemeNames() missing %q in %v", want, names)
		}
	}
	for _, n := range names {
		if strings.HasPrefix(n, "_") {
			t.Errorf("ThemeNames() lists internal theme %q", n)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("ThemeNames() not sorted: %v", names)
	}
}

func TestFSLoader(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"alpha.toml":   {Data: []byte("[meta]\nname = \"alpha\"\n")},
		"_hidden.toml": {Data: []byte("[meta]\n")},
		"notes.txt":    {Data: []byte("ignored")},
	}
	loader := NewFSLoader(fsys)

	src, err := loader.LoadTheme("alpha")
	if err != nil {
		t.Fatalf("LoadTheme(alpha) error = %v", err)
	}
	if !strings.Contains(src, `name = "alpha"`) {
		t.Errorf("LoadTheme(alpha) = %q", src)
	}

	if _, err := loader.LoadTheme("beta"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(beta) error = %v, want ErrThemeNotFound", err)
	}

	names, err := loader.ThemeNames()
	if err != nil {
		t.Fatalf("ThemeNames() error = %v", err)
	}
	if !slices.Equal(names, []string{"alpha"}) {
		t.Errorf("ThemeNames() = %v, want [alpha]", names)
	}
}

func TestPackageLevelLoadTheme(t *testing.T) {
	t.Parallel()

	if _, err := LoadTheme("silk-light"); err != nil {
		t.Errorf("LoadTheme(silk-light) error = %v", err)
	}
	names, err := ThemeNames()
	if err != nil || len(names) == 0 {
		t.Errorf("ThemeNames() = %v, %v; want non-empty list", names, err)
	}
}
