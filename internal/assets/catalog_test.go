package assets

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"bright.toml": {Data: []byte(`[meta]
name = "bright"
variant = "light"
description = "A bright theme"
print_safe = true
family = "test"
`)},
		"unnamed.toml": {Data: []byte("[meta]\nvariant = \"dark\"\nextends = \"bright\"\n")},
	}

	got, err := Catalog(NewFSLoader(fsys))
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	want := []ThemeInfo{
		{Name: "bright", Variant: "light", Description: "A bright theme", PrintSafe: true, Family: "test"},
		{Name: "unnamed", Variant: "dark", Extends: "bright"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_Embedded(t *testing.T) {
	t.Parallel()

	infos, err := Catalog(NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	for _, info := range infos {
		if info.Variant != "light" && info.Variant != "dark" {
			t.Errorf("theme %q has variant %q, want light or dark", info.Name, info.Variant)
		}
		if info.Description == "" {
			t.Errorf("theme %q has no description", info.Name)
		}
	}
}
