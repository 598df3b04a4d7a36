package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	catalog := []string{"academic", "manuscript", "monochrome", "nord", "silk-dark", "silk-light", "silkcircuit-dawn"}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "typo", input: "silk-lite", want: []string{"silk-light"}},
		{name: "substring", input: "circuit", want: []string{"silkcircuit-dawn"}},
		{name: "case insensitive", input: "NORD", want: []string{"nord"}},
		{name: "input contains name", input: "nord-extra", want: []string{"nord"}},
		{name: "nothing close", input: "zzzzzzzzzzzz", want: []string{"academic", "manuscript", "monochrome", "nord", "silk-dark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Suggest(tt.input, catalog)); diff != "" {
				t.Errorf("Suggest(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSuggest_SmallCatalog(t *testing.T) {
	t.Parallel()

	got := Suggest("zzzzzzzzzz", []string{"one"})
	if diff := cmp.Diff([]string{"one"}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}
}
