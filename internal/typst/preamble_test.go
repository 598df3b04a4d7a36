package typst

import (
	"strings"
	"testing"

	"github.com/alnah/go-silkprint/internal/assets"
	"github.com/alnah/go-silkprint/internal/theme"
	"github.com/alnah/go-silkprint/internal/warnings"
)

func loadTokens(t *testing.T, name string) *theme.Tokens {
	t.Helper()
	r, err := theme.NewEngine(assets.NewEmbeddedLoader()).Load(theme.Builtin(name), warnings.New())
	if err != nil {
		t.Fatalf("Load(%q) error = %v", name, err)
	}
	return &r.Tokens
}

func TestPreamble(t *testing.T) {
	t.Parallel()

	tokens := loadTokens(t, "silk-light")
	got := Preamble(tokens, Document{Title: `A "quoted" title`, Author: "Ada", Lang: "en"})

	for _, want := range []string{
		"// Generated by silkprint. Theme: silk-light",
		`#set document(title: "A \"quoted\" title", author: "Ada")`,
		`#set page(paper: "a4", margin: (top: 25mm, bottom: 25mm, left: 22mm, right: 22mm), fill: rgb("#ffffff"))`,
		`font: ("Source Serif 4", "Georgia", "Times New Roman")`,
		`size: 11pt`,
		`lang: "en"`,
		`#set par(justify: true, leading: 0.55em, spacing: 0.9em, first-line-indent: 0pt)`,
		`#show heading.where(level: 1): set text(size: 24pt, weight: 800)`,
		`#show heading.where(level: 6): upper`,
		`#set raw(theme: "` + theme.TMThemePath + `")`,
		`#show link: set text(fill: rgb("#0550ae"))`,
		"#let silk-table-fill(header: true)",
		"#let silk-alert(kind, body)",
		"counter(page).display(\"1\")",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Preamble() missing %q\n%s", want, got)
		}
	}
	for _, absent := range []string{"#outline(", "#page(header: none"} {
		if strings.Contains(got, absent) {
			t.Errorf("Preamble() contains %q without being asked", absent)
		}
	}
}

func TestPreamble_DocumentOverrides(t *testing.T) {
	t.Parallel()

	tokens := loadTokens(t, "silk-light")
	got := Preamble(tokens, Document{
		Title:     "Report",
		Subtitle:  "Q3",
		Author:    "Ada",
		Date:      "2024-01-15",
		Paper:     "letter",
		FontSize:  "12pt",
		Numbering: "1.1",
		TOC:       true,
		TOCDepth:  2,
		TitlePage: true,
	})

	for _, want := range []string{
		`paper: "us-letter"`,
		"size: 12pt",
		`#set heading(numbering: "1.1")`,
		"#page(header: none, footer: none)[",
		"[Report]",
		"[Q3]",
		"[2024-01-15]",
		"#outline(title: [Contents], depth: 2, indent: 1em)",
		"#pagebreak(weak: true)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Preamble() missing %q\n%s", want, got)
		}
	}
}

func TestPreamble_SkipsMalformedValues(t *testing.T) {
	t.Parallel()

	tokens := &theme.Tokens{}
	tokens.Meta.Name = "broken"
	tokens.Page.MarginTop = "lots"
	tokens.Text.Color = "not-a-color"
	tokens.FontSizes.Body = "11"

	got := Preamble(tokens, Document{Numbering: "#evil()"})
	for _, absent := range []string{"lots", "not-a-color", "size: 11,", "#evil", "#set page("} {
		if strings.Contains(got, absent) {
			t.Errorf("Preamble() contains %q\n%s", absent, got)
		}
	}
	if !strings.Contains(got, "#let silk-alert(kind, body)") {
		t.Error("Preamble() must always define the alert helper")
	}
}

func TestPaperName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		paper  string
		want   string
		wantOK bool
	}{
		{"a4", "a4", true},
		{"A5", "a5", true},
		{"letter", "us-letter", true},
		{" legal ", "us-legal", true},
		{"tabloid", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.paper, func(t *testing.T) {
			t.Parallel()

			got, ok := PaperName(tt.paper)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PaperName(%q) = (%q, %v), want (%q, %v)", tt.paper, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
