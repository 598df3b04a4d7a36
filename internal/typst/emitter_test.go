package typst

// Notes:
// - Documents are parsed with the real goldmark pipeline so the expected
//   markup covers the tree shapes the parser actually produces
// - Expected strings are golden output: the emitter is deterministic, so
//   any change in markup shows up as a diff here

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-silkprint/internal/doctree"
	"github.com/alnah/go-silkprint/internal/pipeline"
	"github.com/alnah/go-silkprint/internal/warnings"
)

func parseDoc(t *testing.T, src string) *doctree.Node {
	t.Helper()
	doc, err := pipeline.NewGoldmarkParser().Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func emit(t *testing.T, src string, opts Options) (Result, *warnings.Collector) {
	t.Helper()
	w := warnings.New()
	return Emit(parseDoc(t, src), opts, w), w
}

// ---------------------------------------------------------------------------
// TestEmit - Golden Output
// ---------------------------------------------------------------------------

func TestEmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading with label",
			input: "# Hello World",
			want:  "= Hello World <hello-world>\n",
		},
		{
			name:  "paragraphs",
			input: "one\n\ntwo",
			want:  "one\n\ntwo\n",
		},
		{
			name:  "soft and hard breaks",
			input: "a\nb  \nc",
			want:  "a b\\\nc\n",
		},
		{
			name:  "tight list",
			input: "- a\n- b",
			want:  "- a\n- b\n",
		},
		{
			name:  "loose list",
			input: "- a\n\n- b",
			want:  "- a\n\n- b\n",
		},
		{
			name:  "nested list",
			input: "- a\n  - b",
			want:  "- a\n  - b\n",
		},
		{
			name:  "ordered list from one",
			input: "1. x\n2. y",
			want:  "+ x\n+ y\n",
		},
		{
			name:  "ordered list from three",
			input: "3. x\n4. y",
			want:  "3. x\n4. y\n",
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] todo",
			want:  "- ☑ done\n- ☐ todo\n",
		},
		{
			name:  "emphasis variants",
			input: "*a* **b** ~~c~~ ==d== x^2^ H~2~O",
			want:  "#emph[a] #strong[b] #strike[c] #highlight[d] x#super[2] H#sub[2]O\n",
		},
		{
			name:  "expression followed by parenthesis",
			input: "*a*(b)",
			want:  "#emph[a];(b)\n",
		},
		{
			name:  "escaped characters",
			input: "Use #tag and $5 and a_b",
			want:  "Use \\#tag and \\$5 and a\\_b\n",
		},
		{
			name:  "list marker at line start",
			input: "\\- not a list",
			want:  "\\- not a list\n",
		},
		{
			name:  "inline code",
			input: "run `go test`",
			want:  "run `go test`\n",
		},
		{
			name:  "inline code with backtick",
			input: "``a`b``",
			want:  "#raw(\"a`b\")\n",
		},
		{
			name:  "fenced code",
			input: "```go\nx := 1\n```",
			want:  "```go\nx := 1\n```\n",
		},
		{
			name:  "fence longer than body run",
			input: "````go\n```\nx\n```\n````",
			want:  "````go\n```\nx\n```\n````\n",
		},
		{
			name:  "inline math",
			input: "$x^2$ costs $5",
			want:  "$x^2$ costs \\$5\n",
		},
		{
			name:  "display math",
			input: "$$\nE = mc^2\n$$",
			want:  "$ E = mc^2 $\n",
		},
		{
			name:  "thematic break",
			input: "a\n\n---\n\nb",
			want:  "a\n\n#line(length: 100%)\n\nb\n",
		},
		{
			name:  "blockquote",
			input: "> quoted",
			want:  "#quote(block: true)[\nquoted\n]\n",
		},
		{
			name:  "alert",
			input: "> [!WARNING]\n> Be careful.",
			want:  "#silk-alert(\"warning\")[\nBe careful.\n]\n",
		},
		{
			name:  "link",
			input: "[site](https://example.com)",
			want:  "#link(\"https://example.com\")[site]\n",
		},
		{
			name:  "wikilink to heading",
			input: "[[Setup]]",
			want:  "#link(<setup>)[Setup]\n",
		},
		{
			name:  "standalone image",
			input: "![Logo](img/a.png)",
			want:  "#figure(image(\"img/a.png\", alt: \"Logo\"), caption: [Logo])\n",
		},
		{
			name:  "inline image",
			input: "see ![x](a.png) here",
			want:  "see #image(\"a.png\", alt: \"x\") here\n",
		},
		{
			name:  "description list",
			input: "Term\n: Details",
			want:  "/ Term: Details\n",
		},
		{
			name:  "table with header and alignment",
			input: "| A | B |\n|:--|--:|\n| 1 | 2 |",
			want:  "#table(\n  columns: 2,\n  align: (left, right),\n  table.header([A], [B]),\n  [1], [2],\n)\n",
		},
		{
			name:  "table with empty header",
			input: "|  |  |\n|---|---|\n| a | b |",
			want: "#[\n#show table.cell.where(y: 0): set text(weight: \"regular\")\n" +
				"#table(\n  columns: 2,\n  fill: silk-table-fill(header: false),\n  [a], [b],\n)\n]\n",
		},
		{
			name:  "emoji",
			input: ":rocket: go",
			want:  "🚀 go\n",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := emit(t, tt.input, Options{})
			if diff := cmp.Diff(tt.want, got.Markup); diff != "" {
				t.Errorf("Emit(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestEmit_Deterministic(t *testing.T) {
	t.Parallel()

	src := "# T\n\nText[^a] and[^b].\n\n```mermaid\ngraph TD\n```\n\n[^b]: Second.\n[^a]: First.\n"
	first, _ := emit(t, src, Options{})
	for range 5 {
		again, _ := emit(t, src, Options{})
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Emit() not deterministic (-first +again):\n%s", diff)
		}
	}
}

// ---------------------------------------------------------------------------
// TestEmit_Footnotes - Two-Pass Footnote Handling
// ---------------------------------------------------------------------------

func TestEmit_Footnotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		want         string
		wantWarnings int
	}{
		{
			name:  "definition after reference",
			input: "Text[^n].\n\n[^n]: Note body.",
			want:  "Text#footnote[Note body.] <fn-n>.\n",
		},
		{
			name:  "repeated reference",
			input: "a[^n] b[^n]\n\n[^n]: x",
			want:  "a#footnote[x] <fn-n> b#footnote(<fn-n>)\n",
		},
		{
			name:         "undefined reference",
			input:        "See [^x].",
			want:         "See #super[x];.\n",
			wantWarnings: 1,
		},
		{
			name:  "definition removed from body",
			input: "[^a]: Orphan.\n\nBody.",
			want:  "Body.\n",
		},
		{
			name:  "first reference inside another footnote",
			input: "See[^b] and[^a].\n\n[^a]: A cites[^b].\n\n[^b]: Bee.\n",
			want:  "See#footnote[Bee.] <fn-b> and#footnote[A cites#footnote(<fn-b>);.] <fn-a>.\n",
		},
		{
			name:  "body inlined where a footnote first cites it",
			input: "See[^a].\n\n[^a]: A cites[^b].\n\n[^b]: Bee.\n",
			want:  "See#footnote[A cites#footnote[Bee.] <fn-b>.] <fn-a>.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, w := emit(t, tt.input, Options{})
			if diff := cmp.Diff(tt.want, got.Markup); diff != "" {
				t.Errorf("Emit(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if w.Len() != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", w.Messages(), tt.wantWarnings)
			}
			for _, item := range w.Items() {
				if item.Kind != warnings.FootnoteNotFound {
					t.Errorf("warning kind = %v, want %v", item.Kind, warnings.FootnoteNotFound)
				}
			}
		})
	}
}

func TestEmit_SelfReferencingFootnote(t *testing.T) {
	t.Parallel()

	got, w := emit(t, "x[^a]\n\n[^a]: see [^a]", Options{})
	if !strings.Contains(got.Markup, "#footnote[see #super[a]] <fn-a>") {
		t.Errorf("Markup = %q, want self reference to fall back", got.Markup)
	}
	if w.Len() != 1 {
		t.Errorf("warnings = %v, want 1", w.Messages())
	}
}

func TestEmit_UnreferencedFootnoteNotRendered(t *testing.T) {
	t.Parallel()

	src := "Body.\n\n[^a]: Orphan cites [^missing].\n\n    ```mermaid\n    graph TD\n    ```\n"
	got, w := emit(t, src, Options{})
	if diff := cmp.Diff("Body.\n", got.Markup); diff != "" {
		t.Errorf("Markup mismatch (-want +got):\n%s", diff)
	}
	if len(got.Diagrams) != 0 {
		t.Errorf("Diagrams = %v, want none", got.Diagrams)
	}
	if w.Len() != 0 {
		t.Errorf("warnings = %v, want none", w.Messages())
	}
}

// ---------------------------------------------------------------------------
// TestEmit_Diagrams - Diagram Collection
// ---------------------------------------------------------------------------

func TestEmit_Diagrams(t *testing.T) {
	t.Parallel()

	src := "```mermaid\ngraph TD\n```\n\ntext\n\n```Mermaid\nflowchart LR\n```"
	got, w := emit(t, src, Options{})

	wantMarkup := "#figure(image(\"/__mermaid_0.svg\"))\n\ntext\n\n#figure(image(\"/__mermaid_1.svg\"))\n"
	if diff := cmp.Diff(wantMarkup, got.Markup); diff != "" {
		t.Errorf("Markup mismatch (-want +got):\n%s", diff)
	}
	wantDiagrams := []Diagram{
		{Index: 0, Path: "/__mermaid_0.svg", Source: "graph TD\n"},
		{Index: 1, Path: "/__mermaid_1.svg", Source: "flowchart LR\n"},
	}
	if diff := cmp.Diff(wantDiagrams, got.Diagrams); diff != "" {
		t.Errorf("Diagrams mismatch (-want +got):\n%s", diff)
	}
	if got.DiagramSources()["/__mermaid_1.svg"] != "flowchart LR\n" {
		t.Errorf("DiagramSources() = %v", got.DiagramSources())
	}
	if diff := cmp.Diff([]string{"/__mermaid_0.svg", "/__mermaid_1.svg"}, got.DiagramPaths()); diff != "" {
		t.Errorf("DiagramPaths() mismatch (-want +got):\n%s", diff)
	}
	if w.Len() != 0 {
		t.Errorf("warnings = %v, want none", w.Messages())
	}
}

// ---------------------------------------------------------------------------
// TestEmit_Warnings - Degraded Output
// ---------------------------------------------------------------------------

func TestEmit_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantKind warnings.Kind
		contains string
	}{
		{
			name:     "unknown language",
			input:    "```nosuchlang\nx\n```",
			wantKind: warnings.UnknownLanguage,
			contains: "```nosuchlang\nx\n```",
		},
		{
			name:     "remote image",
			input:    "see ![badge](https://example.com/b.svg) here",
			wantKind: warnings.RemoteImageSkipped,
			contains: "see badge here",
		},
		{
			name:     "unsupported html tag",
			input:    "<marquee>scroll</marquee>",
			wantKind: warnings.UnsupportedHTMLTag,
			contains: "scroll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, w := emit(t, tt.input, Options{})
			if !strings.Contains(got.Markup, tt.contains) {
				t.Errorf("Markup = %q, want to contain %q", got.Markup, tt.contains)
			}
			if w.Len() != 1 || w.Items()[0].Kind != tt.wantKind {
				t.Errorf("warnings = %v, want one %v", w.Messages(), tt.wantKind)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmit_RawHTML - Sibling Accumulation
// ---------------------------------------------------------------------------

func TestEmit_RawHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline tags around text",
			input: "a <b>x</b> c",
			want:  "a #strong[x] c\n",
		},
		{
			name:  "inline tags around markdown",
			input: "a <span>*x*</span> c",
			want:  "a #emph[x] c\n",
		},
		{
			name:  "block wrapper around markdown",
			input: "<div align=\"center\">\n\n**bold**\n\n</div>",
			want:  "#align(center)[\n#strong[bold]\n]\n",
		},
		{
			name:  "unclosed block tag consumes rest",
			input: "<div>\n\nafter",
			want:  "after\n",
		},
		{
			name:  "self contained block",
			input: "<p align=\"right\">Right</p>\n\nnext",
			want:  "#align(right)[\nRight\n]\n\nnext\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := emit(t, tt.input, Options{})
			if diff := cmp.Diff(tt.want, got.Markup); diff != "" {
				t.Errorf("Emit(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestEmit_PageBreakBefore(t *testing.T) {
	t.Parallel()

	var opts Options
	opts.PageBreakBefore[1] = true

	got, _ := emit(t, "# A\n\n## B", opts)
	want := "#pagebreak(weak: true)\n= A <a>\n\n== B <b>\n"
	if diff := cmp.Diff(want, got.Markup); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}
}

func TestDepthDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fragment string
		want     int
	}{
		{"<div>", 1},
		{"</div>", -1},
		{"<div><p>x</p>", 1},
		{"<br><img src=x><hr/>", 0},
		{"<custom />", 0},
		{"<!-- <div> -->", 0},
		{"plain", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			t.Parallel()

			if got := depthDelta(tt.fragment); got != tt.want {
				t.Errorf("depthDelta(%q) = %d, want %d", tt.fragment, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmit_MarkdownInsideHTML - Markdown Wrapped by Raw HTML
// ---------------------------------------------------------------------------

func TestEmit_MarkdownInsideHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantAbsent   []string
		wantDiagrams []Diagram
	}{
		{
			name:         "mermaid block collected as diagram",
			input:        "<details>\n\n```mermaid\ngraph TD; A-->B\n```\n\n```go\nx := 1\n```\n\n</details>",
			wantContains: []string{`#figure(image("/__mermaid_0.svg"))`, "```go\nx := 1\n```"},
			wantAbsent:   []string{"```mermaid", "graph TD"},
			wantDiagrams: []Diagram{{Index: 0, Path: "/__mermaid_0.svg", Source: "graph TD; A-->B\n"}},
		},
		{
			name:         "heading keeps its label",
			input:        "<div>\n\n# Title\n\n[jump](#title)\n\n</div>",
			wantContains: []string{"= Title <title>", "#link(<title>)[jump]"},
		},
		{
			name:         "description list",
			input:        "<div>\n\nTerm\n: Def\n\n</div>",
			wantContains: []string{"/ Term: Def"},
			wantAbsent:   []string{"TermDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, w := emit(t, tt.input, Options{})
			for _, want := range tt.wantContains {
				if !strings.Contains(got.Markup, want) {
					t.Errorf("Markup = %q, want to contain %q", got.Markup, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got.Markup, absent) {
					t.Errorf("Markup = %q, want no %q", got.Markup, absent)
				}
			}
			if diff := cmp.Diff(tt.wantDiagrams, got.Diagrams); diff != "" {
				t.Errorf("Diagrams mismatch (-want +got):\n%s", diff)
			}
			if w.Len() != 0 {
				t.Errorf("warnings = %v, want none", w.Messages())
			}
		})
	}
}
