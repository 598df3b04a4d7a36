package typst

import (
	"strings"
	"testing"

	"github.com/alnah/go-silkprint/internal/warnings"
)

// ---------------------------------------------------------------------------
// TestHTMLBlock - Block Context
// ---------------------------------------------------------------------------

func TestHTMLBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "centered heading",
			input:        `<h1 align="center">Title</h1>`,
			wantContains: []string{"#align(center)[= Title]"},
		},
		{
			name:         "heading level",
			input:        "<h3>Third</h3>",
			wantContains: []string{"=== Third"},
		},
		{
			name:         "heading line breaks dropped",
			input:        "<h1><br>Spaced   Title<br></h1>",
			wantContains: []string{"= Spaced Title"},
			wantAbsent:   []string{"\\\n"},
		},
		{
			name:         "table",
			input:        "<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>",
			wantContains: []string{"#table(", "columns: 2,", "[#strong[A]],", "[1],"},
		},
		{
			name:         "table with sections",
			input:        "<table><thead><tr><th>H</th></tr></thead><tbody><tr><td>D</td></tr></tbody></table>",
			wantContains: []string{"columns: 1,", "[#strong[H]],", "[D],"},
		},
		{
			name:         "table colspan",
			input:        `<table><tr><td colspan="2">wide</td></tr><tr><td>a</td><td>b</td></tr></table>`,
			wantContains: []string{"columns: 2,", "table.cell(colspan: 2)[wide],"},
		},
		{
			name:         "table aligned cell",
			input:        `<table><tr><td align="right">R</td><td>L</td></tr></table>`,
			wantContains: []string{"[#align(right)[R]],", "[L],"},
		},
		{
			name:         "table cell image has no figure",
			input:        `<table><tr><td><img src="a.png" width="20"></td></tr></table>`,
			wantContains: []string{`[#image("a.png", width: 20pt)],`},
			wantAbsent:   []string{"#figure"},
		},
		{
			name:         "image with pixel width",
			input:        `<img src="logo.png" width="200">`,
			wantContains: []string{`#figure(image("logo.png", width: 200pt))`},
		},
		{
			name:         "image with px suffix",
			input:        `<img src="icon.png" width="32px">`,
			wantContains: []string{"width: 32pt"},
		},
		{
			name:         "image with percent width",
			input:        `<img src="wide.png" width="80%">`,
			wantContains: []string{"width: 80%"},
		},
		{
			name:         "image wider than page",
			input:        `<img src="huge.png" width="1200">`,
			wantContains: []string{"width: 80%"},
		},
		{
			name:         "image default width",
			input:        `<img src="photo.jpg">`,
			wantContains: []string{"width: 100%"},
		},
		{
			name:         "horizontal rule",
			input:        "<hr>",
			wantContains: []string{"#line(length: 100%)"},
		},
		{
			name:         "unordered list",
			input:        "<ul><li>Alpha</li><li>Beta</li></ul>",
			wantContains: []string{"- Alpha\n- Beta"},
		},
		{
			name:         "ordered list",
			input:        "<ol><li>One</li><li>Two</li></ol>",
			wantContains: []string{"+ One\n+ Two"},
		},
		{
			name:         "nested list",
			input:        "<ul><li>Outer<ul><li>Inner</li></ul></li></ul>",
			wantContains: []string{"- Outer\n  - Inner"},
		},
		{
			name:         "div alignment",
			input:        `<div align="center">Centered</div>`,
			wantContains: []string{"#align(center)[\nCentered\n]"},
		},
		{
			name:         "paragraph alignment",
			input:        `<p align="right">Right text</p>`,
			wantContains: []string{"#align(right)[\nRight text\n]"},
		},
		{
			name:         "paragraphs separated",
			input:        "<p>a</p>\n<p>b</p>",
			wantContains: []string{"a\n\nb"},
		},
		{
			name:         "preformatted code",
			input:        `<pre><code class="language-go">x := 1</code></pre>`,
			wantContains: []string{"```go\nx := 1\n```"},
		},
		{
			name:         "mermaid kept as code without diagram hook",
			input:        `<pre><code class="language-mermaid">graph TD</code></pre>`,
			wantContains: []string{"```mermaid\ngraph TD\n```"},
		},
		{
			name:         "heading id becomes label",
			input:        `<h2 id="setup">Setup</h2>`,
			wantContains: []string{"== Setup <setup>"},
		},
		{
			name:         "heading id that is no label",
			input:        `<h2 id="a b">Setup</h2>`,
			wantContains: []string{"== Setup"},
			wantAbsent:   []string{"<a b>"},
		},
		{
			name:         "description list",
			input:        "<dl><dt>Term</dt><dd><p>Def</p></dd><dt>Other</dt><dd>One</dd><dd>Two</dd></dl>",
			wantContains: []string{"/ Term: Def\n/ Other: One\n\n  Two"},
			wantAbsent:   []string{"TermDef"},
		},
		{
			name:         "comment dropped",
			input:        "<!-- hidden --><p>shown</p>",
			wantContains: []string{"shown"},
			wantAbsent:   []string{"hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := warnings.New()
			got := HTMLBlock(tt.input, w)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("HTMLBlock(%q) = %q, want to contain %q", tt.input, got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("HTMLBlock(%q) = %q, want no %q", tt.input, got, absent)
				}
			}
			if w.Len() != 0 {
				t.Errorf("warnings = %v, want none", w.Messages())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHTMLInline - Inline Context
// ---------------------------------------------------------------------------

func TestHTMLInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "link", input: `<a href="https://example.com">Click</a>`, want: `#link("https://example.com")[Click]`},
		{name: "anchor link", input: `<a href="#setup">Setup</a>`, want: "#link(<setup>)[Setup]"},
		{name: "strong", input: "<strong>bold</strong>", want: "#strong[bold]"},
		{name: "bold tag", input: "<b>bold</b>", want: "#strong[bold]"},
		{name: "emphasis", input: "<em>italic</em>", want: "#emph[italic]"},
		{name: "nested", input: "<strong><em>both</em></strong>", want: "#strong[#emph[both]]"},
		{name: "code", input: "<code>foo</code>", want: "`foo`"},
		{name: "code kept raw", input: "<code>a*b</code>", want: "`a*b`"},
		{name: "subscript", input: "<sub>2</sub>", want: "#sub[2]"},
		{name: "superscript", input: "<sup>n</sup>", want: "#super[n]"},
		{name: "mark", input: "<mark>hi</mark>", want: "#highlight[hi]"},
		{name: "deleted", input: "<del>old</del>", want: "#strike[old]"},
		{name: "underline", input: "<u>under</u>", want: "#underline[under]"},
		{name: "line break", input: "before<br>after", want: "before\\\nafter"},
		{name: "self closing break", input: "before<br/>after", want: "before\\\nafter"},
		{name: "span transparent", input: "<span>hello</span>", want: "hello"},
		{name: "text escaped", input: "<span>#1 *</span>", want: `\#1 \*`},
		{name: "image boxed", input: `<img src="a.png">`, want: `#box(image("a.png", width: 100%))`},
		{name: "paragraph unwrapped", input: "<p>text</p>", want: "text"},
		{name: "heading as strong", input: "<h2>Title</h2>", want: "#strong[Title]"},
		{name: "expression before parenthesis", input: "<b>x</b>(y)", want: "#strong[x];(y)"},
		{name: "math element", input: "<silk-math>x^2</silk-math>", want: "$x^2$"},
		{name: "footnote element without hook", input: `<silk-footnote name="n"></silk-footnote>`, want: "#super[n]"},
		{name: "description list flattened", input: "<dl><dt>T</dt><dd>D</dd></dl>", want: "TD"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := warnings.New()
			if got := HTMLInline(tt.input, w); got != tt.want {
				t.Errorf("HTMLInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if w.Len() != 0 {
				t.Errorf("warnings = %v, want none", w.Messages())
			}
		})
	}
}

func TestHTML_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		convert  func(string, *warnings.Collector) string
		input    string
		want     string
		wantKind warnings.Kind
	}{
		{
			name:     "unknown tag unwrapped",
			convert:  HTMLInline,
			input:    "<marquee>scroll</marquee>",
			want:     "scroll",
			wantKind: warnings.UnsupportedHTMLTag,
		},
		{
			name:     "remote image",
			convert:  HTMLBlock,
			input:    `<img src="https://example.com/img.png" alt="Badge">`,
			want:     "Badge",
			wantKind: warnings.RemoteImageSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := warnings.New()
			if got := tt.convert(tt.input, w); got != tt.want {
				t.Errorf("convert(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if w.Len() != 1 || w.Items()[0].Kind != tt.wantKind {
				t.Errorf("warnings = %v, want one %v", w.Messages(), tt.wantKind)
			}
		})
	}
}

func TestImageWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"", "100%"},
		{"50%", "50%"},
		{"200", "200pt"},
		{"12.5px", "12.5pt"},
		{"454", "454pt"},
		{"455", "80%"},
		{"auto", "100%"},
		{"-3", "100%"},
		{"abc%", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			if got := imageWidth(tt.raw); got != tt.want {
				t.Errorf("imageWidth(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
