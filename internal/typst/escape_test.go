package typst

import "testing"

func TestEscapeContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello world", want: "hello world"},
		{name: "hash", input: "#tag", want: `\#tag`},
		{name: "markup", input: "*a* _b_ `c`", want: "\\*a\\* \\_b\\_ \\`c\\`"},
		{name: "dollar", input: "$5", want: `\$5`},
		{name: "label and reference", input: "<x> @y", want: `\<x\> \@y`},
		{name: "brackets", input: "[x]", want: `\[x\]`},
		{name: "backslash", input: `a\b`, want: `a\\b`},
		{name: "tilde", input: "a~b", want: `a\~b`},
		{name: "line comment", input: "http://x", want: `http:\//x`},
		{name: "block comment", input: "a/*b", want: `a\/*b`},
		{name: "lone slash", input: "a/b", want: "a/b"},
		{name: "unicode untouched", input: "café ☕", want: "café ☕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeContent(tt.input); got != tt.want {
				t.Errorf("EscapeContent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeString(t *testing.T) {
	t.Parallel()

	got := EscapeString("a\"b\\c\nd\r\te")
	want := `a\"b\\c\nd\te`
	if got != want {
		t.Errorf("EscapeString() = %q, want %q", got, want)
	}
}

func TestEscapeLineStarts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"- not a list", `\- not a list`},
		{"+ plus", `\+ plus`},
		{"= not a heading", `\= not a heading`},
		{"== deeper", `\== deeper`},
		{"/ term", `\/ term`},
		{"1. first", `1\. first`},
		{"12. twelfth", `12\. twelfth`},
		{"-dash", "-dash"},
		{"1.5 times", "1.5 times"},
		{"a - b", "a - b"},
		{"-", `\-`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := escapeLineStarts(tt.input); got != tt.want {
				t.Errorf("escapeLineStarts(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no backticks", body: "x := 1\n", want: "```"},
		{name: "short runs", body: "a `b` ``c``\n", want: "```"},
		{name: "triple run", body: "```go\nx\n```\n", want: "````"},
		{name: "five run", body: "`````\n", want: "``````"},
		{name: "empty", body: "", want: "```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fence(tt.body); got != tt.want {
				t.Errorf("fence(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{"getting-started", true},
		{"fn-1", true},
		{"a.b:c_d", true},
		{"", false},
		{"has space", false},
		{"café", false},
		{"a>b", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			if got := label(tt.id); got != tt.want {
				t.Errorf("label(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
