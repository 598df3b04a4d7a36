package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: silkprint [flags] <input.md|dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown to Typst markup styled by a theme.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory of .md files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .typ file, directory, or \"-\" for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: silkprint.yaml if present)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --check               Validate input and theme, write nothing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "  -t, --theme <name|path>   Theme name or .toml file (default: silkcircuit-dawn)")
	fmt.Fprintln(w, "      --theme-dir <dir>     Directory of custom themes")
	fmt.Fprintln(w, "      --list-themes         List available themes and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -p, --paper <size>        Paper size: a4, letter, a5, legal")
	fmt.Fprintln(w, "      --toc                 Force the table of contents on")
	fmt.Fprintln(w, "      --no-toc              Force the table of contents off")
	fmt.Fprintln(w, "      --no-title-page       Suppress the title page")
	fmt.Fprintln(w, "      --font-dir <dir>      Additional font directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --color <when>        Color output: auto, always, never")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Front matter keys: title, subtitle, author, date, lang, theme, paper,")
	fmt.Fprintln(w, "toc, toc-depth, numbering, font-size. The date accepts \"auto\",")
	fmt.Fprintln(w, "\"auto:FORMAT\" (YYYY, YY, MMMM, MMM, MM, M, DD, D) and the presets")
	fmt.Fprintln(w, "iso, european, us, long.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 general error, 2 usage or theme error, 3 I/O error.")
}
