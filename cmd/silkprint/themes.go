package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	silkprint "github.com/alnah/go-silkprint"
)

// themeLister is the part of the converter --list-themes needs.
type themeLister interface {
	ListThemes() ([]silkprint.ThemeInfo, error)
	LoadTheme(src silkprint.ThemeSource) (*silkprint.ResolvedTheme, []silkprint.Warning, error)
}

// printThemes lists the catalog. With color, each line starts with
// swatches of the page, text, heading and link colors.
func printThemes(w io.Writer, lister themeLister, color bool) error {
	infos, err := lister.ListThemes()
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	}
	nameStyle := r.NewStyle().Bold(true).Width(maxNameWidth(infos) + 2)
	dimStyle := r.NewStyle().Faint(true)

	for _, info := range infos {
		var line strings.Builder
		if color {
			line.WriteString(swatches(r, lister, info.Name))
			line.WriteByte(' ')
		}
		line.WriteString(nameStyle.Render(info.Name))
		line.WriteString(dimStyle.Render(fmt.Sprintf("%-6s", info.Variant)))
		if info.PrintSafe {
			line.WriteString(" print-safe")
		} else {
			line.WriteString("           ")
		}
		if info.Description != "" {
			line.WriteString("  " + info.Description)
		}
		if info.Extends != "" {
			line.WriteString(dimStyle.Render(" (extends " + info.Extends + ")"))
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// swatches renders one block per key color. A theme that fails to load
// gets blank blocks; the listing itself never fails on it.
func swatches(r *lipgloss.Renderer, lister themeLister, name string) string {
	resolved, _, err := lister.LoadTheme(silkprint.BuiltinTheme(name))
	if err != nil {
		return strings.Repeat("  ", 4)
	}
	t := resolved.Tokens
	var b strings.Builder
	for _, c := range []string{t.Page.Background, t.Text.Color, t.Headings.Color, t.Links.Color} {
		if c == "" {
			b.WriteString("  ")
			continue
		}
		b.WriteString(r.NewStyle().Background(lipgloss.Color(c)).Render("  "))
	}
	return b.String()
}

func maxNameWidth(infos []silkprint.ThemeInfo) int {
	n := 0
	for _, info := range infos {
		n = max(n, len(info.Name))
	}
	return n
}
