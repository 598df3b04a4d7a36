package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// WCAG 2.x minimum contrast ratios.
const (
	MinContrastText  = 4.5
	MinContrastLarge = 3.0
)

// ContrastIssue is a color pair below its minimum ratio.
type ContrastIssue struct {
	Element string
	Ratio   float64
	Minimum float64
}

func (c ContrastIssue) String() string {
	return fmt.Sprintf("%s: contrast ratio %.2f:1 below minimum %.1f:1", c.Element, c.Ratio, c.Minimum)
}

// contrastPair names a foreground/background pair to audit.
type contrastPair struct {
	element string
	fg, bg  string
	minimum float64
}

// Audit checks the structural color pairs of resolved tokens and every
// syntax category against the code block background. Pairs with an empty or
// malformed color are skipped.
func Audit(t *Tokens) []ContrastIssue {
	pairs := []contrastPair{
		{"body text", t.Text.Color, t.Page.Background, MinContrastText},
		{"headings", t.Headings.Color, t.Page.Background, MinContrastLarge},
		{"links", t.Links.Color, t.Page.Background, MinContrastText},
		{"blockquote text", t.Blockquote.TextColor, t.Page.Background, MinContrastText},
		{"table header", t.Text.Color, t.Table.HeaderBackground, MinContrastText},
		{"image captions", t.Images.CaptionColor, t.Page.Background, MinContrastText},
		{"footnote numbers", t.Footnotes.NumberColor, t.Page.Background, MinContrastText},
		{"page numbers", t.PageNumbers.Color, t.Page.Background, MinContrastLarge},
	}
	for _, c := range t.Syntax.categories() {
		pairs = append(pairs, contrastPair{"syntax: " + c.name, c.style.Color, t.CodeBlock.Background, MinContrastText})
	}

	var issues []ContrastIssue
	for _, p := range pairs {
		ratio, ok := ContrastRatio(p.fg, p.bg)
		if !ok || ratio >= p.minimum {
			continue
		}
		issues = append(issues, ContrastIssue{Element: p.element, Ratio: ratio, Minimum: p.minimum})
	}
	return issues
}

// ContrastRatio returns the WCAG contrast ratio of two hex colors. ok is
// false when either color is empty or not a "#rgb"/"#rrggbb" value.
func ContrastRatio(fg, bg string) (ratio float64, ok bool) {
	l1, ok1 := luminance(fg)
	l2, ok2 := luminance(bg)
	if !ok1 || !ok2 {
		return 0, false
	}
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), true
}

// luminance is the WCAG relative luminance of a hex color.
func luminance(hex string) (float64, bool) {
	if hex == "" {
		return 0, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, false
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, true
}
