package theme

import "strings"

// maxPalettePasses bounds alias resolution. Longer alias chains are left
// partially resolved.
const maxPalettePasses = 10

// ResolvePalette resolves alias entries of a named-color palette to a fixed
// point. An entry whose value names another entry takes that entry's value;
// literal "#..." values are kept. Each pass reads a snapshot of the previous
// one, so the result does not depend on map iteration order. Unknown aliases
// are left as they are. The input map is not modified.
func ResolvePalette(colors map[string]string) map[string]string {
	resolved := make(map[string]string, len(colors))
	for k, v := range colors {
		resolved[k] = v
	}

	for range maxPalettePasses {
		snapshot := make(map[string]string, len(resolved))
		for k, v := range resolved {
			snapshot[k] = v
		}

		changed := false
		for k, v := range snapshot {
			if !isAlias(v) {
				continue
			}
			if target, ok := snapshot[v]; ok && target != v {
				resolved[k] = target
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return resolved
}

// ResolveColor returns the palette value for an alias. Empty values and
// literal colors are returned unchanged, as are aliases missing from the
// palette.
func ResolveColor(value string, palette map[string]string) string {
	if !isAlias(value) {
		return value
	}
	if v, ok := palette[value]; ok {
		return v
	}
	return value
}

func isAlias(v string) bool {
	return v != "" && !strings.HasPrefix(v, "#")
}

// resolveColorFields rewrites every color-bearing token through the palette.
func resolveColorFields(t *Tokens) {
	for _, f := range colorFields(t) {
		*f = ResolveColor(*f, t.Colors)
	}
}

// colorFields lists pointers to every color-bearing token.
func colorFields(t *Tokens) []*string {
	fields := []*string{
		&t.Page.Background,
		&t.Text.Color,
		&t.Headings.Color,
		&t.CodeBlock.Background,
		&t.CodeBlock.BorderColor,
		&t.CodeBlock.LeftAccentColor,
		&t.CodeBlock.LanguageLabelColor,
		&t.CodeInline.Background,
		&t.CodeInline.BorderColor,
		&t.Blockquote.BorderColor,
		&t.Blockquote.Background,
		&t.Blockquote.TextColor,
		&t.Table.HeaderBackground,
		&t.Table.HeaderBorderColor,
		&t.Table.RowBorderColor,
		&t.Table.StripeBackground,
		&t.HorizontalRule.Color,
		&t.Links.Color,
		&t.Images.CaptionColor,
		&t.List.BulletColor,
		&t.List.TaskCheckedColor,
		&t.List.TaskUncheckedColor,
		&t.Footnotes.SeparatorColor,
		&t.Footnotes.NumberColor,
		&t.Footnotes.BackrefColor,
		&t.Alerts.NoteColor,
		&t.Alerts.TipColor,
		&t.Alerts.ImportantColor,
		&t.Alerts.WarningColor,
		&t.Alerts.CautionColor,
		&t.TOC.EntryColor,
		&t.TOC.PageNumberColor,
		&t.PageNumbers.Color,
		&t.TitlePage.TitleColor,
		&t.TitlePage.SubtitleColor,
		&t.TitlePage.AuthorColor,
		&t.TitlePage.DateColor,
		&t.TitlePage.SeparatorColor,
		&t.Emphasis.StrikethroughColor,
		&t.Math.Color,
		&t.Highlight.Fill,
		&t.Highlight.TextColor,
		&t.DescriptionList.TermColor,
		&t.Syntax.Background,
	}
	for _, c := range t.Syntax.categories() {
		fields = append(fields, &c.style.Color)
	}
	return fields
}
