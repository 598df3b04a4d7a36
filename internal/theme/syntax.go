package theme

import "strings"

// scopeMap assigns TextMate scopes to each syntax category.
var scopeMap = map[string][]string{
	"text": {"source"},
	"keyword": {
		"keyword", "keyword.control", "keyword.control.import", "keyword.control.flow",
		"keyword.control.conditional", "keyword.control.loop", "keyword.operator.word",
		"keyword.other", "storage.modifier", "storage.type.class", "storage.type.function",
		"storage.type.interface",
	},
	"string": {
		"string", "string.quoted", "string.quoted.double", "string.quoted.single",
		"string.quoted.template", "string.template", "string.interpolated",
		"string.regexp", "string.other.link",
	},
	"number": {
		"constant.numeric", "constant.numeric.integer", "constant.numeric.float",
		"constant.numeric.hex",
	},
	"function": {
		"entity.name.function", "support.function", "meta.function-call",
		"variable.function", "entity.name.function.decorator", "meta.annotation",
	},
	"type": {
		"entity.name.type", "entity.name.class", "entity.name.struct", "entity.name.enum",
		"entity.name.interface", "entity.name.trait", "entity.name.namespace",
		"entity.name.module", "support.type", "support.class", "storage.type",
	},
	"comment": {
		"comment", "comment.line", "comment.block", "comment.documentation",
		"comment.block.documentation", "comment.line.documentation",
	},
	"constant": {
		"constant", "constant.language", "constant.language.null",
		"constant.language.undefined",
	},
	"boolean": {"constant.language.boolean"},
	"operator": {
		"keyword.operator", "keyword.operator.logical", "keyword.operator.arithmetic",
		"keyword.operator.comparison", "keyword.operator.assignment",
		"keyword.operator.ternary",
	},
	"property": {
		"variable.other.property", "variable.other.object.property",
		"variable.other.member", "support.variable.property",
	},
	"tag": {
		"entity.name.tag", "entity.name.tag.html", "entity.name.tag.css",
		"entity.name.tag.yaml",
	},
	"attribute": {
		"entity.other.attribute-name", "entity.other.attribute-name.html",
		"entity.other.attribute-name.css",
	},
	"variable": {
		"variable", "variable.other", "variable.parameter", "variable.language",
		"variable.language.this", "variable.language.self", "variable.other.readwrite",
	},
	"builtin": {
		"support.function.builtin", "support.class.builtin", "support.constant",
		"support.variable",
	},
	"punctuation": {
		"punctuation", "punctuation.separator", "punctuation.terminator",
		"punctuation.accessor", "punctuation.definition", "punctuation.definition.string",
		"punctuation.definition.template-expression", "punctuation.section",
		"punctuation.section.braces", "punctuation.section.brackets",
		"punctuation.section.parens",
	},
	"escape": {
		"constant.character.escape", "constant.character", "constant.other.placeholder",
	},
}

// Style is a syntax category ready for tmTheme generation.
type Style struct {
	Name       string
	Scope      string
	Foreground string
	Bold       bool
	Italic     bool
}

// ResolveSyntax produces one Style per syntax category, in category order,
// with colors resolved through the palette.
func ResolveSyntax(s *Syntax, palette map[string]string) []Style {
	cats := s.categories()
	styles := make([]Style, 0, len(cats))
	for _, c := range cats {
		styles = append(styles, Style{
			Name:       c.name,
			Scope:      strings.Join(scopeMap[c.name], ", "),
			Foreground: ResolveColor(c.style.Color, palette),
			Bold:       Bool(c.style.Bold),
			Italic:     Bool(c.style.Italic),
		})
	}
	return styles
}

// fontStyle returns the tmTheme fontStyle value, "" for regular text.
func (s Style) fontStyle() string {
	switch {
	case s.Bold && s.Italic:
		return "bold italic"
	case s.Bold:
		return "bold"
	case s.Italic:
		return "italic"
	}
	return ""
}
