package theme

// Tokens is the complete set of styling values a theme can declare.
//
// Empty strings, zero numbers, false booleans, empty slices and nil pointers
// mean "unset": a child theme leaves the base value in place wherever its own
// value is unset. Fields that must be able to override a base true with an
// explicit false are *bool.
type Tokens struct {
	Meta            Meta              `toml:"meta"`
	Colors          map[string]string `toml:"colors"`
	Fonts           Fonts             `toml:"fonts"`
	FontSizes       FontSizes         `toml:"font_sizes"`
	Page            Page              `toml:"page"`
	Text            Text              `toml:"text"`
	Headings        Headings          `toml:"headings"`
	CodeBlock       CodeBlock         `toml:"code_block"`
	CodeInline      CodeInline        `toml:"code_inline"`
	Blockquote      Blockquote        `toml:"blockquote"`
	Table           Table             `toml:"table"`
	HorizontalRule  HorizontalRule    `toml:"horizontal_rule"`
	Links           Links             `toml:"links"`
	Images          Images            `toml:"images"`
	List            List              `toml:"list"`
	Footnotes       Footnotes         `toml:"footnotes"`
	Alerts          Alerts            `toml:"alerts"`
	TOC             TOC               `toml:"toc"`
	PageNumbers     PageNumbers       `toml:"page_numbers"`
	TitlePage       TitlePage         `toml:"title_page"`
	Emphasis        Emphasis          `toml:"emphasis"`
	Math            Math              `toml:"math"`
	Highlight       Highlight         `toml:"highlight"`
	DescriptionList DescriptionList   `toml:"description_list"`
	Syntax          Syntax            `toml:"syntax"`
}

type Meta struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Variant     string `toml:"variant"`
	Description string `toml:"description"`
	PrintSafe   bool   `toml:"print_safe"`
	Family      string `toml:"family"`
	Extends     string `toml:"extends"`
}

type Fonts struct {
	Heading         string   `toml:"heading"`
	HeadingWeight   int      `toml:"heading_weight"`
	HeadingItalic   bool     `toml:"heading_italic"`
	Body            string   `toml:"body"`
	BodyWeight      int      `toml:"body_weight"`
	BodyItalic      bool     `toml:"body_italic"`
	Mono            string   `toml:"mono"`
	MonoWeight      int      `toml:"mono_weight"`
	MonoLigatures   bool     `toml:"mono_ligatures"`
	HeadingFallback []string `toml:"heading_fallback"`
	BodyFallback    []string `toml:"body_fallback"`
	MonoFallback    []string `toml:"mono_fallback"`
}

type FontSizes struct {
	Body  string `toml:"body"`
	Small string `toml:"small"`
	Code  string `toml:"code"`
	H1    string `toml:"h1"`
	H2    string `toml:"h2"`
	H3    string `toml:"h3"`
	H4    string `toml:"h4"`
	H5    string `toml:"h5"`
	H6    string `toml:"h6"`
}

// Level returns the size of heading level 1..6, or "" when out of range.
func (f FontSizes) Level(level int) string {
	switch level {
	case 1:
		return f.H1
	case 2:
		return f.H2
	case 3:
		return f.H3
	case 4:
		return f.H4
	case 5:
		return f.H5
	case 6:
		return f.H6
	}
	return ""
}

type Page struct {
	Background   string `toml:"background"`
	MarginTop    string `toml:"margin_top"`
	MarginBottom string `toml:"margin_bottom"`
	MarginLeft   string `toml:"margin_left"`
	MarginRight  string `toml:"margin_right"`
	Paper        string `toml:"paper"`
	Columns      int    `toml:"columns"`
	ColumnGap    string `toml:"column_gap"`
}

type Text struct {
	Color           string  `toml:"color"`
	LineHeight      float64 `toml:"line_height"`
	ParagraphGap    string  `toml:"paragraph_gap"`
	Justification   string  `toml:"justification"`
	SpacingMode     string  `toml:"spacing_mode"`
	FirstLineIndent string  `toml:"first_line_indent"`
	OrphanLines     int     `toml:"orphan_lines"`
	WidowLines      int     `toml:"widow_lines"`
}

type Headings struct {
	Color         string       `toml:"color"`
	Font          string       `toml:"font"`
	LineHeight    float64      `toml:"line_height"`
	LetterSpacing string       `toml:"letter_spacing"`
	H1            HeadingLevel `toml:"h1"`
	H2            HeadingLevel `toml:"h2"`
	H3            HeadingLevel `toml:"h3"`
	H4            HeadingLevel `toml:"h4"`
	H5            HeadingLevel `toml:"h5"`
	H6            HeadingLevel `toml:"h6"`
}

// Level returns the tokens of heading level 1..6. Out-of-range levels get
// the zero value.
func (h Headings) Level(level int) HeadingLevel {
	switch level {
	case 1:
		return h.H1
	case 2:
		return h.H2
	case 3:
		return h.H3
	case 4:
		return h.H4
	case 5:
		return h.H5
	case 6:
		return h.H6
	}
	return HeadingLevel{}
}

type HeadingLevel struct {
	Weight          int     `toml:"weight"`
	LineHeight      float64 `toml:"line_height"`
	Border          *bool   `toml:"border"`
	Above           string  `toml:"above"`
	Below           string  `toml:"below"`
	PageBreakBefore *bool   `toml:"page_break_before"`
	Uppercase       *bool   `toml:"uppercase"`
	LetterSpacing   string  `toml:"letter_spacing"`
}

type CodeBlock struct {
	Background         string  `toml:"background"`
	BorderColor        string  `toml:"border_color"`
	BorderRadius       string  `toml:"border_radius"`
	PaddingVertical    string  `toml:"padding_vertical"`
	PaddingHorizontal  string  `toml:"padding_horizontal"`
	LineHeight         float64 `toml:"line_height"`
	LeftAccent         bool    `toml:"left_accent"`
	LeftAccentColor    string  `toml:"left_accent_color"`
	LineNumbers        bool    `toml:"line_numbers"`
	LanguageLabel      bool    `toml:"language_label"`
	LanguageLabelColor string  `toml:"language_label_color"`
	LanguageLabelSize  string  `toml:"language_label_size"`
	Wrap               bool    `toml:"wrap"`
}

type CodeInline struct {
	Background   string `toml:"background"`
	BorderColor  string `toml:"border_color"`
	BorderRadius string `toml:"border_radius"`
}

type Blockquote struct {
	BorderColor       string  `toml:"border_color"`
	BorderWidth       string  `toml:"border_width"`
	Background        string  `toml:"background"`
	BackgroundOpacity float64 `toml:"background_opacity"`
	TextColor         string  `toml:"text_color"`
	Italic            bool    `toml:"italic"`
	LeftPadding       string  `toml:"left_padding"`
}

type Table struct {
	HeaderBackground  string `toml:"header_background"`
	HeaderBorderColor string `toml:"header_border_color"`
	HeaderBorderWidth string `toml:"header_border_width"`
	HeaderFont        string `toml:"header_font"`
	HeaderWeight      int    `toml:"header_weight"`
	RowBorderColor    string `toml:"row_border_color"`
	RowBorderWidth    string `toml:"row_border_width"`
	StripeBackground  string `toml:"stripe_background"`
	VerticalLines     bool   `toml:"vertical_lines"`
	CellPadding       string `toml:"cell_padding"`
}

type HorizontalRule struct {
	Color     string `toml:"color"`
	Width     string `toml:"width"`
	Thickness string `toml:"thickness"`
	Style     string `toml:"style"`
}

type Links struct {
	Color     string `toml:"color"`
	Underline bool   `toml:"underline"`
}

type Images struct {
	MaxWidth        string `toml:"max_width"`
	Alignment       string `toml:"alignment"`
	Border          bool   `toml:"border"`
	BorderRadius    string `toml:"border_radius"`
	CaptionFont     string `toml:"caption_font"`
	CaptionSize     string `toml:"caption_size"`
	CaptionColor    string `toml:"caption_color"`
	CaptionItalic   bool   `toml:"caption_italic"`
	CaptionPosition string `toml:"caption_position"`
}

type List struct {
	BulletColor        string `toml:"bullet_color"`
	Indent             string `toml:"indent"`
	NestedIndent       string `toml:"nested_indent"`
	TaskCheckedColor   string `toml:"task_checked_color"`
	TaskUncheckedColor string `toml:"task_unchecked_color"`
}

type Footnotes struct {
	SeparatorColor string `toml:"separator_color"`
	SeparatorWidth string `toml:"separator_width"`
	TextSize       string `toml:"text_size"`
	NumberColor    string `toml:"number_color"`
	BackrefColor   string `toml:"backref_color"`
}

type Alerts struct {
	NoteColor         string  `toml:"note_color"`
	TipColor          string  `toml:"tip_color"`
	ImportantColor    string  `toml:"important_color"`
	WarningColor      string  `toml:"warning_color"`
	CautionColor      string  `toml:"caution_color"`
	BorderWidth       string  `toml:"border_width"`
	BackgroundOpacity float64 `toml:"background_opacity"`
	ShowIcon          bool    `toml:"show_icon"`
	ShowLabel         bool    `toml:"show_label"`
}

type TOC struct {
	Title           string `toml:"title"`
	TitleSize       string `toml:"title_size"`
	EntryColor      string `toml:"entry_color"`
	PageNumberColor string `toml:"page_number_color"`
	LeaderStyle     string `toml:"leader_style"`
	Indent          string `toml:"indent"`
	MaxDepth        int    `toml:"max_depth"`
}

type PageNumbers struct {
	Enabled   bool   `toml:"enabled"`
	Position  string `toml:"position"`
	Format    string `toml:"format"`
	Font      string `toml:"font"`
	Size      string `toml:"size"`
	Color     string `toml:"color"`
	FirstPage bool   `toml:"first_page"`
}

type TitlePage struct {
	Enabled        bool   `toml:"enabled"`
	TitleFont      string `toml:"title_font"`
	TitleSize      string `toml:"title_size"`
	TitleColor     string `toml:"title_color"`
	SubtitleColor  string `toml:"subtitle_color"`
	AuthorColor    string `toml:"author_color"`
	DateColor      string `toml:"date_color"`
	SeparatorColor string `toml:"separator_color"`
}

type Emphasis struct {
	StrikethroughColor string `toml:"strikethrough_color"`
}

type Math struct {
	Color string `toml:"color"`
}

type Highlight struct {
	Fill         string  `toml:"fill"`
	FillOpacity  float64 `toml:"fill_opacity"`
	TextColor    string  `toml:"text_color"`
	BorderRadius string  `toml:"border_radius"`
}

type DescriptionList struct {
	TermFont         string `toml:"term_font"`
	TermWeight       int    `toml:"term_weight"`
	TermColor        string `toml:"term_color"`
	DefinitionIndent string `toml:"definition_indent"`
	TermSpacing      string `toml:"term_spacing"`
	ItemSpacing      string `toml:"item_spacing"`
}

// Syntax holds the code highlighting palette, one style per category.
type Syntax struct {
	Background  string      `toml:"background"`
	Text        SyntaxStyle `toml:"text"`
	Keyword     SyntaxStyle `toml:"keyword"`
	String      SyntaxStyle `toml:"string"`
	Number      SyntaxStyle `toml:"number"`
	Function    SyntaxStyle `toml:"function"`
	Type        SyntaxStyle `toml:"type"`
	Comment     SyntaxStyle `toml:"comment"`
	Constant    SyntaxStyle `toml:"constant"`
	Boolean     SyntaxStyle `toml:"boolean"`
	Operator    SyntaxStyle `toml:"operator"`
	Property    SyntaxStyle `toml:"property"`
	Tag         SyntaxStyle `toml:"tag"`
	Attribute   SyntaxStyle `toml:"attribute"`
	Variable    SyntaxStyle `toml:"variable"`
	Builtin     SyntaxStyle `toml:"builtin"`
	Punctuation SyntaxStyle `toml:"punctuation"`
	Escape      SyntaxStyle `toml:"escape"`
}

type SyntaxStyle struct {
	Color  string `toml:"color"`
	Bold   *bool  `toml:"bold"`
	Italic *bool  `toml:"italic"`
}

// category pairs a syntax category name with its style.
type category struct {
	name  string
	style *SyntaxStyle
}

// categories lists every syntax category in a fixed order.
func (s *Syntax) categories() []category {
	return []category{
		{"text", &s.Text},
		{"keyword", &s.Keyword},
		{"string", &s.String},
		{"number", &s.Number},
		{"function", &s.Function},
		{"type", &s.Type},
		{"comment", &s.Comment},
		{"constant", &s.Constant},
		{"boolean", &s.Boolean},
		{"operator", &s.Operator},
		{"property", &s.Property},
		{"tag", &s.Tag},
		{"attribute", &s.Attribute},
		{"variable", &s.Variable},
		{"builtin", &s.Builtin},
		{"punctuation", &s.Punctuation},
		{"escape", &s.Escape},
	}
}

// hasColors reports whether any of the primary syntax categories carries a
// color. A theme with none of them gets the base syntax of its variant.
func (s *Syntax) hasColors() bool {
	return s.Keyword.Color != "" || s.String.Color != "" ||
		s.Function.Color != "" || s.Comment.Color != ""
}

// IsDark reports whether the theme declares the dark variant.
func (t *Tokens) IsDark() bool {
	return t.Meta.Variant == "dark"
}

// Bool reports the value of an optional flag, false when unset.
func Bool(b *bool) bool {
	return b != nil && *b
}
