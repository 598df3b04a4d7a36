package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Inline extensions goldmark has no parser for are rewritten to Unicode
// Private Use Area markers before parsing. They pass through goldmark as
// ordinary text and are folded into Highlight, Superscript and Subscript
// nodes when the tree is converted.
const (
	HighlightOpen    = "\uE000"
	HighlightClose   = "\uE001"
	SuperscriptOpen  = "\uE002"
	SuperscriptClose = "\uE003"
	SubscriptOpen    = "\uE004"
	SubscriptClose   = "\uE005"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// ==text==
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

	// ^text^ without whitespace or brackets, so footnote labels are kept
	superscriptPattern = regexp.MustCompile(`\^([^\s^\[\]]+)\^`)

	// ~text~ without whitespace, tildes or slashes
	subscriptPattern = regexp.MustCompile(`~([^\s~/]+)~`)

	// Fenced code block delimiter (backticks or tildes), up to 3 spaces of indent
	fencedCodeBlock = regexp.MustCompile("^ {0,3}(```|~~~)")

	// Display math fence
	mathFence = regexp.MustCompile(`^ {0,3}\$\$\s*$`)

	// Indented code block (4 spaces or tab)
	indentedCodeBlock = regexp.MustCompile(`^(    |\t)`)
)

var placeholderRestorer = strings.NewReplacer(
	HighlightOpen, "==",
	HighlightClose, "==",
	SuperscriptOpen, "^",
	SuperscriptClose, "^",
	SubscriptOpen, "~",
	SubscriptClose, "~",
)

// Preprocess prepares Markdown source for parsing: it normalizes line
// endings, compresses blank line runs and rewrites the highlight,
// superscript and subscript syntaxes to placeholder markers. Code and math
// are left untouched.
func Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	content = processLinesOutsideCode(content, convertInlineMarkers)
	return content
}

// RestorePlaceholders turns placeholder markers back into the delimiters
// they replaced. It is applied to text where the markers carry no meaning:
// code spans, URLs, raw HTML and math.
func RestorePlaceholders(s string) string {
	if !strings.ContainsAny(s, HighlightOpen+HighlightClose+SuperscriptOpen+SuperscriptClose+SubscriptOpen+SubscriptClose) {
		return s
	}
	return placeholderRestorer.Replace(s)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// processLinesOutsideCode applies process to every line that is not part of
// a fenced code block, a display math block or an indented code block.
func processLinesOutsideCode(content string, process func(string) string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	var fence string
	inMath := false

	for _, line := range lines {
		switch {
		case fence != "":
			if strings.HasPrefix(strings.TrimLeft(line, " "), fence) {
				fence = ""
			}
			result = append(result, line)
			continue
		case inMath:
			if mathFence.MatchString(line) {
				inMath = false
			}
			result = append(result, line)
			continue
		}

		if m := fencedCodeBlock.FindStringSubmatch(line); m != nil {
			fence = m[1]
			result = append(result, line)
			continue
		}
		if mathFence.MatchString(line) {
			inMath = true
			result = append(result, line)
			continue
		}
		if indentedCodeBlock.MatchString(line) {
			result = append(result, line)
			continue
		}

		result = append(result, process(line))
	}

	return strings.Join(result, "\n")
}

// convertInlineMarkers rewrites inline extension syntax in a single line,
// skipping code spans and inline math.
func convertInlineMarkers(line string) string {
	if !strings.ContainsAny(line, "=^~") {
		return line
	}

	var b strings.Builder
	rest := line
	for rest != "" {
		start, end := nextVerbatimSpan(rest)
		if start < 0 {
			b.WriteString(convertMarkers(rest))
			break
		}
		b.WriteString(convertMarkers(rest[:start]))
		b.WriteString(rest[start:end])
		rest = rest[end:]
	}
	return b.String()
}

func convertMarkers(s string) string {
	s = highlightPattern.ReplaceAllString(s, HighlightOpen+"$1"+HighlightClose)
	s = superscriptPattern.ReplaceAllString(s, SuperscriptOpen+"$1"+SuperscriptClose)
	return convertSubscripts(s)
}

// convertSubscripts rewrites single-tilde spans. Spans touching another
// tilde belong to strikethrough and are left alone.
func convertSubscripts(s string) string {
	matches := subscriptPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && s[start-1] == '~' {
			continue
		}
		if end < len(s) && s[end] == '~' {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(SubscriptOpen)
		b.WriteString(s[m[2]:m[3]])
		b.WriteString(SubscriptClose)
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// nextVerbatimSpan finds the next code span or inline math span in s and
// returns its byte range, or -1 when there is none.
func nextVerbatimSpan(s string) (int, int) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '`':
			run := 1
			for i+run < len(s) && s[i+run] == '`' {
				run++
			}
			delim := strings.Repeat("`", run)
			if j := strings.Index(s[i+run:], delim); j >= 0 {
				return i, i + run + j + run
			}
			i += run - 1
		case '$':
			if j := strings.IndexByte(s[i+1:], '$'); j >= 0 {
				return i, i + 1 + j + 1
			}
		}
	}
	return -1, -1
}
