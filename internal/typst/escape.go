package typst

import (
	"regexp"
	"strings"
)

// EscapeContent escapes characters with markup meaning in Typst body
// content. Slashes are escaped only where they would open a comment.
func EscapeContent(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '#', '*', '_', '@', '<', '>', '$', '\\', '~', '`', '[', ']':
			b.WriteByte('\\')
		case '/':
			if i+1 < len(s) && (s[i+1] == '/' || s[i+1] == '*') {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeString escapes s for use inside a Typst string literal.
func EscapeString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "", "\t", `\t`).Replace(s)
}

// lineStartMarker matches text that Typst would read as a heading, list,
// enum or term marker when it begins a line.
var lineStartMarker = regexp.MustCompile(`(?m)^([ \t]*)(=+|[-+/]|\d+\.)([ \t]|$)`)

// escapeLineStarts neutralizes block markers at the start of each line of
// paragraph text.
func escapeLineStarts(s string) string {
	return lineStartMarker.ReplaceAllStringFunc(s, func(m string) string {
		sub := lineStartMarker.FindStringSubmatch(m)
		marker := sub[2]
		if strings.HasSuffix(marker, ".") {
			marker = marker[:len(marker)-1] + `\.`
		} else {
			marker = `\` + marker
		}
		return sub[1] + marker + sub[3]
	})
}

// fence returns a backtick run one longer than the longest run in body,
// and at least three long.
func fence(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// label reports whether id is usable as a Typst label name.
func label(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
