// Package dateutil resolves the front matter date field. The values "auto"
// and "auto:FORMAT" expand to the render date; anything else is kept as is.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an unusable "auto:FORMAT" value.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength bounds the FORMAT part of "auto:FORMAT".
const MaxFormatLength = 50

// DefaultFormat is applied to a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

const autoKeyword = "auto"

// tokens are tried longest first.
var tokens = [...]struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout converts a format such as "DD/MM/YYYY" to a time layout. Text in
// square brackets is copied literally.
func Layout(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	case len(format) > MaxFormatLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		n := 1
		out := rest[:1]
		for _, tok := range tokens {
			if strings.HasPrefix(rest, tok.token) {
				n, out = len(tok.token), tok.layout
				break
			}
		}
		b.WriteString(out)
		rest = rest[n:]
	}
	return b.String(), nil
}

// Resolve expands "auto", "auto:FORMAT" and "auto:PRESET" (case-insensitive
// keyword and preset) using now. Other values are returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(autoKeyword) || !strings.EqualFold(trimmed[:len(autoKeyword)], autoKeyword) {
		return value, nil
	}

	format := DefaultFormat
	if rest := trimmed[len(autoKeyword):]; rest != "" {
		custom, ok := strings.CutPrefix(rest, ":")
		if !ok {
			return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		format = custom
		if preset, ok := Presets[strings.ToLower(custom)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
