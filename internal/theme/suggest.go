package theme

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// maxSuggestionDistance is the largest edit distance still suggested.
	maxSuggestionDistance = 3
	// fallbackSuggestions is how many catalog names to offer when nothing is close.
	fallbackSuggestions = 5
)

// Suggest returns catalog names close to name: those containing it or
// contained in it (case-insensitive), or within a small edit distance.
// When nothing is close, the first few catalog names are returned instead.
func Suggest(name string, catalog []string) []string {
	needle := strings.ToLower(name)

	var matches []string
	for _, candidate := range catalog {
		c := strings.ToLower(candidate)
		if strings.Contains(c, needle) || strings.Contains(needle, c) ||
			levenshtein.ComputeDistance(needle, c) <= maxSuggestionDistance {
			matches = append(matches, candidate)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	if len(catalog) > fallbackSuggestions {
		return append([]string(nil), catalog[:fallbackSuggestions]...)
	}
	return append([]string(nil), catalog...)
}
