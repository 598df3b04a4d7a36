package theme

import (
	"maps"

	"dario.cat/mergo"
)

// Merge returns base overlaid with child. Every field set in child replaces
// the base value; every unset field keeps it. Palettes are merged entry by
// entry. Neither argument is modified.
func Merge(base, child Tokens) (Tokens, error) {
	merged := base
	merged.Colors = maps.Clone(base.Colors)

	overlay := child
	overlay.Colors = make(map[string]string, len(child.Colors))
	for k, v := range child.Colors {
		// mergo copies empty map values; an empty entry means unset.
		if v != "" {
			overlay.Colors[k] = v
		}
	}

	if err := mergo.Merge(&merged, overlay, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return Tokens{}, err
	}
	return merged, nil
}
