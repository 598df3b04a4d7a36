package assets

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ThemeInfo describes a theme for listings.
type ThemeInfo struct {
	Name        string
	Variant     string
	Description string
	PrintSafe   bool
	Family      string
	Extends     string
}

// catalogMeta mirrors only the [meta] table of a theme source.
type catalogMeta struct {
	Meta struct {
		Name        string `toml:"name"`
		Variant     string `toml:"variant"`
		Description string `toml:"description"`
		PrintSafe   bool   `toml:"print_safe"`
		Family      string `toml:"family"`
		Extends     string `toml:"extends"`
	} `toml:"meta"`
}

// Catalog returns the metadata of every theme the loader lists.
// A theme whose [meta] table is missing a name is listed under its file name.
func Catalog(loader ThemeLoader) ([]ThemeInfo, error) {
	names, err := loader.ThemeNames()
	if err != nil {
		return nil, err
	}

	infos := make([]ThemeInfo, 0, len(names))
	for _, name := range names {
		src, err := loader.LoadTheme(name)
		if err != nil {
			return nil, err
		}

		var m catalogMeta
		if _, err := toml.Decode(src, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, name, err)
		}

		info := ThemeInfo{
			Name:        m.Meta.Name,
			Variant:     m.Meta.Variant,
			Description: m.Meta.Description,
			PrintSafe:   m.Meta.PrintSafe,
			Family:      m.Meta.Family,
			Extends:     m.Meta.Extends,
		}
		if info.Name == "" {
			info.Name = name
		}
		infos = append(infos, info)
	}
	return infos, nil
}
