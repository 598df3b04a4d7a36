package assets

// ThemeLoader defines the contract for loading theme TOML sources by name.
// Implementations may load from embedded assets, a directory, an fs.FS, etc.
type ThemeLoader interface {
	// LoadTheme returns the TOML source of a theme by name (without .toml).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (string, error)

	// ThemeNames lists the loadable, user-facing theme names in sorted order.
	// Internal themes (names starting with "_") are omitted.
	ThemeNames() ([]string, error)
}

// themeExt is the file extension of theme sources.
const themeExt = ".toml"

// isInternalTheme reports whether name is a support file hidden from listings.
func isInternalTheme(name string) bool {
	return len(name) > 0 && name[0] == '_'
}
