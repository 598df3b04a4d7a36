package assets

// DefaultTheme is the built-in theme used when nothing else is selected.
const DefaultTheme = "silkcircuit-dawn"

// Names of the syntax fallback themes, keyed by variant.
const (
	BaseSyntaxLight = "_base-syntax-light"
	BaseSyntaxDark  = "_base-syntax-dark"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme by name using the embedded catalog.
// Returns ErrThemeNotFound if the theme does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}

// ThemeNames lists the built-in themes.
func ThemeNames() ([]string, error) {
	return defaultLoader.ThemeNames()
}
