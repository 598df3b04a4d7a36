// Package assets provides the theme sources used by the theme engine.
// Themes can be loaded from embedded files or a custom filesystem directory.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── FSLoader          - loads from any fs.FS (the embedded catalog by default)
//	    ├── FilesystemLoader  - loads from a theme directory on disk
//	    └── ThemeResolver     - combines both with custom-first fallback
//
// The embedded catalog ships the built-in themes (silk-light, silk-dark,
// manuscript, ...) plus two syntax fallback files, _base-syntax-light and
// _base-syntax-dark, which are loadable by name but hidden from listings.
//
// ThemeResolver is the loader used by the converter. It tries the custom
// directory first and falls back to the embedded catalog when a theme is not
// found there, so a theme directory may override a built-in or add new ones
// that extend built-ins.
//
// # Directory Structure
//
//	{basePath}/
//	└── {name}.toml
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
