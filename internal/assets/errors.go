package assets

import "errors"

// Sentinel errors returned by theme loaders.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidAssetName = errors.New("invalid theme name") // not a plain file stem
	ErrInvalidBasePath  = errors.New("invalid theme directory")
	ErrAssetRead        = errors.New("failed to read theme")
	ErrPathTraversal    = errors.New("theme path escapes the theme directory")
)
