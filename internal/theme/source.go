package theme

// SourceKind tells how a Source's value is interpreted.
type SourceKind int

const (
	// SourceBuiltin names a theme known to the loader.
	SourceBuiltin SourceKind = iota
	// SourcePath is a path to a TOML file on disk.
	SourcePath
	// SourceInline is TOML text.
	SourceInline
)

// Source identifies the theme to resolve.
type Source struct {
	Kind  SourceKind
	Value string
}

// Builtin returns a Source for a named theme.
func Builtin(name string) Source { return Source{Kind: SourceBuiltin, Value: name} }

// Path returns a Source for a TOML file.
func Path(path string) Source { return Source{Kind: SourcePath, Value: path} }

// Inline returns a Source for TOML text.
func Inline(text string) Source { return Source{Kind: SourceInline, Value: text} }

// label names the source in errors and chains.
func (s Source) label() string {
	switch s.Kind {
	case SourcePath:
		return s.Value
	case SourceInline:
		return "<inline>"
	default:
		return s.Value
	}
}
