package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/alnah/go-silkprint/internal/assets"
	"github.com/alnah/go-silkprint/internal/warnings"
)

// Resolved is a fully merged and resolved theme.
type Resolved struct {
	// Tokens holds the merged values with every color field resolved.
	Tokens Tokens

	// Chain lists the themes that were merged, leaf first.
	Chain []string

	// Syntax holds the per-category highlight styles.
	Syntax []Style

	// TMTheme is the generated TextMate theme served at TMThemePath.
	TMTheme string

	// Contrast lists the color pairs below their WCAG minimum.
	Contrast []ContrastIssue
}

// Name returns the resolved theme name.
func (r *Resolved) Name() string {
	return r.Tokens.Meta.Name
}

// Engine resolves theme sources into Resolved themes.
type Engine struct {
	loader   assets.ThemeLoader
	logger   *zap.Logger
	readFile func(string) ([]byte, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for debug events. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithReadFile replaces the function used to read SourcePath themes.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(e *Engine) {
		if fn != nil {
			e.readFile = fn
		}
	}
}

// NewEngine creates an Engine that loads named themes and parents from loader.
func NewEngine(loader assets.ThemeLoader, opts ...Option) *Engine {
	e := &Engine{
		loader:   loader,
		logger:   zap.NewNop(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load resolves src: parse, follow extends, merge root to leaf, resolve the
// palette and every color field, fill in base syntax colors when the theme
// has none, audit contrast, and generate the tmTheme. Contrast issues are
// also added to w.
func (e *Engine) Load(src Source, w *warnings.Collector) (*Resolved, error) {
	text, err := e.readSource(src)
	if err != nil {
		return nil, err
	}

	name := src.label()
	root, err := e.parse(name, text)
	if err != nil {
		return nil, err
	}
	if src.Kind != SourceBuiltin && root.Meta.Name != "" {
		name = root.Meta.Name
	}

	chain, err := e.buildChain(name, root)
	if err != nil {
		return nil, err
	}

	merged, err := fold(chain)
	if err != nil {
		return nil, fmt.Errorf("%w: merging %q: %v", ErrThemeInvalid, name, err)
	}
	if merged.Meta.Name == "" {
		merged.Meta.Name = name
	}

	merged.Colors = ResolvePalette(merged.Colors)
	resolveColorFields(&merged)

	if !merged.Syntax.hasColors() {
		if err := e.applyBaseSyntax(&merged); err != nil {
			return nil, err
		}
	}

	issues := Audit(&merged)
	for _, issue := range issues {
		w.Add(warnings.ContrastRatio, issue.String())
	}

	styles := ResolveSyntax(&merged.Syntax, merged.Colors)
	tm, err := GenerateTMTheme(merged.Meta.Name, merged.Syntax.Background, merged.Syntax.Text.Color, styles)
	if err != nil {
		return nil, fmt.Errorf("generating tmTheme for %q: %w", name, err)
	}

	e.logger.Debug("theme resolved",
		zap.String("name", merged.Meta.Name),
		zap.String("variant", merged.Meta.Variant),
		zap.Int("colors", len(merged.Colors)),
		zap.Int("contrast_issues", len(issues)))

	return &Resolved{
		Tokens:   merged,
		Chain:    chainNames(chain),
		Syntax:   styles,
		TMTheme:  tm,
		Contrast: issues,
	}, nil
}

// readSource returns the TOML text of src.
func (e *Engine) readSource(src Source) (string, error) {
	switch src.Kind {
	case SourcePath:
		data, err := e.readFile(src.Value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrThemeRead, src.Value, err)
		}
		return string(data), nil
	case SourceInline:
		return src.Value, nil
	default:
		return e.loadNamed(src.Value)
	}
}

// loadNamed loads a theme by name, turning a miss into a NotFoundError with
// suggestions from the catalog.
func (e *Engine) loadNamed(name string) (string, error) {
	text, err := e.loader.LoadTheme(name)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, assets.ErrThemeNotFound) && !errors.Is(err, assets.ErrInvalidAssetName) {
		return "", err
	}

	catalog, listErr := e.loader.ThemeNames()
	if listErr != nil {
		e.logger.Debug("listing themes for suggestions failed", zap.Error(listErr))
	}
	return "", &NotFoundError{Name: name, Suggestions: Suggest(name, catalog)}
}

// parse decodes a theme source.
func (e *Engine) parse(name, text string) (Tokens, error) {
	var t Tokens
	md, err := toml.Decode(text, &t)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Tokens{}, &InvalidError{
				Name:    name,
				Line:    perr.Position.Line,
				Column:  perr.Position.Col,
				Message: perr.Message,
				Source:  sourceLine(text, perr.Position.Line),
			}
		}
		return Tokens{}, &InvalidError{Name: name, Message: err.Error()}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		e.logger.Debug("unknown theme keys ignored", zap.String("theme", name), zap.Strings("keys", keys))
	}
	return t, nil
}

// sourceLine returns line n of text, 1-based, or "" when out of range.
func sourceLine(text string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// applyBaseSyntax replaces the syntax section with the base palette of the
// theme's variant.
func (e *Engine) applyBaseSyntax(t *Tokens) error {
	base := assets.BaseSyntaxLight
	if t.IsDark() {
		base = assets.BaseSyntaxDark
	}

	text, err := e.loader.LoadTheme(base)
	if err != nil {
		if errors.Is(err, assets.ErrThemeNotFound) {
			e.logger.Debug("base syntax unavailable", zap.String("base", base))
			return nil
		}
		return err
	}

	fallback, err := e.parse(base, text)
	if err != nil {
		return err
	}
	t.Syntax = fallback.Syntax
	resolveColorFields(t)
	e.logger.Debug("base syntax applied", zap.String("base", base))
	return nil
}
