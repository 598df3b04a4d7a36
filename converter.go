package silkprint

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-silkprint/internal/assets"
	"github.com/alnah/go-silkprint/internal/fileutil"
	"github.com/alnah/go-silkprint/internal/frontmatter"
	"github.com/alnah/go-silkprint/internal/hints"
	"github.com/alnah/go-silkprint/internal/pipeline"
	"github.com/alnah/go-silkprint/internal/theme"
	"github.com/alnah/go-silkprint/internal/typst"
	"github.com/alnah/go-silkprint/internal/warnings"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Parser    = (*pipeline.GoldmarkParser)(nil)
	_ assets.ThemeLoader = (*assets.ThemeResolver)(nil)
)

// Converter renders Markdown documents to Typst markup.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	logger   *zap.Logger
	themeDir string
	now      func() time.Time
	parser   pipeline.Parser
	loader   assets.ThemeLoader
	engine   *theme.Engine
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger for debug events. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithThemeDir adds a directory of .toml themes. Its themes shadow
// built-in themes of the same name.
func WithThemeDir(dir string) Option {
	return func(c *Converter) {
		c.themeDir = dir
	}
}

// WithClock sets the clock used for "auto" front matter dates.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConverter creates a Converter. It fails when the theme directory
// given with WithThemeDir cannot be used.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger: zap.NewNop(),
		now:    time.Now,
		parser: pipeline.NewGoldmarkParser(),
	}
	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewThemeResolver(c.themeDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThemeDir, err)
	}
	c.loader = resolver
	c.engine = theme.NewEngine(resolver, theme.WithLogger(c.logger))
	return c, nil
}

// Render converts input to a Typst document. Theme errors, malformed front
// matter and invalid options abort the render; everything else degrades to
// a warning in the result. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (c *Converter) Render(ctx context.Context, input Input, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	w := warnings.New()

	fm, body, err := frontmatter.Extract(input.Markdown, w)
	if err != nil {
		return nil, err
	}
	if err := fm.ResolveDate(c.now()); err != nil {
		return nil, err
	}

	src := c.themeSource(input, opts, fm)
	resolved, err := c.engine.Load(src, w)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("theme resolved",
		zap.String("theme", resolved.Name()),
		zap.Strings("chain", resolved.Chain))

	doc, err := c.parser.Parse(ctx, body)
	if err != nil {
		return nil, err
	}
	if err := pipeline.ResolveImages(doc, input.SourceDir, w); err != nil {
		return nil, fmt.Errorf("resolving images: %w", err)
	}

	dirs := fontDirs(opts.FontDirs, w)
	emitted := typst.Emit(doc, typst.OptionsFromTheme(&resolved.Tokens), w)
	preamble := typst.Preamble(&resolved.Tokens, document(fm, opts))
	c.logger.Debug("document emitted",
		zap.Int("bytes", len(emitted.Markup)),
		zap.Int("diagrams", len(emitted.Diagrams)))

	return &Result{
		Markup:   preamble + "\n" + emitted.Markup,
		Theme:    resolved.Name(),
		Chain:    resolved.Chain,
		TMTheme:  resolved.TMTheme,
		Diagrams: emitted.Diagrams,
		FontDirs: dirs,
		Warnings: w.Items(),
	}, nil
}

// Check resolves the theme and parses the document without keeping the
// output. It returns the warnings a full render would produce.
func (c *Converter) Check(ctx context.Context, input Input, opts Options) ([]Warning, error) {
	res, err := c.Render(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	return res.Warnings, nil
}

// LoadTheme resolves a theme on its own. Contrast warnings are returned
// alongside it.
func (c *Converter) LoadTheme(src ThemeSource) (*ResolvedTheme, []Warning, error) {
	w := warnings.New()
	resolved, err := c.engine.Load(src, w)
	if err != nil {
		return nil, nil, err
	}
	return resolved, w.Items(), nil
}

// ListThemes returns the catalog: built-in themes plus those of the theme
// directory, sorted by name.
func (c *Converter) ListThemes() ([]ThemeInfo, error) {
	return assets.Catalog(c.loader)
}

// ListThemes returns the built-in catalog.
func ListThemes() ([]ThemeInfo, error) {
	return assets.Catalog(assets.NewEmbeddedLoader())
}

// themeSource applies the precedence options > front matter > default.
// A relative front matter theme path resolves against the source directory.
func (c *Converter) themeSource(input Input, opts Options, fm *frontmatter.FrontMatter) ThemeSource {
	if opts.Theme.Value != "" {
		return opts.Theme
	}
	if fm != nil && fm.Theme != "" {
		src := ParseThemeSource(fm.Theme)
		if src.Kind == theme.SourcePath && input.SourceDir != "" && !filepath.IsAbs(src.Value) {
			src.Value = filepath.Join(input.SourceDir, src.Value)
		}
		return src
	}
	return BuiltinTheme(DefaultTheme)
}

// document merges front matter and options into preamble settings.
func document(fm *frontmatter.FrontMatter, opts Options) typst.Document {
	var d typst.Document
	if fm != nil {
		d = typst.Document{
			Title:     fm.Title,
			Subtitle:  fm.Subtitle,
			Author:    fm.Author,
			Date:      fm.Date,
			Lang:      fm.Lang,
			Paper:     fm.Paper,
			FontSize:  fm.FontSize,
			Numbering: fm.Numbering,
			TOC:       theme.Bool(fm.TOC),
			TOCDepth:  fm.TOCDepth,
		}
	}
	if opts.Paper != "" {
		d.Paper = opts.Paper
	}
	if opts.TOC != nil {
		d.TOC = *opts.TOC
	}
	d.TitlePage = opts.TitlePage == nil || *opts.TitlePage
	return d
}

// fontDirs keeps the directories that exist and warns about the others.
func fontDirs(dirs []string, w *warnings.Collector) []string {
	var found []string
	for _, dir := range dirs {
		if !fileutil.DirExists(dir) {
			w.Addf(warnings.FontDirNotFound, "font directory not found: %s%s", dir, hints.ForFontDir())
			continue
		}
		found = append(found, dir)
	}
	return found
}
