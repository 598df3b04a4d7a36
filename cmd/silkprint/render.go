package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	silkprint "github.com/alnah/go-silkprint"
	"github.com/alnah/go-silkprint/internal/config"
	"github.com/alnah/go-silkprint/internal/fileutil"
	"github.com/alnah/go-silkprint/internal/hints"
)

// Sentinel errors for output handling.
var (
	ErrReadMarkdown = errors.New("failed to read markdown")
	ErrWriteOutput  = errors.New("failed to write output")
)

const outputPerm = 0o644

// settings is the merged configuration of one run.
type settings struct {
	theme    string
	themeDir string
	output   string
	workers  int
	opts     silkprint.Options
}

// loadConfig loads the named config, or the default one when present.
func loadConfig(name string) (*config.Config, error) {
	if name != "" {
		cfg, err := config.Load(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return cfg, err
	}
	cfg, err := config.Load(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.Config{}, nil
	}
	return cfg, err
}

// mergeSettings applies flags over the config file.
func mergeSettings(f *cliFlags, cfg *config.Config) settings {
	s := settings{
		theme:    cfg.Theme,
		themeDir: cfg.ThemeDir,
		output:   cfg.Output.Dir,
		workers:  cfg.Workers,
		opts: silkprint.Options{
			Paper:     cfg.Paper,
			TOC:       cfg.TOC,
			TitlePage: cfg.TitlePage,
			FontDirs:  cfg.FontDirs,
		},
	}

	r := f.render
	if r.theme != "" {
		s.theme = r.theme
	}
	if r.themeDir != "" {
		s.themeDir = r.themeDir
	}
	if r.paper != "" {
		s.opts.Paper = r.paper
	}
	if toc := r.tocOverride(); toc != nil {
		s.opts.TOC = toc
	}
	if tp := r.titlePageOverride(); tp != nil {
		s.opts.TitlePage = tp
	}
	if len(r.fontDirs) > 0 {
		s.opts.FontDirs = r.fontDirs
	}
	if f.output != "" {
		s.output = f.output
	}
	if f.workers != 0 {
		s.workers = f.workers
	}
	if s.theme != "" {
		s.opts.Theme = silkprint.ParseThemeSource(s.theme)
	}
	return s
}

// renderAll renders every discovered file and writes the outputs. It keeps
// going after a failed file and returns the joined errors for the caller
// to report.
func renderAll(ctx context.Context, conv *silkprint.Converter, s settings, input string, check bool, env *Environment, logger *zap.Logger) error {
	if err := validateWorkers(s.workers); err != nil {
		return err
	}
	files, err := discoverFiles(input, s.output)
	if err != nil {
		return err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.InputPath
	}
	logger.Debug("rendering",
		zap.Int("files", len(files)),
		zap.Int("workers", silkprint.ResolvePoolSize(s.workers)))

	var errs []error
	for i, res := range conv.RenderFiles(ctx, paths, s.opts, s.workers) {
		if res.Err != nil {
			if errors.Is(res.Err, os.ErrNotExist) || errors.Is(res.Err, os.ErrPermission) {
				res.Err = fmt.Errorf("%w: %w", ErrReadMarkdown, res.Err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
			continue
		}
		for _, w := range res.Result.Warnings {
			logger.Warn(w.Message, zap.String("file", res.Path), zap.Stringer("kind", w.Kind))
		}
		if check {
			logger.Info("ok", zap.String("file", res.Path), zap.String("theme", res.Result.Theme))
			continue
		}
		if err := writeOutputs(files[i], res.Result, env.Stdout); err != nil {
			errs = append(errs, err)
			continue
		}
		if files[i].OutputPath != stdoutPath {
			logger.Info("wrote", zap.String("file", files[i].OutputPath), zap.String("theme", res.Result.Theme))
		}
	}
	return errors.Join(errs...)
}

// writeOutputs writes the markup and its sidecars. On stdout only the
// markup is written.
func writeOutputs(f FileToRender, res *silkprint.Result, stdout io.Writer) error {
	if f.OutputPath == stdoutPath {
		if _, err := io.WriteString(stdout, res.Markup); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), 0o750); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := writeFile(f.OutputPath, res.Markup); err != nil {
		return err
	}
	if res.TMTheme != "" {
		if err := writeFile(f.tmThemePath(), res.TMTheme); err != nil {
			return err
		}
	}
	for _, d := range res.Diagrams {
		if err := writeFile(f.diagramPath(d.Index), d.Source); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := fileutil.WriteAtomic(path, []byte(content), outputPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}
