package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid flags or flag combinations.
var ErrUsage = errors.New("usage error")

// Color modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// commonFlags holds flags that control the CLI itself.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	color   string
}

// renderFlags holds flags that shape each rendered document.
type renderFlags struct {
	theme       string
	themeDir    string
	paper       string
	toc         bool
	noTOC       bool
	noTitlePage bool
	fontDirs    []string
}

// cliFlags holds every flag.
type cliFlags struct {
	common     commonFlags
	render     renderFlags
	output     string
	workers    int
	check      bool
	listThemes bool
	help       bool
	version    bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.StringVar(&f.color, "color", colorAuto, "color output: auto, always, never")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name or path to a .toml file")
	fs.StringVar(&f.themeDir, "theme-dir", "", "directory of custom themes")
	fs.StringVarP(&f.paper, "paper", "p", "", "paper size: a4, letter, a5, legal")
	fs.BoolVar(&f.toc, "toc", false, "force the table of contents on")
	fs.BoolVar(&f.noTOC, "no-toc", false, "force the table of contents off")
	fs.BoolVar(&f.noTitlePage, "no-title-page", false, "suppress the title page")
	fs.StringArrayVar(&f.fontDirs, "font-dir", nil, "additional font directory (repeatable)")
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("silkprint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	fs.StringVarP(&f.output, "output", "o", "", `output file or directory ("-" for stdout)`)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directories (0 = auto)")
	fs.BoolVar(&f.check, "check", false, "validate input and theme without writing output")
	fs.BoolVar(&f.listThemes, "list-themes", false, "list available themes and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := f.validate(fs.Args()); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validate rejects conflicting flags.
func (f *cliFlags) validate(positional []string) error {
	switch {
	case f.common.quiet && f.common.verbose:
		return fmt.Errorf("%w: cannot combine --quiet and --verbose", ErrUsage)
	case f.render.toc && f.render.noTOC:
		return fmt.Errorf("%w: cannot combine --toc and --no-toc", ErrUsage)
	case f.check && f.output != "":
		return fmt.Errorf("%w: --check writes no output, drop --output", ErrUsage)
	case len(positional) > 1:
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}
	switch f.common.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrUsage, f.common.color)
	}
	return nil
}

// tocOverride resolves --toc and --no-toc. Nil defers to front matter.
func (f *renderFlags) tocOverride() *bool {
	switch {
	case f.toc:
		return boolPtr(true)
	case f.noTOC:
		return boolPtr(false)
	}
	return nil
}

// titlePageOverride resolves --no-title-page. Nil defers to the theme.
func (f *renderFlags) titlePageOverride() *bool {
	if f.noTitlePage {
		return boolPtr(false)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
