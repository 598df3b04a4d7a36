package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	silkprint "github.com/alnah/go-silkprint"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "silkprint %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet,
		colorEnabled(flags.common.color, env.Stderr, env))
	defer func() { _ = logger.Sync() }()

	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which
	// case the runtime default applies.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	defer undo()

	if err := execute(ctx, flags, positional, env, logger); err != nil {
		logger.Error(err.Error())
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// execute loads the configuration and dispatches to listing or rendering.
func execute(ctx context.Context, flags *cliFlags, positional []string, env *Environment, logger *zap.Logger) error {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), logger)

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	s := mergeSettings(flags, cfg)

	conv, err := silkprint.NewConverter(
		silkprint.WithLogger(logger),
		silkprint.WithThemeDir(s.themeDir),
		silkprint.WithClock(env.Now),
	)
	if err != nil {
		return err
	}

	if flags.listThemes {
		return printThemes(env.Stdout, conv, colorEnabled(flags.common.color, env.Stdout, env))
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a Markdown file or directory (see --help)", ErrNoInput)
	}
	return renderAll(ctx, conv, s, positional[0], flags.check, env, logger)
}
