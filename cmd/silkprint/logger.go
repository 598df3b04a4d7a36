package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to w. Quiet keeps errors
// only, verbose adds debug events.
func newLogger(w io.Writer, verbose, quiet, color bool) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), level)
	return zap.New(core)
}

// colorEnabled resolves --color against the terminal state of w.
func colorEnabled(mode string, w io.Writer, env *Environment) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if env.Getenv("NO_COLOR") != "" {
		return false
	}
	return env.IsTerminal != nil && env.IsTerminal(w)
}
