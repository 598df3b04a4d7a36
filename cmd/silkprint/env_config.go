package main

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-silkprint/internal/config"
)

const envPrefix = "SILKPRINT_"

// envConfig holds configuration from SILKPRINT_* environment variables.
type envConfig struct {
	ConfigPath string // SILKPRINT_CONFIG
	Theme      string // SILKPRINT_THEME
	ThemeDir   string // SILKPRINT_THEME_DIR
	Paper      string // SILKPRINT_PAPER
	OutputDir  string // SILKPRINT_OUTPUT_DIR
	Workers    int    // SILKPRINT_WORKERS
}

// knownEnvVars lists valid SILKPRINT_* environment variables.
var knownEnvVars = map[string]bool{
	"SILKPRINT_CONFIG":     true,
	"SILKPRINT_THEME":      true,
	"SILKPRINT_THEME_DIR":  true,
	"SILKPRINT_PAPER":      true,
	"SILKPRINT_OUTPUT_DIR": true,
	"SILKPRINT_WORKERS":    true,
}

// loadEnvConfig reads the recognized variables. A malformed worker count
// is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("SILKPRINT_CONFIG"),
		Theme:      getenv("SILKPRINT_THEME"),
		ThemeDir:   getenv("SILKPRINT_THEME_DIR"),
		Paper:      getenv("SILKPRINT_PAPER"),
		OutputDir:  getenv("SILKPRINT_OUTPUT_DIR"),
	}
	if workers := getenv("SILKPRINT_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

// warnUnknownEnvVars logs SILKPRINT_* variables that nothing reads.
func warnUnknownEnvVars(environ []string, logger *zap.Logger) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
		}
	}
}

// applyEnvConfig fills config values the file left unset.
// Precedence: flags > config file > environment > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" && cfg.Theme == "" {
		cfg.Theme = env.Theme
	}
	if env.ThemeDir != "" && cfg.ThemeDir == "" {
		cfg.ThemeDir = env.ThemeDir
	}
	if env.Paper != "" && cfg.Paper == "" {
		cfg.Paper = env.Paper
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
