// Package config loads the optional silkprint.yaml project file holding
// defaults for the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-silkprint/internal/fileutil"
	"github.com/alnah/go-silkprint/internal/yamlutil"
)

// DefaultName is the config name searched when none is given.
const DefaultName = "silkprint"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// MaxWorkers bounds the batch worker count.
const MaxWorkers = 16

// Config holds project defaults. Zero values mean "not set"; command line
// flags always win over the file.
type Config struct {
	Theme     string       `yaml:"theme" validate:"max=4096"`
	Paper     string       `yaml:"paper" validate:"omitempty,paper"`
	TOC       *bool        `yaml:"toc"`
	TitlePage *bool        `yaml:"titlePage"`
	FontDirs  []string     `yaml:"fontDirs" validate:"dive,required,max=4096"`
	ThemeDir  string       `yaml:"themeDir" validate:"max=4096"`
	Output    OutputConfig `yaml:"output"`
	Workers   int          `yaml:"workers" validate:"min=0,max=16"`
}

// OutputConfig defines where generated files go.
type OutputConfig struct {
	Dir string `yaml:"dir" validate:"max=4096"` // empty = next to the source
}

var papers = map[string]bool{"a4": true, "a5": true, "letter": true, "legal": true}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("paper", func(fl validator.FieldLevel) bool {
			return papers[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
		})
		validateInst = v
	})
	return validateInst
}

// Validate reports the first invalid field as ErrConfigInvalid with a
// yaml-style path such as "fontDirs[0]".
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	fe := verrs[0]
	field := yamlishFieldName(fe)
	switch fe.Tag() {
	case "paper":
		return fmt.Errorf("%w: %s: %q is not a known paper size", ErrConfigInvalid, field, fe.Value())
	case "max":
		return fmt.Errorf("%w: %s exceeds %s", ErrConfigInvalid, field, fe.Param())
	case "min":
		return fmt.Errorf("%w: %s must be at least %s", ErrConfigInvalid, field, fe.Param())
	case "required":
		return fmt.Errorf("%w: %s is empty", ErrConfigInvalid, field)
	}
	return fmt.Errorf("%w: %s failed validation for tag %q", ErrConfigInvalid, field, fe.Tag())
}

// yamlishFieldName drops the root struct name from the namespace.
func yamlishFieldName(fe validator.FieldError) string {
	_, field, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return field
}

// Load reads a config by path or by name. A name (no path separator) is
// searched as NAME.yaml and NAME.yml in the working directory, then in the
// user config directory under "silkprint". A missing file is an error.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !isPath(nameOrPath) {
		var err error
		if path, err = resolvePath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, path, yamlutil.FormatError(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SearchPaths lists the files Load tries for name, in order.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, DefaultName, name+ext))
		}
	}
	return paths
}

func isPath(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return fileutil.IsFilePath(s) || ext == ".yaml" || ext == ".yml"
}

func resolvePath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
