// Package yamlutil wraps YAML parsing for front matter and config files so
// the rest of the module never imports the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a front matter block or config file.
var MaxInputSize = 1 << 20

// Sentinel errors for input checks.
var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// checkInput rejects empty or oversized input and a nil destination.
func checkInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v. Unknown keys are ignored; front matter
// reports them separately through Keys.
func Unmarshal(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict decodes data into v and fails on keys v does not declare.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Keys returns the top-level mapping keys of data in document order.
func Keys(data []byte) ([]string, error) {
	var m yaml.MapSlice
	if err := checkInput(data, &m); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	keys := make([]string, 0, len(m))
	for _, item := range m {
		keys = append(keys, fmt.Sprint(item.Key))
	}
	return keys, nil
}

// FormatError returns the message of a YAML decoding error without the
// source excerpt goccy/go-yaml prints below it.
func FormatError(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "\n"); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimPrefix(msg, "yamlutil: ")
}
