package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	silkprint "github.com/alnah/go-silkprint"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"theme read", silkprint.ErrThemeRead, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", silkprint.ErrConfigNotFound, ExitUsage},
		{"config parse", silkprint.ErrConfigParse, ExitUsage},
		{"config invalid", silkprint.ErrConfigInvalid, ExitUsage},
		{"empty markdown", silkprint.ErrEmptyMarkdown, ExitUsage},
		{"invalid paper", silkprint.ErrInvalidPaperSize, ExitUsage},
		{"invalid theme dir", silkprint.ErrInvalidThemeDir, ExitUsage},
		{"front matter", silkprint.ErrFrontMatter, ExitUsage},
		{"theme not found", silkprint.ErrThemeNotFound, ExitUsage},
		{"theme invalid", silkprint.ErrThemeInvalid, ExitUsage},
		{"theme cycle", silkprint.ErrThemeCycle, ExitUsage},
		{"theme depth", silkprint.ErrThemeInheritanceDepth, ExitUsage},
		{"wrapped theme not found", fmt.Errorf("doc.md: %w", silkprint.ErrThemeNotFound), ExitUsage},

		{"unknown error", errors.New("boom"), ExitGeneral},
		{"joined errors", errors.Join(errors.New("boom"), ErrWriteOutput), ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_BelowShellReserved(t *testing.T) {
	t.Parallel()

	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code < 0 || code >= 126 {
			t.Errorf("exit code %d outside 0..125", code)
		}
	}
}
