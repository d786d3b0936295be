package main

// Notes:
// - exitCodeFor: we test sentinel errors from the md2site and config
//   packages, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and that custom codes stay below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"input not dir", md2site.ErrInputNotDir, ExitIO},
		{"passthrough not found", md2site.ErrPassthroughNotFound, ExitIO},
		{"serve", ErrServe, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/content errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"unknown style", config.ErrUnknownStyle, ExitUsage},
		{"invalid dir", md2site.ErrInvalidDir, ExitUsage},
		{"duplicate permalink", md2site.ErrDuplicatePermalink, ExitUsage},
		{"invalid permalink", md2site.ErrInvalidPermalink, ExitUsage},
		{"layout not found", md2site.ErrLayoutNotFound, ExitUsage},
		{"layout cycle", md2site.ErrLayoutCycle, ExitUsage},
		{"front matter", md2site.ErrFrontMatter, ExitUsage},
		{"unclosed front matter", md2site.ErrUnclosedMatter, ExitUsage},
		{"unsafe clean", md2site.ErrUnsafeClean, ExitUsage},
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"unexpected args", ErrUnexpectedArgs, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"page render", md2site.ErrPageRender, ExitGeneral},
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

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
