package main

import (
	"errors"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// Exit codes for the md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or site content
	ExitIO      = 3 // File not found, permission denied, listen failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2site.ErrInputNotDir) ||
		errors.Is(err, md2site.ErrPassthroughNotFound) ||
		errors.Is(err, ErrServe) {
		return ExitIO
	}

	// Usage/config/content errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidDir) ||
		errors.Is(err, config.ErrInvalidPassthrough) ||
		errors.Is(err, config.ErrUnknownStyle) ||
		errors.Is(err, md2site.ErrInvalidDir) ||
		errors.Is(err, md2site.ErrInvalidPassthrough) ||
		errors.Is(err, md2site.ErrInvalidPluginOptions) ||
		errors.Is(err, md2site.ErrDuplicatePermalink) ||
		errors.Is(err, md2site.ErrInvalidPermalink) ||
		errors.Is(err, md2site.ErrLayoutNotFound) ||
		errors.Is(err, md2site.ErrInvalidLayout) ||
		errors.Is(err, md2site.ErrLayoutCycle) ||
		errors.Is(err, md2site.ErrLayoutTooDeep) ||
		errors.Is(err, md2site.ErrFrontMatter) ||
		errors.Is(err, md2site.ErrUnclosedMatter) ||
		errors.Is(err, md2site.ErrUnsafeClean) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
