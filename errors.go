package md2site

import (
	"errors"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilConfig   = errors.New("site config is nil")
	ErrNilRegistry = errors.New("registry is nil")
	ErrInvalidDir  = errors.New("invalid directory")
	ErrInputNotDir = errors.New("input directory not found")

	// Page errors.
	ErrDuplicatePermalink = errors.New("duplicate permalink")
	ErrInvalidPermalink   = errors.New("invalid permalink")
	ErrPageRender         = errors.New("page rendering failed")

	// Passthrough errors.
	ErrPassthroughNotFound = errors.New("passthrough copy source not found")
	ErrInvalidPassthrough  = errors.New("invalid passthrough copy path")

	// Plugin errors.
	ErrInvalidPluginOptions = errors.New("invalid plugin options")

	// Clean errors.
	ErrUnsafeClean = errors.New("refusing to remove directory")
)

// Errors surfaced from internal packages, re-exported for errors.Is checks.
var (
	ErrLayoutNotFound = assets.ErrLayoutNotFound
	ErrInvalidLayout  = assets.ErrInvalidAssetName
	ErrLayoutCycle    = pipeline.ErrLayoutCycle
	ErrLayoutTooDeep  = pipeline.ErrLayoutTooDeep
	ErrFrontMatter    = frontmatter.ErrInvalidField
	ErrUnclosedMatter = frontmatter.ErrMissingClosingDelimiter
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
