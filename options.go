package md2site

import (
	"time"

	"go.uber.org/zap"
)

// DefaultIncludesDir is the layouts directory, relative to the input directory.
const DefaultIncludesDir = "_includes"

// SiteMeta is site-wide metadata exposed to layouts as .Site.
type SiteMeta struct {
	Title  string
	URL    string
	Author string
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	logger      *zap.Logger
	workers     int
	includesDir string
	site        SiteMeta
	drafts      bool
	dateFormat  string
	now         func() time.Time
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.cfg.logger = l
		}
	}
}

// WithWorkers bounds how many pages render concurrently.
// Zero or less picks a value from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.cfg.workers = n
	}
}

// WithIncludesDir sets the layouts directory, relative to the input
// directory unless absolute.
func WithIncludesDir(dir string) Option {
	return func(b *Builder) {
		b.cfg.includesDir = dir
	}
}

// WithSite sets the site metadata available to layouts.
func WithSite(site SiteMeta) Option {
	return func(b *Builder) {
		b.cfg.site = site
	}
}

// WithDrafts includes pages marked "draft: true".
func WithDrafts(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.drafts = enabled
	}
}

// WithDateFormat sets the format formatDate uses without an argument.
func WithDateFormat(format string) Option {
	return func(b *Builder) {
		b.cfg.dateFormat = format
	}
}

// WithNow sets the clock used for build timing.
// Panics if now is nil (programmer error).
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("md2site: WithNow requires a non-nil clock")
	}
	return func(b *Builder) {
		b.cfg.now = now
	}
}
