package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/hints"
)

// site is what every command works from: the directories and rules
// Configure produced, layered with the config file, env vars and flags.
type site struct {
	cfg  *md2site.SiteConfig
	reg  *md2site.Registry
	file *config.Config
	env  *envConfig
}

// loadSite resolves configuration with precedence
// flags > env > config file > Configure defaults.
func loadSite(common *commonFlags, flags *siteFlags, env *Environment) (*site, error) {
	envCfg := loadEnvConfig()
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	fileCfg, err := loadFileConfig(cmp.Or(common.config, envCfg.ConfigPath))
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, fileCfg)
	applySiteFlags(flags, fileCfg)

	reg := md2site.NewRegistry()
	cfg := md2site.Configure(reg)
	reg = applyFileConfig(fileCfg, reg, cfg)

	return &site{cfg: cfg, reg: reg, file: fileCfg, env: envCfg}, nil
}

// loadFileConfig loads an explicit config, or md2site.yaml when present.
func loadFileConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound())
	}
	return cfg, err
}

// applyEnvConfig copies set environment values over the file values.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Dir.Input = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Dir.Output = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
}

// applySiteFlags copies explicitly given flags over env and file values.
func applySiteFlags(f *siteFlags, cfg *config.Config) {
	if f.input != "" {
		cfg.Dir.Input = f.input
	}
	if f.output != "" {
		cfg.Dir.Output = f.output
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.drafts {
		cfg.Drafts = true
	}
}

// applyFileConfig layers fc over the registrations and directories that
// Configure produced. Zero values keep the Configure defaults. The returned
// registry replaces reg when highlighting is disabled.
func applyFileConfig(fc *config.Config, reg *md2site.Registry, cfg *md2site.SiteConfig) *md2site.Registry {
	if fc.Dir.Input != "" {
		cfg.Dir.Input = fc.Dir.Input
	}
	if fc.Dir.Output != "" {
		cfg.Dir.Output = fc.Dir.Output
	}
	for _, p := range fc.PassthroughCopy {
		reg.AddPassthroughCopy(p)
	}

	if fc.Highlight.Disabled {
		return withoutPlugin(reg, md2site.PluginSyntaxHighlight)
	}
	p, ok := reg.Plugin(md2site.PluginSyntaxHighlight)
	if !ok {
		return reg
	}
	opts, ok := p.Options.(md2site.HighlightOptions)
	if !ok {
		return reg
	}
	if fc.Highlight.AlwaysWrapLineHighlights != nil {
		opts.AlwaysWrapLineHighlights = *fc.Highlight.AlwaysWrapLineHighlights
	}
	if fc.Highlight.Style != "" {
		opts.Style = fc.Highlight.Style
	}
	if fc.Highlight.LineNumbers {
		opts.LineNumbers = true
	}
	reg.AddPlugin(md2site.Plugin{Name: p.Name, Options: opts})
	return reg
}

// withoutPlugin copies reg, leaving out the plugin called name.
func withoutPlugin(reg *md2site.Registry, name string) *md2site.Registry {
	out := md2site.NewRegistry()
	for _, p := range reg.PassthroughCopies() {
		out.AddPassthroughCopy(p)
	}
	for _, p := range reg.Plugins() {
		if p.Name != name {
			out.AddPlugin(p)
		}
	}
	return out
}

// builderOptions turns the merged settings into md2site options.
func (s *site) builderOptions(logger *zap.Logger, env *Environment) []md2site.Option {
	opts := []md2site.Option{
		md2site.WithLogger(logger),
		md2site.WithWorkers(s.file.Workers),
		md2site.WithDrafts(s.file.Drafts),
		md2site.WithSite(md2site.SiteMeta{
			Title:  s.file.Site.Title,
			URL:    s.file.Site.URL,
			Author: s.file.Site.Author,
		}),
		md2site.WithNow(env.Now),
	}
	if s.file.Dir.Includes != "" {
		opts = append(opts, md2site.WithIncludesDir(s.file.Dir.Includes))
	}
	if s.file.DateFormat != "" {
		opts = append(opts, md2site.WithDateFormat(s.file.DateFormat))
	}
	return opts
}

// includesDir is the layouts directory as the user would type it.
func (s *site) includesDir() string {
	dir := cmp.Or(s.file.Dir.Includes, md2site.DefaultIncludesDir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.cfg.Dir.Input, dir)
}

// withHint appends an actionable hint to errors users commonly hit.
func (s *site) withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, md2site.ErrLayoutNotFound):
		hint = hints.ForLayoutNotFound(s.includesDir(), assets.NewEmbeddedLoader().Names())
	case errors.Is(err, md2site.ErrPassthroughNotFound):
		hint = hints.ForPassthroughNotFound()
	case errors.Is(err, md2site.ErrDuplicatePermalink):
		hint = hints.ForDuplicatePermalink()
	case errors.Is(err, os.ErrPermission):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// newLogger writes human-readable logs to w: errors only when quiet,
// debug output when verbose, info otherwise.
func newLogger(f *commonFlags, w io.Writer) *zap.Logger {
	config := zap.NewProductionConfig()
	switch {
	case f.verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case f.quiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// config.Build only opens OutputPaths; the core writes to w instead.
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(w), config.Level)
	return zap.New(core)
}
