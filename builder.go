package md2site

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// HighlightStylesheet is where the generated chroma stylesheet is written,
// relative to the output directory.
const HighlightStylesheet = "css/highlight.css"

// skippedDirs are never scanned for pages.
var skippedDirs = map[string]bool{
	"node_modules": true,
}

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.FencePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.LayoutLoader           = (*assets.LayoutResolver)(nil)
)

// Builder renders a site from the rules in a Registry and the directories
// of a SiteConfig. Create with NewBuilder and call Build; a Builder may be
// reused for successive builds but not for concurrent ones.
type Builder struct {
	cfg         builderConfig
	inputDir    string
	outputDir   string
	includesDir string
	passthrough []string
	highlight   *HighlightOptions // nil when syntax-highlight is not registered
	unknown     []string          // registered plugins this builder does not know

	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	layouts      *pipeline.LayoutRenderer
}

// BuildResult summarizes a build. Paths are slash-separated and relative to
// the output directory.
type BuildResult struct {
	Pages    []string
	Copied   []string
	Duration time.Duration
}

// NewBuilder creates a Builder for cfg's directories and reg's rules.
func NewBuilder(cfg *SiteConfig, reg *Registry, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}

	b := &Builder{
		cfg: builderConfig{
			logger:      zap.NewNop(),
			includesDir: DefaultIncludesDir,
			now:         time.Now,
		},
		inputDir:     filepath.Clean(cfg.Dir.Input),
		outputDir:    filepath.Clean(cfg.Dir.Output),
		passthrough:  reg.PassthroughCopies(),
		preprocessor: &pipeline.FencePreprocessor{},
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.validateDirs(cfg.Dir); err != nil {
		return nil, err
	}

	b.includesDir = b.cfg.includesDir
	if b.includesDir != "" && !filepath.IsAbs(b.includesDir) {
		b.includesDir = filepath.Join(b.inputDir, b.includesDir)
	}

	converterOpts := []pipeline.ConverterOption{pipeline.WithUnsafeHTML()}
	for _, p := range reg.Plugins() {
		if p.Name != PluginSyntaxHighlight {
			b.unknown = append(b.unknown, p.Name)
			continue
		}
		hl, err := highlightOptions(p.Options)
		if err != nil {
			return nil, err
		}
		b.highlight = hl
		converterOpts = append(converterOpts, pipeline.WithHighlighting(pipeline.HighlightSettings{
			Style:       hl.Style,
			LineNumbers: hl.LineNumbers,
		}))
	}
	b.converter = pipeline.NewGoldmarkConverter(converterOpts...)

	if _, err := b.newLayoutRenderer(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builder) validateDirs(dir DirConfig) error {
	if strings.TrimSpace(dir.Input) == "" {
		return fmt.Errorf("%w: input directory is empty", ErrInvalidDir)
	}
	if strings.TrimSpace(dir.Output) == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidDir)
	}
	inputInOutput, err := fileutil.IsWithin(b.outputDir, b.inputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if inputInOutput {
		return fmt.Errorf("%w: output %q contains input %q", ErrInvalidDir, dir.Output, dir.Input)
	}
	return nil
}

// highlightOptions extracts syntax-highlight options from a plugin record.
func highlightOptions(v any) (*HighlightOptions, error) {
	switch o := v.(type) {
	case nil:
		return &HighlightOptions{}, nil
	case HighlightOptions:
		return &o, nil
	case *HighlightOptions:
		if o == nil {
			return &HighlightOptions{}, nil
		}
		cp := *o
		return &cp, nil
	default:
		return nil, fmt.Errorf("%w: %s: unexpected options type %T", ErrInvalidPluginOptions, PluginSyntaxHighlight, v)
	}
}

// newLayoutRenderer reads the includes directory afresh, so a rebuild sees
// layouts added or edited since the previous build.
func (b *Builder) newLayoutRenderer() (*pipeline.LayoutRenderer, error) {
	resolver, err := assets.NewLayoutResolver(b.includesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: includes: %v", ErrInvalidDir, err)
	}
	return pipeline.NewLayoutRenderer(resolver, b.cfg.dateFormat, b.cfg.site.URL)
}

// Build renders every page and copies every passthrough path.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := b.cfg.now()
	log := b.cfg.logger

	if !fileutil.DirExists(b.inputDir) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotDir, b.inputDir)
	}
	for _, name := range b.unknown {
		log.Warn("ignoring unknown plugin", zap.String("plugin", name))
	}

	layouts, err := b.newLayoutRenderer()
	if err != nil {
		return nil, err
	}
	b.layouts = layouts

	sources, err := b.discover(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := b.loadPages(ctx, sources)
	if err != nil {
		return nil, err
	}

	copied, err := b.copyPassthrough(ctx)
	if err != nil {
		return nil, err
	}
	generated, err := b.writeHighlightCSS(copied)
	if err != nil {
		return nil, err
	}
	stylesheets := stylesheetURLs(copied)
	if generated {
		stylesheets = append(stylesheets, "/"+HighlightStylesheet)
	}
	stylesheets = dedupeSorted(stylesheets)

	collections := buildCollections(pages)
	links := linkResolver(pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(b.cfg.workers))

	var mu sync.Mutex
	written := make([]string, 0, len(pages))
	for _, p := range pages {
		g.Go(func() error {
			if err := b.renderPage(gctx, p, collections, stylesheets, links); err != nil {
				return err
			}
			mu.Lock()
			written = append(written, p.outPath)
			mu.Unlock()
			log.Debug("page rendered", zap.String("path", p.relPath), zap.String("output", p.outPath))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	sort.Strings(copied)
	result := &BuildResult{
		Pages:    written,
		Copied:   copied,
		Duration: b.cfg.now().Sub(start),
	}
	log.Info("build complete",
		zap.Int("pages", len(result.Pages)),
		zap.Int("copied", len(result.Copied)),
		zap.String("output", b.outputDir),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// discover returns the Markdown sources under the input directory, as
// slash-separated paths relative to it, in lexical order.
func (b *Builder) discover(ctx context.Context) ([]string, error) {
	excluded := []string{b.outputDir}
	if b.includesDir != "" {
		excluded = append(excluded, b.includesDir)
	}
	for _, p := range b.passthrough {
		excluded = append(excluded, filepath.Join(b.inputDir, filepath.FromSlash(normalizePassthrough(p))))
	}
	for i, dir := range excluded {
		if abs, err := filepath.Abs(dir); err == nil {
			excluded[i] = abs
		}
	}

	var sources []string
	err := filepath.WalkDir(b.inputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if p == b.inputDir {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skippedDirs[name] {
				return filepath.SkipDir
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			for _, ex := range excluded {
				if abs == ex {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !d.Type().IsRegular() || !isMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(b.inputDir, p)
		if err != nil {
			return err
		}
		sources = append(sources, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

// loadPages reads and parses sources, drops drafts and pages without
// output, and assigns output paths.
func (b *Builder) loadPages(ctx context.Context, sources []string) ([]*page, error) {
	pages := make([]*page, 0, len(sources))
	owners := make(map[string]string, len(sources))

	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := b.loadPage(rel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		if p == nil {
			continue
		}
		if owner, ok := owners[p.outPath]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrDuplicatePermalink, owner, rel, p.outPath)
		}
		owners[p.outPath] = rel
		pages = append(pages, p)
	}
	return pages, nil
}

// loadPage returns nil for pages that produce no output.
func (b *Builder) loadPage(rel string) (*page, error) {
	src := filepath.Join(b.inputDir, filepath.FromSlash(rel))
	content, err := os.ReadFile(src) // #nosec G304 -- discovered under the input directory
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}

	fm, body, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, err
	}
	matter, err := frontmatter.Parse(fm)
	if err != nil {
		return nil, err
	}

	if matter.Draft && !b.cfg.drafts {
		b.cfg.logger.Debug("skipping draft", zap.String("path", rel))
		return nil, nil
	}
	if matter.NoOutput {
		b.cfg.logger.Debug("skipping page without output", zap.String("path", rel))
		return nil, nil
	}

	outPath, url, err := resolveOutput(rel, matter.Permalink)
	if err != nil {
		return nil, err
	}

	date := info.ModTime().UTC()
	if matter.HasDate {
		date = matter.Date
	}

	return &page{
		srcPath: src,
		relPath: rel,
		matter:  matter,
		body:    string(body),
		date:    date,
		url:     url,
		outPath: outPath,
	}, nil
}

func (b *Builder) renderPage(ctx context.Context, p *page, collections map[string][]pipeline.PageRef, stylesheets []string, links pipeline.LinkResolver) error {
	fail := func(err error) error {
		return fmt.Errorf("%w: %s: %w", ErrPageRender, p.relPath, err)
	}

	md := b.preprocessor.PreprocessMarkdown(ctx, p.body)
	html, err := b.converter.ToHTML(ctx, md)
	if err != nil {
		return fail(err)
	}
	if b.highlight != nil {
		if html, err = pipeline.ApplyLineWrapping(html, b.highlight.AlwaysWrapLineHighlights); err != nil {
			return fail(err)
		}
	}
	if html, err = pipeline.RewriteMarkdownLinks(html, path.Dir(p.relPath), links); err != nil {
		return fail(err)
	}

	out, err := b.layouts.Render(p.matter.Layout, pipeline.LayoutData{
		Title:       p.matter.Title,
		Description: p.matter.Description,
		Date:        p.date,
		HasDate:     p.matter.HasDate,
		Tags:        p.matter.Tags,
		URL:         p.url,
		Content:     template.HTML(html), // #nosec G203 -- rendered from the site's own Markdown
		Page:        p.matter.Data,
		Site: pipeline.SiteData{
			Title:  b.cfg.site.Title,
			URL:    b.cfg.site.URL,
			Author: b.cfg.site.Author,
		},
		Collections: collections,
		Stylesheets: stylesheets,
	})
	if err != nil {
		return fail(err)
	}

	dst := filepath.Join(b.outputDir, filepath.FromSlash(p.outPath))
	if err := fileutil.WriteFile(dst, []byte(out)); err != nil {
		return fail(err)
	}
	return nil
}

// linkResolver maps page sources to their URLs.
func linkResolver(pages []*page) pipeline.LinkResolver {
	urls := make(map[string]string, len(pages))
	for _, p := range pages {
		urls[p.relPath] = p.url
	}
	return func(src string) (string, bool) {
		u, ok := urls[src]
		return u, ok
	}
}
