package md2site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// copyPassthrough copies every passthrough path from the input directory to
// the same relative path under the output directory, byte for byte.
// It returns the files written, slash-separated and relative to the output.
func (b *Builder) copyPassthrough(ctx context.Context) ([]string, error) {
	var copied []string
	for _, raw := range b.passthrough {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := normalizePassthrough(raw)
		if rel == "" || path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPassthrough, raw)
		}

		src := filepath.Join(b.inputDir, filepath.FromSlash(rel))
		dst := filepath.Join(b.outputDir, filepath.FromSlash(rel))

		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPassthroughNotFound, raw)
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := fileutil.CopyFile(src, dst); err != nil {
				return nil, fmt.Errorf("passthrough %s: %w", raw, err)
			}
			copied = append(copied, rel)
			continue
		}

		written, err := fileutil.CopyDir(src, dst)
		if err != nil {
			return nil, fmt.Errorf("passthrough %s: %w", raw, err)
		}
		for _, w := range written {
			r, err := filepath.Rel(b.outputDir, w)
			if err != nil {
				return nil, err
			}
			copied = append(copied, filepath.ToSlash(r))
		}
		b.cfg.logger.Debug("passthrough copied", zap.String("path", raw), zap.Int("files", len(written)))
	}
	return copied, nil
}

// writeHighlightCSS writes the chroma stylesheet when highlighting is on and
// no passthrough copy already provided one. Reports whether it wrote it.
func (b *Builder) writeHighlightCSS(copied []string) (bool, error) {
	if b.highlight == nil {
		return false, nil
	}
	for _, c := range copied {
		if c == HighlightStylesheet {
			return false, nil
		}
	}

	css, err := pipeline.HighlightCSS(b.highlight.Style)
	if err != nil {
		return false, err
	}
	dst := filepath.Join(b.outputDir, filepath.FromSlash(HighlightStylesheet))
	if err := fileutil.WriteFile(dst, []byte(css)); err != nil {
		return false, err
	}
	return true, nil
}

// stylesheetURLs returns the site URLs of the .css files among paths.
func stylesheetURLs(paths []string) []string {
	var urls []string
	for _, p := range paths {
		if strings.EqualFold(path.Ext(p), ".css") {
			urls = append(urls, "/"+p)
		}
	}
	return urls
}

func dedupeSorted(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}

// Clean removes cfg's output directory. It refuses to remove a directory
// that contains the input directory.
func Clean(cfg *SiteConfig) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if strings.TrimSpace(cfg.Dir.Output) == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidDir)
	}

	input := cfg.Dir.Input
	if input == "" {
		input = DefaultInputDir
	}
	unsafe, err := fileutil.IsWithin(cfg.Dir.Output, input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeClean, err)
	}
	if unsafe {
		return fmt.Errorf("%w: %s contains the input directory", ErrUnsafeClean, cfg.Dir.Output)
	}

	if err := os.RemoveAll(cfg.Dir.Output); err != nil {
		return fmt.Errorf("removing %s: %w", cfg.Dir.Output, err)
	}
	return nil
}
