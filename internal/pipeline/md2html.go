package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// HighlightSettings configures the syntax-highlight extension.
type HighlightSettings struct {
	Style       string // chroma style name, empty = DefaultHighlightStyle
	LineNumbers bool
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterSettings)

type converterSettings struct {
	highlight *HighlightSettings
	unsafe    bool
}

// WithHighlighting enables fenced code block highlighting.
func WithHighlighting(s HighlightSettings) ConverterOption {
	return func(c *converterSettings) {
		c.highlight = &s
	}
}

// WithUnsafeHTML lets raw HTML in Markdown through to the output.
// Blog posts routinely embed markup, so the builder turns this on.
func WithUnsafeHTML() ConverterOption {
	return func(c *converterSettings) {
		c.unsafe = true
	}
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// A single converter is safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and,
// when requested, syntax highlighting.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	var s converterSettings
	for _, opt := range opts {
		opt(&s)
	}

	extensions := []goldmark.Extender{
		extension.GFM,         // Tables, strikethrough, autolinks, task lists
		extension.Footnote,    // [^1] footnotes
		extension.Typographer, // Smart quotes and dashes
	}
	if s.highlight != nil {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(resolveStyleName(s.highlight.Style)),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // Stylesheet comes from HighlightCSS
				chromahtml.WithLineNumbers(s.highlight.LineNumbers),
			),
		))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if s.unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Anchor links to headings
			parser.WithAttribute(),     // {#id .class} on headings
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet for chroma's CSS classes in the given
// style. The output matches what GoldmarkConverter emits with highlighting on.
func HighlightCSS(styleName string) (string, error) {
	style := styles.Get(resolveStyleName(styleName))
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight stylesheet: %w", err)
	}
	return buf.String(), nil
}

func resolveStyleName(name string) string {
	if name == "" {
		return DefaultHighlightStyle
	}
	return strings.ToLower(name)
}
