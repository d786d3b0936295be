package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// Chroma class names emitted by the HTML formatter with classes enabled.
const (
	chromaBlockClass     = "chroma"
	chromaLineClass      = "line"
	chromaCodeLineClass  = "cl"
	chromaHighlightClass = "hl"
)

// ApplyLineWrapping enforces the line wrapper policy on highlighted code.
//
// Chroma wraps every code line in <span class="line"><span class="cl">.
// When alwaysWrap is true the markup is kept so every line of every block
// carries its marker element, highlighted or not. When false, blocks that
// have no highlighted line lose their line wrappers; blocks with at least
// one highlighted line are left intact.
func ApplyLineWrapping(htmlContent string, alwaysWrap bool) (string, error) {
	if alwaysWrap || !strings.Contains(htmlContent, chromaBlockClass) {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	var blocks []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Data == "pre" && hasClass(n, chromaBlockClass) {
			blocks = append(blocks, n)
		}
	})
	if len(blocks) == 0 {
		return htmlContent, nil
	}

	changed := false
	for _, pre := range blocks {
		if unwrapLines(pre) {
			changed = true
		}
	}
	if !changed {
		return htmlContent, nil
	}
	return renderHTML(doc, isFragment)
}

// unwrapLines strips line wrappers from a block without highlighted lines.
// Reports whether the block was modified.
func unwrapLines(pre *html.Node) bool {
	var lines []*html.Node
	highlighted := false
	walk(pre, func(n *html.Node) {
		if n.Data != "span" {
			return
		}
		if hasClass(n, chromaLineClass) || hasClass(n, chromaCodeLineClass) {
			lines = append(lines, n)
		}
		if hasClass(n, chromaHighlightClass) {
			highlighted = true
		}
	})
	if highlighted || len(lines) == 0 {
		return false
	}
	for _, n := range lines {
		unwrap(n)
	}
	return true
}
