package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
)

// LinkResolver maps a Markdown source path, relative to the input
// directory and slash-separated, to the URL of the page built from it.
type LinkResolver func(sourcePath string) (url string, ok bool)

// RewriteMarkdownLinks points relative links to other Markdown files at the
// URLs of the pages generated from them. sourceDir is the slash-separated
// directory of the current page relative to the input directory.
//
// Rewrites a[href] ending in .md or .markdown (with optional fragment).
// Leaves URLs, anchors, absolute paths and unknown targets unchanged.
func RewriteMarkdownLinks(htmlContent, sourceDir string, resolve LinkResolver) (string, error) {
	if resolve == nil || !strings.Contains(htmlContent, ".md") {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	changed := false
	walk(doc, func(n *html.Node) {
		if n.Data != "a" {
			return
		}
		for i, a := range n.Attr {
			if a.Key != "href" {
				continue
			}
			if url, ok := resolveLink(a.Val, sourceDir, resolve); ok {
				n.Attr[i].Val = url
				changed = true
			}
		}
	})
	if !changed {
		return htmlContent, nil
	}
	return renderHTML(doc, isFragment)
}

func resolveLink(href, sourceDir string, resolve LinkResolver) (string, bool) {
	if !isRelativePath(href) {
		return "", false
	}

	target, fragment, _ := strings.Cut(href, "#")
	ext := strings.ToLower(path.Ext(target))
	if ext != ".md" && ext != ".markdown" {
		return "", false
	}

	joined := path.Join(sourceDir, target)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}

	url, ok := resolve(joined)
	if !ok {
		return "", false
	}
	if fragment != "" {
		url += "#" + fragment
	}
	return url, true
}

// isRelativePath returns true if the link should be considered for rewriting.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}
	if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "/") {
		return false
	}
	if strings.Contains(p, "://") || strings.HasPrefix(p, "mailto:") || strings.HasPrefix(p, "data:") {
		return false
	}
	return true
}
