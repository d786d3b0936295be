package md2site

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// markdownExtensions are the source extensions rendered as pages.
var markdownExtensions = []string{".md", ".markdown"}

// page is a discovered source document.
type page struct {
	srcPath string // filesystem path
	relPath string // slash-separated, relative to the input directory
	matter  *frontmatter.Matter
	body    string
	date    time.Time // front matter date, or the file's modification time
	url     string    // "" when the page has no output
	outPath string    // slash-separated, relative to the output directory
}

func (p *page) ref() pipeline.PageRef {
	return pipeline.PageRef{
		Title:       p.matter.Title,
		Description: p.matter.Description,
		URL:         p.url,
		Date:        p.date,
		Tags:        p.matter.Tags,
	}
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, m := range markdownExtensions {
		if ext == m {
			return true
		}
	}
	return false
}

// resolveOutput computes the output file and URL for a page.
//
// Without a permalink, pages get pretty URLs:
//
//	index.md        -> index.html        (/)
//	about.md        -> about/index.html  (/about/)
//	posts/index.md  -> posts/index.html  (/posts/)
//	posts/x.md      -> posts/x/index.html (/posts/x/)
//
// A permalink ending in "/" gets index.html appended; any other permalink
// names the output file directly.
func resolveOutput(relPath, permalink string) (outPath, url string, err error) {
	if permalink != "" {
		return resolvePermalink(permalink)
	}

	dir, file := path.Split(relPath)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "index" {
		outPath = path.Join(dir, "index.html")
	} else {
		outPath = path.Join(dir, stem, "index.html")
	}
	return outPath, urlFor(outPath), nil
}

func resolvePermalink(permalink string) (outPath, url string, err error) {
	p := strings.TrimSpace(permalink)
	if strings.Contains(p, "://") || strings.ContainsAny(p, "\\\x00") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPermalink, permalink)
	}

	clean := path.Clean("/" + p)
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", "", fmt.Errorf("%w: %q escapes the output directory", ErrInvalidPermalink, permalink)
		}
	}

	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || strings.HasSuffix(p, "/") || path.Ext(rel) == "" {
		outPath = path.Join(rel, "index.html")
	} else {
		outPath = rel
	}
	return outPath, urlFor(outPath), nil
}

// urlFor returns the site URL serving outPath.
func urlFor(outPath string) string {
	if outPath == "index.html" {
		return "/"
	}
	if strings.HasSuffix(outPath, "/index.html") {
		return "/" + strings.TrimSuffix(outPath, "index.html")
	}
	return "/" + outPath
}
