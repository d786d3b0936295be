package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/frontmatter"
)

// MaxLayoutDepth caps how many layouts a page may chain through.
const MaxLayoutDepth = 10

// Sentinel errors for layout rendering.
var (
	ErrLayoutCycle    = errors.New("layout chain contains a cycle")
	ErrLayoutTooDeep  = errors.New("layout chain too deep")
	ErrLayoutParse    = errors.New("layout parse failed")
	ErrLayoutRender   = errors.New("layout render failed")
	ErrNilLayoutStore = errors.New("layout loader is nil")
)

// SiteData is the site-wide metadata exposed to layouts as .Site.
type SiteData struct {
	Title  string
	URL    string
	Author string
}

// PageRef is a page summary as listed in .Collections.
type PageRef struct {
	Title       string
	Description string
	URL         string
	Date        time.Time
	Tags        []string
}

// LayoutData is the value layouts are executed with.
type LayoutData struct {
	Title       string
	Description string
	Date        time.Time
	HasDate     bool
	Tags        []string
	URL         string
	Content     template.HTML
	Page        map[string]any
	Site        SiteData
	Collections map[string][]PageRef
	Stylesheets []string
}

// compiledLayout is a parsed layout and the layout it chains to, if any.
type compiledLayout struct {
	tmpl   *template.Template
	parent string
}

// LayoutRenderer wraps rendered page content in layouts.
// Parsed layouts are cached; a renderer is safe for concurrent use.
type LayoutRenderer struct {
	loader     assets.LayoutLoader
	dateFormat string
	siteURL    string

	mu    sync.Mutex
	cache map[string]*compiledLayout
}

// NewLayoutRenderer creates a LayoutRenderer.
// dateFormat is used by formatDate when no format argument is given.
func NewLayoutRenderer(loader assets.LayoutLoader, dateFormat, siteURL string) (*LayoutRenderer, error) {
	if loader == nil {
		return nil, ErrNilLayoutStore
	}
	if err := dateutil.ValidateFormat(dateFormat); err != nil {
		return nil, err
	}
	return &LayoutRenderer{
		loader:     loader,
		dateFormat: dateFormat,
		siteURL:    strings.TrimSuffix(siteURL, "/"),
		cache:      make(map[string]*compiledLayout),
	}, nil
}

// Render executes the layout chain starting at name. data.Content holds the
// page body; each layout's output becomes the next layout's .Content.
// An empty name returns data.Content unchanged.
func (r *LayoutRenderer) Render(name string, data LayoutData) (string, error) {
	name = assets.NormalizeLayoutName(name)
	if name == "" {
		return string(data.Content), nil
	}

	seen := make(map[string]bool)
	for depth := 0; name != ""; depth++ {
		if depth >= MaxLayoutDepth {
			return "", fmt.Errorf("%w: more than %d layouts", ErrLayoutTooDeep, MaxLayoutDepth)
		}
		if seen[name] {
			return "", fmt.Errorf("%w: %q", ErrLayoutCycle, name)
		}
		seen[name] = true

		layout, err := r.layout(name)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := layout.tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrLayoutRender, name, err)
		}
		data.Content = template.HTML(buf.String())
		name = layout.parent
	}
	return string(data.Content), nil
}

// layout returns the compiled layout for name, loading it on first use.
func (r *LayoutRenderer) layout(name string) (*compiledLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.cache[name]; ok {
		return l, nil
	}

	source, err := r.loader.LoadLayout(name)
	if err != nil {
		return nil, err
	}

	fm, body, hasFM, err := frontmatter.Split([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutParse, name, err)
	}
	parent := ""
	if hasFM {
		matter, err := frontmatter.Parse(fm)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutParse, name, err)
		}
		parent = assets.NormalizeLayoutName(matter.Layout)
	}

	tmpl, err := template.New(name).Funcs(r.funcMap()).Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutParse, name, err)
	}

	l := &compiledLayout{tmpl: tmpl, parent: parent}
	r.cache[name] = l
	return l, nil
}

func (r *LayoutRenderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": r.formatDate,
		"isoDate":    isoDate,
		"absURL":     r.absURL,
		"join":       strings.Join,
		"reverse":    reversePages,
		"limit":      limitPages,
	}
}

// formatDate formats t with the given format, or the site's date format.
func (r *LayoutRenderer) formatDate(t time.Time, format ...string) (string, error) {
	f := r.dateFormat
	if len(format) > 0 {
		f = format[0]
	}
	return dateutil.Format(t, f)
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// absURL prefixes a site path with the site URL, when one is configured.
func (r *LayoutRenderer) absURL(p string) string {
	if r.siteURL == "" {
		return p
	}
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	return r.siteURL + path.Clean("/"+p) + trailingSlash(p)
}

func trailingSlash(p string) string {
	if p != "/" && strings.HasSuffix(p, "/") {
		return "/"
	}
	return ""
}

func reversePages(pages []PageRef) []PageRef {
	out := make([]PageRef, len(pages))
	for i, p := range pages {
		out[len(pages)-1-i] = p
	}
	return out
}

func limitPages(n int, pages []PageRef) []PageRef {
	if n < 0 || n >= len(pages) {
		return pages
	}
	return pages[:n]
}
