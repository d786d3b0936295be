package md2site

import (
	"path"
	"strings"
)

// Registry records passthrough copies and plugins. It implements Registrar
// and is what a Builder reads its rules from.
// A Registry is not safe for concurrent registration.
type Registry struct {
	passthrough []string
	plugins     []Plugin
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Compile-time interface check.
var _ Registrar = (*Registry)(nil)

// AddPassthroughCopy registers a file or directory to copy verbatim.
// "./css", "css" and "css/" name the same rule; the first spelling is kept.
// Registering an already known path is a no-op.
func (r *Registry) AddPassthroughCopy(p string) {
	key := normalizePassthrough(p)
	if key == "" {
		return
	}
	for _, existing := range r.passthrough {
		if normalizePassthrough(existing) == key {
			return
		}
	}
	r.passthrough = append(r.passthrough, p)
}

// AddPlugin registers a plugin. Registering a name again replaces the
// earlier options and keeps the original position.
func (r *Registry) AddPlugin(p Plugin) {
	for i, existing := range r.plugins {
		if existing.Name == p.Name {
			r.plugins[i] = p
			return
		}
	}
	r.plugins = append(r.plugins, p)
}

// PassthroughCopies returns the registered passthrough paths in order.
func (r *Registry) PassthroughCopies() []string {
	out := make([]string, len(r.passthrough))
	copy(out, r.passthrough)
	return out
}

// Plugins returns the registered plugins in order.
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Plugin returns the plugin registered under name.
func (r *Registry) Plugin(name string) (Plugin, bool) {
	for _, p := range r.plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// BuildContract is the configuration record a build consumes:
// passthrough rules, markdown plugins and directories.
type BuildContract struct {
	PassthroughCopy []string  `yaml:"passthroughCopy" json:"passthroughCopy"`
	MarkdownPlugins []Plugin  `yaml:"markdownPlugins" json:"markdownPlugins"`
	Dir             DirConfig `yaml:"dir" json:"dir"`
}

// Contract combines the registrations with cfg's directories.
func (r *Registry) Contract(cfg *SiteConfig) BuildContract {
	c := BuildContract{
		PassthroughCopy: r.PassthroughCopies(),
		MarkdownPlugins: r.Plugins(),
	}
	if cfg != nil {
		c.Dir = cfg.Dir
	}
	return c
}

// normalizePassthrough returns the slash-cleaned form used to compare rules.
// Empty or root paths normalize to "".
func normalizePassthrough(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == "/" {
		return ""
	}
	return p
}
