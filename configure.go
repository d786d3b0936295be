package md2site

// PluginSyntaxHighlight is the name of the code highlighting plugin.
const PluginSyntaxHighlight = "syntax-highlight"

// Default directory names returned by Configure.
const (
	DefaultInputDir  = "."
	DefaultOutputDir = "public"
)

// DefaultPassthroughDir is the stylesheet directory copied verbatim.
const DefaultPassthroughDir = "./css"

// Registrar is the extensibility handle a site configuration registers
// passthrough copies and rendering plugins with.
type Registrar interface {
	AddPassthroughCopy(path string)
	AddPlugin(p Plugin)
}

// Plugin is a named rendering transform with its options.
type Plugin struct {
	Name    string `yaml:"name" json:"name"`
	Options any    `yaml:"options,omitempty" json:"options,omitempty"`
}

// HighlightOptions configures the syntax-highlight plugin.
type HighlightOptions struct {
	// AlwaysWrapLineHighlights keeps a marker element around every line of
	// every highlighted block, whether or not the block highlights a range.
	AlwaysWrapLineHighlights bool `yaml:"alwaysWrapLineHighlights" json:"alwaysWrapLineHighlights"`

	// Style is a chroma style name. Empty uses the default style.
	Style string `yaml:"style,omitempty" json:"style,omitempty"`

	// LineNumbers prefixes every line with its number.
	LineNumbers bool `yaml:"lineNumbers,omitempty" json:"lineNumbers,omitempty"`
}

// DirConfig names the input and output directories of a build.
type DirConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
}

// SiteConfig is the record returned by Configure.
type SiteConfig struct {
	Dir DirConfig `yaml:"dir" json:"dir"`
}

// Configure registers the blog's build rules on r and returns its
// directory layout: the css directory is copied verbatim, fenced code is
// highlighted with every line wrapped, and the site builds from the current
// directory into public.
func Configure(r Registrar) *SiteConfig {
	r.AddPassthroughCopy(DefaultPassthroughDir)
	r.AddPlugin(Plugin{
		Name:    PluginSyntaxHighlight,
		Options: HighlightOptions{AlwaysWrapLineHighlights: true},
	})

	return &SiteConfig{
		Dir: DirConfig{
			Input:  DefaultInputDir,
			Output: DefaultOutputDir,
		},
	}
}
