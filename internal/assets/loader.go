package assets

// LayoutLoader defines the contract for loading page layouts.
type LayoutLoader interface {
	// LoadLayout loads a layout template by name (without extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLayout(name string) (string, error)
}

// DefaultLayoutName is the built-in layout every other built-in layout
// eventually chains to.
const DefaultLayoutName = "base-layout"

// layoutExtensions are tried in order when resolving a layout file.
var layoutExtensions = []string{".html", ".tmpl", ".gohtml"}
