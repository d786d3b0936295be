package assets

import (
	"errors"
	"os"
)

// LayoutResolver combines a site loader and the embedded loader with
// fallback logic. The site's includes directory wins; a layout it does not
// define is looked up among the built-in ones.
type LayoutResolver struct {
	custom   LayoutLoader // nil if the site has no includes directory
	embedded LayoutLoader
}

// NewLayoutResolver creates a LayoutResolver.
// An empty includesDir, or one that does not exist, means built-in layouts
// only: most small sites never create one. Any other problem with the
// directory is returned as an error.
func NewLayoutResolver(includesDir string) (*LayoutResolver, error) {
	resolver := &LayoutResolver{
		embedded: NewEmbeddedLoader(),
	}

	if includesDir == "" {
		return resolver, nil
	}
	if _, err := os.Stat(includesDir); os.IsNotExist(err) {
		return resolver, nil
	}

	fsLoader, err := NewFilesystemLoader(includesDir)
	if err != nil {
		return nil, err
	}
	resolver.custom = fsLoader

	return resolver, nil
}

// LoadLayout loads a layout, trying the site loader first if available.
func (r *LayoutResolver) LoadLayout(name string) (string, error) {
	name = NormalizeLayoutName(name)

	if r.custom == nil {
		return r.embedded.LoadLayout(name)
	}

	content, err := r.custom.LoadLayout(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrLayoutNotFound) {
		return "", err
	}

	return r.embedded.LoadLayout(name)
}

// HasCustomLoader returns true if a site includes directory is in use.
func (r *LayoutResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ LayoutLoader = (*LayoutResolver)(nil)
