package assets

import (
	"fmt"
	"strings"
)

// foreignExtensions are template extensions from other site generators.
// "layout: base-layout.njk" resolves the same as "layout: base-layout".
var foreignExtensions = []string{".njk", ".liquid", ".html", ".tmpl", ".gohtml"}

// NormalizeLayoutName trims whitespace and a known template extension.
func NormalizeLayoutName(name string) string {
	name = strings.TrimSpace(name)
	for _, ext := range foreignExtensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ValidateAssetName checks that a layout name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
