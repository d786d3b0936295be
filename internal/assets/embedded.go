package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed layouts/*
var layouts embed.FS

// EmbeddedLoader loads layouts compiled into the binary.
// Implements LayoutLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadLayout loads a built-in layout by name.
func (e *EmbeddedLoader) LoadLayout(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := layouts.ReadFile("layouts/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}

	return string(content), nil
}

// Names lists the built-in layouts.
func (e *EmbeddedLoader) Names() []string {
	entries, err := layouts.ReadDir("layouts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, strings.TrimSuffix(entry.Name(), ".html"))
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ LayoutLoader = (*EmbeddedLoader)(nil)
