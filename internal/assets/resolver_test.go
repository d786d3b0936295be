package assets

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNewLayoutResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewLayoutResolver("")
		if err != nil {
			t.Fatalf("NewLayoutResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("missing includes directory uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewLayoutResolver(filepath.Join(t.TempDir(), "_includes"))
		if err != nil {
			t.Fatalf("NewLayoutResolver() error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for missing directory")
		}
	})

	t.Run("existing includes directory", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewLayoutResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewLayoutResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for existing directory")
		}
	})
}

func TestLayoutResolver_LoadLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeLayout(t, dir, "base-layout.html", "site base")
	writeLayout(t, dir, "talk.html", "site talk")

	resolver, err := NewLayoutResolver(dir)
	if err != nil {
		t.Fatalf("NewLayoutResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		layout   string
		want     string
		wantErr  error
		embedded bool
	}{
		{name: "site overrides built-in", layout: "base-layout", want: "site base"},
		{name: "site-only layout", layout: "talk", want: "site talk"},
		{name: "foreign extension stripped", layout: "talk.njk", want: "site talk"},
		{name: "falls back to built-in", layout: "post", embedded: true},
		{name: "unknown everywhere", layout: "nope", wantErr: ErrLayoutNotFound},
		{name: "validation not fallen back", layout: "../x", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadLayout(tt.layout)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadLayout(%q) error = %v, want %v", tt.layout, err, tt.wantErr)
			}
			if tt.embedded {
				want, _ := NewEmbeddedLoader().LoadLayout(tt.layout)
				if got != want {
					t.Errorf("LoadLayout(%q) should return the built-in layout", tt.layout)
				}
				return
			}
			if got != tt.want {
				t.Errorf("LoadLayout(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}
