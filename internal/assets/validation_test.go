package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "post"},
		{name: "name with hyphen", input: "base-layout"},
		{name: "name with underscore", input: "base_layout"},
		{name: "mixed case", input: "BaseLayout"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: `..\secret`, wantErr: ErrInvalidAssetName},
		{name: "dot", input: "base.layout", wantErr: ErrInvalidAssetName},
		{name: "null byte", input: "base\x00", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeLayoutName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"base-layout", "base-layout"},
		{"base-layout.njk", "base-layout"},
		{"post.liquid", "post"},
		{" post.html ", "post"},
		{".html", ".html"},
		{"nested/post.njk", "nested/post"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLayoutName(tt.input); got != tt.want {
				t.Errorf("NormalizeLayoutName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
