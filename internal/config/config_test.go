package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Dir.Input != "" || cfg.Dir.Output != "" {
		t.Errorf("Dir = %+v, want zero", cfg.Dir)
	}
	if len(cfg.PassthroughCopy) != 0 {
		t.Errorf("PassthroughCopy = %v, want empty", cfg.PassthroughCopy)
	}
	if cfg.Highlight.AlwaysWrapLineHighlights != nil {
		t.Error("Highlight.AlwaysWrapLineHighlights should be nil (keep default)")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config",
			cfg: Config{
				Dir:             DirConfig{Input: "src", Output: "public"},
				PassthroughCopy: []string{"./css", "img"},
				Highlight:       HighlightConfig{Style: "monokai"},
				Site:            SiteConfig{Title: "Blog", URL: "https://example.com"},
				DateFormat:      "long",
			},
		},
		{
			name:    "output equals input",
			cfg:     Config{Dir: DirConfig{Input: "./site", Output: "site"}},
			wantErr: ErrInvalidDir,
		},
		{
			name:    "includes escapes input",
			cfg:     Config{Dir: DirConfig{Includes: "../layouts"}},
			wantErr: ErrInvalidDir,
		},
		{
			name:    "absolute passthrough",
			cfg:     Config{PassthroughCopy: []string{"/etc"}},
			wantErr: ErrInvalidPassthrough,
		},
		{
			name:    "parent passthrough",
			cfg:     Config{PassthroughCopy: []string{"css/../../secrets"}},
			wantErr: ErrInvalidPassthrough,
		},
		{
			name:    "blank passthrough",
			cfg:     Config{PassthroughCopy: []string{"  "}},
			wantErr: ErrInvalidPassthrough,
		},
		{
			name:    "unknown style",
			cfg:     Config{Highlight: HighlightConfig{Style: "no-such-style"}},
			wantErr: ErrUnknownStyle,
		},
		{
			name:    "title too long",
			cfg:     Config{Site: SiteConfig{Title: strings.Repeat("x", MaxTitleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("site url without scheme", func(t *testing.T) {
		t.Parallel()

		cfg := Config{Site: SiteConfig{URL: "example.com"}}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for site.url without scheme")
		}
	})

	t.Run("negative workers", func(t *testing.T) {
		t.Parallel()

		cfg := Config{Workers: -1}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for negative workers")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		p := writeConfig(t, t.TempDir(), "site.yaml", `dir:
  input: content
  output: dist
passthroughCopy:
  - ./css
  - ./img
highlight:
  alwaysWrapLineHighlights: false
  style: dracula
site:
  title: Testing Notes
dateFormat: long
`)
		cfg, err := LoadConfig(p)
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if cfg.Dir.Input != "content" || cfg.Dir.Output != "dist" {
			t.Errorf("Dir = %+v", cfg.Dir)
		}
		if len(cfg.PassthroughCopy) != 2 {
			t.Errorf("PassthroughCopy = %v, want 2 entries", cfg.PassthroughCopy)
		}
		if cfg.Highlight.AlwaysWrapLineHighlights == nil || *cfg.Highlight.AlwaysWrapLineHighlights {
			t.Errorf("AlwaysWrapLineHighlights = %v, want explicit false", cfg.Highlight.AlwaysWrapLineHighlights)
		}
		if cfg.Site.Title != "Testing Notes" {
			t.Errorf("Site.Title = %q", cfg.Site.Title)
		}
	})

	t.Run("empty file gives defaults", func(t *testing.T) {
		t.Parallel()

		p := writeConfig(t, t.TempDir(), "empty.yaml", "\n")
		cfg, err := LoadConfig(p)
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if cfg.Dir.Output != "" {
			t.Errorf("Dir.Output = %q, want empty", cfg.Dir.Output)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		p := writeConfig(t, t.TempDir(), "bad.yaml", "passthrough: [css]\n")
		_, err := LoadConfig(p)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs", func(t *testing.T) {
		t.Parallel()

		p := writeConfig(t, t.TempDir(), "invalid.yaml", "passthroughCopy: [/abs]\n")
		_, err := LoadConfig(p)
		if !errors.Is(err, ErrInvalidPassthrough) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidPassthrough", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})
}

// Uses t.Chdir, so it cannot run in parallel.
func TestLoadDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("absent file is not an error", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, found, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error: %v", err)
		}
		if found {
			t.Error("found = true, want false")
		}
		if cfg == nil {
			t.Fatal("cfg = nil, want default config")
		}
	})

	t.Run("local md2site.yml is picked up", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "md2site.yml", "dir:\n  output: _site\n")
		t.Chdir(dir)

		cfg, found, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error: %v", err)
		}
		if !found {
			t.Fatal("found = false, want true")
		}
		if cfg.Dir.Output != "_site" {
			t.Errorf("Dir.Output = %q, want _site", cfg.Dir.Output)
		}
	})
}
