// Package config loads the optional md2site YAML file that layers on top of
// the built-in site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// DefaultConfigName is searched for when no --config flag is given.
const DefaultConfigName = "md2site"

// appDirName is the directory below os.UserConfigDir holding named configs.
const appDirName = "go-md2site"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound     = errors.New("config file not found")
	ErrEmptyConfigName    = errors.New("config name cannot be empty")
	ErrConfigParse        = errors.New("failed to parse config")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
	ErrInvalidDir         = errors.New("invalid directory")
	ErrInvalidPassthrough = errors.New("invalid passthrough path")
	ErrUnknownStyle       = errors.New("unknown highlight style")
)

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxTitleLength      = 200
	MaxURLLength        = 2048
	MaxNameLength       = 100
	MaxStyleLength      = 50
	MaxDateFormatLength = 50
)

// Config holds every key an md2site.yaml file may set.
// Zero values mean "keep the built-in default".
type Config struct {
	Dir             DirConfig       `yaml:"dir"`
	PassthroughCopy []string        `yaml:"passthroughCopy"`
	Highlight       HighlightConfig `yaml:"highlight"`
	Site            SiteConfig      `yaml:"site"`
	DateFormat      string          `yaml:"dateFormat"`
	Drafts          bool            `yaml:"drafts"`
	Workers         int             `yaml:"workers"`
}

// DirConfig defines input, output and layout directories.
type DirConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Includes string `yaml:"includes"` // relative to input, default "_includes"
}

// HighlightConfig tunes the syntax-highlight plugin.
type HighlightConfig struct {
	Disabled                 bool   `yaml:"disabled"`
	AlwaysWrapLineHighlights *bool  `yaml:"alwaysWrapLineHighlights"` // nil = keep default (true)
	Style                    string `yaml:"style"`                    // chroma style name
	LineNumbers              bool   `yaml:"lineNumbers"`
}

// SiteConfig is site-wide metadata exposed to layouts.
type SiteConfig struct {
	Title  string `yaml:"title"`
	URL    string `yaml:"url"`
	Author string `yaml:"author"`
}

// DefaultConfig returns an empty configuration: every value falls back to the
// built-in site configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and path shapes.
// Called automatically by LoadConfig, but available for callers who build
// a Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("dir.input", c.Dir.Input, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("dir.output", c.Dir.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("dir.includes", c.Dir.Includes, MaxPathLength); err != nil {
		return err
	}
	if c.Dir.Input != "" && c.Dir.Output != "" && filepath.Clean(c.Dir.Input) == filepath.Clean(c.Dir.Output) {
		return fmt.Errorf("%w: dir.output must differ from dir.input (%q)", ErrInvalidDir, c.Dir.Output)
	}
	if c.Dir.Includes != "" && escapesRoot(c.Dir.Includes) {
		return fmt.Errorf("%w: dir.includes %q must stay inside the input directory", ErrInvalidDir, c.Dir.Includes)
	}

	for i, p := range c.PassthroughCopy {
		field := fmt.Sprintf("passthroughCopy[%d]", i)
		if err := validateFieldLength(field, p, MaxPathLength); err != nil {
			return err
		}
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidPassthrough, field)
		}
		if escapesRoot(p) {
			return fmt.Errorf("%w: %s %q must be relative to the input directory", ErrInvalidPassthrough, field, p)
		}
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if c.Highlight.Style != "" {
		if _, ok := styles.Registry[strings.ToLower(c.Highlight.Style)]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStyle, c.Highlight.Style)
		}
	}

	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.url", c.Site.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Site.URL != "" && !fileutil.IsURL(c.Site.URL) {
		return fmt.Errorf("site.url: %q must start with http:// or https://", c.Site.URL)
	}
	if err := validateFieldLength("site.author", c.Site.Author, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("dateFormat", c.DateFormat, MaxDateFormatLength); err != nil {
		return err
	}
	if err := dateutil.ValidateFormat(c.DateFormat); err != nil {
		return fmt.Errorf("dateFormat: %w", err)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", c.Workers)
	}

	return nil
}

// escapesRoot reports whether p is absolute or climbs above its root.
func escapesRoot(p string) bool {
	p = filepath.ToSlash(strings.TrimSpace(p))
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return true
	}
	clean := path.Clean(p)
	return clean == ".." || strings.HasPrefix(clean, "../")
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads md2site.yaml from the standard locations when present.
// A missing file is not an error: it returns DefaultConfig and found=false.
func LoadDefault() (cfg *Config, found bool, err error) {
	if _, err := resolveConfigPath(DefaultConfigName); err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), false, nil
		}
		return nil, false, err
	}
	cfg, err = LoadConfig(DefaultConfigName)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2site/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
