package md2site

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordingRegistrar records every call made on it.
type recordingRegistrar struct {
	passthrough []string
	plugins     []Plugin
}

func (r *recordingRegistrar) AddPassthroughCopy(path string) {
	r.passthrough = append(r.passthrough, path)
}

func (r *recordingRegistrar) AddPlugin(p Plugin) {
	r.plugins = append(r.plugins, p)
}

func TestConfigure_Dirs(t *testing.T) {
	t.Parallel()

	cfg := Configure(&recordingRegistrar{})

	want := &SiteConfig{Dir: DirConfig{Input: ".", Output: "public"}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Configure() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigure_Registrations(t *testing.T) {
	t.Parallel()

	r := &recordingRegistrar{}
	Configure(r)

	if diff := cmp.Diff([]string{"./css"}, r.passthrough); diff != "" {
		t.Errorf("passthrough registrations mismatch (-want +got):\n%s", diff)
	}

	count := 0
	for _, p := range r.plugins {
		if p.Name != PluginSyntaxHighlight {
			continue
		}
		count++
		opts, ok := p.Options.(HighlightOptions)
		if !ok {
			t.Fatalf("syntax-highlight options type = %T, want HighlightOptions", p.Options)
		}
		if !opts.AlwaysWrapLineHighlights {
			t.Error("syntax-highlight AlwaysWrapLineHighlights = false, want true")
		}
	}
	if count != 1 {
		t.Errorf("syntax-highlight registered %d times, want 1", count)
	}
	if len(r.plugins) != 1 {
		t.Errorf("registered %d plugins, want 1", len(r.plugins))
	}
}

func TestConfigure_Idempotent(t *testing.T) {
	t.Parallel()

	first, second := &recordingRegistrar{}, &recordingRegistrar{}
	cfg1 := Configure(first)
	cfg2 := Configure(second)

	if diff := cmp.Diff(cfg1, cfg2); diff != "" {
		t.Errorf("Configure() records differ (-first +second):\n%s", diff)
	}
	if cfg1 == cfg2 {
		t.Error("Configure() returned the same pointer twice, want fresh records")
	}
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(recordingRegistrar{})); diff != "" {
		t.Errorf("registrations differ (-first +second):\n%s", diff)
	}
}

func TestConfigure_Contract(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	cfg := Configure(reg)

	want := BuildContract{
		PassthroughCopy: []string{"./css"},
		MarkdownPlugins: []Plugin{{
			Name:    "syntax-highlight",
			Options: HighlightOptions{AlwaysWrapLineHighlights: true},
		}},
		Dir: DirConfig{Input: ".", Output: "public"},
	}
	if diff := cmp.Diff(want, reg.Contract(cfg)); diff != "" {
		t.Errorf("Contract() mismatch (-want +got):\n%s", diff)
	}
}
