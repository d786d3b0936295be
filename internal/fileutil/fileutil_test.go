package fileutil_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestIsFilePath - Name vs path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"md2site", false},
		{"my-site", false},
		{"./md2site.yaml", true},
		{"/abs/path.yaml", true},
		{`C:\site\md2site.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsWithin - Containment checks
// ---------------------------------------------------------------------------

func TestIsWithin(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"same directory", base, true},
		{"child", filepath.Join(base, "public"), true},
		{"nested child", filepath.Join(base, "a", "b"), true},
		{"parent", filepath.Dir(base), false},
		{"sibling with shared prefix", base + "-evil", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.IsWithin(base, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", base, tt.target, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCopyDir - Verbatim directory copy
// ---------------------------------------------------------------------------

func TestCopyDir(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "css")
	dst := filepath.Join(t.TempDir(), "public", "css")

	files := map[string][]byte{
		"style.css":        []byte("body { color: #333; }\r\n"),
		"vendor/prism.css": {0x00, 0xff, 0x10, '\n'},
	}
	for name, data := range files {
		p := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	written, err := fileutil.CopyDir(src, dst)
	if err != nil {
		t.Fatalf("CopyDir() error: %v", err)
	}
	if len(written) != len(files) {
		t.Errorf("CopyDir() wrote %d files, want %d", len(written), len(files))
	}

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Fatalf("reading copy of %s: %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestCopyDir_NotDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "style.css")
	if err := os.WriteFile(file, []byte("a{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := fileutil.CopyDir(file, t.TempDir())
	if !errors.Is(err, fileutil.ErrNotDirectory) {
		t.Errorf("CopyDir() error = %v, want ErrNotDirectory", err)
	}
}

func TestCopyDir_Missing(t *testing.T) {
	t.Parallel()

	_, err := fileutil.CopyDir(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyDir() error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Parent directory creation
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "posts", "hello", "index.html")
	if err := fileutil.WriteFile(path, []byte("<p>hi</p>")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if !fileutil.FileExists(path) {
		t.Errorf("expected %s to exist", path)
	}
	if !fileutil.DirExists(filepath.Dir(path)) {
		t.Errorf("expected %s to be a directory", filepath.Dir(path))
	}
}
