// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("use --config /path/to/md2site.yaml or create md2site.yaml in the site directory")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayoutNotFound returns hints for a layout missing from the includes
// directory and the built-in layouts.
func ForLayoutNotFound(includesDir string, builtin []string) string {
	var hints []string
	if includesDir != "" {
		hints = append(hints, "create "+includesDir+"/<layout>.html")
	}
	if len(builtin) > 0 {
		hints = append(hints, "built-in: "+strings.Join(builtin, ", "))
	}
	return formatHints(hints)
}

// ForPassthroughNotFound returns hints for a missing passthrough path.
func ForPassthroughNotFound() string {
	return format("passthrough paths are relative to the input directory (--input)")
}

// ForDuplicatePermalink returns hints for two pages writing the same file.
func ForDuplicatePermalink() string {
	return format("set a distinct permalink in one page's front matter, or permalink: false")
}

// ForServe returns hints for preview server listen errors.
// Suggests another port, and binding all interfaces inside containers.
func ForServe(port int) string {
	hints := []string{fmt.Sprintf("port %d may be in use, try --port %d", port, port+1)}
	if IsInContainer() {
		hints = append(hints, "use --host 0.0.0.0 to reach the preview from outside the container")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
