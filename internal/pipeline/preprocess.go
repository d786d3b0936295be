package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Any fence line. Groups: indent, fence, info string.
	fenceLine = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})(.*)$")

	// Fence opener with a line range suffix: ```js/1,3-5
	// Groups: indent, fence, language, ranges.
	fenceWithRanges = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})([A-Za-z0-9_+#.-]+)/([0-9][0-9,\\- ]*)[ \\t]*$")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// FencePreprocessor prepares Markdown for goldmark conversion.
type FencePreprocessor struct{}

// PreprocessMarkdown normalizes line endings and rewrites fence line ranges.
func (p *FencePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = rewriteFenceRanges(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// rewriteFenceRanges turns ```js/0,2-3 into ```js {hl_lines=[1,"3-4"]}.
// Ranges in the short form are zero-based line indexes; hl_lines is one-based.
// Openers with an unparsable range are left as written, and so is every
// line inside an open fence.
func rewriteFenceRanges(content string) string {
	if !strings.Contains(content, "/") {
		return content
	}

	lines := strings.Split(content, "\n")
	open := "" // fence of the enclosing code block
	for i, line := range lines {
		m := fenceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fence, info := m[2], m[3]
		if open != "" {
			if fence[0] == open[0] && len(fence) >= len(open) && strings.TrimSpace(info) == "" {
				open = ""
			}
			continue
		}
		open = fence

		r := fenceWithRanges.FindStringSubmatch(line)
		if r == nil {
			continue
		}
		if hl, ok := formatHLLines(r[4]); ok {
			lines[i] = r[1] + r[2] + r[3] + " {hl_lines=[" + hl + "]}"
		}
	}
	return strings.Join(lines, "\n")
}

// formatHLLines converts "0,2-3" to `1,"3-4"`.
func formatHLLines(ranges string) (string, bool) {
	var parts []string
	for _, field := range strings.Split(ranges, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(field, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || start < 0 {
			return "", false
		}
		if !isRange {
			parts = append(parts, strconv.Itoa(start+1))
			continue
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || end < start {
			return "", false
		}
		parts = append(parts, strconv.Quote(strconv.Itoa(start+1)+"-"+strconv.Itoa(end+1)))
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ","), true
}
