// Package frontmatter splits and decodes the YAML block that prefixes a
// content document.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for front matter operations.
var (
	// ErrMissingClosingDelimiter indicates the document opened a front matter
	// block with "---" but never closed it.
	ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

	// ErrInvalidField indicates a known key carries a value of the wrong shape.
	ErrInvalidField = errors.New("invalid front matter field")
)

// dateLayouts are tried in order when a date is given as a string.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Matter is the decoded front matter of one document.
// Data holds every key, including the ones promoted to typed fields.
type Matter struct {
	Layout      string
	Title       string
	Description string
	Date        time.Time
	HasDate     bool
	Tags        []string
	Permalink   string
	// NoOutput is set by "permalink: false".
	NoOutput bool
	Draft    bool
	Data     map[string]any
}

// Split separates YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. LF and CRLF line endings are both accepted.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line, without trailing newline.
		closeEOF := []byte(nl + "---")
		if bytes.HasSuffix(content, closeEOF) && len(content)-len(closeEOF) >= start-len(nl) {
			return content[start : len(content)-len(closeEOF)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse decodes raw front matter YAML (without delimiters).
func Parse(fm []byte) (*Matter, error) {
	data, err := yamlutil.UnmarshalMap(fm)
	if err != nil {
		return nil, err
	}

	m := &Matter{Data: data}

	if m.Layout, err = stringField(data, "layout"); err != nil {
		return nil, err
	}
	if m.Title, err = stringField(data, "title"); err != nil {
		return nil, err
	}
	if m.Description, err = stringField(data, "description"); err != nil {
		return nil, err
	}
	if m.Tags, err = tagsField(data); err != nil {
		return nil, err
	}
	if err := m.parsePermalink(data); err != nil {
		return nil, err
	}
	if v, ok := data["draft"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: draft must be a boolean, got %T", ErrInvalidField, v)
		}
		m.Draft = b
	}
	if v, ok := data["date"]; ok && v != nil {
		d, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		m.Date, m.HasDate = d, true
	}

	return m, nil
}

// ParseDate accepts a YAML timestamp or a string in one of the common layouts.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or RFC 3339", ErrInvalidField, d)
	default:
		return time.Time{}, fmt.Errorf("%w: date has unsupported type %T", ErrInvalidField, v)
	}
}

func (m *Matter) parsePermalink(data map[string]any) error {
	v, ok := data["permalink"]
	if !ok || v == nil {
		return nil
	}
	switch p := v.(type) {
	case bool:
		if p {
			return fmt.Errorf("%w: permalink may be false or a path, not true", ErrInvalidField)
		}
		m.NoOutput = true
	case string:
		m.Permalink = strings.TrimSpace(p)
	default:
		return fmt.Errorf("%w: permalink has unsupported type %T", ErrInvalidField, v)
	}
	return nil
}

func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidField, key, v)
	}
}

// tagsField accepts "tags: post" as well as a list of tags.
// Numeric and boolean entries become strings, so "tags: [post, 2021]" works.
// Duplicates are dropped; order of first appearance is kept.
func tagsField(data map[string]any) ([]string, error) {
	v, ok := data["tags"]
	if !ok || v == nil {
		return nil, nil
	}

	var raw []string
	switch t := v.(type) {
	case string:
		raw = []string{t}
	case []any:
		for _, item := range t {
			switch s := item.(type) {
			case string:
				raw = append(raw, s)
			case int, int64, uint64, float64, bool:
				raw = append(raw, fmt.Sprint(s))
			default:
				return nil, fmt.Errorf("%w: tags entries must be scalars, got %T", ErrInvalidField, item)
			}
		}
	default:
		return nil, fmt.Errorf("%w: tags must be a string or a list, got %T", ErrInvalidField, v)
	}

	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		tags = append(tags, s)
	}
	return tags, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
