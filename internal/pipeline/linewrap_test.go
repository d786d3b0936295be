package pipeline

import (
	"context"
	"strings"
	"testing"
)

const (
	plainBlock = `<pre class="chroma"><code><span class="line"><span class="cl"><span class="nx">a</span>
</span></span><span class="line"><span class="cl"><span class="nx">b</span>
</span></span></code></pre>`

	highlightedBlock = `<pre class="chroma"><code><span class="line"><span class="cl"><span class="nx">a</span>
</span></span><span class="line hl"><span class="cl"><span class="nx">b</span>
</span></span></code></pre>`
)

func TestApplyLineWrapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		alwaysWrap   bool
		wantSame     bool
		wantContains []string
		wantNot      []string
	}{
		{
			name:       "always wrap keeps plain block",
			html:       plainBlock,
			alwaysWrap: true,
			wantSame:   true,
		},
		{
			name:       "always wrap keeps highlighted block",
			html:       highlightedBlock,
			alwaysWrap: true,
			wantSame:   true,
		},
		{
			name:         "plain block unwrapped",
			html:         plainBlock,
			wantContains: []string{`<pre class="chroma"><code><span class="nx">a</span>` + "\n" + `<span class="nx">b</span>`},
			wantNot:      []string{`class="line"`, `class="cl"`},
		},
		{
			name:         "highlighted block kept",
			html:         highlightedBlock,
			wantContains: []string{`<span class="line hl"><span class="cl">`, `<span class="line"><span class="cl">`},
		},
		{
			name:         "only blocks without highlights unwrapped",
			html:         "<p>x</p>" + plainBlock + highlightedBlock,
			wantContains: []string{"<p>x</p>", `<code><span class="nx">a</span>`, `class="line hl"`},
		},
		{
			name:     "no code blocks",
			html:     "<h1>Title</h1><p>text</p>",
			wantSame: true,
		},
		{
			name:     "unhighlighted pre untouched",
			html:     `<pre><code class="language-txt">chroma line</code></pre>`,
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ApplyLineWrapping(tt.html, tt.alwaysWrap)
			if err != nil {
				t.Fatalf("ApplyLineWrapping() unexpected error: %v", err)
			}
			if tt.wantSame && got != tt.html {
				t.Errorf("ApplyLineWrapping() changed input\ngot:  %s\nwant: %s", got, tt.html)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ApplyLineWrapping() missing %q\ngot: %s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("ApplyLineWrapping() should not contain %q\ngot: %s", notWant, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Integration with the converter
// ---------------------------------------------------------------------------

func TestApplyLineWrapping_ConvertedMarkdown(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(WithHighlighting(HighlightSettings{}))
	html, err := converter.ToHTML(context.Background(), "```go\nx := 1\ny := 2\n```\n")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	kept, err := ApplyLineWrapping(html, true)
	if err != nil {
		t.Fatalf("ApplyLineWrapping(true) unexpected error: %v", err)
	}
	if got := strings.Count(kept, `<span class="line">`); got != 2 {
		t.Errorf("alwaysWrap=true: %d line wrappers, want 2\n%s", got, kept)
	}

	stripped, err := ApplyLineWrapping(html, false)
	if err != nil {
		t.Fatalf("ApplyLineWrapping(false) unexpected error: %v", err)
	}
	if strings.Contains(stripped, `class="line"`) {
		t.Errorf("alwaysWrap=false: line wrappers remain\n%s", stripped)
	}
	if !strings.Contains(stripped, "x") || !strings.Contains(stripped, `class="chroma"`) {
		t.Errorf("alwaysWrap=false: code lost\n%s", stripped)
	}
}
