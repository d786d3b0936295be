package md2site

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2site/internal/frontmatter"
)

func testPage(rel, title string, date time.Time, tags ...string) *page {
	out, url, _ := resolveOutput(rel, "")
	return &page{
		relPath: rel,
		matter:  &frontmatter.Matter{Title: title, Tags: tags},
		date:    date,
		url:     url,
		outPath: out,
	}
}

func TestBuildCollections(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2021, 3, d, 0, 0, 0, 0, time.UTC) }
	pages := []*page{
		testPage("posts/c.md", "C", day(31), "post", "go"),
		testPage("posts/a.md", "A", day(1), "post"),
		testPage("about.md", "About", day(15)),
		testPage("posts/b.md", "B", day(1), "post", "all"),
	}

	got := buildCollections(pages)

	titles := func(name string) []string {
		var out []string
		for _, ref := range got[name] {
			out = append(out, ref.Title)
		}
		return out
	}

	tests := []struct {
		collection string
		want       []string
	}{
		{collection: CollectionAll, want: []string{"A", "B", "About", "C"}},
		{collection: "post", want: []string{"A", "B", "C"}},
		{collection: "go", want: []string{"C"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, titles(tt.collection)); diff != "" {
			t.Errorf("collection %q mismatch (-want +got):\n%s", tt.collection, diff)
		}
	}

	if len(got) != 3 {
		t.Errorf("got %d collections, want 3: %v", len(got), got)
	}
	if got["post"][2].URL != "/posts/c/" {
		t.Errorf("post[2].URL = %q, want /posts/c/", got["post"][2].URL)
	}
	if pages[0].relPath != "posts/c.md" {
		t.Error("buildCollections() reordered its input")
	}
}

func TestBuildCollections_Empty(t *testing.T) {
	t.Parallel()

	got := buildCollections(nil)
	if refs, ok := got[CollectionAll]; !ok || len(refs) != 0 {
		t.Errorf("buildCollections(nil)[all] = %v, want empty collection", refs)
	}
}
