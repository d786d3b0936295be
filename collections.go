package md2site

import (
	"sort"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// CollectionAll lists every rendered page.
const CollectionAll = "all"

// buildCollections groups pages by tag, plus CollectionAll.
// Each collection is sorted by date, oldest first; ties keep source order.
func buildCollections(pages []*page) map[string][]pipeline.PageRef {
	sorted := make([]*page, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].date.Equal(sorted[j].date) {
			return sorted[i].relPath < sorted[j].relPath
		}
		return sorted[i].date.Before(sorted[j].date)
	})

	collections := map[string][]pipeline.PageRef{
		CollectionAll: make([]pipeline.PageRef, 0, len(sorted)),
	}
	for _, p := range sorted {
		ref := p.ref()
		collections[CollectionAll] = append(collections[CollectionAll], ref)
		for _, tag := range p.matter.Tags {
			if tag == CollectionAll {
				continue
			}
			collections[tag] = append(collections[tag], ref)
		}
	}
	return collections
}
