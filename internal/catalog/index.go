package catalog

import (
	"wareneingang/internal"
	"wareneingang/internal/util"
)

// Index provides article-number lookup over a material list. Built once per
// resolve pass.
type Index struct {
	MaterialsByID map[int]internal.MaterialRecord
	ByArticle     map[string][]internal.MaterialRecord
}

func BuildIndex(materials []internal.MaterialRecord) *Index {
	idx := &Index{
		MaterialsByID: map[int]internal.MaterialRecord{},
		ByArticle:     map[string][]internal.MaterialRecord{},
	}
	for _, m := range materials {
		idx.MaterialsByID[m.ID] = m
		if m.ArticleNumber == nil {
			continue
		}
		norm := util.NormalizeArticle(*m.ArticleNumber)
		if norm == "" {
			continue
		}
		idx.ByArticle[norm] = append(idx.ByArticle[norm], m)
	}
	return idx
}

// LookupArticle returns the first material registered under the normalized
// article number, or nil.
func (idx *Index) LookupArticle(article string) *internal.MaterialRecord {
	norm := util.NormalizeArticle(article)
	if norm == "" {
		return nil
	}
	hits := idx.ByArticle[norm]
	if len(hits) == 0 {
		return nil
	}
	m := hits[0]
	return &m
}
