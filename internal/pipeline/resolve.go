package pipeline

import (
	"math"
	"sort"
	"strings"

	"wareneingang/internal"
	"wareneingang/internal/catalog"
	"wareneingang/internal/config"
	"wareneingang/internal/locale"
	"wareneingang/internal/util"
)

// Resolver matches parsed line items against the material catalog. The
// catalog is passed in explicitly; resolution only reads it, so any number
// of Resolve calls may run concurrently over the same Resolver.
type Resolver struct {
	cfg       config.Config
	materials []internal.MaterialRecord
	index     *catalog.Index
}

func NewResolver(cfg config.Config, materials []internal.MaterialRecord) *Resolver {
	return &Resolver{cfg: cfg, materials: materials, index: catalog.BuildIndex(materials)}
}

func (r *Resolver) Resolve(items []internal.ParsedItem) []internal.ResolvedItem {
	out := make([]internal.ResolvedItem, 0, len(items))
	for _, item := range items {
		out = append(out, r.resolveOne(item))
	}
	return out
}

func (r *Resolver) resolveOne(item internal.ParsedItem) internal.ResolvedItem {
	// Exact article number equality dominates everything else.
	if item.ArticleNumber != nil {
		if m := r.index.LookupArticle(*item.ArticleNumber); m != nil {
			s := toSuggestion(*m, 1.0)
			return internal.ResolvedItem{Item: item, Match: &s, Suggestions: []internal.MatchSuggestion{s}}
		}
	}

	candidates := make([]internal.MatchSuggestion, 0, 8)
	for _, m := range r.materials {
		score := r.scoreCandidate(item, m)
		if score > r.cfg.SuggestionFloor {
			candidates = append(candidates, toSuggestion(m, score))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].MaterialID < candidates[j].MaterialID
	})
	if max := r.cfg.MaxSuggestions; max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}

	resolved := internal.ResolvedItem{Item: item, Suggestions: candidates}
	if len(candidates) > 0 && candidates[0].Confidence >= r.cfg.MatchAcceptThreshold {
		best := candidates[0]
		resolved.Match = &best
	}
	return resolved
}

// scoreCandidate blends article-number containment, description similarity
// and the unit/price bonuses, clamped to 1.0.
func (r *Resolver) scoreCandidate(item internal.ParsedItem, m internal.MaterialRecord) float64 {
	score := 0.0
	if item.ArticleNumber != nil && m.ArticleNumber != nil {
		a := util.NormalizeArticle(*item.ArticleNumber)
		b := util.NormalizeArticle(*m.ArticleNumber)
		if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
			score = 0.8
		}
	}

	sim := Similarity(item.Description, m.Name)
	if item.Unit != "" && m.Unit != "" && locale.NormalizeUnit(item.Unit) == locale.NormalizeUnit(m.Unit) {
		sim += 0.05
	}
	if item.UnitPrice > 0 && m.Price > 0 && math.Abs(item.UnitPrice-m.Price)/m.Price < 0.10 {
		sim += 0.10
	}
	if sim > 1 {
		sim = 1
	}

	if sim > score {
		return sim
	}
	return score
}

func toSuggestion(m internal.MaterialRecord, confidence float64) internal.MatchSuggestion {
	return internal.MatchSuggestion{MaterialID: m.ID, Label: m.Name, Confidence: confidence}
}
