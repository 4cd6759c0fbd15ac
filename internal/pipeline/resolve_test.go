package pipeline

import (
	"testing"

	"wareneingang/internal"
	"wareneingang/internal/config"
	"wareneingang/internal/util"
)

func testMaterials() []internal.MaterialRecord {
	return []internal.MaterialRecord{
		{ID: 1, ArticleNumber: util.StringPtr("W0961-45"), Name: "Schraube DIN 933 M10x45", Unit: "piece", Price: 0.12},
		{ID: 2, ArticleNumber: util.StringPtr("NYM-315"), Name: "Kabel NYM-J 3x1,5", Unit: "meter", Price: 0.89},
		{ID: 3, Name: "Dichtring Kupfer 10x14", Unit: "piece", Price: 0.09},
		{ID: 4, Name: "Schraube DIN 933 M10x45 verzinkt", Unit: "piece", Price: 0.14},
	}
}

func testConfig() config.Config {
	cfg, _ := config.Load()
	cfg.MatchAcceptThreshold = 0.5
	cfg.SuggestionFloor = 0.3
	cfg.MaxSuggestions = 3
	return cfg
}

func TestResolveExactArticleDominates(t *testing.T) {
	r := NewResolver(testConfig(), testMaterials())
	resolved := r.Resolve([]internal.ParsedItem{{
		ArticleNumber: util.StringPtr("w0961-45"),
		Description:   "irgendwas ganz anderes",
		Quantity:      1,
	}})

	ri := resolved[0]
	if ri.Match == nil {
		t.Fatal("expected accepted match")
	}
	if ri.Match.MaterialID != 1 || ri.Match.Confidence != 1.0 {
		t.Fatalf("match=%+v", ri.Match)
	}
	if len(ri.Suggestions) != 1 {
		t.Fatalf("suggestions=%d", len(ri.Suggestions))
	}
}

func TestResolveDescriptionSimilarity(t *testing.T) {
	r := NewResolver(testConfig(), testMaterials())
	resolved := r.Resolve([]internal.ParsedItem{{
		Description: "Schraube DIN 933 M10x45",
		Quantity:    200,
		Unit:        "piece",
	}})

	ri := resolved[0]
	if ri.Match == nil {
		t.Fatal("expected accepted match")
	}
	if ri.Match.MaterialID != 1 {
		t.Fatalf("materialId=%d", ri.Match.MaterialID)
	}
	if len(ri.Suggestions) > 3 {
		t.Fatalf("suggestions=%d", len(ri.Suggestions))
	}
	for i := 1; i < len(ri.Suggestions); i++ {
		if ri.Suggestions[i].Confidence > ri.Suggestions[i-1].Confidence {
			t.Fatal("suggestions not sorted")
		}
	}
}

func TestResolveUnitAndPriceBonus(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, testMaterials())

	plain := r.Resolve([]internal.ParsedItem{{Description: "Kabel NYM-J 3x1,5"}})[0]
	boosted := r.Resolve([]internal.ParsedItem{{
		Description: "Kabel NYM-J 3x1,5",
		Unit:        "M",
		UnitPrice:   0.9,
	}})[0]

	if plain.Match == nil || boosted.Match == nil {
		t.Fatal("expected matches")
	}
	// Equal description gives 1.0 either way; the bonuses must not push the
	// confidence above the cap.
	if boosted.Match.Confidence > 1.0 {
		t.Fatalf("confidence=%v", boosted.Match.Confidence)
	}
	if boosted.Match.Confidence < plain.Match.Confidence {
		t.Fatalf("bonus lowered confidence: %v < %v", boosted.Match.Confidence, plain.Match.Confidence)
	}
}

func TestResolveBelowThresholdYieldsSuggestionsOnly(t *testing.T) {
	cfg := testConfig()
	cfg.MatchAcceptThreshold = 0.99
	r := NewResolver(cfg, testMaterials())

	ri := r.Resolve([]internal.ParsedItem{{Description: "Schraube verzinkt"}})[0]
	if ri.Match != nil {
		t.Fatalf("unexpected match=%+v", ri.Match)
	}
	if len(ri.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	r := NewResolver(testConfig(), testMaterials())
	ri := r.Resolve([]internal.ParsedItem{{Description: "Zzz Qqq"}})[0]
	if ri.Match != nil || len(ri.Suggestions) != 0 {
		t.Fatalf("resolved=%+v", ri)
	}
}

func TestResolveSubstringArticle(t *testing.T) {
	r := NewResolver(testConfig(), testMaterials())
	ri := r.Resolve([]internal.ParsedItem{{
		ArticleNumber: util.StringPtr("0961-45"),
		Description:   "Zzz Qqq",
	}})[0]

	if ri.Match == nil {
		t.Fatal("expected substring article match")
	}
	if ri.Match.MaterialID != 1 || ri.Match.Confidence != 0.8 {
		t.Fatalf("match=%+v", ri.Match)
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	r := NewResolver(testConfig(), nil)
	ri := r.Resolve([]internal.ParsedItem{{Description: "Schraube"}})[0]
	if ri.Match != nil || len(ri.Suggestions) != 0 {
		t.Fatalf("resolved=%+v", ri)
	}
}
