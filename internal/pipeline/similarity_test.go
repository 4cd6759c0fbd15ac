package pipeline

import "testing"

func TestSimilarityEquality(t *testing.T) {
	if got := Similarity("Schraube 4x60", "schraube 4X60"); got != 1 {
		t.Fatalf("got=%v", got)
	}
	if got := Similarity("  Kabel  ", "kabel"); got != 1 {
		t.Fatalf("got=%v", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "Kabel"); got != 0 {
		t.Fatalf("got=%v", got)
	}
	if got := Similarity("Kabel", "   "); got != 0 {
		t.Fatalf("got=%v", got)
	}
}

func TestSimilarityContainment(t *testing.T) {
	got := Similarity("Kabel", "Kabel NYM-J 3x1,5")
	want := 0.7 + 0.3*5.0/17.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if got <= 0.7 || got >= 1 {
		t.Fatalf("containment out of range: %v", got)
	}
}

func TestSimilarityTokens(t *testing.T) {
	// Shared token "schraube" plus unmatched tokens on the longer side.
	got := Similarity("Schraube verzinkt", "Schraube 4x60 Edelstahl")
	if got <= 0 || got >= 1 {
		t.Fatalf("got=%v", got)
	}

	if got := Similarity("Holzleim", "Dichtring"); got != 0 {
		t.Fatalf("unrelated got=%v", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"Schraube 4x60", "Schraube"},
		{"Kabel NYM-J", "NYM-J Kabel 3x1,5"},
		{"a", "b"},
		{"Profil HEB 200", "Stahlprofil HEB 200 S235"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Fatalf("out of bounds %q/%q: %v", p[0], p[1], got)
		}
		if got2 := Similarity(p[1], p[0]); got2 < 0 || got2 > 1 {
			t.Fatalf("out of bounds %q/%q: %v", p[1], p[0], got2)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"dübel", "duebel", 2},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Fatalf("%q/%q got=%d want=%d", c.a, c.b, got, c.want)
		}
	}
}
