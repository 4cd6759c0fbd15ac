package supplier

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{text: "OBI Baumarkt Filiale 12\n17.02.2026", want: "OBI"},
		{text: "BAUHAUS Fachcentren AG", want: "BAUHAUS"},
		{text: "Adolf Würth GmbH & Co. KG\nLieferschein", want: "WUERTH"},
		{text: "Wuerth Industrie Service", want: "WUERTH"},
		{text: "Klöckner & Co Deutschland", want: "KLOECKNER"},
		{text: "toom Baumarkt GmbH", want: "TOOM"},
	}
	for _, tc := range cases {
		p := Detect(tc.text)
		if p == nil || p.ID != tc.want {
			t.Fatalf("Detect(%q) = %v, want %s", tc.text, p, tc.want)
		}
	}

	if p := Detect("Unbekannter Händler GmbH"); p != nil {
		t.Fatalf("expected no profile, got %s", p.ID)
	}
}

func TestDetectHeaderWindowOnly(t *testing.T) {
	// Supplier name past the 500-char header must not trigger detection.
	text := strings.Repeat("x ", 300) + "OBI"
	if p := Detect(text); p != nil {
		t.Fatalf("expected nil, got %s", p.ID)
	}
}

func TestDetectOrderIsStable(t *testing.T) {
	// Both names in the header: the earlier registration wins.
	p := Detect("OBI und BAUHAUS Preisvergleich")
	if p == nil || p.ID != "OBI" {
		t.Fatalf("got %v, want OBI", p)
	}
}

func TestFromTransactionDescriptor(t *testing.T) {
	got := FromTransactionDescriptor("LASTSCHRIFT OBI SAGT DANKE FIL.12 KARTE 4")
	if got == nil || *got != "OBI" {
		t.Fatalf("got %v, want OBI", got)
	}
	if got := FromTransactionDescriptor("MIETE FEBRUAR HAUSVERWALTUNG"); got != nil {
		t.Fatalf("got %q, want nil", *got)
	}
}

func TestByID(t *testing.T) {
	if p := ByID("wuerth"); p == nil || p.DisplayName != "Würth" {
		t.Fatalf("ByID(wuerth) = %v", p)
	}
	if p := ByID(""); p != nil {
		t.Fatalf("ByID empty should be nil")
	}
}

func TestIsHeaderNoise(t *testing.T) {
	for _, noisy := range []string{"SUMME EUR", "MwSt. 19%", "Bediener 04", "IBAN DE02 1203", "Vielen Dank für Ihren Einkauf"} {
		if !IsHeaderNoise(noisy) {
			t.Fatalf("%q should be noise", noisy)
		}
	}
	if IsHeaderNoise("Schrauben M8x40") {
		t.Fatal("item description flagged as noise")
	}
}
