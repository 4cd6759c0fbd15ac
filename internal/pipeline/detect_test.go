package pipeline

import "testing"

func TestDetectSupplierDocumentPositive(t *testing.T) {
	res := DetectSupplierDocument(
		"Ihre Rechnung 4711",
		"Würth Lieferschein\nSchraube 200 ST 0,12 24,00\nSumme 24,00",
		"",
		[]string{"lieferschein.pdf"},
	)
	if !res.IsSupplierDoc {
		t.Fatalf("score=%v reason=%s", res.Score, res.Reason)
	}
	if res.Reason != "rules_positive" {
		t.Fatalf("reason=%s", res.Reason)
	}
}

func TestDetectSupplierDocumentNegative(t *testing.T) {
	res := DetectSupplierDocument(
		"Terminbestätigung",
		"Hallo, der Termin am Montag passt. Viele Grüße",
		"",
		nil,
	)
	if res.IsSupplierDoc {
		t.Fatalf("score=%v", res.Score)
	}
	if res.Reason != "rules_negative" {
		t.Fatalf("reason=%s", res.Reason)
	}
}

func TestDetectSupplierDocumentHTMLTable(t *testing.T) {
	res := DetectSupplierDocument(
		"Lieferung",
		"",
		"<table><tr><td>Schraube</td><td>0,12</td></tr></table>",
		nil,
	)
	if res.Score <= 0 {
		t.Fatalf("score=%v", res.Score)
	}
}

func TestDetectSupplierDocumentScoreCapped(t *testing.T) {
	res := DetectSupplierDocument(
		"Rechnung Lieferschein Quittung Beleg Wareneingang Summe MwSt",
		"rechnung lieferschein summe mwst 1,00 2,00 3,00 obi",
		"<table>",
		[]string{"a.xlsx"},
	)
	if res.Score > 1 {
		t.Fatalf("score=%v", res.Score)
	}
}
