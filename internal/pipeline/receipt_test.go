package pipeline

import (
	"testing"
)

func TestParseReceiptTextSimpleRetail(t *testing.T) {
	text := "OBI Markt 236 München\n" +
		"Bon-Nr. 4711-2\n" +
		"17.02.2026 14:32\n" +
		"2 ST Schraube 4x60       3,49 A\n" +
		"1 ST Dübel 8mm           1,29 A\n" +
		"4 M  Kabel NYM-J 3x1,5   4,30 B\n" +
		"MwSt. 19%                1,45\n" +
		"SUMME EUR                9,08\n"

	doc := ParseReceiptText(text)
	if doc.Supplier == nil || *doc.Supplier != "OBI" {
		t.Fatalf("supplier=%v", doc.Supplier)
	}
	if doc.Date == nil || *doc.Date != "2026-02-17" {
		t.Fatalf("date=%v", doc.Date)
	}
	if doc.DocumentNumber == nil || *doc.DocumentNumber != "4711-2" {
		t.Fatalf("documentNumber=%v", doc.DocumentNumber)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("items=%d", len(doc.Items))
	}

	first := doc.Items[0]
	if first.Quantity != 2 || first.Unit != "piece" || first.LineTotal != 3.49 {
		t.Fatalf("first item=%+v", first)
	}
	if first.UnitPrice != 1.75 {
		t.Fatalf("derived unitPrice=%v", first.UnitPrice)
	}
	if first.Description != "Schraube 4x60" {
		t.Fatalf("description=%q", first.Description)
	}
	if doc.Items[2].Unit != "meter" {
		t.Fatalf("unit=%q", doc.Items[2].Unit)
	}

	if doc.Total != 9.08 {
		t.Fatalf("total=%v", doc.Total)
	}
	if doc.Tax != 1.45 {
		t.Fatalf("tax=%v", doc.Tax)
	}
	if doc.RawText != text {
		t.Fatal("raw text not preserved")
	}
}

func TestParseReceiptTextProfessional(t *testing.T) {
	text := "Würth Niederlassung München\n" +
		"Lieferschein-Nr. LS-998877\n" +
		"Belegdatum: 03.03.2026\n" +
		"W0961-45  Schraube DIN 933 M10x45  200  ST  0,12  24,00\n" +
		"ART-77  Dichtring Kupfer  50  ST  4,50\n"

	doc := ParseReceiptText(text)
	if doc.Supplier == nil || *doc.Supplier != "WUERTH" {
		t.Fatalf("supplier=%v", doc.Supplier)
	}
	if doc.Date == nil || *doc.Date != "2026-03-03" {
		t.Fatalf("date=%v", doc.Date)
	}
	if doc.DocumentNumber == nil || *doc.DocumentNumber != "LS-998877" {
		t.Fatalf("documentNumber=%v", doc.DocumentNumber)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items=%d", len(doc.Items))
	}

	full := doc.Items[0]
	if full.ArticleNumber == nil || *full.ArticleNumber != "W0961-45" {
		t.Fatalf("article=%v", full.ArticleNumber)
	}
	if full.Quantity != 200 || full.UnitPrice != 0.12 || full.LineTotal != 24 {
		t.Fatalf("full line=%+v", full)
	}

	short := doc.Items[1]
	if short.ArticleNumber == nil || *short.ArticleNumber != "ART-77" {
		t.Fatalf("article=%v", short.ArticleNumber)
	}
	if short.LineTotal != 4.5 || short.UnitPrice != 0.09 {
		t.Fatalf("short line=%+v", short)
	}

	// No keyword total line, so the total is the sum of line totals.
	if doc.Total != 28.5 {
		t.Fatalf("total=%v", doc.Total)
	}
}

func TestParseReceiptTextFallback(t *testing.T) {
	text := "Eisenwaren Schulze\n" +
		"Hammer Stiel            12,90\n" +
		"Nägel 100er Pack         4,50\n"

	doc := ParseReceiptText(text)
	if doc.Supplier != nil {
		t.Fatalf("supplier=%v", *doc.Supplier)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Items[0].Quantity != 1 || doc.Items[0].Unit != "piece" {
		t.Fatalf("fallback item=%+v", doc.Items[0])
	}
	if doc.Items[0].UnitPrice != 12.9 {
		t.Fatalf("unitPrice=%v", doc.Items[0].UnitPrice)
	}
}

func TestParseReceiptTextNoiseGuard(t *testing.T) {
	text := "Vielen Dank für Ihren Einkauf       0,00\n" +
		"Rückgeld                            5,00\n" +
		"Besen Holz                          9,99\n"

	doc := ParseReceiptText(text)
	if len(doc.Items) != 1 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Items[0].Description != "Besen Holz" {
		t.Fatalf("description=%q", doc.Items[0].Description)
	}
}

func TestParseReceiptTextEmptyInput(t *testing.T) {
	doc := ParseReceiptText("   \n \t \n")
	if len(doc.Items) != 0 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Supplier != nil || doc.Date != nil || doc.DocumentNumber != nil {
		t.Fatal("header fields should be nil")
	}
	if doc.Total != 0 {
		t.Fatalf("total=%v", doc.Total)
	}
}

func TestParseReceiptTextIdempotent(t *testing.T) {
	text := "OBI Markt\n2 ST Schraube 4x60       3,49\n"
	a := ParseReceiptText(text)
	b := ParseReceiptText(text)
	if len(a.Items) != len(b.Items) || a.Total != b.Total {
		t.Fatal("parse is not deterministic")
	}
}
