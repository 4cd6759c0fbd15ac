package pipeline

import "testing"

func TestParseSupplierTableSemicolon(t *testing.T) {
	raw := "Art-Nr;Bezeichnung;Menge;Einheit;Einzelpreis;Gesamt\n" +
		"W-100;Schraube 4x60;200;ST;0,12;24,00\n" +
		"\"K-2\";\"Profil; verzinkt\";5;M;10,00;50,00\n"

	doc := ParseSupplierTable(raw, "WUERTH")
	if doc.Supplier == nil || *doc.Supplier != "WUERTH" {
		t.Fatalf("supplier=%v", doc.Supplier)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items=%d", len(doc.Items))
	}

	first := doc.Items[0]
	if first.ArticleNumber == nil || *first.ArticleNumber != "W-100" {
		t.Fatalf("article=%v", first.ArticleNumber)
	}
	if first.Quantity != 200 || first.Unit != "piece" || first.UnitPrice != 0.12 || first.LineTotal != 24 {
		t.Fatalf("first=%+v", first)
	}

	quoted := doc.Items[1]
	if quoted.Description != "Profil; verzinkt" {
		t.Fatalf("quoted description=%q", quoted.Description)
	}
	if quoted.Unit != "meter" {
		t.Fatalf("unit=%q", quoted.Unit)
	}
	if doc.Total != 74 {
		t.Fatalf("total=%v", doc.Total)
	}
}

func TestParseSupplierTableTabWins(t *testing.T) {
	raw := "Artikel\tBezeichnung; Zusatz\tMenge\tPreis\n" +
		"A-1\tWinkel; 90 Grad\t3\t2,50\n"

	doc := ParseSupplierTable(raw, "")
	if len(doc.Items) != 1 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Items[0].Description != "Winkel; 90 Grad" {
		t.Fatalf("description=%q", doc.Items[0].Description)
	}
}

func TestParseSupplierTableDimensionFolding(t *testing.T) {
	raw := "Artikelnr;Werkstoff;Abmessung;Menge;ME;Einzelpreis;Gesamt\n" +
		"S235-H200;Stahlprofil;HEB 200;2;ST;50,00;100,00\n"

	doc := ParseSupplierTable(raw, "KLOECKNER")
	if len(doc.Items) != 1 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	item := doc.Items[0]
	if item.Description != "Stahlprofil HEB 200" {
		t.Fatalf("description=%q", item.Description)
	}
	if item.Quantity != 2 || item.Unit != "piece" || item.LineTotal != 100 {
		t.Fatalf("item=%+v", item)
	}
}

func TestParseSupplierTableDerivesUnitPrice(t *testing.T) {
	raw := "Bezeichnung;Menge;Gesamt\n" +
		"Dichtring;4;2,00\n"

	doc := ParseSupplierTable(raw, "")
	if len(doc.Items) != 1 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Items[0].UnitPrice != 0.5 {
		t.Fatalf("unitPrice=%v", doc.Items[0].UnitPrice)
	}
}

func TestParseSupplierTableTooShort(t *testing.T) {
	doc := ParseSupplierTable("Bezeichnung;Menge\n", "")
	if len(doc.Items) != 0 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	doc = ParseSupplierTable("", "")
	if len(doc.Items) != 0 {
		t.Fatalf("items=%d", len(doc.Items))
	}
}

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		header string
		want   rune
	}{
		{"a\tb\tc", '\t'},
		{"a;b;c", ';'},
		{"a,b,c", ','},
		{"a;b,c;d", ';'},
		{"a,b;c", ','},
		{"plain", ','},
	}
	for _, c := range cases {
		if got := detectDelimiter(c.header); got != c.want {
			t.Fatalf("header=%q got=%q want=%q", c.header, got, c.want)
		}
	}
}

func TestSplitDelimitedEscapedQuote(t *testing.T) {
	fields := splitDelimited(`"Rohr ""schwer""";5`, ';')
	if len(fields) != 2 {
		t.Fatalf("fields=%v", fields)
	}
	if fields[0] != `Rohr "schwer"` {
		t.Fatalf("field=%q", fields[0])
	}
}
