package pipeline

import "testing"

func TestParseHTMLTables(t *testing.T) {
	html := `
<html><body>
<p>Anbei die Positionen zur Lieferung.</p>
<table>
  <tr><th>Art-Nr</th><th>Bezeichnung</th><th>Menge</th><th>Einheit</th><th>Gesamt</th></tr>
  <tr><td>W-100</td><td>Schraube 4x60</td><td>200</td><td>ST</td><td>24,00</td></tr>
  <tr><td></td><td>Dichtring Kupfer</td><td>50</td><td>ST</td><td>4,50</td></tr>
</table>
</body></html>`

	doc := ParseHTMLTables(html, "WUERTH")
	if len(doc.Items) != 2 {
		t.Fatalf("items=%d", len(doc.Items))
	}
	if doc.Items[0].ArticleNumber == nil || *doc.Items[0].ArticleNumber != "W-100" {
		t.Fatalf("article=%v", doc.Items[0].ArticleNumber)
	}
	if doc.Items[0].Unit != "piece" || doc.Items[0].LineTotal != 24 {
		t.Fatalf("item=%+v", doc.Items[0])
	}
	if doc.Total != 28.5 {
		t.Fatalf("total=%v", doc.Total)
	}
}

func TestParseHTMLTablesIgnoresSingleRowTables(t *testing.T) {
	html := `<table><tr><td>nur Layout</td></tr></table>`
	doc := ParseHTMLTables(html, "")
	if len(doc.Items) != 0 {
		t.Fatalf("items=%d", len(doc.Items))
	}
}

func TestParseHTMLTablesNoTables(t *testing.T) {
	doc := ParseHTMLTables("<p>kein Inhalt</p>", "")
	if len(doc.Items) != 0 {
		t.Fatalf("items=%d", len(doc.Items))
	}
}
