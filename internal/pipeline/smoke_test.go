package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"wareneingang/internal"
	"wareneingang/internal/storage"
	"wareneingang/internal/util"
)

const rawSmokeMail = "From: vertrieb@wuerth-mail.example\r\n" +
	"To: einkauf@example.com\r\n" +
	"Subject: Lieferschein LS-998877\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Würth Niederlassung München\r\n" +
	"Lieferschein-Nr. LS-998877\r\n" +
	"W0961-45  Schraube DIN 933 M10x45  200  ST  0,12  24,00\r\n"

func TestSmokeMailToExport(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	materials := []internal.MaterialRecord{
		{ID: 1, ArticleNumber: util.StringPtr("W0961-45"), Name: "Schraube DIN 933 M10x45", Unit: "piece", Price: 0.12, RawJSON: `{}`},
		{ID: 2, ArticleNumber: util.StringPtr("NYM-315"), Name: "Kabel NYM-J 3x1,5", Unit: "meter", Price: 0.89, RawJSON: `{}`},
	}
	if err := db.UpsertMaterials(materials); err != nil {
		t.Fatal(err)
	}

	orders := []internal.WorkOrder{{
		ID:     10,
		Label:  "Carport Familie Weber",
		Status: internal.OrderInProgress,
		BillOfMaterials: []internal.BOMEntry{
			{MaterialID: 1, Description: "Schraube DIN 933 M10x45", Quantity: 200},
		},
	}}
	if err := db.ReplaceWorkOrders(orders); err != nil {
		t.Fatal(err)
	}

	rawPath := filepath.Join(tmp, "fixture.eml")
	if err := os.WriteFile(rawPath, []byte(rawSmokeMail), 0o644); err != nil {
		t.Fatal(err)
	}
	row, err := db.UpsertDocument("imap", "<ls-998877@example.com>", "Lieferschein LS-998877", "vertrieb@wuerth-mail.example", "2026-03-03T09:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	proc := NewProcessingService(db, testConfig(), nil)
	res, err := proc.ProcessDocument(row)
	if err != nil {
		t.Fatal(err)
	}
	if res.Lines != 1 || res.Accepted != 1 {
		t.Fatalf("result=%+v", res)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].WorkOrderID != 10 {
		t.Fatalf("suggestions=%+v", res.Suggestions)
	}

	updated, err := db.GetDocumentByProviderMessageID("imap", "<ls-998877@example.com>")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != "processed" {
		t.Fatalf("status=%q", updated.Status)
	}

	rows, err := db.GetExportRows(row.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d", len(rows))
	}
	if !rows[0].Accepted || rows[0].MaterialID == nil || *rows[0].MaterialID != 1 {
		t.Fatalf("row=%+v", rows[0])
	}
	if rows[0].MaterialName == nil || *rows[0].MaterialName != "Schraube DIN 933 M10x45" {
		t.Fatalf("materialName=%v", rows[0].MaterialName)
	}

	outPath := filepath.Join(tmp, "out", "result.xlsx")
	if err := ExportRowsToXLSX(rows, res.Suggestions, outPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatal(err)
	}

	// Book the receipt and verify stock moved.
	receipt, err := proc.IngestDocument(*updated, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(receipt.Items) != 1 || !receipt.Items[0].StockUpdated {
		t.Fatalf("receipt=%+v", receipt)
	}

	after, err := db.GetMaterialByArticle("W0961-45")
	if err != nil {
		t.Fatal(err)
	}
	if after.Stock != 200 {
		t.Fatalf("stock=%v", after.Stock)
	}

	stored, err := db.GetReceipt(receipt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || len(stored.Items) != 1 {
		t.Fatalf("stored=%+v", stored)
	}
}
