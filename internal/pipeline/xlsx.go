package pipeline

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"wareneingang/internal"
	"wareneingang/internal/util"
)

// ParseXLSX reads a supplier workbook and maps every sheet with a header
// plus at least one data row through the shared column-alias logic. Sheets
// that fail to read are skipped rather than failing the whole file.
func ParseXLSX(content []byte, supplierHint string) (internal.ParsedDocument, error) {
	doc := internal.ParsedDocument{Items: []internal.ParsedItem{}}
	if hint := strings.TrimSpace(supplierHint); hint != "" {
		doc.Supplier = util.StringPtr(hint)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return doc, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		cleaned := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells := trimCells(row)
			if rowHasContent(cells) {
				cleaned = append(cleaned, cells)
			}
		}
		if len(cleaned) < 2 {
			continue
		}
		doc.Items = append(doc.Items, itemsFromRows(cleaned, supplierHint)...)
	}

	doc.Total = sumLineTotals(doc.Items)
	return doc, nil
}

func trimCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, collapseSpaces(c))
	}
	return out
}

func rowHasContent(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return true
		}
	}
	return false
}
