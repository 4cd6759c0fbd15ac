package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"wareneingang/internal"
	"wareneingang/internal/util"
)

// ParseHTMLTables extracts line items from HTML <table> elements, for
// supplier mails that ship their positions as an inline table instead of an
// attachment. Each table needs a header row plus at least one data row; the
// header goes through the same column-alias mapping as delimited exports.
func ParseHTMLTables(html, supplierHint string) internal.ParsedDocument {
	doc := internal.ParsedDocument{Items: []internal.ParsedItem{}}
	if hint := strings.TrimSpace(supplierHint); hint != "" {
		doc.Supplier = util.StringPtr(hint)
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return doc
	}

	parsed.Find("table").Each(func(_ int, table *goquery.Selection) {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return
		}
		rows := make([][]string, 0, trs.Length())
		trs.Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, collapseSpaces(cell.Text()))
			})
			if rowHasContent(cells) {
				rows = append(rows, cells)
			}
		})
		if len(rows) < 2 {
			return
		}
		doc.Items = append(doc.Items, itemsFromRows(rows, supplierHint)...)
	})

	doc.Total = sumLineTotals(doc.Items)
	return doc
}
