package pipeline

import (
	"strings"

	"wareneingang/internal"
	"wareneingang/internal/locale"
	"wareneingang/internal/supplier"
	"wareneingang/internal/util"
)

// ParseSupplierTable parses a delimited supplier export (CSV-style text)
// into the same document shape as the receipt parser. The supplier is taken
// from the caller's hint; tabular data itself is never used for detection.
// Fewer than two non-empty lines (header + one data row) yield an empty
// document.
func ParseSupplierTable(raw, supplierHint string) internal.ParsedDocument {
	doc := internal.ParsedDocument{Items: []internal.ParsedItem{}, RawText: raw}
	if hint := strings.TrimSpace(supplierHint); hint != "" {
		doc.Supplier = util.StringPtr(hint)
	}

	lines := splitLines(raw)
	if len(lines) < 2 {
		return doc
	}

	delim := detectDelimiter(lines[0])
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitDelimited(line, delim))
	}

	doc.Items = itemsFromRows(rows, supplierHint)
	doc.Total = sumLineTotals(doc.Items)
	return doc
}

// detectDelimiter inspects the header line only: tab wins when present and
// most frequent, then ";" when it beats ",", else ",".
func detectDelimiter(header string) rune {
	tabs := strings.Count(header, "\t")
	semis := strings.Count(header, ";")
	commas := strings.Count(header, ",")

	if tabs > 0 && tabs >= semis && tabs >= commas {
		return '\t'
	}
	if semis > commas {
		return ';'
	}
	return ','
}

// splitDelimited tokenizes one line. Fields may be wrapped in double quotes;
// a doubled quote inside a quoted field is an escaped literal quote, and the
// delimiter inside quotes does not separate.
func splitDelimited(line string, delim rune) []string {
	fields := []string{}
	var b strings.Builder
	inQuotes := false
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}

// columnMap holds the resolved column index per canonical field; -1 means
// the export has no such column.
type columnMap struct {
	article   int
	desc      int
	extras    []int
	quantity  int
	unit      int
	unitPrice int
	lineTotal int
}

func mapColumns(header []string, aliases supplier.TableAliases) columnMap {
	cm := columnMap{
		article:   findColumn(header, aliases.ArticleNumber),
		desc:      findColumn(header, aliases.Description),
		quantity:  findColumn(header, aliases.Quantity),
		unit:      findColumn(header, aliases.Unit),
		unitPrice: findColumn(header, aliases.UnitPrice),
		lineTotal: findColumn(header, aliases.LineTotal),
	}
	for _, alias := range aliases.Extra {
		if idx := findColumn(header, []string{alias}); idx >= 0 && idx != cm.desc {
			cm.extras = append(cm.extras, idx)
		}
	}
	return cm
}

// findColumn returns the first column whose normalized header equals one of
// the aliases, falling back to containment. Equality runs first over the
// whole header, otherwise the short alias "me" would capture "menge".
func findColumn(header []string, aliases []string) int {
	norms := make([]string, len(header))
	for i, cell := range header {
		norms[i] = normalizeHeaderCell(cell)
	}
	for i, norm := range norms {
		if norm == "" {
			continue
		}
		for _, alias := range aliases {
			if norm == normalizeHeaderCell(alias) {
				return i
			}
		}
	}
	for i, norm := range norms {
		if norm == "" {
			continue
		}
		for _, alias := range aliases {
			a := normalizeHeaderCell(alias)
			if len(a) >= 3 && strings.Contains(norm, a) {
				return i
			}
		}
	}
	return -1
}

// normalizeHeaderCell lowercases and strips everything that is not a letter
// or digit, so "Art.-Nr." matches the alias "artnr".
func normalizeHeaderCell(cell string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(cell) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// itemsFromRows maps header+data rows onto line items using the supplier's
// column aliases. Shared by the delimited, XLSX and HTML table paths.
func itemsFromRows(rows [][]string, supplierHint string) []internal.ParsedItem {
	if len(rows) < 2 {
		return []internal.ParsedItem{}
	}

	cm := mapColumns(rows[0], supplier.AliasesFor(supplierHint))
	items := make([]internal.ParsedItem, 0, len(rows)-1)

	for _, row := range rows[1:] {
		desc := strings.TrimSpace(cellAt(row, cm.desc))
		for _, idx := range cm.extras {
			if extra := strings.TrimSpace(cellAt(row, idx)); extra != "" {
				desc = strings.TrimSpace(desc + " " + extra)
			}
		}
		if desc == "" {
			continue
		}

		item := internal.ParsedItem{
			Description: desc,
			Quantity:    locale.ParseNumber(cellAt(row, cm.quantity)),
			Unit:        locale.NormalizeUnit(cellAt(row, cm.unit)),
			UnitPrice:   locale.ParseNumber(cellAt(row, cm.unitPrice)),
			LineTotal:   locale.ParseNumber(cellAt(row, cm.lineTotal)),
		}
		if article := strings.TrimSpace(cellAt(row, cm.article)); article != "" {
			item.ArticleNumber = util.StringPtr(article)
		}
		items = append(items, *finishItem(item))
	}

	return items
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
