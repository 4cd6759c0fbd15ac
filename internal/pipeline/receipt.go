// Package pipeline implements the ingestion pass: parse supplier documents
// into line items, resolve them against the material catalog, score work
// orders, and apply approved results to stock.
package pipeline

import (
	"regexp"
	"strings"

	"wareneingang/internal"
	"wareneingang/internal/locale"
	"wareneingang/internal/supplier"
	"wareneingang/internal/util"
)

var (
	reDocumentNo = regexp.MustCompile(`(?i)(?:Bon|Beleg|Rechnung|Lieferschein|Kasse)(?:s)?[-.\s]*(?:Nr\.?|Nummer)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-/]{2,})`)
	reTotalLine  = regexp.MustCompile(`(?i)\b(?:SUMME|GESAMTBETRAG|RECHNUNGSBETRAG|GESAMT|TOTAL|ZU\s+ZAHLEN)\b`)
	reTaxLine    = regexp.MustCompile(`(?i)\b(?:MwSt|USt|Mehrwertsteuer)\b`)
	reNumToken   = regexp.MustCompile(`-?\d[\d.,]*%?`)
	reSpaces     = regexp.MustCompile(`[ \t]+`)
)

// ParseReceiptText extracts line items and header metadata from OCR receipt
// text. It never fails: empty or garbled input yields an empty document with
// the raw text preserved for manual entry.
func ParseReceiptText(text string) internal.ParsedDocument {
	doc := internal.ParsedDocument{Items: []internal.ParsedItem{}, RawText: text}
	if strings.TrimSpace(text) == "" {
		return doc
	}

	profile := supplier.Detect(text)
	if profile != nil {
		doc.Supplier = util.StringPtr(profile.ID)
	}

	patterns := supplier.GenericCascade
	if profile != nil {
		patterns = profile.LinePatterns
	}

	for _, line := range splitLines(text) {
		if item := matchLine(patterns, line); item != nil {
			doc.Items = append(doc.Items, *item)
		}
	}

	doc.Date = extractDate(text, profile)
	doc.DocumentNumber = extractDocumentNumber(text)
	doc.Tax = extractKeywordAmount(text, reTaxLine)
	doc.Total = extractKeywordAmount(text, totalPattern(profile))
	if doc.Total == 0 {
		doc.Total = sumLineTotals(doc.Items)
	}

	return doc
}

// matchLine tries the candidate patterns in priority order; the first
// pattern whose groups survive validation wins. Lines matching none are
// silently dropped.
func matchLine(patterns []supplier.LinePattern, line string) *internal.ParsedItem {
	trimmed := strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	if trimmed == "" {
		return nil
	}
	for _, p := range patterns {
		m := p.Re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if item := itemFromMatch(p.Grammar, m); item != nil {
			return item
		}
	}
	return nil
}

// itemFromMatch builds a ParsedItem from regex groups. The grammar set is
// closed; adding a grammar without extending this switch will not compile
// past the default.
func itemFromMatch(grammar supplier.LineGrammar, m []string) *internal.ParsedItem {
	switch grammar {
	case supplier.GrammarSimpleRetail:
		item := internal.ParsedItem{
			Description: collapseSpaces(m[3]),
			Quantity:    locale.ParseNumber(m[1]),
			Unit:        locale.NormalizeUnit(m[2]),
			LineTotal:   locale.ParseNumber(m[4]),
		}
		return finishItem(item)

	case supplier.GrammarProfessionalFull:
		if !util.LooksLikeArticle(m[1]) {
			return nil
		}
		item := internal.ParsedItem{
			ArticleNumber: util.StringPtr(m[1]),
			Description:   collapseSpaces(m[2]),
			Quantity:      locale.ParseNumber(m[3]),
			Unit:          locale.NormalizeUnit(m[4]),
			UnitPrice:     locale.ParseNumber(m[5]),
			LineTotal:     locale.ParseNumber(m[6]),
		}
		return finishItem(item)

	case supplier.GrammarProfessionalShort:
		if !util.LooksLikeArticle(m[1]) {
			return nil
		}
		item := internal.ParsedItem{
			ArticleNumber: util.StringPtr(m[1]),
			Description:   collapseSpaces(m[2]),
			Quantity:      locale.ParseNumber(m[3]),
			Unit:          locale.NormalizeUnit(m[4]),
			LineTotal:     locale.ParseNumber(m[5]),
		}
		return finishItem(item)

	case supplier.GrammarDescriptionPrice:
		desc := collapseSpaces(m[1])
		if len([]rune(desc)) < 4 || supplier.IsHeaderNoise(desc) {
			return nil
		}
		item := internal.ParsedItem{
			Description: desc,
			Quantity:    1,
			Unit:        locale.UnitPiece,
			LineTotal:   locale.ParseNumber(m[2]),
		}
		return finishItem(item)
	}
	return nil
}

// finishItem applies the ParsedItem derivation invariants.
func finishItem(item internal.ParsedItem) *internal.ParsedItem {
	if item.UnitPrice == 0 && item.LineTotal != 0 && item.Quantity > 0 {
		item.UnitPrice = util.Round2(item.LineTotal / item.Quantity)
	}
	if item.LineTotal == 0 && item.UnitPrice != 0 && item.Quantity > 0 {
		item.LineTotal = util.Round2(item.UnitPrice * item.Quantity)
	}
	return &item
}

func extractDate(text string, profile *supplier.Profile) *string {
	if profile != nil && profile.DatePattern != nil {
		if m := profile.DatePattern.FindStringSubmatch(text); m != nil {
			if iso := locale.ParseDate(m[1]); iso != nil {
				return iso
			}
		}
	}
	return locale.ParseDate(text)
}

// extractDocumentNumber looks for a keyword-anchored document number. The
// captured token must contain a digit, otherwise prose after "Rechnung"
// would qualify.
func extractDocumentNumber(text string) *string {
	for _, m := range reDocumentNo.FindAllStringSubmatch(text, -1) {
		if util.LooksLikeArticle(m[1]) {
			return util.StringPtr(m[1])
		}
	}
	return nil
}

func totalPattern(profile *supplier.Profile) *regexp.Regexp {
	if profile != nil && profile.TotalPattern != nil {
		return profile.TotalPattern
	}
	return reTotalLine
}

// extractKeywordAmount finds the first line matching the keyword pattern and
// returns the last plain number on it. Percentages ("19%") are skipped so a
// tax line like "MwSt. 19%  1,45" yields the amount, not the rate.
func extractKeywordAmount(text string, keyword *regexp.Regexp) float64 {
	for _, line := range splitLines(text) {
		if !keyword.MatchString(line) {
			continue
		}
		amount := 0.0
		found := false
		for _, tok := range reNumToken.FindAllString(line, -1) {
			if strings.HasSuffix(tok, "%") {
				continue
			}
			amount = locale.ParseNumber(tok)
			found = true
		}
		if found {
			return amount
		}
	}
	return 0
}

func sumLineTotals(items []internal.ParsedItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.LineTotal
	}
	return util.Round2(sum)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func collapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
