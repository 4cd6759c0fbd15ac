package pipeline

import (
	"strings"

	"wareneingang/internal/supplier"
)

type DetectResult struct {
	IsSupplierDoc bool
	Score         float64
	Reason        string
}

var detectKeywords = []string{
	"rechnung", "lieferschein", "quittung", "kassenbon", "beleg",
	"wareneingang", "lieferung", "bestellung", "summe", "mwst", "art.-nr",
}

// DetectSupplierDocument scores whether a mail carries supplier positions
// worth parsing. Rules only: keyword hits in subject and body, a known
// supplier name, price-looking tokens, parseable attachments and inline
// HTML tables each add weight.
func DetectSupplierDocument(subject, text, html string, attachmentNames []string) DetectResult {
	subjectLower := strings.ToLower(subject)
	textLower := strings.ToLower(text)
	htmlLower := strings.ToLower(html)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subjectLower, kw) {
			score += 0.2
		}
		if strings.Contains(textLower, kw) || strings.Contains(htmlLower, kw) {
			score += 0.1
		}
	}

	if id := supplier.Detect(subject + "\n" + text); id != nil {
		score += 0.3
	}

	priceHits := countPriceTokens(textLower)
	if priceHits >= 2 {
		score += 0.3
	} else if priceHits == 1 {
		score += 0.15
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".xlsx") || strings.HasSuffix(ln, ".xls") ||
			strings.HasSuffix(ln, ".pdf") || strings.HasSuffix(ln, ".csv") {
			score += 0.25
			break
		}
	}

	if strings.Contains(htmlLower, "<table") {
		score += 0.25
	}
	if score > 1 {
		score = 1
	}

	isDoc := score >= 0.45
	reason := "rules_negative"
	if isDoc {
		reason = "rules_positive"
	}

	return DetectResult{IsSupplierDoc: isDoc, Score: score, Reason: reason}
}

// countPriceTokens counts comma-decimal amounts like "12,99", the shape
// German price columns always take.
func countPriceTokens(text string) int {
	count := 0
	for i := 1; i+1 < len(text); i++ {
		if text[i] != ',' {
			continue
		}
		if isDigit(text[i-1]) && isDigit(text[i+1]) {
			count++
		}
	}
	return count
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
