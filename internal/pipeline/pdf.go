package pipeline

import (
	"bytes"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"wareneingang/internal"
)

// ParsePDF extracts the plain text of all pages and runs it through the
// receipt parser. PDF invoices from the registered suppliers are laid out
// line by line, so the receipt grammars apply unchanged; pages that cannot
// be read are skipped.
func ParsePDF(content []byte) (internal.ParsedDocument, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return internal.ParsedDocument{Items: []internal.ParsedItem{}}, err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return ParseReceiptText(b.String()), nil
}
