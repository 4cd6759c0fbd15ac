package pipeline

import (
	"fmt"
	"os"

	"wareneingang/internal"
)

// ExtractDocumentFromInput parses a single local input for the parse
// subcommand. Text types take the content inline, file types take a path.
func ExtractDocumentFromInput(inputType, input, supplierHint string) (internal.ParsedDocument, error) {
	switch inputType {
	case "receipt":
		return ParseReceiptText(input), nil
	case "table":
		return ParseSupplierTable(input, supplierHint), nil
	case "html":
		blob, err := os.ReadFile(input)
		if err != nil {
			return internal.ParsedDocument{}, err
		}
		return ParseHTMLTables(string(blob), supplierHint), nil
	case "xlsx":
		blob, err := os.ReadFile(input)
		if err != nil {
			return internal.ParsedDocument{}, err
		}
		return ParseXLSX(blob, supplierHint)
	case "pdf":
		blob, err := os.ReadFile(input)
		if err != nil {
			return internal.ParsedDocument{}, err
		}
		return ParsePDF(blob)
	default:
		return internal.ParsedDocument{}, fmt.Errorf("unsupported input type: %s", inputType)
	}
}
