package pipeline

import (
	"context"
	"errors"
	"strings"

	"wareneingang/internal"
)

// Scanner turns a receipt photo or scan into plain text. Implementations
// wrap an OCR backend; the engine itself never touches image data.
type Scanner interface {
	Scan(ctx context.Context, image []byte) (string, error)
}

var ErrNoTextRecognized = errors.New("no text recognized in image")

// ScanReceipt runs OCR on an image and parses the recognized text.
// An empty OCR result is reported as ErrNoTextRecognized so callers can
// distinguish a blank photo from a receipt that parsed to zero items.
func ScanReceipt(ctx context.Context, scanner Scanner, image []byte) (internal.ParsedDocument, error) {
	text, err := scanner.Scan(ctx, image)
	if err != nil {
		return internal.ParsedDocument{}, err
	}
	if strings.TrimSpace(text) == "" {
		return internal.ParsedDocument{}, ErrNoTextRecognized
	}
	return ParseReceiptText(text), nil
}
