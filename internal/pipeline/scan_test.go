package pipeline

import (
	"context"
	"errors"
	"testing"
)

type fakeScanner struct {
	text string
	err  error
}

func (f fakeScanner) Scan(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func TestScanReceipt(t *testing.T) {
	text := "OBI Markt\n2 ST Schraube 4x60       3,49\n"
	doc, err := ScanReceipt(context.Background(), fakeScanner{text: text}, []byte{0x1})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("items=%d", len(doc.Items))
	}
}

func TestScanReceiptEmptyResult(t *testing.T) {
	_, err := ScanReceipt(context.Background(), fakeScanner{text: "  \n "}, []byte{0x1})
	if !errors.Is(err, ErrNoTextRecognized) {
		t.Fatalf("err=%v", err)
	}
}

func TestScanReceiptBackendError(t *testing.T) {
	backendErr := errors.New("ocr offline")
	_, err := ScanReceipt(context.Background(), fakeScanner{err: backendErr}, nil)
	if !errors.Is(err, backendErr) {
		t.Fatalf("err=%v", err)
	}
}
