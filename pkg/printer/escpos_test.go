package printer

import (
	"bytes"
	"testing"
)

func TestDocumentRowPadsToWidth(t *testing.T) {
	doc := NewDocument(16)
	doc.Row("Left", "Right")

	out := doc.Bytes()
	line := []byte("Left       Right\n")
	if !bytes.Contains(out, line) {
		t.Errorf("output %q does not contain padded row %q", out, line)
	}
}

func TestDocumentAmountRowFormatsCents(t *testing.T) {
	doc := NewDocument(32)
	doc.AmountRow("TOTAL", 12345, "GEL")

	if !bytes.Contains(doc.Bytes(), []byte("123.45 GEL")) {
		t.Errorf("output %q does not contain formatted amount", doc.Bytes())
	}
}

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	out := doc.Bytes()
	if len(out) < 2 || out[0] != esc || out[1] != '@' {
		t.Errorf("document does not start with printer init sequence: %v", out[:2])
	}
}

func TestDocumentCutCommand(t *testing.T) {
	doc := NewDocument(32)
	doc.Cut()

	if !bytes.HasSuffix(doc.Bytes(), []byte{gs, 'V', 1}) {
		t.Error("document does not end with cut command")
	}
}
