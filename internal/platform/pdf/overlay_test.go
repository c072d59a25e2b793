package pdf

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
)

func renderTestPDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Cell(100, 14, "body text")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("rendering test document: %v", err)
	}
	return buf.Bytes()
}

func TestOverlay_ApplyPreservesPages(t *testing.T) {
	src := renderTestPDF(t, 3)

	o := &Overlay{
		HeaderLeft:   "Patient: Jane Roe",
		HeaderRight:  "Report 1234",
		FooterNotice: "CONFIDENTIAL",
	}
	out, err := o.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Errorf("overlay changed page count: got %d, want 3", n)
	}
	if len(out) <= len(src) {
		t.Errorf("overlay did not add content: %d <= %d bytes", len(out), len(src))
	}
}

func TestOverlay_ApplyTwiceDuplicates(t *testing.T) {
	src := renderTestPDF(t, 1)

	o := &Overlay{HeaderLeft: "Patient: Jane Roe", FooterNotice: "CONFIDENTIAL"}
	once, err := o.Apply(src)
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	twice, err := o.Apply(once)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	// Each pass appends a full overlay set; a second pass keeps growing the
	// document rather than replacing the first.
	if len(twice) <= len(once) {
		t.Errorf("second Apply did not append content: %d <= %d bytes", len(twice), len(once))
	}
}

func TestWatermark_ComposesWithOverlay(t *testing.T) {
	src := renderTestPDF(t, 2)

	o := &Overlay{HeaderLeft: "Patient: Jane Roe"}
	out, err := o.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	out, err = Watermark(out, "DRAFT")
	if err != nil {
		t.Fatalf("Watermark: %v", err)
	}

	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 2 {
		t.Errorf("watermark changed page count: got %d, want 2", n)
	}
}

func TestWatermark_EmptyTextIsNoop(t *testing.T) {
	src := renderTestPDF(t, 1)

	out, err := Watermark(src, "   ")
	if err != nil {
		t.Fatalf("Watermark: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("blank watermark text modified the document")
	}
}
