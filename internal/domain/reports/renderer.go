package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/mammocare/mammocare/internal/platform/pdf"
)

// Page geometry in points. The top and bottom margins leave room for the
// header and footer blocks stamped by the template overlay pass.
const (
	marginLeft   = 48.0
	marginTop    = 72.0
	marginRight  = 48.0
	marginBottom = 72.0

	lineHeight   = 14.0
	labelWidth   = 110.0
	sectionRule  = 120.0
	sectionSpace = 10.0
)

const missingText = "N/A"

// Renderer builds the base report document. Section order is fixed: centered
// title, report id/date line, patient information, findings,
// recommendations and conclusion, author footer. The template overlay is a
// separate pass applied afterwards.
type Renderer struct{}

// Render lays out the report and returns the serialized PDF bytes.
func (Renderer) Render(r *Report) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Mammogram Screening Report", true)
	doc.SetMargins(marginLeft, marginTop, marginRight)
	// The flow owns page continuation; fpdf must never break pages itself.
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	flow := pdf.NewFlow(doc, marginLeft, marginTop, marginRight, marginBottom)

	// Title and metadata line.
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(20, 20, 20)
	flow.WriteLine("Mammogram Screening Report", 24, "C")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("Report ID: %s    Generated: %s", r.ID, r.CreatedAt.Format("02 Jan 2006 15:04"))
	flow.WriteLine(tr(meta), lineHeight, "C")
	flow.Advance(sectionSpace)

	sectionHeader(doc, flow, "Patient Information")
	field(doc, flow, "Name", tr(textOrNA(r.Patient.Name)))
	field(doc, flow, "Age", intOrNA(r.Patient.Age))
	field(doc, flow, "Gender", tr(textOrNA(r.Patient.Gender)))
	field(doc, flow, "Contact", tr(textOrNA(r.Patient.Contact)))
	flow.Advance(sectionSpace)

	sectionHeader(doc, flow, "Findings")
	flow.WriteParagraph(tr(textOrNA(r.Findings)), lineHeight)
	flow.Advance(sectionSpace)

	sectionHeader(doc, flow, "Recommendations & Conclusion")
	flow.WriteParagraph(tr(textOrNA(r.Conclusion)), lineHeight)
	flow.Advance(lineHeight / 2)
	flow.WriteParagraph(tr(textOrNA(r.Recommendation)), lineHeight)
	flow.Advance(sectionSpace + lineHeight/2)

	doc.SetFont("Helvetica", "I", 10)
	doc.SetTextColor(80, 80, 80)
	author := fmt.Sprintf("Prepared by: %s, %s", textOrNA(r.CreatedBy.Name), textOrNA(r.CreatedBy.Role))
	flow.WriteLine(tr(author), lineHeight, "L")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &GenerationError{Err: err}
	}
	return buf.Bytes(), nil
}

// sectionHeader draws a bold header with a short underline rule and leaves
// the body font active.
func sectionHeader(doc *fpdf.Fpdf, flow *pdf.Flow, title string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(20, 20, 20)
	flow.WriteLine(title, 18, "L")
	doc.SetDrawColor(90, 90, 90)
	flow.Rule(sectionRule, 8)

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(40, 40, 40)
}

// field draws one bold label / regular value row.
func field(doc *fpdf.Fpdf, flow *pdf.Flow, label, value string) {
	doc.SetFont("Helvetica", "B", 11)
	flow.WriteCell(0, labelWidth, label+":", lineHeight, "L")
	doc.SetFont("Helvetica", "", 11)
	flow.WriteCell(labelWidth, flow.ContentWidth()-labelWidth, value, lineHeight, "L")
	flow.Advance(lineHeight)
}

func textOrNA(s *string) string {
	if s == nil || *s == "" {
		return missingText
	}
	return *s
}

func intOrNA(n *int) string {
	if n == nil {
		return missingText
	}
	return strconv.Itoa(*n)
}
