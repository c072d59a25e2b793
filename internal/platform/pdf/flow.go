package pdf

import "github.com/go-pdf/fpdf"

// Cursor is the current drawing position: x/y in points from the top-left
// corner plus the 1-based page index. It is owned by exactly one Flow for
// the duration of one render call and never shared across documents.
type Cursor struct {
	X, Y float64
	Page int
}

// Flow tracks a Cursor over an fpdf document and handles page continuation.
// The document's auto page break must be disabled; Flow is the only thing
// that opens continuation pages, so content is never silently drawn past the
// bottom margin.
type Flow struct {
	doc *fpdf.Fpdf
	cur Cursor

	left, top, right, bottom float64
	pageW, pageH             float64
}

// NewFlow creates a flow positioned at the top margin of the document's
// current page.
func NewFlow(doc *fpdf.Fpdf, left, top, right, bottom float64) *Flow {
	w, h := doc.GetPageSize()
	return &Flow{
		doc:    doc,
		cur:    Cursor{X: left, Y: top, Page: doc.PageNo()},
		left:   left,
		top:    top,
		right:  right,
		bottom: bottom,
		pageW:  w,
		pageH:  h,
	}
}

// Cursor returns the current cursor state.
func (f *Flow) Cursor() Cursor { return f.cur }

// ContentWidth is the usable width between the left and right margins.
func (f *Flow) ContentWidth() float64 { return f.pageW - f.left - f.right }

// Measure returns the width of s in the document's active font.
func (f *Flow) Measure(s string) float64 { return f.doc.GetStringWidth(s) }

// Advance moves the cursor down by h and returns the new y position. When h
// would land below the bottom margin a new page is opened and the cursor
// resets to the top margin of that page.
func (f *Flow) Advance(h float64) float64 {
	f.cur.Y += h
	if f.cur.Y > f.pageH-f.bottom {
		f.newPage()
	}
	return f.cur.Y
}

// ensureRoom opens a new page if a block of height h does not fit between
// the cursor and the bottom margin.
func (f *Flow) ensureRoom(h float64) {
	if f.cur.Y+h > f.pageH-f.bottom {
		f.newPage()
	}
}

func (f *Flow) newPage() {
	f.doc.AddPage()
	f.cur = Cursor{X: f.left, Y: f.top, Page: f.doc.PageNo()}
}

// WriteLine draws one line of text at the cursor in the document's active
// font and advances by h. align is an fpdf alignment string ("L", "C", "R").
func (f *Flow) WriteLine(text string, h float64, align string) {
	f.ensureRoom(h)
	f.doc.SetXY(f.left, f.cur.Y)
	f.doc.CellFormat(f.ContentWidth(), h, text, "", 0, align, false, 0, "")
	f.cur.Y += h
}

// WriteParagraph wraps text to the content width and emits it line by line.
// Explicit newlines split paragraphs, each wrapped independently, with half
// a line of extra spacing in between.
func (f *Flow) WriteParagraph(text string, h float64) {
	for i, para := range SplitParagraphs(text) {
		if i > 0 {
			f.Advance(h / 2)
		}
		for _, line := range WrapParagraph(para, f.ContentWidth(), f.Measure) {
			f.WriteLine(line, h, "L")
		}
	}
}

// WriteCell draws text at the given x offset from the left margin without
// advancing the cursor. Callers drawing multi-column rows advance once per
// row after the last cell.
func (f *Flow) WriteCell(xOffset, width float64, text string, h float64, align string) {
	f.ensureRoom(h)
	f.doc.SetXY(f.left+xOffset, f.cur.Y)
	f.doc.CellFormat(width, h, text, "", 0, align, false, 0, "")
}

// Rule draws a horizontal line of the given width at the cursor and advances
// by h.
func (f *Flow) Rule(width, h float64) {
	f.ensureRoom(h)
	f.doc.SetLineWidth(0.6)
	f.doc.Line(f.left, f.cur.Y, f.left+width, f.cur.Y)
	f.cur.Y += h
}
