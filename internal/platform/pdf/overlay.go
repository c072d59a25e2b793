package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// The server never reads or writes a pdfcpu config directory.
	api.DisableConfigDir()
}

// Overlay is the template pass applied to a finished document: it appends a
// header block (optional logo, patient name left, report id right, a rule)
// and a footer block (confidentiality notice, a rule, right-aligned page
// number) onto every existing page.
//
// Apply is a single-shot finalization step, not idempotent: each call
// appends a complete set of overlay elements, so applying it twice
// duplicates them. Callers apply it exactly once per document.
type Overlay struct {
	LogoPath     string // optional logo image, stamped top-left
	HeaderLeft   string // typically the patient name
	HeaderRight  string // typically the report id
	FooterNotice string
}

const ruleText = "________________________________________________________________________________"

// Apply stamps the header and footer template onto every page of doc and
// returns the decorated document bytes.
func (o *Overlay) Apply(doc []byte) ([]byte, error) {
	var stamps []*model.Watermark

	add := func(wm *model.Watermark, err error) error {
		if err != nil {
			return err
		}
		stamps = append(stamps, wm)
		return nil
	}

	if o.LogoPath != "" {
		if err := add(api.ImageWatermark(o.LogoPath,
			"pos:tl, off:14 -10, scale:0.08 rel, rot:0, op:1", true, false, types.POINTS)); err != nil {
			return nil, fmt.Errorf("overlay logo: %w", err)
		}
	}
	if o.HeaderLeft != "" {
		if err := add(api.TextWatermark(o.HeaderLeft,
			"font:Helvetica, points:9, pos:tl, off:64 -18, scale:1 abs, rot:0, fillc:#1f1f1f, op:1", true, false, types.POINTS)); err != nil {
			return nil, fmt.Errorf("overlay header: %w", err)
		}
	}
	if o.HeaderRight != "" {
		if err := add(api.TextWatermark(o.HeaderRight,
			"font:Helvetica, points:9, pos:tr, off:-14 -18, scale:1 abs, rot:0, fillc:#1f1f1f, op:1", true, false, types.POINTS)); err != nil {
			return nil, fmt.Errorf("overlay header: %w", err)
		}
	}
	// Header and footer rules.
	if err := add(api.TextWatermark(ruleText,
		"font:Helvetica, points:8, pos:tc, off:0 -26, scale:1 abs, rot:0, fillc:#b4b4b4, op:1", true, false, types.POINTS)); err != nil {
		return nil, fmt.Errorf("overlay rule: %w", err)
	}
	if err := add(api.TextWatermark(ruleText,
		"font:Helvetica, points:8, pos:bc, off:0 34, scale:1 abs, rot:0, fillc:#b4b4b4, op:1", true, false, types.POINTS)); err != nil {
		return nil, fmt.Errorf("overlay rule: %w", err)
	}
	if o.FooterNotice != "" {
		if err := add(api.TextWatermark(o.FooterNotice,
			"font:Helvetica, points:8, pos:bc, off:0 22, scale:1 abs, rot:0, fillc:#6e6e6e, op:1", true, false, types.POINTS)); err != nil {
			return nil, fmt.Errorf("overlay footer: %w", err)
		}
	}
	// %p/%P expand to the page number and total page count per page.
	if err := add(api.TextWatermark("Page %p of %P",
		"font:Helvetica, points:8, pos:br, off:-14 12, scale:1 abs, rot:0, fillc:#6e6e6e, op:1", true, false, types.POINTS)); err != nil {
		return nil, fmt.Errorf("overlay page number: %w", err)
	}

	return stampAll(doc, stamps)
}

// Watermark draws large, low-contrast diagonal text beneath the content of
// every page. It is independent of Apply and composes with it; draft
// documents typically get both passes.
func Watermark(doc []byte, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return doc, nil
	}
	wm, err := api.TextWatermark(text,
		"font:Helvetica, points:54, scale:0.9 rel, rot:45, fillc:#c8c8c8, op:0.3", false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return stampAll(doc, []*model.Watermark{wm})
}

// PageCount reports the number of pages in a serialized document.
func PageCount(doc []byte) (int, error) {
	return api.PageCount(bytes.NewReader(doc), nil)
}

func stampAll(doc []byte, stamps []*model.Watermark) ([]byte, error) {
	out := doc
	for _, wm := range stamps {
		var buf bytes.Buffer
		if err := api.AddWatermarks(bytes.NewReader(out), &buf, nil, wm, nil); err != nil {
			return nil, fmt.Errorf("stamp pages: %w", err)
		}
		out = buf.Bytes()
	}
	return out, nil
}
