package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mammocare/mammocare/internal/platform/pdf"
)

const footerNotice = "CONFIDENTIAL - This report contains protected health information."

const draftWatermarkText = "DRAFT"

// Service produces downloadable report documents: lookup, base render,
// template overlay, optional draft watermark. All of it runs synchronously
// on the calling goroutine; a render call owns its document end to end.
type Service struct {
	repo     Repository
	renderer Renderer
	logoPath string
	logger   zerolog.Logger
}

// NewService creates the report document service. logoPath may be empty; the
// overlay simply omits the logo then.
func NewService(repo Repository, logoPath string, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logoPath: logoPath, logger: logger}
}

// GeneratePDF renders the report with the given id and returns the finished
// document. The filename follows the fixed id-based convention
// "mammogram_report_{reportId}.pdf". A lookup miss propagates
// ErrReportNotFound; rendering and overlay failures come back as
// GenerationError with the cause attached.
func (s *Service) GeneratePDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(r)
	if err != nil {
		return nil, err
	}

	overlay := &pdf.Overlay{
		LogoPath:     s.logoPath,
		HeaderLeft:   "Patient: " + textOrNA(r.Patient.Name),
		HeaderRight:  "Report " + r.ID.String(),
		FooterNotice: footerNotice,
	}
	// The overlay is single-shot; it is applied exactly once per document.
	content, err = overlay.Apply(content)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	if r.Draft {
		content, err = pdf.Watermark(content, draftWatermarkText)
		if err != nil {
			return nil, &GenerationError{Err: err}
		}
	}

	s.logger.Info().
		Str("report_id", r.ID.String()).
		Int("size", len(content)).
		Bool("draft", r.Draft).
		Msg("report pdf generated")

	return &Document{
		Filename: fmt.Sprintf("mammogram_report_%s.pdf", r.ID),
		Size:     len(content),
		Content:  content,
	}, nil
}
