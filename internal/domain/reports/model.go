// Package reports owns the screening report read model and the PDF pipeline
// that turns it into a downloadable clinical document.
package reports

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrReportNotFound is returned when no report exists for the requested id.
var ErrReportNotFound = errors.New("report not found")

// GenerationError wraps a failure while rendering or serializing a report
// document. The root cause is always preserved.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "report generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// Report is the read model consumed by the renderer: one screening report
// joined with its patient demographics and authoring clinician. It is
// immutable for the duration of a render call.
type Report struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	MammogramID    *uuid.UUID `db:"mammogram_id" json:"mammogram_id,omitempty"`
	Findings       *string    `db:"findings" json:"findings,omitempty"`
	Conclusion     *string    `db:"conclusion" json:"conclusion,omitempty"`
	Recommendation *string    `db:"recommendation" json:"recommendation,omitempty"`
	Draft          bool       `db:"draft" json:"draft"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	Patient   PatientInfo `json:"patient"`
	CreatedBy AuthorInfo  `json:"created_by"`
}

// PatientInfo carries the demographics printed in the report header block.
type PatientInfo struct {
	Name    *string `db:"patient_name" json:"name,omitempty"`
	Age     *int    `db:"patient_age" json:"age,omitempty"`
	Gender  *string `db:"patient_gender" json:"gender,omitempty"`
	Contact *string `db:"patient_contact" json:"contact,omitempty"`
}

// AuthorInfo names the clinician who authored the report.
type AuthorInfo struct {
	Name *string `db:"author_name" json:"name,omitempty"`
	Role *string `db:"author_role" json:"role,omitempty"`
}

// Document is the rendered artifact handed to the HTTP boundary: immutable
// bytes plus the attachment filename and size.
type Document struct {
	Filename string
	Size     int
	Content  []byte
}

// MediaType is the content type of every generated report document.
const MediaType = "application/pdf"
