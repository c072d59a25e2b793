// Package media manages uploaded mammogram images: the sandboxed file
// artifact plus the metadata row that references it, including AI analysis
// results.
package media

import (
	"time"

	"github.com/google/uuid"
)

// Mammogram maps to the mammogram table. ImagePath is the artifact's
// relative path inside the storage root; it is the only durable identifier
// of the stored image.
type Mammogram struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	ImagePath     string    `db:"image_path" json:"image_path"`
	ContentType   *string   `db:"content_type" json:"content_type,omitempty"`
	SizeBytes     *int64    `db:"size_bytes" json:"size_bytes,omitempty"`
	Prediction    *string   `db:"prediction" json:"prediction,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	// ImageURL is derived from ImagePath and the configured public base
	// URL; never persisted.
	ImageURL string `json:"image_url,omitempty"`
}
