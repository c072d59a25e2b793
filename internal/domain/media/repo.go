package media

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists mammogram metadata rows.
type Repository interface {
	Create(ctx context.Context, m *Mammogram) error
	GetByID(ctx context.Context, id uuid.UUID) (*Mammogram, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Mammogram, int, error)
	UpdateAnalysis(ctx context.Context, m *Mammogram) error
	Delete(ctx context.Context, id uuid.UUID) error
}
