package reports

import (
	"context"

	"github.com/google/uuid"
)

// Repository looks up report read models. Persistence of reports themselves
// is owned elsewhere; this package only consumes the lookup.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
}
