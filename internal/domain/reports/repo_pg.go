package reports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the Postgres-backed report lookup.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const reportCols = `r.id, r.mammogram_id, r.findings, r.conclusion, r.recommendation, r.draft,
	r.created_at, r.updated_at,
	p.full_name, p.age, p.gender, p.contact,
	u.full_name, u.role`

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reportCols+`
		FROM report r
		JOIN patient p ON p.id = r.patient_id
		LEFT JOIN app_user u ON u.id = r.created_by
		WHERE r.id = $1`, id)

	var rep Report
	err := row.Scan(&rep.ID, &rep.MammogramID, &rep.Findings, &rep.Conclusion, &rep.Recommendation, &rep.Draft,
		&rep.CreatedAt, &rep.UpdatedAt,
		&rep.Patient.Name, &rep.Patient.Age, &rep.Patient.Gender, &rep.Patient.Contact,
		&rep.CreatedBy.Name, &rep.CreatedBy.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}
