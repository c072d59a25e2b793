package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMammogramNotFound is returned when no mammogram row exists for an id.
var ErrMammogramNotFound = errors.New("mammogram not found")

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the Postgres-backed mammogram repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const mammogramCols = `id, patient_id, image_path, content_type, size_bytes,
	prediction, probabilities, created_at, updated_at`

func scanMammogram(row pgx.Row) (*Mammogram, error) {
	var m Mammogram
	var probs *string
	err := row.Scan(&m.ID, &m.PatientID, &m.ImagePath, &m.ContentType, &m.SizeBytes,
		&m.Prediction, &probs, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if probs != nil {
		m.Probabilities, err = DecodeProbabilities(*probs)
		if err != nil {
			return nil, fmt.Errorf("mammogram %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

func (r *repoPG) Create(ctx context.Context, m *Mammogram) error {
	m.ID = uuid.New()
	probs, err := EncodeProbabilities(m.Probabilities)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO mammogram (id, patient_id, image_path, content_type, size_bytes, prediction, probabilities)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))`,
		m.ID, m.PatientID, m.ImagePath, m.ContentType, m.SizeBytes, m.Prediction, probs)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Mammogram, error) {
	m, err := scanMammogram(r.pool.QueryRow(ctx,
		`SELECT `+mammogramCols+` FROM mammogram WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMammogramNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Mammogram, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM mammogram WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+mammogramCols+` FROM mammogram
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Mammogram
	for rows.Next() {
		m, err := scanMammogram(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpdateAnalysis(ctx context.Context, m *Mammogram) error {
	probs, err := EncodeProbabilities(m.Probabilities)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE mammogram SET prediction=$2, probabilities=NULLIF($3,''), updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Prediction, probs)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mammogram WHERE id = $1`, id)
	return err
}
