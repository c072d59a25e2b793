package media

import (
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mammocare/mammocare/internal/platform/storage"
)

// Service coordinates the file store and the metadata repository. Every
// image path that reaches the store goes through the sandbox resolver,
// subfolder included.
type Service struct {
	repo   Repository
	store  *storage.FileStore
	logger zerolog.Logger
}

func NewService(repo Repository, store *storage.FileStore, logger zerolog.Logger) *Service {
	return &Service{repo: repo, store: store, logger: logger}
}

// Upload stores the image bytes under mammograms/{patientID}/ and creates
// the metadata row referencing the artifact's relative path.
func (s *Service) Upload(ctx context.Context, r io.Reader, originalName string, patientID uuid.UUID) (*Mammogram, error) {
	subfolder := path.Join("mammograms", patientID.String())
	rel, err := s.store.Store(r, originalName, subfolder)
	if err != nil {
		return nil, err
	}

	m := &Mammogram{
		PatientID: patientID,
		ImagePath: rel,
	}
	if ct := mime.TypeByExtension(filepath.Ext(originalName)); ct != "" {
		m.ContentType = &ct
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// The row is the source of truth; drop the orphaned file.
		_ = s.store.Delete(rel)
		return nil, err
	}

	m.ImageURL = s.store.PublicURL(rel)
	s.logger.Info().
		Str("mammogram_id", m.ID.String()).
		Str("patient_id", patientID.String()).
		Str("path", rel).
		Msg("mammogram stored")
	return m, nil
}

// Get returns the metadata row with its derived public URL.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Mammogram, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.ImageURL = s.store.PublicURL(m.ImagePath)
	return m, nil
}

// Image opens the stored image for streaming.
func (s *Service) Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Mammogram, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Load(m.ImagePath)
	if err != nil {
		return nil, nil, err
	}
	return rc, m, nil
}

// ListByPatient pages through a patient's mammograms.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Mammogram, int, error) {
	items, total, err := s.repo.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, m := range items {
		m.ImageURL = s.store.PublicURL(m.ImagePath)
	}
	return items, total, nil
}

// RecordAnalysis stores the AI prediction and class probabilities for a
// mammogram.
func (s *Service) RecordAnalysis(ctx context.Context, id uuid.UUID, prediction string, probabilities []float64) (*Mammogram, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Prediction = &prediction
	m.Probabilities = probabilities
	if err := s.repo.UpdateAnalysis(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the metadata row and then the stored image. A file that is
// already gone is not an error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(m.ImagePath)
}
