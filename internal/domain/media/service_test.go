package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mammocare/mammocare/internal/platform/storage"
)

type mockRepo struct {
	rows      map[uuid.UUID]*Mammogram
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[uuid.UUID]*Mammogram)}
}

func (m *mockRepo) Create(ctx context.Context, mm *Mammogram) error {
	if m.createErr != nil {
		return m.createErr
	}
	mm.ID = uuid.New()
	m.rows[mm.ID] = mm
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Mammogram, error) {
	mm, ok := m.rows[id]
	if !ok {
		return nil, ErrMammogramNotFound
	}
	return mm, nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Mammogram, int, error) {
	var items []*Mammogram
	for _, mm := range m.rows {
		if mm.PatientID == patientID {
			items = append(items, mm)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) UpdateAnalysis(ctx context.Context, mm *Mammogram) error {
	if _, ok := m.rows[mm.ID]; !ok {
		return ErrMammogramNotFound
	}
	m.rows[mm.ID] = mm
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), "http://localhost:8000/files", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewService(repo, store, zerolog.Nop())
}

func TestUpload(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, repo)
	patientID := uuid.New()

	m, err := svc.Upload(context.Background(), strings.NewReader("image data"), "scan.png", patientID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if m.ID == uuid.Nil {
		t.Error("mammogram id not assigned")
	}
	if !strings.HasPrefix(m.ImagePath, "mammograms/"+patientID.String()+"/") {
		t.Errorf("unexpected image path %q", m.ImagePath)
	}
	if m.ContentType == nil || *m.ContentType != "image/png" {
		t.Errorf("content type not derived from extension: %v", m.ContentType)
	}
	if !strings.HasPrefix(m.ImageURL, "http://localhost:8000/files/") {
		t.Errorf("unexpected image url %q", m.ImageURL)
	}
}

func TestUpload_RepoFailureCleansUpFile(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("insert failed")
	svc := newTestService(t, repo)

	_, err := svc.Upload(context.Background(), strings.NewReader("image data"), "scan.png", uuid.New())
	if err == nil {
		t.Fatal("expected error from repo failure")
	}
	if len(repo.rows) != 0 {
		t.Error("row created despite failure")
	}
}

func TestUpload_Empty(t *testing.T) {
	svc := newTestService(t, newMockRepo())

	_, err := svc.Upload(context.Background(), strings.NewReader(""), "scan.png", uuid.New())
	if !errors.Is(err, storage.ErrEmptyUpload) {
		t.Errorf("expected ErrEmptyUpload, got %v", err)
	}
}

func TestImage_RoundTrip(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, repo)

	m, err := svc.Upload(context.Background(), strings.NewReader("image data"), "scan.png", uuid.New())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	rc, got, err := svc.Image(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	defer rc.Close()

	if got.ID != m.ID {
		t.Errorf("returned metadata for %s, expected %s", got.ID, m.ID)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading image: %v", err)
	}
	if string(data) != "image data" {
		t.Errorf("image content %q, expected original bytes", data)
	}
}

func TestImage_NotFound(t *testing.T) {
	svc := newTestService(t, newMockRepo())

	_, _, err := svc.Image(context.Background(), uuid.New())
	if !errors.Is(err, ErrMammogramNotFound) {
		t.Errorf("expected ErrMammogramNotFound, got %v", err)
	}
}

func TestRecordAnalysis(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, repo)

	m, err := svc.Upload(context.Background(), strings.NewReader("image data"), "scan.png", uuid.New())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, err := svc.RecordAnalysis(context.Background(), m.ID, "benign", []float64{0.9, 0.1})
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}
	if got.Prediction == nil || *got.Prediction != "benign" {
		t.Errorf("prediction not recorded: %v", got.Prediction)
	}
	if len(got.Probabilities) != 2 {
		t.Errorf("probabilities not recorded: %v", got.Probabilities)
	}
}

func TestDelete_RemovesRowAndFile(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, repo)

	m, err := svc.Upload(context.Background(), strings.NewReader("image data"), "scan.png", uuid.New())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(context.Background(), m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(context.Background(), m.ID); !errors.Is(err, ErrMammogramNotFound) {
		t.Errorf("row still present after delete: %v", err)
	}
	if _, _, err := svc.Image(context.Background(), m.ID); !errors.Is(err, ErrMammogramNotFound) {
		t.Errorf("image still served after delete: %v", err)
	}
}

func TestListByPatient_FillsImageURL(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, repo)
	patientID := uuid.New()

	if _, err := svc.Upload(context.Background(), strings.NewReader("a"), "a.png", patientID); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	items, total, err := svc.ListByPatient(context.Background(), patientID, 20, 0)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected one item, got %d (total %d)", len(items), total)
	}
	if items[0].ImageURL == "" {
		t.Error("image url not derived")
	}
}
