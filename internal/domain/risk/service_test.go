package risk

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/carechart/carechart/internal/platform/narrative"
)

// mockAssessmentRepo is an in-memory AssessmentRepository.
type mockAssessmentRepo struct {
	records map[uuid.UUID]*AssessmentRecord
	failOn  string
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{records: make(map[uuid.UUID]*AssessmentRecord)}
}

func (m *mockAssessmentRepo) Create(_ context.Context, rec *AssessmentRecord) error {
	if m.failOn == "create" {
		return fmt.Errorf("simulated insert failure")
	}
	rec.ID = uuid.New()
	m.records[rec.ID] = rec
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("assessment not found")
	}
	return rec, nil
}

func (m *mockAssessmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	var all []*AssessmentRecord
	for _, rec := range m.records {
		if rec.PatientID == patientID {
			all = append(all, rec)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// stubNarrator returns a fixed narrative or a fixed error.
type stubNarrator struct {
	text string
	err  error
}

func (s stubNarrator) RiskSummary(context.Context, narrative.SummaryRequest) (string, error) {
	return s.text, s.err
}

func newTestService(repo AssessmentRepository, narrator narrative.Provider) *Service {
	return NewService(NewAggregator(newClassifier()), repo, narrator)
}

func TestService_Assess_PersistsRecord(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := newTestService(repo, nil)

	patientID := uuid.New()
	rec, err := svc.Assess(context.Background(), &AssessmentRequest{
		PatientID: patientID,
		Snapshot:  *highFallSnapshot(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected record ID to be assigned")
	}
	if rec.PatientID != patientID {
		t.Errorf("patient ID = %s, want %s", rec.PatientID, patientID)
	}
	if rec.Result.Fall.RiskLevel != LevelHigh {
		t.Errorf("fall level = %s, want high", rec.Result.Fall.RiskLevel)
	}
	if rec.Narrative != nil {
		t.Error("disabled narrator should leave the narrative empty")
	}
	if len(repo.records) != 1 {
		t.Errorf("repo holds %d records, want 1", len(repo.records))
	}
}

func TestService_Assess_RequiresPatientID(t *testing.T) {
	svc := newTestService(newMockAssessmentRepo(), nil)
	_, err := svc.Assess(context.Background(), &AssessmentRequest{})
	if err == nil {
		t.Fatal("expected an error for missing patient_id")
	}
}

func TestService_Assess_AttachesNarrative(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := newTestService(repo, stubNarrator{text: "Patient presents with elevated fall risk."})

	rec, err := svc.Assess(context.Background(), &AssessmentRequest{
		PatientID: uuid.New(),
		Snapshot:  *highFallSnapshot(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Narrative == nil || *rec.Narrative == "" {
		t.Fatal("expected a narrative on the record")
	}
}

func TestService_Assess_NarrativeFailureIsNotFatal(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := newTestService(repo, stubNarrator{err: fmt.Errorf("provider down")})

	rec, err := svc.Assess(context.Background(), &AssessmentRequest{
		PatientID: uuid.New(),
		Snapshot:  *highFallSnapshot(),
	})
	if err != nil {
		t.Fatalf("assessment should survive a narrative failure, got: %v", err)
	}
	if rec.Narrative != nil {
		t.Error("failed narrator should leave the narrative empty")
	}
	if len(repo.records) != 1 {
		t.Error("record should still be persisted")
	}
}

func TestService_Assess_PersistFailure(t *testing.T) {
	repo := newMockAssessmentRepo()
	repo.failOn = "create"
	svc := newTestService(repo, nil)

	_, err := svc.Assess(context.Background(), &AssessmentRequest{
		PatientID: uuid.New(),
	})
	if err == nil {
		t.Fatal("expected persistence error to surface")
	}
}

func TestService_Evaluate_DoesNotPersist(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := newTestService(repo, nil)

	got := svc.Evaluate(&AssessmentRequest{Snapshot: *highFallSnapshot()})
	if got.Fall.RiskLevel != LevelHigh {
		t.Errorf("fall level = %s, want high", got.Fall.RiskLevel)
	}
	if len(repo.records) != 0 {
		t.Errorf("preview persisted %d records, want 0", len(repo.records))
	}
}

func TestService_ListAssessmentsByPatient(t *testing.T) {
	repo := newMockAssessmentRepo()
	svc := newTestService(repo, nil)

	patientID := uuid.New()
	for i := 0; i < 3; i++ {
		if _, err := svc.Assess(context.Background(), &AssessmentRequest{PatientID: patientID}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	if _, err := svc.Assess(context.Background(), &AssessmentRequest{PatientID: uuid.New()}); err != nil {
		t.Fatalf("seed other patient: %v", err)
	}

	items, total, err := svc.ListAssessmentsByPatient(context.Background(), patientID, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 2 {
		t.Errorf("page size = %d, want 2", len(items))
	}
}
