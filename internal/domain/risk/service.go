package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carechart/carechart/internal/platform/narrative"
)

// AssessmentRequest is the inbound shape for one aggregator run.
type AssessmentRequest struct {
	PatientID   uuid.UUID       `json:"patient_id"`
	AssessedBy  *uuid.UUID      `json:"assessed_by,omitempty"`
	Snapshot    PatientSnapshot `json:"snapshot"`
	Vitals      *VitalSigns     `json:"vitals,omitempty"`
	Medications []string        `json:"medications,omitempty"`
}

const narrativeTimeout = 10 * time.Second

type Service struct {
	aggregator  *Aggregator
	assessments AssessmentRepository
	narrator    narrative.Provider
}

func NewService(aggregator *Aggregator, assessments AssessmentRepository, narrator narrative.Provider) *Service {
	if narrator == nil {
		narrator = narrative.Disabled{}
	}
	return &Service{
		aggregator:  aggregator,
		assessments: assessments,
		narrator:    narrator,
	}
}

// Assess scores the snapshot and persists the result. Narrative generation
// is best-effort: a provider failure leaves the record without prose but
// never fails the assessment.
func (s *Service) Assess(ctx context.Context, req *AssessmentRequest) (*AssessmentRecord, error) {
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}

	result := s.aggregator.Assess(&req.Snapshot, req.Vitals, req.Medications)

	rec := &AssessmentRecord{
		PatientID:  req.PatientID,
		AssessedBy: req.AssessedBy,
		Snapshot:   req.Snapshot,
		Vitals:     req.Vitals,
		Result:     result,
	}

	var factors []string
	factors = append(factors, result.Fall.Factors...)
	factors = append(factors, result.Sepsis.Factors...)
	factors = append(factors, result.Readmission.Factors...)
	factors = append(factors, result.Medication.Factors...)
	factors = append(factors, result.PressureUlcer.Factors...)

	nctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()
	if text, err := s.narrator.RiskSummary(nctx, narrative.SummaryRequest{
		Age:         req.Snapshot.Age,
		Conditions:  req.Snapshot.Conditions,
		OverallRisk: string(result.OverallRiskLevel),
		RiskFactors: factors,
	}); err == nil && text != "" {
		rec.Narrative = &text
	}

	if err := s.assessments.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}
	return rec, nil
}

// Evaluate scores a snapshot without persisting anything.
func (s *Service) Evaluate(req *AssessmentRequest) OverallRiskAssessment {
	return s.aggregator.Assess(&req.Snapshot, req.Vitals, req.Medications)
}

func (s *Service) GetAssessment(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *Service) ListAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	return s.assessments.ListByPatient(ctx, patientID, limit, offset)
}
