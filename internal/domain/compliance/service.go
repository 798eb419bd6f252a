package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the inbound shape for a new compliance check.
type CreateRequest struct {
	SubjectID       uuid.UUID `json:"subject_id"`
	CheckType       string    `json:"check_type,omitempty"`
	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations,omitempty"`
	PerformedBy     string    `json:"performed_by"`
}

// UpdatePatch carries the fields an update may touch. Nil means "leave
// unchanged"; replacing findings or recommendations triggers a rescore.
type UpdatePatch struct {
	CheckType       *string    `json:"check_type,omitempty"`
	Findings        *[]Finding `json:"findings,omitempty"`
	Recommendations *[]string  `json:"recommendations,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateCheck scores the findings and persists a new record with its first
// audit entry.
func (s *Service) CreateCheck(ctx context.Context, req *CreateRequest) (*Record, error) {
	if req.SubjectID == uuid.Nil {
		return nil, fmt.Errorf("subject_id is required")
	}
	score, status, riskAssessment, err := Score(req.Findings)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		SubjectID:       req.SubjectID,
		CheckType:       req.CheckType,
		Findings:        req.Findings,
		Recommendations: req.Recommendations,
		ComplianceScore: score,
		Status:          status,
		RiskAssessment:  riskAssessment,
	}
	rec.AppendAudit(ActionCreated, req.PerformedBy, s.now(), "", nil)

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert compliance record: %w", err)
	}
	return rec, nil
}

func (s *Service) GetCheck(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.FindActiveByID(ctx, id)
}

func (s *Service) ListChecks(ctx context.Context, filter ListFilter, limit, offset int) ([]*Record, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// UpdateCheck applies the patch and appends exactly one "updated" entry.
// Score, status, and risk are recomputed only when the patch replaces the
// findings or the recommendations.
func (s *Service) UpdateCheck(ctx context.Context, id uuid.UUID, patch *UpdatePatch, performedBy string) (*Record, error) {
	rec, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]string{}
	rescore := false
	if patch.CheckType != nil {
		rec.CheckType = *patch.CheckType
		changes["check_type"] = *patch.CheckType
	}
	if patch.Findings != nil {
		rec.Findings = *patch.Findings
		changes["findings"] = fmt.Sprintf("replaced (%d findings)", len(*patch.Findings))
		rescore = true
	}
	if patch.Recommendations != nil {
		rec.Recommendations = *patch.Recommendations
		changes["recommendations"] = fmt.Sprintf("replaced (%d items)", len(*patch.Recommendations))
		rescore = true
	}

	if rescore {
		score, status, riskAssessment, err := Score(rec.Findings)
		if err != nil {
			return nil, err
		}
		rec.ComplianceScore = score
		rec.Status = status
		rec.RiskAssessment = riskAssessment
	}

	rec.AppendAudit(ActionUpdated, performedBy, s.now(), patch.Notes, changes)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save compliance record: %w", err)
	}
	return rec, nil
}

// ReviewCheck records a review without touching score or findings.
func (s *Service) ReviewCheck(ctx context.Context, id uuid.UUID, performedBy, notes string) (*Record, error) {
	rec, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.AppendAudit(ActionReviewed, performedBy, s.now(), notes, nil)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save compliance record: %w", err)
	}
	return rec, nil
}

func (s *Service) ArchiveCheck(ctx context.Context, id uuid.UUID, performedBy string) (*Record, error) {
	rec, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.IsArchived {
		return nil, fmt.Errorf("record is already archived")
	}
	rec.IsArchived = true
	rec.AppendAudit(ActionArchived, performedBy, s.now(), "", nil)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save compliance record: %w", err)
	}
	return rec, nil
}

// DeleteCheck soft-deletes: the record stays retrievable by ID, keeps its
// full audit trail, and disappears from active listings.
func (s *Service) DeleteCheck(ctx context.Context, id uuid.UUID, performedBy string) (*Record, error) {
	rec, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec.IsDeleted = true
	rec.DeletedAt = &now
	rec.AppendAudit(ActionDeleted, performedBy, now, "", nil)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save compliance record: %w", err)
	}
	return rec, nil
}

// RestoreCheck reverses a soft delete and clears the deletion timestamp.
func (s *Service) RestoreCheck(ctx context.Context, id uuid.UUID, performedBy string) (*Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.IsDeleted {
		return nil, fmt.Errorf("record is not deleted")
	}
	rec.IsDeleted = false
	rec.DeletedAt = nil
	rec.AppendAudit(ActionRestored, performedBy, s.now(), "", nil)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save compliance record: %w", err)
	}
	return rec, nil
}
