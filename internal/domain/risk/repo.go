package risk

import (
	"context"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	Create(ctx context.Context, rec *AssessmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error)
}
