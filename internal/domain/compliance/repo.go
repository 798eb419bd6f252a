package compliance

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows active-record listings.
type ListFilter struct {
	SubjectID       *uuid.UUID
	Status          ComplianceStatus
	IncludeArchived bool
}

// Repository is the durable store for compliance records. Implementations
// must preserve audit-trail ordering on Save and must serialize concurrent
// writes to the same record (the engine assumes last writer wins per row).
type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	// FindActiveByID excludes soft-deleted records.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// FindByID also returns soft-deleted records, for restore.
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Record, int, error)
	Stats(ctx context.Context) (*Stats, error)
}
