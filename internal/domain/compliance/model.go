package compliance

import (
	"time"

	"github.com/google/uuid"
)

// FindingCategory classifies what kind of observation an auditor recorded.
type FindingCategory string

const (
	CategoryStrength       FindingCategory = "strength"
	CategoryConcern        FindingCategory = "concern"
	CategoryRecommendation FindingCategory = "recommendation"
	CategoryViolation      FindingCategory = "violation"
	CategoryObservation    FindingCategory = "observation"
)

// FindingSeverity grades how serious a finding is.
type FindingSeverity string

const (
	SeverityLow      FindingSeverity = "low"
	SeverityMedium   FindingSeverity = "medium"
	SeverityHigh     FindingSeverity = "high"
	SeverityCritical FindingSeverity = "critical"
)

// Finding is one operator-authored audit observation. Unlike clinical
// charting input, findings are validated strictly: an unknown category or
// severity is rejected at the scoring boundary.
type Finding struct {
	Category        FindingCategory `json:"category"`
	Severity        FindingSeverity `json:"severity"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// ComplianceStatus is the categorical outcome of a compliance check.
type ComplianceStatus string

const (
	StatusCompliant          ComplianceStatus = "compliant"
	StatusPartiallyCompliant ComplianceStatus = "partially_compliant"
	StatusNonCompliant       ComplianceStatus = "non_compliant"
	StatusRequiresReview     ComplianceStatus = "requires_review"
)

// RiskAssessment is the risk view derived from a finding set.
type RiskAssessment struct {
	OverallRisk          string   `json:"overall_risk"` // low, medium, high, critical
	RiskFactors          []string `json:"risk_factors"`
	MitigationStrategies []string `json:"mitigation_strategies"`
	MonitoringRequired   bool     `json:"monitoring_required"`
}

// AuditAction names one lifecycle transition of a compliance record.
type AuditAction string

const (
	ActionCreated  AuditAction = "created"
	ActionUpdated  AuditAction = "updated"
	ActionReviewed AuditAction = "reviewed"
	ActionArchived AuditAction = "archived"
	ActionDeleted  AuditAction = "deleted"
	ActionRestored AuditAction = "restored"
)

// AuditEntry is one immutable line in a record's audit trail.
type AuditEntry struct {
	Action      AuditAction       `json:"action"`
	PerformedBy string            `json:"performed_by"`
	Timestamp   time.Time         `json:"timestamp"`
	Notes       string            `json:"notes,omitempty"`
	Changes     map[string]string `json:"changes,omitempty"`
}

// Record maps to the compliance_check table. The audit trail is append-only
// and strictly time-ordered; soft-deleted records stay retrievable by ID but
// are excluded from active listings.
type Record struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	SubjectID       uuid.UUID        `db:"subject_id" json:"subject_id"`
	CheckType       string           `db:"check_type" json:"check_type,omitempty"`
	Findings        []Finding        `db:"findings" json:"findings"`
	Recommendations []string         `db:"recommendations" json:"recommendations,omitempty"`
	ComplianceScore int              `db:"compliance_score" json:"compliance_score"`
	Status          ComplianceStatus `db:"status" json:"compliance_status"`
	RiskAssessment  RiskAssessment   `db:"risk_assessment" json:"risk_assessment"`
	AuditTrail      []AuditEntry     `db:"audit_trail" json:"audit_trail"`
	IsArchived      bool             `db:"is_archived" json:"is_archived"`
	IsDeleted       bool             `db:"is_deleted" json:"is_deleted"`
	DeletedAt       *time.Time       `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Stats is computed by the repository over active records; the engine never
// aggregates across records itself.
type Stats struct {
	Total        int                      `json:"total"`
	AverageScore float64                  `json:"average_score"`
	ByStatus     map[ComplianceStatus]int `json:"by_status"`
	ByRisk       map[string]int           `json:"by_risk"`
}
