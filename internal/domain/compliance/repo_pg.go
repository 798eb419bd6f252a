package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recordCols = `id, subject_id, check_type, findings, recommendations, compliance_score,
	status, risk_assessment, audit_trail, is_archived, is_deleted, deleted_at, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var findings, recommendations, riskAssessment, auditTrail []byte
	err := row.Scan(&rec.ID, &rec.SubjectID, &rec.CheckType, &findings, &recommendations,
		&rec.ComplianceScore, &rec.Status, &riskAssessment, &auditTrail,
		&rec.IsArchived, &rec.IsDeleted, &rec.DeletedAt, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(findings, &rec.Findings); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	if len(recommendations) > 0 {
		if err := json.Unmarshal(recommendations, &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations: %w", err)
		}
	}
	if err := json.Unmarshal(riskAssessment, &rec.RiskAssessment); err != nil {
		return nil, fmt.Errorf("decode risk assessment: %w", err)
	}
	if err := json.Unmarshal(auditTrail, &rec.AuditTrail); err != nil {
		return nil, fmt.Errorf("decode audit trail: %w", err)
	}
	return &rec, nil
}

func encodeRecord(rec *Record) (findings, recommendations, riskAssessment, auditTrail []byte, err error) {
	if findings, err = json.Marshal(rec.Findings); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode findings: %w", err)
	}
	if recommendations, err = json.Marshal(rec.Recommendations); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode recommendations: %w", err)
	}
	if riskAssessment, err = json.Marshal(rec.RiskAssessment); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode risk assessment: %w", err)
	}
	if auditTrail, err = json.Marshal(rec.AuditTrail); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode audit trail: %w", err)
	}
	return findings, recommendations, riskAssessment, auditTrail, nil
}

func (r *repoPG) Insert(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	findings, recommendations, riskAssessment, auditTrail, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO compliance_check
			(id, subject_id, check_type, findings, recommendations, compliance_score,
			 status, risk_assessment, audit_trail, is_archived, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.SubjectID, rec.CheckType, findings, recommendations, rec.ComplianceScore,
		rec.Status, riskAssessment, auditTrail, rec.IsArchived, rec.IsDeleted, rec.DeletedAt)
	return err
}

func (r *repoPG) FindActiveByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM compliance_check WHERE id = $1 AND is_deleted = FALSE`, id))
}

func (r *repoPG) FindByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM compliance_check WHERE id = $1`, id))
}

func (r *repoPG) Save(ctx context.Context, rec *Record) error {
	findings, recommendations, riskAssessment, auditTrail, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE compliance_check SET
			check_type=$2, findings=$3, recommendations=$4, compliance_score=$5,
			status=$6, risk_assessment=$7, audit_trail=$8, is_archived=$9,
			is_deleted=$10, deleted_at=$11, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.CheckType, findings, recommendations, rec.ComplianceScore,
		rec.Status, riskAssessment, auditTrail, rec.IsArchived, rec.IsDeleted, rec.DeletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Record, int, error) {
	where := `is_deleted = FALSE`
	args := []interface{}{}
	if !filter.IncludeArchived {
		where += ` AND is_archived = FALSE`
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		where += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM compliance_check WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM compliance_check WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		recordCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus: map[ComplianceStatus]int{},
		ByRisk:   map[string]int{},
	}

	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(compliance_score), 0)
		FROM compliance_check WHERE is_deleted = FALSE`).Scan(&stats.Total, &stats.AverageScore); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM compliance_check
		WHERE is_deleted = FALSE GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status ComplianceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}

	riskRows, err := r.pool.Query(ctx, `
		SELECT risk_assessment->>'overall_risk', COUNT(*) FROM compliance_check
		WHERE is_deleted = FALSE GROUP BY 1`)
	if err != nil {
		return nil, err
	}
	defer riskRows.Close()
	for riskRows.Next() {
		var risk string
		var count int
		if err := riskRows.Scan(&risk, &count); err != nil {
			return nil, err
		}
		stats.ByRisk[risk] = count
	}

	return stats, nil
}
