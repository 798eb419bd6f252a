package risk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

const assessmentCols = `id, patient_id, assessed_by, snapshot, vitals, result, narrative, created_at`

func scanAssessment(row pgx.Row) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	var snapshot, vitals, result []byte
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.AssessedBy, &snapshot, &vitals, &result, &rec.Narrative, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(vitals) > 0 {
		rec.Vitals = &VitalSigns{}
		if err := json.Unmarshal(vitals, rec.Vitals); err != nil {
			return nil, fmt.Errorf("decode vitals: %w", err)
		}
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &rec, nil
}

func (r *assessmentRepoPG) Create(ctx context.Context, rec *AssessmentRecord) error {
	rec.ID = uuid.New()

	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	var vitals []byte
	if rec.Vitals != nil {
		if vitals, err = json.Marshal(rec.Vitals); err != nil {
			return fmt.Errorf("encode vitals: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO risk_assessment (id, patient_id, assessed_by, snapshot, vitals, result, narrative)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.PatientID, rec.AssessedBy, snapshot, vitals, result, rec.Narrative)
	return err
}

func (r *assessmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return scanAssessment(r.pool.QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM risk_assessment WHERE id = $1`, id))
}

func (r *assessmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM risk_assessment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}
