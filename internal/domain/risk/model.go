package risk

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is a categorical risk classification derived from a numeric score.
type RiskLevel string

const (
	LevelLow      RiskLevel = "low"
	LevelModerate RiskLevel = "moderate"
	LevelHigh     RiskLevel = "high"
)

// PatientSnapshot is the immutable clinical picture a calculator evaluates.
// Every field is optional: a zero value contributes nothing to any rule.
type PatientSnapshot struct {
	Age              int      `json:"age"`
	Gender           string   `json:"gender,omitempty"`
	Conditions       []string `json:"conditions,omitempty"`
	Medications      []string `json:"medications,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	FunctionalStatus string   `json:"functional_status,omitempty"`
	SocialHistory    string   `json:"social_history,omitempty"`
	RecentLabs       []string `json:"recent_labs,omitempty"`
}

// VitalSigns carries optional charted vitals. A nil pointer means the vital
// was not charted and suppresses every rule that depends on it.
type VitalSigns struct {
	BloodPressure    string   `json:"blood_pressure,omitempty"` // "systolic/diastolic"
	HeartRate        *float64 `json:"heart_rate,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"` // °F
	RespiratoryRate  *float64 `json:"respiratory_rate,omitempty"`
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Height           *float64 `json:"height,omitempty"`
}

// RiskScoreResult is the output of a single calculator.
type RiskScoreResult struct {
	Score          int       `json:"score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Factors        []string  `json:"factors"`
	Interpretation string    `json:"interpretation"`
}

// SepsisScoreResult reports the two sepsis sub-scores instead of a single
// composite score.
type SepsisScoreResult struct {
	QSOFAScore     int       `json:"qsofa_score"`
	SIRSScore      int       `json:"sirs_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Factors        []string  `json:"factors"`
	Interpretation string    `json:"interpretation"`
}

// OverallRiskAssessment aggregates the five calculator results.
type OverallRiskAssessment struct {
	Fall             RiskScoreResult   `json:"fall"`
	Sepsis           SepsisScoreResult `json:"sepsis"`
	Readmission      RiskScoreResult   `json:"readmission"`
	Medication       RiskScoreResult   `json:"medication"`
	PressureUlcer    RiskScoreResult   `json:"pressure_ulcer"`
	OverallRiskLevel RiskLevel         `json:"overall_risk_level"`
	ImmediateActions []string          `json:"immediate_actions"`
	MonitoringPlan   map[string]string `json:"monitoring_plan"`
	PreventionPlan   []string          `json:"prevention_strategies"`
}

// AssessmentRecord maps to the risk_assessment table. It is the persisted
// form of one aggregator run; the optional narrative is attached alongside
// the numeric output and never replaces it.
type AssessmentRecord struct {
	ID          uuid.UUID             `db:"id" json:"id"`
	PatientID   uuid.UUID             `db:"patient_id" json:"patient_id"`
	AssessedBy  *uuid.UUID            `db:"assessed_by" json:"assessed_by,omitempty"`
	Snapshot    PatientSnapshot       `db:"snapshot" json:"snapshot"`
	Vitals      *VitalSigns           `db:"vitals" json:"vitals,omitempty"`
	Result      OverallRiskAssessment `db:"result" json:"result"`
	Narrative   *string               `db:"narrative" json:"narrative,omitempty"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
}
