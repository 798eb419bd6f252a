package compliance

import "math"

var severityWeights = map[FindingSeverity]float64{
	SeverityLow:      0.1,
	SeverityMedium:   0.3,
	SeverityHigh:     0.6,
	SeverityCritical: 1.0,
}

// Category point values. Strengths carry negative points and therefore
// improve the score.
var categoryPoints = map[FindingCategory]float64{
	CategoryStrength:       -5,
	CategoryObservation:    0,
	CategoryConcern:        10,
	CategoryRecommendation: 15,
	CategoryViolation:      25,
}

var riskRank = map[string]int{
	"low":      0,
	"medium":   1,
	"high":     2,
	"critical": 3,
}

func severityRiskLevel(s FindingSeverity) string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// ValidateFindings checks every finding's enums before any scoring happens.
func ValidateFindings(findings []Finding) error {
	for _, f := range findings {
		if _, ok := categoryPoints[f.Category]; !ok {
			return &ValidationError{Field: "category", Value: string(f.Category)}
		}
		if _, ok := severityWeights[f.Severity]; !ok {
			return &ValidationError{Field: "severity", Value: string(f.Severity)}
		}
	}
	return nil
}

// Score converts a finding set into a 0-100 compliance score, a status, and
// a risk assessment. An empty finding set is a perfect score. The call is
// pure: identical findings always produce identical output.
func Score(findings []Finding) (int, ComplianceStatus, RiskAssessment, error) {
	if err := ValidateFindings(findings); err != nil {
		return 0, "", RiskAssessment{}, err
	}

	deduction := 0.0
	for _, f := range findings {
		deduction += severityWeights[f.Severity] * categoryPoints[f.Category]
	}
	raw := 100 - deduction
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	score := int(math.Round(raw))

	return score, statusFromScore(score, findings), riskFromFindings(score, findings), nil
}

func statusFromScore(score int, findings []Finding) ComplianceStatus {
	switch {
	case score >= 90:
		return StatusCompliant
	case score >= 70:
		return StatusPartiallyCompliant
	case score >= 50:
		return StatusNonCompliant
	}
	for _, f := range findings {
		if f.Severity == SeverityCritical || f.Category == CategoryViolation {
			return StatusNonCompliant
		}
	}
	return StatusRequiresReview
}

// riskFromFindings derives a base risk level from the score band and then
// escalates, never de-escalates, for the severities present.
func riskFromFindings(score int, findings []Finding) RiskAssessment {
	base := "low"
	switch {
	case score < 50:
		base = "critical"
	case score < 70:
		base = "high"
	case score < 85:
		base = "medium"
	}

	level := base
	riskFactors := []string{}
	mitigations := []string{}
	for _, f := range findings {
		sevLevel := severityRiskLevel(f.Severity)
		if riskRank[sevLevel] > riskRank[base] {
			riskFactors = append(riskFactors, f.Title)
			if riskRank[sevLevel] > riskRank[level] {
				level = sevLevel
			}
		}
		mitigations = append(mitigations, f.Recommendations...)
	}

	return RiskAssessment{
		OverallRisk:          level,
		RiskFactors:          riskFactors,
		MitigationStrategies: mitigations,
		MonitoringRequired:   level == "high" || level == "critical",
	}
}
