package risk

import (
	"strconv"
	"strings"
)

// SepsisRiskCalculator screens with qSOFA and SIRS criteria. Both are
// bedside heuristics, not diagnostic instruments.
type SepsisRiskCalculator struct {
	classifier ConditionClassifier
}

func NewSepsisRiskCalculator(classifier ConditionClassifier) *SepsisRiskCalculator {
	return &SepsisRiskCalculator{classifier: classifier}
}

// systolicFromBP parses the systolic value out of a "systolic/diastolic"
// string. Malformed input is reported as absent, never as an error.
func systolicFromBP(bp string) (float64, bool) {
	parts := strings.SplitN(bp, "/", 2)
	if len(parts) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var sepsisInterpretations = map[RiskLevel]string{
	LevelHigh:     "High sepsis risk: qSOFA positive, escalate for immediate clinical review.",
	LevelModerate: "Moderate sepsis risk: increase vitals monitoring and recheck labs.",
	LevelLow:      "Low sepsis risk: continue routine monitoring.",
}

func (c *SepsisRiskCalculator) Evaluate(s *PatientSnapshot, v *VitalSigns) SepsisScoreResult {
	if s == nil {
		s = &PatientSnapshot{}
	}

	qsofa := 0
	sirs := 0
	factors := []string{}

	if v != nil {
		if v.RespiratoryRate != nil && *v.RespiratoryRate > 22 {
			qsofa++
			factors = append(factors, "Respiratory rate > 22")
		}
		if sys, ok := systolicFromBP(v.BloodPressure); ok && sys < 100 {
			qsofa++
			factors = append(factors, "Systolic BP < 100")
		}
	}
	if c.classifier.HasCondition(s, TagCognitiveImpairment) {
		qsofa++
		factors = append(factors, "Altered mentation")
	}

	if v != nil {
		if v.Temperature != nil && (*v.Temperature > 100.4 || *v.Temperature < 96.8) {
			sirs++
			factors = append(factors, "Temperature out of range")
		}
		if v.HeartRate != nil && *v.HeartRate > 90 {
			sirs++
			factors = append(factors, "Heart rate > 90")
		}
		if v.RespiratoryRate != nil && *v.RespiratoryRate > 20 {
			sirs++
			factors = append(factors, "Respiratory rate > 20")
		}
	}
	if hasAbnormalWBC(s.RecentLabs) {
		sirs++
		factors = append(factors, "Abnormal WBC")
	}

	level := LevelLow
	switch {
	case qsofa >= 2:
		level = LevelHigh
	case sirs >= 2 || qsofa >= 1:
		level = LevelModerate
	}

	return SepsisScoreResult{
		QSOFAScore:     qsofa,
		SIRSScore:      sirs,
		RiskLevel:      level,
		Factors:        factors,
		Interpretation: sepsisInterpretations[level],
	}
}

func hasAbnormalWBC(labs []string) bool {
	for _, lab := range labs {
		if strings.Contains(lab, "WBC") && (strings.Contains(lab, ">12") || strings.Contains(lab, "<4")) {
			return true
		}
	}
	return false
}
