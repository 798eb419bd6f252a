package risk

// Condition names that historically predict 30-day readmission.
var readmissionConditionKeywords = []string{
	"heart failure", "copd", "diabetes", "dementia", "kidney disease",
}

// ReadmissionRiskCalculator estimates 30-day readmission risk from
// demographics, polypharmacy, comorbidity burden, and social context.
type ReadmissionRiskCalculator struct {
	rules []ScoreRule
}

func NewReadmissionRiskCalculator() *ReadmissionRiskCalculator {
	c := &ReadmissionRiskCalculator{}
	c.rules = []ScoreRule{
		{
			Factor: "Age 75 or older",
			Points: 3,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return s.Age >= 75
			},
		},
		{
			Factor: "Age 65 to 74",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return s.Age >= 65 && s.Age < 75
			},
		},
		{
			Factor: "10 or more medications",
			Points: 3,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return len(s.Medications) >= 10
			},
		},
		{
			Factor: "5 to 9 medications",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return len(s.Medications) >= 5 && len(s.Medications) < 10
			},
		},
		{
			Factor: "5 or more chronic conditions",
			Points: 3,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return len(s.Conditions) >= 5
			},
		},
		{
			Factor: "3 to 4 chronic conditions",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return len(s.Conditions) >= 3 && len(s.Conditions) < 5
			},
		},
		{
			Factor: "High-risk diagnosis",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return anyContains(s.Conditions, readmissionConditionKeywords...)
			},
		},
		{
			Factor: "Lives alone or socially isolated",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.SocialHistory, "alone", "isolation")
			},
		},
	}
	return c
}

var readmissionInterpretations = map[RiskLevel]string{
	LevelHigh:     "High readmission risk: arrange transition-of-care follow-up within 48 hours of discharge.",
	LevelModerate: "Moderate readmission risk: schedule follow-up within one week and reinforce discharge teaching.",
	LevelLow:      "Low readmission risk: routine discharge planning.",
}

func (c *ReadmissionRiskCalculator) Evaluate(s *PatientSnapshot, v *VitalSigns) RiskScoreResult {
	score, factors := evaluateRules(c.rules, s, v)
	level := levelFromThresholds(score, 8, 5)
	return RiskScoreResult{
		Score:          score,
		RiskLevel:      level,
		Factors:        factors,
		Interpretation: readmissionInterpretations[level],
	}
}
