package risk

// Fixed vocabulary of medications with a narrow therapeutic index or known
// geriatric hazard. Matching is by case-insensitive substring.
var highRiskMedications = []string{
	"warfarin", "digoxin", "insulin", "opioid", "benzodiazepine",
}

// MedicationRiskCalculator flags polypharmacy and hazardous regimens.
type MedicationRiskCalculator struct {
	classifier ConditionClassifier
	rules      []ScoreRule
}

func NewMedicationRiskCalculator(classifier ConditionClassifier) *MedicationRiskCalculator {
	c := &MedicationRiskCalculator{classifier: classifier}
	c.rules = []ScoreRule{
		{
			Factor: "10 or more medications",
			Points: 4,
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
			Factor: "High-risk medication present",
			Points: 3,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return anyContains(s.Medications, highRiskMedications...)
			},
		},
		{
			Factor: "Age 75 or older",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return s.Age >= 75
			},
		},
		{
			Factor: "Renal or hepatic impairment",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagOrganImpairment)
			},
		},
		{
			Factor: "Cognitive impairment",
			Points: 2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagCognitiveImpairment)
			},
		},
	}
	return c
}

var medicationInterpretations = map[RiskLevel]string{
	LevelHigh:     "High medication risk: request pharmacist review and reconcile the full regimen.",
	LevelModerate: "Moderate medication risk: review high-risk agents at the next medication pass.",
	LevelLow:      "Low medication risk: routine medication administration.",
}

func (c *MedicationRiskCalculator) Evaluate(s *PatientSnapshot, v *VitalSigns) RiskScoreResult {
	score, factors := evaluateRules(c.rules, s, v)
	level := levelFromThresholds(score, 8, 5)
	return RiskScoreResult{
		Score:          score,
		RiskLevel:      level,
		Factors:        factors,
		Interpretation: medicationInterpretations[level],
	}
}
