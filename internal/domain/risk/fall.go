package risk

// FallRiskCalculator emulates a Morse-style fall scale over free-text
// charting data. It is a heuristic equivalent, not a calibrated instrument.
type FallRiskCalculator struct {
	classifier ConditionClassifier
	rules      []ScoreRule
}

func NewFallRiskCalculator(classifier ConditionClassifier) *FallRiskCalculator {
	c := &FallRiskCalculator{classifier: classifier}
	c.rules = []ScoreRule{
		{
			Factor: "History of falls or dementia",
			Points: 25,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagFallHistory)
			},
		},
		{
			Factor: "Multiple comorbidities",
			Points: 15,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return len(s.Conditions) > 2
			},
		},
		{
			Factor: "Requires ambulatory aid",
			Points: 30,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.FunctionalStatus, "walker", "wheelchair")
			},
		},
		{
			Factor: "Requires assistance with mobility",
			Points: 15,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return !containsAny(s.FunctionalStatus, "walker", "wheelchair") &&
					containsAny(s.FunctionalStatus, "assistance")
			},
		},
		{
			Factor: "IV therapy or anticoagulant use",
			Points: 20,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return anyContains(s.Medications, "iv", "heparin", "warfarin", "anticoagulant")
			},
		},
		{
			Factor: "Limited gait",
			Points: 20,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.FunctionalStatus, "limited")
			},
		},
		{
			Factor: "Gait requires assistance",
			Points: 10,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return !containsAny(s.FunctionalStatus, "limited") &&
					containsAny(s.FunctionalStatus, "assistance")
			},
		},
		{
			Factor: "Cognitive impairment",
			Points: 15,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagCognitiveImpairment)
			},
		},
	}
	return c
}

var fallInterpretations = map[RiskLevel]string{
	LevelHigh:     "High fall risk: implement high-risk fall precautions and hourly rounding.",
	LevelModerate: "Moderate fall risk: standard fall precautions with scheduled reassessment.",
	LevelLow:      "Low fall risk: maintain routine safety measures.",
}

// Evaluate never fails: missing fields simply leave rules untriggered.
func (c *FallRiskCalculator) Evaluate(s *PatientSnapshot, v *VitalSigns) RiskScoreResult {
	score, factors := evaluateRules(c.rules, s, v)
	level := levelFromThresholds(score, 45, 25)
	return RiskScoreResult{
		Score:          score,
		RiskLevel:      level,
		Factors:        factors,
		Interpretation: fallInterpretations[level],
	}
}
