package risk

// PressureUlcerRiskCalculator emulates a Braden-style inverse scale: it
// starts at 23 and deducts per finding, so lower scores mean higher risk.
//
// The source scale deducts for cognitive impairment and wheelchair use
// twice, under different sub-category labels (sensory vs. nutrition,
// mobility vs. activity). That double-counting is reproduced deliberately;
// see DESIGN.md before changing any weight here.
type PressureUlcerRiskCalculator struct {
	classifier ConditionClassifier
	rules      []ScoreRule
}

const pressureBaseScore = 23

func NewPressureUlcerRiskCalculator(classifier ConditionClassifier) *PressureUlcerRiskCalculator {
	c := &PressureUlcerRiskCalculator{classifier: classifier}
	c.rules = []ScoreRule{
		{
			Factor: "Impaired sensory perception",
			Points: -2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagCognitiveImpairment)
			},
		},
		{
			Factor: "Incontinence",
			Points: -2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagIncontinence)
			},
		},
		{
			Factor: "Severely limited activity",
			Points: -3,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.FunctionalStatus, "wheelchair", "bedbound")
			},
		},
		{
			Factor: "Activity requires assistance",
			Points: -1,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return !containsAny(s.FunctionalStatus, "wheelchair", "bedbound") &&
					containsAny(s.FunctionalStatus, "assistance")
			},
		},
		{
			Factor: "Limited mobility",
			Points: -2,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.FunctionalStatus, "wheelchair")
			},
		},
		{
			Factor: "Nutritional concern",
			Points: -1,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return c.classifier.HasCondition(s, TagCognitiveImpairment)
			},
		},
		{
			Factor: "Friction and shear risk",
			Points: -1,
			Applies: func(s *PatientSnapshot, _ *VitalSigns) bool {
				return containsAny(s.FunctionalStatus, "assistance")
			},
		},
	}
	return c
}

var pressureInterpretations = map[RiskLevel]string{
	LevelHigh:     "High pressure-ulcer risk: begin a turning schedule and pressure-redistribution surface.",
	LevelModerate: "Moderate pressure-ulcer risk: daily skin inspection and moisture management.",
	LevelLow:      "Low pressure-ulcer risk: routine skin care.",
}

func (c *PressureUlcerRiskCalculator) Evaluate(s *PatientSnapshot, v *VitalSigns) RiskScoreResult {
	deductions, factors := evaluateRules(c.rules, s, v)
	score := pressureBaseScore + deductions
	level := levelFromInverseThresholds(score, 9, 12)
	return RiskScoreResult{
		Score:          score,
		RiskLevel:      level,
		Factors:        factors,
		Interpretation: pressureInterpretations[level],
	}
}
