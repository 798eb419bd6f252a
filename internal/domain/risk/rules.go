package risk

// ScoreRule is one named weighted check. Applies must be a pure predicate:
// identical inputs always give the identical answer.
type ScoreRule struct {
	Factor  string
	Points  int
	Applies func(s *PatientSnapshot, v *VitalSigns) bool
}

// evaluateRules runs an ordered rule list and accumulates points. Factor
// labels are collected in rule order, which fixes the order of the Factors
// slice in every result.
func evaluateRules(rules []ScoreRule, s *PatientSnapshot, v *VitalSigns) (int, []string) {
	if s == nil {
		s = &PatientSnapshot{}
	}
	score := 0
	factors := []string{}
	for _, r := range rules {
		if r.Applies(s, v) {
			score += r.Points
			factors = append(factors, r.Factor)
		}
	}
	return score, factors
}

// levelFromThresholds classifies an additive score where higher means worse.
func levelFromThresholds(score, high, moderate int) RiskLevel {
	switch {
	case score >= high:
		return LevelHigh
	case score >= moderate:
		return LevelModerate
	default:
		return LevelLow
	}
}

// levelFromInverseThresholds classifies a subtractive score where lower
// means worse (Braden-style scales).
func levelFromInverseThresholds(score, high, moderate int) RiskLevel {
	switch {
	case score <= high:
		return LevelHigh
	case score <= moderate:
		return LevelModerate
	default:
		return LevelLow
	}
}
