package risk

// Calculator names, in the fixed order every derived list follows.
const (
	CalculatorFall          = "fall"
	CalculatorSepsis        = "sepsis"
	CalculatorReadmission   = "readmission"
	CalculatorMedication    = "medication"
	CalculatorPressureUlcer = "pressure_ulcer"
)

var calculatorOrder = []string{
	CalculatorFall,
	CalculatorSepsis,
	CalculatorReadmission,
	CalculatorMedication,
	CalculatorPressureUlcer,
}

var immediateActions = map[string]string{
	CalculatorFall:          "Apply high-risk fall precautions: bed alarm, low bed, non-slip footwear.",
	CalculatorSepsis:        "Notify the provider for sepsis screening and draw lactate.",
	CalculatorReadmission:   "Engage case management for discharge planning today.",
	CalculatorMedication:    "Request an urgent pharmacist medication review.",
	CalculatorPressureUlcer: "Start a two-hour turning schedule and order a pressure-redistribution mattress.",
}

var monitoringCadence = map[string]string{
	CalculatorFall:          "Reassess fall risk every shift.",
	CalculatorSepsis:        "Vital signs every 2 hours with escalation thresholds.",
	CalculatorReadmission:   "Daily review of discharge readiness.",
	CalculatorMedication:    "Medication reconciliation at every transition of care.",
	CalculatorPressureUlcer: "Skin inspection every shift.",
}

var preventionStrategies = map[string]string{
	CalculatorFall:          "Keep call light in reach and clear walkways; toileting schedule.",
	CalculatorSepsis:        "Strict infection-control precautions and early mobility.",
	CalculatorReadmission:   "Teach-back education and a scheduled follow-up appointment before discharge.",
	CalculatorMedication:    "Simplify the regimen and review high-risk agents with the prescriber.",
	CalculatorPressureUlcer: "Optimize nutrition and hydration; protect bony prominences.",
}

// Aggregator runs all five calculators and derives the overall picture.
type Aggregator struct {
	fall        *FallRiskCalculator
	sepsis      *SepsisRiskCalculator
	readmission *ReadmissionRiskCalculator
	medication  *MedicationRiskCalculator
	pressure    *PressureUlcerRiskCalculator
}

func NewAggregator(classifier ConditionClassifier) *Aggregator {
	return &Aggregator{
		fall:        NewFallRiskCalculator(classifier),
		sepsis:      NewSepsisRiskCalculator(classifier),
		readmission: NewReadmissionRiskCalculator(),
		medication:  NewMedicationRiskCalculator(classifier),
		pressure:    NewPressureUlcerRiskCalculator(classifier),
	}
}

// Assess evaluates every calculator against the snapshot. When a separate
// medication list is supplied it is appended to the snapshot's own list for
// the duration of the call; the caller's snapshot is never mutated.
func (a *Aggregator) Assess(s *PatientSnapshot, v *VitalSigns, medications []string) OverallRiskAssessment {
	if s == nil {
		s = &PatientSnapshot{}
	}
	if len(medications) > 0 {
		merged := *s
		merged.Medications = append(append([]string{}, s.Medications...), medications...)
		s = &merged
	}

	result := OverallRiskAssessment{
		Fall:          a.fall.Evaluate(s, v),
		Sepsis:        a.sepsis.Evaluate(s, v),
		Readmission:   a.readmission.Evaluate(s, v),
		Medication:    a.medication.Evaluate(s, v),
		PressureUlcer: a.pressure.Evaluate(s, v),
	}

	levels := map[string]RiskLevel{
		CalculatorFall:          result.Fall.RiskLevel,
		CalculatorSepsis:        result.Sepsis.RiskLevel,
		CalculatorReadmission:   result.Readmission.RiskLevel,
		CalculatorMedication:    result.Medication.RiskLevel,
		CalculatorPressureUlcer: result.PressureUlcer.RiskLevel,
	}

	highs, moderates := 0, 0
	for _, name := range calculatorOrder {
		switch levels[name] {
		case LevelHigh:
			highs++
		case LevelModerate:
			moderates++
		}
	}

	switch {
	case highs >= 2:
		result.OverallRiskLevel = LevelHigh
	case highs >= 1 || moderates >= 3:
		result.OverallRiskLevel = LevelModerate
	default:
		result.OverallRiskLevel = LevelLow
	}

	result.ImmediateActions = []string{}
	result.MonitoringPlan = map[string]string{}
	result.PreventionPlan = []string{}
	for _, name := range calculatorOrder {
		if levels[name] == LevelHigh {
			result.ImmediateActions = append(result.ImmediateActions, immediateActions[name])
		}
		if levels[name] != LevelLow {
			result.MonitoringPlan[name] = monitoringCadence[name]
			result.PreventionPlan = append(result.PreventionPlan, preventionStrategies[name])
		}
	}

	return result
}
