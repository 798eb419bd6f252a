package risk

import (
	"reflect"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func newClassifier() *KeywordClassifier { return NewKeywordClassifier() }

// ===================== Classifier =====================

func TestKeywordClassifier_HasCondition(t *testing.T) {
	k := newClassifier()
	tests := []struct {
		name       string
		conditions []string
		tag        string
		want       bool
	}{
		{"dementia matches fall history", []string{"Dementia"}, TagFallHistory, true},
		{"fall risk matches fall history", []string{"Fall risk"}, TagFallHistory, true},
		{"case insensitive", []string{"ALZHEIMER disease"}, TagCognitiveImpairment, true},
		{"substring match", []string{"Chronic kidney disease stage 3"}, TagOrganImpairment, true},
		{"no match", []string{"Hypertension"}, TagCognitiveImpairment, false},
		{"unknown tag", []string{"Dementia"}, "no-such-tag", false},
		{"empty conditions", nil, TagFallHistory, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &PatientSnapshot{Conditions: tt.conditions}
			if got := k.HasCondition(s, tt.tag); got != tt.want {
				t.Errorf("HasCondition(%v, %q) = %v, want %v", tt.conditions, tt.tag, got, tt.want)
			}
		})
	}
}

func TestKeywordClassifier_NilSnapshot(t *testing.T) {
	if newClassifier().HasCondition(nil, TagFallHistory) {
		t.Error("nil snapshot should never carry a condition")
	}
}

// ===================== Fall =====================

func TestFallRisk_HighRiskPatient(t *testing.T) {
	c := NewFallRiskCalculator(newClassifier())
	s := &PatientSnapshot{
		Age:              72,
		Conditions:       []string{"Dementia", "Fall risk"},
		FunctionalStatus: "uses walker",
	}
	got := c.Evaluate(s, nil)

	if got.Score != 70 {
		t.Errorf("score = %d, want 70", got.Score)
	}
	if got.RiskLevel != LevelHigh {
		t.Errorf("risk level = %s, want high", got.RiskLevel)
	}
	wantFactors := []string{
		"History of falls or dementia",
		"Requires ambulatory aid",
		"Cognitive impairment",
	}
	if !reflect.DeepEqual(got.Factors, wantFactors) {
		t.Errorf("factors = %v, want %v", got.Factors, wantFactors)
	}
	if got.Interpretation == "" {
		t.Error("expected an interpretation")
	}
}

func TestFallRisk_MobilityRulesAreExclusive(t *testing.T) {
	c := NewFallRiskCalculator(newClassifier())

	// A walker patient takes the ambulatory-aid points, not the
	// assistance points.
	walker := c.Evaluate(&PatientSnapshot{FunctionalStatus: "walker, needs assistance"}, nil)
	if walker.Score != 30+10 {
		t.Errorf("walker with assistance: score = %d, want 40", walker.Score)
	}

	// Assistance without an aid takes the lesser mobility points twice
	// (mobility and gait rules both fire).
	assist := c.Evaluate(&PatientSnapshot{FunctionalStatus: "requires assistance"}, nil)
	if assist.Score != 15+10 {
		t.Errorf("assistance only: score = %d, want 25", assist.Score)
	}

	limited := c.Evaluate(&PatientSnapshot{FunctionalStatus: "limited mobility"}, nil)
	if limited.Score != 20 {
		t.Errorf("limited only: score = %d, want 20", limited.Score)
	}
}

func TestFallRisk_Thresholds(t *testing.T) {
	c := NewFallRiskCalculator(newClassifier())

	low := c.Evaluate(&PatientSnapshot{Age: 40}, nil)
	if low.Score != 0 || low.RiskLevel != LevelLow {
		t.Errorf("healthy patient: got score=%d level=%s, want 0/low", low.Score, low.RiskLevel)
	}
	if low.Factors == nil || len(low.Factors) != 0 {
		t.Errorf("healthy patient: factors = %v, want empty non-nil slice", low.Factors)
	}

	// 25 points (fall history alone) sits exactly on the moderate boundary.
	mod := c.Evaluate(&PatientSnapshot{Conditions: []string{"prior fall"}}, nil)
	if mod.Score != 25 || mod.RiskLevel != LevelModerate {
		t.Errorf("fall history only: got score=%d level=%s, want 25/moderate", mod.Score, mod.RiskLevel)
	}
}

func TestFallRisk_AnticoagulantDetection(t *testing.T) {
	c := NewFallRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{Medications: []string{"Warfarin 5mg daily"}}, nil)
	if got.Score != 20 {
		t.Errorf("warfarin: score = %d, want 20", got.Score)
	}
}

// ===================== Sepsis =====================

func TestSepsisRisk_QSOFAPositive(t *testing.T) {
	c := NewSepsisRiskCalculator(newClassifier())
	s := &PatientSnapshot{Conditions: []string{"Dementia"}}
	v := &VitalSigns{
		RespiratoryRate: fptr(25),
		BloodPressure:   "90/60",
	}
	got := c.Evaluate(s, v)

	if got.QSOFAScore != 3 {
		t.Errorf("qSOFA = %d, want 3", got.QSOFAScore)
	}
	// RR 25 also trips the SIRS respiratory criterion.
	if got.SIRSScore != 1 {
		t.Errorf("SIRS = %d, want 1", got.SIRSScore)
	}
	if got.RiskLevel != LevelHigh {
		t.Errorf("risk level = %s, want high", got.RiskLevel)
	}
}

func TestSepsisRisk_SIRSOnly(t *testing.T) {
	c := NewSepsisRiskCalculator(newClassifier())
	v := &VitalSigns{
		Temperature: fptr(101.2),
		HeartRate:   fptr(105),
	}
	got := c.Evaluate(&PatientSnapshot{}, v)

	if got.QSOFAScore != 0 {
		t.Errorf("qSOFA = %d, want 0", got.QSOFAScore)
	}
	if got.SIRSScore != 2 {
		t.Errorf("SIRS = %d, want 2", got.SIRSScore)
	}
	if got.RiskLevel != LevelModerate {
		t.Errorf("risk level = %s, want moderate", got.RiskLevel)
	}
}

func TestSepsisRisk_AbnormalWBC(t *testing.T) {
	c := NewSepsisRiskCalculator(newClassifier())
	tests := []struct {
		name string
		labs []string
		want int
	}{
		{"high wbc", []string{"WBC >12 K/uL"}, 1},
		{"low wbc", []string{"WBC <4 K/uL"}, 1},
		{"normal wbc", []string{"WBC 7.5 K/uL"}, 0},
		{"unrelated lab", []string{"Creatinine 1.1"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Evaluate(&PatientSnapshot{RecentLabs: tt.labs}, nil)
			if got.SIRSScore != tt.want {
				t.Errorf("SIRS = %d, want %d", got.SIRSScore, tt.want)
			}
		})
	}
}

func TestSepsisRisk_MalformedBloodPressure(t *testing.T) {
	c := NewSepsisRiskCalculator(newClassifier())
	for _, bp := range []string{"", "low", "/80", "abc/def"} {
		got := c.Evaluate(&PatientSnapshot{}, &VitalSigns{BloodPressure: bp})
		if got.QSOFAScore != 0 {
			t.Errorf("bp %q: qSOFA = %d, want 0 (malformed input is absent, not an error)", bp, got.QSOFAScore)
		}
	}

	// A parseable systolic with garbage diastolic still counts.
	got := c.Evaluate(&PatientSnapshot{}, &VitalSigns{BloodPressure: " 95 /garbage"})
	if got.QSOFAScore != 1 {
		t.Errorf("qSOFA = %d, want 1", got.QSOFAScore)
	}
}

func TestSepsisRisk_NoVitals(t *testing.T) {
	c := NewSepsisRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{}, nil)
	if got.RiskLevel != LevelLow || got.QSOFAScore != 0 || got.SIRSScore != 0 {
		t.Errorf("empty inputs: got %+v, want all-zero low", got)
	}
}

// ===================== Readmission =====================

func TestReadmissionRisk_TieredRulesAreExclusive(t *testing.T) {
	c := NewReadmissionRiskCalculator()

	meds := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "med"
		}
		return out
	}

	tests := []struct {
		name string
		s    PatientSnapshot
		want int
	}{
		{"age 75 takes the higher tier only", PatientSnapshot{Age: 75}, 3},
		{"age 74 takes the lower tier", PatientSnapshot{Age: 74}, 2},
		{"age 64 scores nothing", PatientSnapshot{Age: 64}, 0},
		{"10 meds", PatientSnapshot{Medications: meds(10)}, 3},
		{"9 meds", PatientSnapshot{Medications: meds(9)}, 2},
		{"4 meds", PatientSnapshot{Medications: meds(4)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Evaluate(&tt.s, nil)
			if got.Score != tt.want {
				t.Errorf("score = %d, want %d", got.Score, tt.want)
			}
		})
	}
}

func TestReadmissionRisk_HighRiskPatient(t *testing.T) {
	c := NewReadmissionRiskCalculator()
	s := &PatientSnapshot{
		Age: 78,
		Conditions: []string{
			"Heart failure", "COPD", "Diabetes", "Hypertension", "CKD",
		},
		Medications:   []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		SocialHistory: "lives alone",
	}
	got := c.Evaluate(s, nil)
	// 3 (age) + 3 (meds) + 3 (conditions) + 2 (diagnosis) + 2 (social) = 13
	if got.Score != 13 {
		t.Errorf("score = %d, want 13", got.Score)
	}
	if got.RiskLevel != LevelHigh {
		t.Errorf("risk level = %s, want high", got.RiskLevel)
	}
}

func TestReadmissionRisk_ModerateBand(t *testing.T) {
	c := NewReadmissionRiskCalculator()
	s := &PatientSnapshot{
		Age:        70,
		Conditions: []string{"COPD", "Hypertension", "Arthritis"},
	}
	got := c.Evaluate(s, nil)
	// 2 (age) + 2 (conditions) + 2 (COPD) = 6
	if got.Score != 6 || got.RiskLevel != LevelModerate {
		t.Errorf("got score=%d level=%s, want 6/moderate", got.Score, got.RiskLevel)
	}
}

// ===================== Medication =====================

func TestMedicationRisk_HighRiskPatient(t *testing.T) {
	c := NewMedicationRiskCalculator(newClassifier())
	s := &PatientSnapshot{
		Age:        80,
		Conditions: []string{"Chronic kidney disease", "Dementia"},
		Medications: []string{
			"Warfarin", "Lisinopril", "Metformin", "Aspirin", "Atorvastatin",
			"Omeprazole", "Furosemide", "Metoprolol", "Gabapentin", "Sertraline",
		},
	}
	got := c.Evaluate(s, nil)
	// 4 (10 meds) + 3 (warfarin) + 2 (age) + 2 (renal) + 2 (cognitive) = 13
	if got.Score != 13 {
		t.Errorf("score = %d, want 13", got.Score)
	}
	if got.RiskLevel != LevelHigh {
		t.Errorf("risk level = %s, want high", got.RiskLevel)
	}
}

func TestMedicationRisk_ModerateBand(t *testing.T) {
	c := NewMedicationRiskCalculator(newClassifier())
	s := &PatientSnapshot{
		Medications: []string{"Insulin glargine", "Lisinopril", "Metformin", "Aspirin", "Atorvastatin"},
	}
	got := c.Evaluate(s, nil)
	// 2 (5 meds) + 3 (insulin) = 5, exactly the moderate boundary
	if got.Score != 5 || got.RiskLevel != LevelModerate {
		t.Errorf("got score=%d level=%s, want 5/moderate", got.Score, got.RiskLevel)
	}
}

func TestMedicationRisk_MatchIsSubstringBased(t *testing.T) {
	c := NewMedicationRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{Medications: []string{"Digoxin 0.125mg PO daily"}}, nil)
	if got.Score != 3 {
		t.Errorf("score = %d, want 3", got.Score)
	}
}

// ===================== Pressure ulcer =====================

func TestPressureUlcerRisk_BaselineIsMaxScore(t *testing.T) {
	c := NewPressureUlcerRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{}, nil)
	if got.Score != 23 || got.RiskLevel != LevelLow {
		t.Errorf("got score=%d level=%s, want 23/low", got.Score, got.RiskLevel)
	}
}

func TestPressureUlcerRisk_WheelchairDeductsTwice(t *testing.T) {
	c := NewPressureUlcerRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{FunctionalStatus: "wheelchair"}, nil)
	// Activity (-3) and mobility (-2) both fire for wheelchair use.
	if got.Score != 23-5 {
		t.Errorf("score = %d, want 18", got.Score)
	}
}

func TestPressureUlcerRisk_CognitiveDeductsTwice(t *testing.T) {
	c := NewPressureUlcerRiskCalculator(newClassifier())
	got := c.Evaluate(&PatientSnapshot{Conditions: []string{"Dementia"}}, nil)
	// Sensory perception (-2) and nutrition (-1) both key off cognition.
	if got.Score != 23-3 {
		t.Errorf("score = %d, want 20", got.Score)
	}
}

func TestPressureUlcerRisk_WorstCaseFloor(t *testing.T) {
	c := NewPressureUlcerRiskCalculator(newClassifier())
	s := &PatientSnapshot{
		Conditions:       []string{"Dementia", "Urinary incontinence"},
		FunctionalStatus: "wheelchair, needs assistance",
	}
	got := c.Evaluate(s, nil)
	// -2 sensory, -2 incontinence, -3 activity, -2 mobility, -1 nutrition,
	// -1 friction. The worst reachable score is 12, which classifies as
	// moderate: the high band exists on the scale but no combination of
	// findings reaches it.
	if got.Score != 12 {
		t.Errorf("score = %d, want 12", got.Score)
	}
	if got.RiskLevel != LevelModerate {
		t.Errorf("risk level = %s, want moderate", got.RiskLevel)
	}
}

// ===================== Shared behaviours =====================

func TestCalculators_Deterministic(t *testing.T) {
	a := NewAggregator(newClassifier())
	s := &PatientSnapshot{
		Age:              81,
		Conditions:       []string{"Dementia", "Heart failure", "CKD", "COPD"},
		Medications:      []string{"Warfarin", "Insulin", "Furosemide", "Metoprolol", "Lisinopril"},
		FunctionalStatus: "limited, needs assistance",
		SocialHistory:    "lives alone",
		RecentLabs:       []string{"WBC >12"},
	}
	v := &VitalSigns{
		BloodPressure:   "92/58",
		HeartRate:       fptr(98),
		RespiratoryRate: fptr(24),
		Temperature:     fptr(101.0),
	}

	first := a.Assess(s, v, nil)
	for i := 0; i < 10; i++ {
		if got := a.Assess(s, v, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed from first run", i)
		}
	}
}

func TestCalculators_AddingAFindingNeverLowersTheScore(t *testing.T) {
	fall := NewFallRiskCalculator(newClassifier())
	readmission := NewReadmissionRiskCalculator()
	medication := NewMedicationRiskCalculator(newClassifier())

	base := &PatientSnapshot{
		Age:        70,
		Conditions: []string{"Hypertension", "Osteoarthritis"},
	}
	richer := &PatientSnapshot{
		Age:         70,
		Conditions:  []string{"Hypertension", "Osteoarthritis", "Dementia"},
		Medications: []string{"Warfarin"},
	}

	if a, b := fall.Evaluate(base, nil).Score, fall.Evaluate(richer, nil).Score; b < a {
		t.Errorf("fall score dropped from %d to %d after adding findings", a, b)
	}
	if a, b := readmission.Evaluate(base, nil).Score, readmission.Evaluate(richer, nil).Score; b < a {
		t.Errorf("readmission score dropped from %d to %d after adding findings", a, b)
	}
	if a, b := medication.Evaluate(base, nil).Score, medication.Evaluate(richer, nil).Score; b < a {
		t.Errorf("medication score dropped from %d to %d after adding findings", a, b)
	}
}

func TestCalculators_NilInputsScoreLow(t *testing.T) {
	a := NewAggregator(newClassifier())
	got := a.Assess(nil, nil, nil)
	if got.OverallRiskLevel != LevelLow {
		t.Errorf("overall = %s, want low", got.OverallRiskLevel)
	}
	if got.Fall.Score != 0 || got.Readmission.Score != 0 || got.Medication.Score != 0 {
		t.Error("additive calculators should score 0 on empty input")
	}
	if got.PressureUlcer.Score != 23 {
		t.Errorf("pressure score = %d, want 23 on empty input", got.PressureUlcer.Score)
	}
}
