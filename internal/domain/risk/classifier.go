package risk

import "strings"

// Condition tags understood by the calculators. Tags decouple the scoring
// rules from how a condition is recognized, so the matching strategy can be
// swapped (substring vs. coded terminology) without touching rule weights.
const (
	TagFallHistory         = "fall-history"
	TagCognitiveImpairment = "cognitive-impairment"
	TagIncontinence        = "incontinence"
	TagOrganImpairment     = "renal-hepatic-impairment"
)

// ConditionClassifier decides whether a snapshot carries a tagged clinical
// condition.
type ConditionClassifier interface {
	HasCondition(s *PatientSnapshot, tag string) bool
}

// KeywordClassifier matches tags by case-insensitive substring against the
// snapshot's free-text condition names. This mirrors how charting data is
// actually keyed in: uncoded, free text.
type KeywordClassifier struct {
	keywords map[string][]string
}

// NewKeywordClassifier returns the default substring classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		keywords: map[string][]string{
			TagFallHistory:         {"fall", "dementia"},
			TagCognitiveImpairment: {"dementia", "cognitive impairment", "confusion", "delirium", "alzheimer"},
			TagIncontinence:        {"incontinence", "incontinent"},
			TagOrganImpairment:     {"renal", "kidney disease", "hepatic", "liver", "cirrhosis"},
		},
	}
}

func (k *KeywordClassifier) HasCondition(s *PatientSnapshot, tag string) bool {
	if s == nil {
		return false
	}
	words, ok := k.keywords[tag]
	if !ok {
		return false
	}
	for _, cond := range s.Conditions {
		lc := strings.ToLower(cond)
		for _, w := range words {
			if strings.Contains(lc, w) {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, keywords ...string) bool {
	lc := strings.ToLower(text)
	for _, w := range keywords {
		if strings.Contains(lc, w) {
			return true
		}
	}
	return false
}

func anyContains(items []string, keywords ...string) bool {
	for _, item := range items {
		if containsAny(item, keywords...) {
			return true
		}
	}
	return false
}
