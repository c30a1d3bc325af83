// Package severity scores raw article text on a [0,1] scale using tiered
// keyword weights, lemmatized matching for morphological variants, and
// population-vulnerability multipliers.
package severity

import (
	"sort"
	"strings"
)

// criticalKeywords directly indicate severe harm or rights violations.
var criticalKeywords = map[string]float64{
	"murder":            0.80,
	"homicide":          0.80,
	"killed":            0.80,
	"shot dead":         0.80,
	"shot":              0.75,
	"death":             0.75,
	"rape":              0.90,
	"sexual assault":    0.90,
	"trafficking":       0.85,
	"human trafficking": 0.90,
	"forced labour":     0.85,
	"bonded labor":      0.85,
	"child abuse":       0.85,
	"domestic violence": 0.80,
	"assault":           0.70,
	"violence":          0.65,
}

// highKeywords cover serious violations of rights or public interest.
var highKeywords = map[string]float64{
	"corruption":    0.65,
	"scam":          0.65,
	"fraud":         0.65,
	"embezzlement":  0.65,
	"bribery":       0.65,
	"pollution":     0.60,
	"contamination": 0.60,
	"hazard":        0.55,
	"disease":       0.55,
	"epidemic":      0.65,
	"pandemic":      0.70,
	"mistreatment":  0.60,
	"harassment":    0.55,
}

// mediumKeywords cover important public interest issues.
var mediumKeywords = map[string]float64{
	"education":    0.40,
	"school":       0.40,
	"health":       0.45,
	"hospital":     0.45,
	"sanitation":   0.40,
	"water":        0.45,
	"environment":  0.45,
	"forest":       0.45,
	"child":        0.50,
	"children":     0.50,
	"women":        0.40,
	"rights":       0.50,
	"human rights": 0.60,
}

// multipliers raise severity for vulnerable populations and mass incidents.
// Only the single highest applicable multiplier is used.
var multipliers = map[string]float64{
	"minor":      1.30,
	"child":      1.30,
	"children":   1.30,
	"multiple":   1.20,
	"mass":       1.25,
	"widespread": 1.20,
	"elderly":    1.20,
	"senior":     1.20,
}

// baselineScore applies to any non-empty text with no keyword match:
// newsworthy but unclassified.
const baselineScore = 0.2

// Level is the priority tier derived from a severity score.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
)

// LevelFor maps a severity score to its priority tier.
func LevelFor(score float64) Level {
	switch {
	case score >= 0.8:
		return LevelCritical
	case score >= 0.6:
		return LevelHigh
	case score >= 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Scorer computes severity scores. The zero value is not usable; construct
// with NewScorer.
type Scorer struct {
	critical map[string]keywordForms
	high     map[string]keywordForms
	medium   map[string]keywordForms
}

type keywordForms struct {
	weight  float64
	surface string // lowercase keyword
	lemma   string // lemmatized keyword phrase
}

// NewScorer builds a scorer with the standard keyword tiers.
func NewScorer() *Scorer {
	prep := func(tier map[string]float64) map[string]keywordForms {
		out := make(map[string]keywordForms, len(tier))
		for kw, w := range tier {
			out[kw] = keywordForms{
				weight:  w,
				surface: strings.ToLower(kw),
				lemma:   LemmatizePhrase(kw),
			}
		}
		return out
	}
	return &Scorer{
		critical: prep(criticalKeywords),
		high:     prep(highKeywords),
		medium:   prep(mediumKeywords),
	}
}

// Score computes the severity of text. Empty text scores exactly 0.0.
//
// The tiers cascade: the maximum critical-tier weight wins; failing that the
// high tier is consulted; the medium tier is consulted only while the score
// stays below 0.5. A non-empty text with no keyword match scores the 0.2
// baseline. The single highest applicable vulnerability multiplier is then
// applied and the result clamped to [0,1].
func (s *Scorer) Score(text string) float64 {
	if text == "" {
		return 0.0
	}

	textLower := strings.ToLower(text)
	textLemma := LemmatizePhrase(text)

	maxFound := tierMax(s.critical, textLower, textLemma)
	if maxFound == 0.0 {
		maxFound = tierMax(s.high, textLower, textLemma)
	}
	if maxFound < 0.5 {
		if m := tierMax(s.medium, textLower, textLemma); m > maxFound {
			maxFound = m
		}
	}

	score := maxFound
	if score == 0.0 {
		score = baselineScore
	}

	if mult := bestMultiplier(textLower); mult > 1.0 {
		score *= mult
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

func tierMax(tier map[string]keywordForms, textLower, textLemma string) float64 {
	max := 0.0
	for _, kf := range tier {
		if kf.weight <= max {
			continue
		}
		if containsPhrase(textLower, kf.surface) || containsPhrase(textLemma, kf.lemma) {
			max = kf.weight
		}
	}
	return max
}

func bestMultiplier(textLower string) float64 {
	best := 1.0
	for word, mult := range multipliers {
		if mult > best && containsPhrase(textLower, word) {
			best = mult
		}
	}
	return best
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	start := 0
	for {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		beforeOK := i == 0 || !isWordChar(text[i-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// matchedMultipliers returns descriptions of every applicable multiplier,
// sorted by strength, for explanations.
func matchedMultipliers(textLower string) []string {
	type hit struct {
		word string
		mult float64
	}
	var hits []hit
	for word, mult := range multipliers {
		if containsPhrase(textLower, word) {
			hits = append(hits, hit{word, mult})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].mult != hits[j].mult {
			return hits[i].mult > hits[j].mult
		}
		return hits[i].word < hits[j].word
	})
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.word
	}
	return out
}
