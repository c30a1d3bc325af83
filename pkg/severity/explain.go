package severity

import (
	"fmt"
	"sort"
	"strings"
)

// KeywordHit records one matched keyword for an explanation.
type KeywordHit struct {
	Keyword string  `json:"keyword"`
	Tier    string  `json:"tier"`
	Weight  float64 `json:"weight"`
}

// Explanation describes how a severity score was reached.
type Explanation struct {
	Score       float64      `json:"score"`
	Level       Level        `json:"priority_level"`
	Keywords    []KeywordHit `json:"keywords_found"`
	Multipliers []string     `json:"population_multipliers"`
	Reasoning   string       `json:"reasoning"`
	Confidence  float64      `json:"confidence"`
}

// Explain scores text and reports which keywords and multipliers drove the
// result, with a short narrative suitable for petition annexures.
func (s *Scorer) Explain(text string) Explanation {
	score := s.Score(text)
	level := LevelFor(score)

	textLower := strings.ToLower(text)
	textLemma := LemmatizePhrase(text)

	var hits []KeywordHit
	collect := func(tier map[string]keywordForms, name string) {
		for kw, kf := range tier {
			if containsPhrase(textLower, kf.surface) || containsPhrase(textLemma, kf.lemma) {
				hits = append(hits, KeywordHit{Keyword: kw, Tier: name, Weight: kf.weight})
			}
		}
	}
	collect(s.critical, "CRITICAL")
	collect(s.high, "HIGH")
	collect(s.medium, "MEDIUM")
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Weight != hits[j].Weight {
			return hits[i].Weight > hits[j].Weight
		}
		return hits[i].Keyword < hits[j].Keyword
	})

	mults := matchedMultipliers(textLower)

	confidence := 0.5 + 0.15*float64(len(hits))
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Explanation{
		Score:       score,
		Level:       level,
		Keywords:    hits,
		Multipliers: mults,
		Reasoning:   narrative(level, hits, mults, score),
		Confidence:  confidence,
	}
}

func narrative(level Level, hits []KeywordHit, mults []string, score float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Priority Level: %s (Score: %.2f).", level, score)

	switch {
	case len(hits) == 0:
		sb.WriteString(" No severity keywords matched; baseline public-interest score applied.")
	default:
		words := make([]string, 0, len(hits))
		for i, h := range hits {
			if i >= 3 {
				break
			}
			words = append(words, h.Keyword)
		}
		fmt.Fprintf(&sb, " Driven by %s-tier signals: %s.", hits[0].Tier, strings.Join(words, ", "))
	}

	if len(mults) > 0 {
		fmt.Fprintf(&sb, " Vulnerability factor applied: %s.", mults[0])
	}

	switch level {
	case LevelCritical:
		sb.WriteString(" Severe harm indicated; treat as top priority.")
	case LevelHigh:
		sb.WriteString(" Serious violation of rights or public interest.")
	case LevelMedium:
		sb.WriteString(" Significant public interest issue.")
	default:
		sb.WriteString(" Routine public interest monitoring.")
	}

	return sb.String()
}
