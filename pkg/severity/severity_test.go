package severity

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "empty text scores zero",
			text: "",
			want: 0.0,
		},
		{
			name: "murder via lemmatized variant",
			text: "Man murdered in Delhi by unknown assailants.",
			want: 0.80,
		},
		{
			name: "critical keyword with child multiplier clamps to one",
			text: "Child trafficking ring busted in the city",
			want: 1.0,
		},
		{
			name: "medium tier takes the highest matching weight",
			text: "Local school lacks clean drinking water",
			want: 0.45,
		},
		{
			name: "high tier corruption",
			text: "Officials accused of corruption in tender process",
			want: 0.65,
		},
		{
			name: "no keyword falls back to baseline",
			text: "Community festival draws large turnout",
			want: 0.20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.text)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreSingleHighestMultiplier(t *testing.T) {
	scorer := NewScorer()

	// Both "mass" (1.25) and "children" (1.30) appear; only the highest
	// multiplier applies.
	got := scorer.Score("Mass violence against children in the district")
	want := 0.65 * 1.30
	if !almostEqual(got, want) {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestScoreWordBoundaries(t *testing.T) {
	scorer := NewScorer()

	// "massive" must not trigger the "mass" multiplier.
	got := scorer.Score("Massive pollution in the river")
	if !almostEqual(got, 0.60) {
		t.Errorf("Score() = %v, want 0.60 (no multiplier)", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.95, LevelCritical},
		{0.80, LevelCritical},
		{0.79, LevelHigh},
		{0.60, LevelHigh},
		{0.59, LevelMedium},
		{0.40, LevelMedium},
		{0.39, LevelLow},
		{0.0, LevelLow},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestExplain(t *testing.T) {
	scorer := NewScorer()

	exp := scorer.Explain("Man murdered in Delhi")
	if !almostEqual(exp.Score, 0.80) {
		t.Errorf("Score = %v, want 0.80", exp.Score)
	}
	if exp.Level != LevelCritical {
		t.Errorf("Level = %v, want %v", exp.Level, LevelCritical)
	}
	if len(exp.Keywords) != 1 || exp.Keywords[0].Keyword != "murder" {
		t.Fatalf("Keywords = %+v, want single murder hit", exp.Keywords)
	}
	if exp.Keywords[0].Tier != "CRITICAL" {
		t.Errorf("Tier = %q, want CRITICAL", exp.Keywords[0].Tier)
	}
	if !almostEqual(exp.Confidence, 0.65) {
		t.Errorf("Confidence = %v, want 0.65", exp.Confidence)
	}
	if !strings.HasPrefix(exp.Reasoning, "Priority Level: CRITICAL (Score: 0.80).") {
		t.Errorf("Reasoning = %q", exp.Reasoning)
	}
}

func TestExplainNoKeywords(t *testing.T) {
	scorer := NewScorer()

	exp := scorer.Explain("Community festival draws large turnout")
	if len(exp.Keywords) != 0 {
		t.Fatalf("Keywords = %+v, want none", exp.Keywords)
	}
	if exp.Level != LevelLow {
		t.Errorf("Level = %v, want %v", exp.Level, LevelLow)
	}
	if !almostEqual(exp.Confidence, 0.5) {
		t.Errorf("Confidence = %v, want 0.5", exp.Confidence)
	}
	if !strings.Contains(exp.Reasoning, "No severity keywords matched") {
		t.Errorf("Reasoning = %q", exp.Reasoning)
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"mass protest in the city", "mass", true},
		{"massive protest in the city", "mass", false},
		{"the child was rescued", "child", true},
		{"childhood memories", "child", false},
		{"shot dead at close range", "shot dead", true},
		{"", "mass", false},
		{"anything", "", false},
	}

	for _, tt := range tests {
		if got := containsPhrase(tt.text, tt.phrase); got != tt.want {
			t.Errorf("containsPhrase(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
		}
	}
}
