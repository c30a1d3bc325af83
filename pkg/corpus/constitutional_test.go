package corpus

import "testing"

func TestProvisionsForTopics(t *testing.T) {
	got := ProvisionsForTopics([]string{"education", "health"})

	wantFR := []string{"Article 21A", "Article 21"}
	if len(got.FundamentalRights) != len(wantFR) {
		t.Fatalf("fundamental rights = %d, want %d", len(got.FundamentalRights), len(wantFR))
	}
	for i, fr := range got.FundamentalRights {
		if fr.Article != wantFR[i] {
			t.Errorf("fundamental right %d = %q, want %q", i, fr.Article, wantFR[i])
		}
	}

	wantDP := []string{"Article 45", "Article 39(e) & (f)", "Article 47"}
	if len(got.DirectivePrinciples) != len(wantDP) {
		t.Fatalf("directive principles = %d, want %d", len(got.DirectivePrinciples), len(wantDP))
	}
	for i, dp := range got.DirectivePrinciples {
		if dp.Article != wantDP[i] {
			t.Errorf("directive principle %d = %q, want %q", i, dp.Article, wantDP[i])
		}
	}

	if len(got.CaseLaws) != 6 {
		t.Errorf("case laws = %d, want 6", len(got.CaseLaws))
	}
}

func TestProvisionsForTopicsDedup(t *testing.T) {
	// Both topics map to life_liberty; it must appear once.
	got := ProvisionsForTopics([]string{"environment", "health"})
	count := 0
	for _, fr := range got.FundamentalRights {
		if fr.Article == "Article 21" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Article 21 appears %d times, want 1", count)
	}
}

func TestProvisionsForTopicsUnknown(t *testing.T) {
	got := ProvisionsForTopics([]string{"astrology"})
	if len(got.FundamentalRights)+len(got.DirectivePrinciples)+len(got.CaseLaws) != 0 {
		t.Errorf("unknown topic contributed provisions: %+v", got)
	}
}

func TestLegalGrounds(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		want   string
	}{
		{
			name:   "single topic",
			topics: []string{"environment"},
			want:   "Fundamental Rights under Article 21 and Directive Principles under Article 48A",
		},
		{
			name:   "no known topics",
			topics: nil,
			want:   "Fundamental Rights under Part III",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LegalGrounds(tt.topics); got != tt.want {
				t.Errorf("LegalGrounds(%v) = %q, want %q", tt.topics, got, tt.want)
			}
		})
	}
}

func TestTopicMappingKeysResolve(t *testing.T) {
	for topic, mapping := range TopicMapping {
		for _, key := range mapping.FundamentalRights {
			if _, ok := FundamentalRights[key]; !ok {
				t.Errorf("topic %q references unknown fundamental right %q", topic, key)
			}
		}
		for _, key := range mapping.DirectivePrinciples {
			if _, ok := DirectivePrinciples[key]; !ok {
				t.Errorf("topic %q references unknown directive principle %q", topic, key)
			}
		}
	}
}
