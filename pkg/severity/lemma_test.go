package severity

import "testing"

func TestLemmatize(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"murdered", "murder"},
		{"murder", "murder"},
		{"killed", "kill"},
		{"kidnapping", "kidnap"},
		{"raped", "rap"},
		{"rape", "rap"},
		{"trafficking", "traffick"},
		{"trafficked", "traffick"},
		{"assaulted", "assault"},
		{"babies", "baby"},
		{"classes", "class"},
		{"schools", "school"},
		{"glass", "glass"},
		{"virus", "virus"},
		{"crisis", "crisis"},
		{"and", "and"},
	}

	for _, tt := range tests {
		if got := Lemmatize(tt.word); got != tt.want {
			t.Errorf("Lemmatize(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

// Keyword surface forms and their narrative variants must reduce to the same
// stem, or lemmatized matching misses them.
func TestLemmatizeConsistency(t *testing.T) {
	pairs := [][2]string{
		{"murder", "murdered"},
		{"rape", "raped"},
		{"trafficking", "trafficked"},
		{"assault", "assaulted"},
		{"harassment", "harassment"},
	}

	for _, p := range pairs {
		if Lemmatize(p[0]) != Lemmatize(p[1]) {
			t.Errorf("Lemmatize(%q) = %q, Lemmatize(%q) = %q; want equal stems",
				p[0], Lemmatize(p[0]), p[1], Lemmatize(p[1]))
		}
	}
}

func TestLemmatizePhrase(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"Murdered, and Killed!", "murder and kill"},
		{"human trafficking", "human traffick"},
		{"shot dead", "shot dead"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := LemmatizePhrase(tt.phrase); got != tt.want {
			t.Errorf("LemmatizePhrase(%q) = %q, want %q", tt.phrase, got, tt.want)
		}
	}
}
