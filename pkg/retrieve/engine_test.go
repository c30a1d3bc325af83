package retrieve

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coolbeans/lexground/pkg/corpus"
	"github.com/coolbeans/lexground/pkg/matcher"
	"github.com/coolbeans/lexground/pkg/semantic"
)

// axisEmbedder gives each keyword its own dimension so test similarities are
// exact: 1.0 for a shared dominant keyword, 0.0 for disjoint texts.
type axisEmbedder struct {
	vocab []string
}

func (a axisEmbedder) embed(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(a.vocab))
	for i, word := range a.vocab {
		vec[i] = float32(strings.Count(lower, word))
	}
	return semantic.Normalize(vec)
}

func (a axisEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = a.embed(t)
	}
	return out, nil
}

func (a axisEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return a.embed(text), nil
}

func (a axisEmbedder) Model() string { return "test-embedding" }

func chunk(id, section, text string) corpus.Entry {
	return corpus.Entry{
		ID:        id,
		Category:  corpus.CategoryStatutoryProvision,
		Title:     "Bhartiya Nyaya Sanhita 2023 Section " + section,
		Text:      text,
		Source:    "Bhartiya Nyaya Sanhita 2023",
		SectionID: section,
	}
}

func testCorpus(t *testing.T) []corpus.Entry {
	t.Helper()
	entries := corpus.Build(corpus.BuildOptions{Logger: log.New(io.Discard, "", 0)})
	entries = append(entries,
		chunk("c1", "100", "100. Murder. Whoever causes death with the intention of causing death commits murder."),
		chunk("c2", "101", "101. Punishment for murder. Whoever commits murder shall be punished."),
		chunk("c3", "303", "303. Theft. Whoever dishonestly takes movable property commits theft."),
	)
	return entries
}

func newTestEngine(t *testing.T, entries []corpus.Entry, index *semantic.Index) *Engine {
	t.Helper()
	return NewEngine(Config{
		Corpus:  entries,
		Matcher: matcher.New(matcher.NewRegistry()),
		Index:   index,
		Logger:  log.New(io.Discard, "", 0),
	})
}

func TestRetrieveCrimeIssueOrdering(t *testing.T) {
	engine := newTestEngine(t, testCorpus(t), nil)

	results := engine.RetrieveLegalSections(context.Background(),
		"Man murdered in Delhi by unknown assailants", []string{"crime"}, nil)
	if len(results) < 4 {
		t.Fatalf("results = %d, want at least 4", len(results))
	}

	// Violence cues select the life-liberty right regardless of topic order.
	if results[0].Source != "Constitution of India - Article 21" {
		t.Errorf("first result source = %q, want Article 21", results[0].Source)
	}
	if results[0].Category != string(corpus.CategoryFundamentalRight) {
		t.Errorf("first result category = %q", results[0].Category)
	}

	var sawWrit bool
	dpCount, caseCount := 0, 0
	for _, r := range results {
		switch r.Category {
		case string(corpus.CategoryDirectivePrinciple):
			dpCount++
		case string(corpus.CategoryCasePrecedent):
			caseCount++
		case string(corpus.CategoryConstitutionalProvision):
			if r.Source == "Constitution of India - Article 32" {
				sawWrit = true
			}
		}
	}
	if !sawWrit {
		t.Error("writ-jurisdiction provision missing")
	}
	if dpCount > 2 {
		t.Errorf("directive principles = %d, want at most 2", dpCount)
	}
	if caseCount > 2 {
		t.Errorf("case precedents = %d, want at most 2", caseCount)
	}

	var statutory []Result
	for _, r := range results {
		if r.Category == string(corpus.CategoryStatutoryProvision) {
			statutory = append(statutory, r)
		}
	}
	if len(statutory) == 0 {
		t.Fatal("crime issue produced no statutory sections")
	}
	if statutory[0].Title != "BNS Section 100" {
		t.Errorf("first statutory title = %q, want BNS Section 100", statutory[0].Title)
	}
	for _, r := range statutory {
		if strings.Contains(r.Title, "303") {
			t.Error("theft section retrieved for a murder issue")
		}
		if r.Similarity != matcher.RuleConfidence {
			t.Errorf("statutory similarity = %v, want %v", r.Similarity, matcher.RuleConfidence)
		}
	}
}

func TestRetrieveSexualAssaultIssue(t *testing.T) {
	entries := append(testCorpus(t),
		chunk("c4", "64", "64. Rape. A man is said to commit rape if he penetrates without consent."),
		chunk("c5", "65", "65. Punishment for rape in certain cases shall be rigorous imprisonment."),
		chunk("c6", "137", "137. Kidnapping. Whoever takes any person without consent commits kidnapping."),
	)
	engine := newTestEngine(t, entries, nil)

	results := engine.RetrieveLegalSections(context.Background(),
		"A woman was raped near the market by a known assailant, who ignored her refusals.",
		[]string{"crime"}, nil)

	// Sexual-violence cues select the life-liberty right.
	if results[0].Source != "Constitution of India - Article 21" {
		t.Errorf("first result source = %q, want Article 21", results[0].Source)
	}

	var sawWrit, sawRapeSection bool
	for _, r := range results {
		if r.Source == "Constitution of India - Article 32" {
			sawWrit = true
		}
		if r.Category != string(corpus.CategoryStatutoryProvision) {
			continue
		}
		switch r.Title {
		case "BNS Section 64", "BNS Section 65", "BNS Section 66":
			sawRapeSection = true
		case "BNS Section 137", "BNS Section 138", "BNS Section 139":
			t.Errorf("kidnapping section %q retrieved for a sexual assault issue", r.Title)
		}
	}
	if !sawWrit {
		t.Error("writ-jurisdiction provision missing")
	}
	if !sawRapeSection {
		t.Error("no rape-family statutory section retrieved")
	}
}

func TestRetrieveEmptyIssueStillCitesWrit(t *testing.T) {
	entries := testCorpus(t)
	embedder := axisEmbedder{vocab: []string{"murder", "theft"}}
	index, err := semantic.Build(context.Background(), embedder, entries, semantic.BuildOptions{
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	engine := newTestEngine(t, entries, index)

	results := engine.RetrieveLegalSections(context.Background(), "", []string{"general"}, nil)
	if len(results) == 0 {
		t.Fatal("no results for empty issue")
	}

	var sawWrit bool
	for _, r := range results {
		if r.Source == "Constitution of India - Article 32" {
			sawWrit = true
		}
		if r.Category == string(corpus.CategoryStatutoryProvision) {
			t.Errorf("statutory section %q retrieved for empty issue", r.Title)
		}
	}
	if !sawWrit {
		t.Error("writ-jurisdiction provision missing for empty issue")
	}
}

func TestRetrieveNonCrimeSkipsStatutory(t *testing.T) {
	engine := newTestEngine(t, testCorpus(t), nil)

	results := engine.RetrieveLegalSections(context.Background(),
		"Teachers absent from government classrooms for months", []string{"education"}, nil)

	if results[0].Source != "Constitution of India - Article 21A" {
		t.Errorf("first result source = %q, want Article 21A", results[0].Source)
	}
	for _, r := range results {
		if r.Category == string(corpus.CategoryStatutoryProvision) {
			t.Errorf("statutory section %q retrieved for non-crime issue", r.Title)
		}
	}
}

func TestRetrieveDefaultsToGeneralTopic(t *testing.T) {
	engine := newTestEngine(t, testCorpus(t), nil)

	results := engine.RetrieveLegalSections(context.Background(),
		"Street lighting absent across the ward", nil, nil)
	if len(results) == 0 {
		t.Fatal("no results for topicless issue")
	}
	// The general mapping leads with the constitutional-remedies right.
	if results[0].Source != "Constitution of India - Article 32" {
		t.Errorf("first result source = %q, want Article 32", results[0].Source)
	}
}

func TestRetrieveIdempotent(t *testing.T) {
	engine := newTestEngine(t, testCorpus(t), nil)

	issue := "Man murdered in Delhi by unknown assailants"
	a := engine.RetrieveLegalSections(context.Background(), issue, []string{"crime"}, nil)
	b := engine.RetrieveLegalSections(context.Background(), issue, []string{"crime"}, nil)

	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("result %d differs between identical queries", i)
		}
	}
}

func TestRetrieveWithSemanticIndex(t *testing.T) {
	entries := testCorpus(t)
	embedder := axisEmbedder{vocab: []string{"murder", "theft", "custodial"}}
	index, err := semantic.Build(context.Background(), embedder, entries, semantic.BuildOptions{
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	engine := newTestEngine(t, entries, index)

	results := engine.RetrieveLegalSections(context.Background(),
		"Man murdered in Delhi by unknown assailants", []string{"crime"}, nil)

	semanticStatutory := 0
	seenTitles := make(map[string]bool)
	for _, r := range results {
		if seenTitles[r.Title] {
			t.Errorf("duplicate title in results: %q", r.Title)
		}
		seenTitles[r.Title] = true
		if r.Category == string(corpus.CategoryStatutoryProvision) && r.Similarity != matcher.RuleConfidence && r.Similarity > 0 {
			semanticStatutory++
		}
	}
	if semanticStatutory > 2 {
		t.Errorf("semantic statutory results = %d, want at most 2", semanticStatutory)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"plain ascii text", 5, "plain"},
		// Devanagari runes are 3 bytes; a cut inside one backs off to the
		// previous boundary.
		{"धारा", 4, "ध"},
		{"धारा", 6, "धा"},
		{"section धारा", 9, "section "},
	}

	for _, tt := range tests {
		got := truncate(tt.s, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.s, tt.n)
		}
	}
}

func TestRetrieveNilIndexDegrades(t *testing.T) {
	engine := newTestEngine(t, testCorpus(t), nil)

	// No rule trigger and no semantic backend: constitutional references only.
	results := engine.RetrieveLegalSections(context.Background(),
		"Police custody conditions questioned", []string{"law_enforcement"}, nil)
	if len(results) == 0 {
		t.Fatal("no results without semantic index")
	}
	for _, r := range results {
		if r.Category == string(corpus.CategoryStatutoryProvision) {
			t.Errorf("unexpected statutory result %q without index or rule match", r.Title)
		}
	}
}
