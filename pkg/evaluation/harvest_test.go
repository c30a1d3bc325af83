package evaluation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func harvestExample(id, family, summary string, keywords []string) Example {
	return Example{
		ID:           id,
		IssueSummary: summary,
		Retrieval: RetrievalBlock{
			QueryVariants: []string{family + " case in BNS"},
			Keywords:      keywords,
		},
	}
}

func TestHarvestTerms(t *testing.T) {
	examples := []Example{
		harvestExample("ex-001", "murder", "The accused fled on a motorcycle after the stabbing", nil),
		harvestExample("ex-002", "murder", "Witnesses saw a motorcycle leaving after the stabbing", nil),
		harvestExample("ex-003", "theft robbery", "A phone was snatched near the bus stand", nil),
	}
	existing := map[string][]string{
		"100-103": {"murder", "stabbing"},
	}

	terms := HarvestTerms(examples, existing)

	murder, ok := terms["100-103"]
	if !ok {
		t.Fatal("no extensions harvested for murder family")
	}

	got := make(map[string]bool, len(murder.ExtraKeywords))
	for _, kw := range murder.ExtraKeywords {
		got[kw] = true
	}
	if !got["motorcycle"] {
		t.Errorf("frequent token missing: %v", murder.ExtraKeywords)
	}
	if got["stabbing"] {
		t.Error("existing keyword re-harvested")
	}
	if got["the"] || got["after"] {
		t.Error("stopword harvested")
	}
	for _, kw := range murder.ExtraKeywords {
		if len(kw) < 4 {
			t.Errorf("short token harvested: %q", kw)
		}
	}

	// "snatched" appears only once in the theft family; below the frequency
	// floor, so no extension is produced.
	if _, ok := terms["303-310"]; ok {
		t.Error("single-occurrence tokens harvested for theft family")
	}
}

func TestHarvestTermsCuratedKeywordsWeighted(t *testing.T) {
	// One occurrence in a stored keyword list counts double, crossing the
	// frequency floor on its own.
	examples := []Example{
		harvestExample("ex-001", "dowry cruelty", "Complaint filed by the wife", []string{"ornaments"}),
	}

	terms := HarvestTerms(examples, nil)
	dowry, ok := terms["85-86"]
	if !ok {
		t.Fatal("no extensions for dowry family")
	}
	found := false
	for _, kw := range dowry.ExtraKeywords {
		if kw == "ornaments" {
			found = true
		}
	}
	if !found {
		t.Errorf("curated keyword not harvested: %v", dowry.ExtraKeywords)
	}
}

func TestHarvestTermsCap(t *testing.T) {
	long := ""
	words := []string{
		"alpha-one", "bravo-two", "charlie-three", "delta-four", "echoes-five",
		"foxtrot-six", "golfer-seven", "hotels-eight", "indigo-nine", "juliet-ten",
		"kilos-eleven", "limas-twelve", "mikes-thirteen", "novem-fourteen",
	}
	for _, w := range words {
		long += w + " " + w + " "
	}
	examples := []Example{
		harvestExample("ex-001", "murder", long, nil),
	}

	terms := HarvestTerms(examples, nil)
	if got := len(terms["100-103"].ExtraKeywords); got > maxTermsPerFamily {
		t.Errorf("harvested %d terms, cap is %d", got, maxTermsPerFamily)
	}
}

func TestHarvestTermsUnknownFamilyIgnored(t *testing.T) {
	examples := []Example{
		harvestExample("ex-001", "unlisted family", "Repeated repeated tokens tokens", nil),
	}
	if terms := HarvestTerms(examples, nil); len(terms) != 0 {
		t.Errorf("unknown family produced extensions: %v", terms)
	}
}

func TestSaveTermsLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.json")
	terms := map[string]TermExtension{
		"100-103": {ExtraKeywords: []string{"motorcycle"}},
	}
	if err := SaveTerms(path, terms); err != nil {
		t.Fatalf("SaveTerms: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded map[string]struct {
		ExtraKeywords []string `json:"extra_keywords"`
	}
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("parsing saved terms: %v", err)
	}
	if len(loaded["100-103"].ExtraKeywords) != 1 || loaded["100-103"].ExtraKeywords[0] != "motorcycle" {
		t.Errorf("loaded terms = %+v", loaded)
	}
}
