package corpus

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBuildCategories(t *testing.T) {
	entries := Build(BuildOptions{Logger: discard()})

	counts := make(map[Category]int)
	for _, e := range entries {
		counts[e.Category]++
	}

	if got := counts[CategoryFundamentalRight]; got != len(FundamentalRights) {
		t.Errorf("fundamental rights = %d, want %d", got, len(FundamentalRights))
	}
	if got := counts[CategoryDirectivePrinciple]; got != len(DirectivePrinciples) {
		t.Errorf("directive principles = %d, want %d", got, len(DirectivePrinciples))
	}
	if got := counts[CategoryConstitutionalProvision]; got != len(AdditionalProvisions) {
		t.Errorf("constitutional provisions = %d, want %d", got, len(AdditionalProvisions))
	}
	if counts[CategoryStatutoryProvision] != 0 {
		t.Errorf("statutory provisions = %d, want 0 without a chunk file", counts[CategoryStatutoryProvision])
	}
	if counts[CategoryCasePrecedent] == 0 {
		t.Error("no case precedents built")
	}
}

func TestBuildDeterministicAndUnique(t *testing.T) {
	a := Build(BuildOptions{Logger: discard()})
	b := Build(BuildOptions{Logger: discard()})

	if len(a) != len(b) {
		t.Fatalf("build sizes differ: %d vs %d", len(a), len(b))
	}
	seen := make(map[string]bool, len(a))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("entry %d: ID %q vs %q; build order not deterministic", i, a[i].ID, b[i].ID)
		}
		if seen[a[i].ID] {
			t.Errorf("duplicate entry ID %q", a[i].ID)
		}
		seen[a[i].ID] = true
	}
}

func TestBuildCaseLawDedup(t *testing.T) {
	entries := Build(BuildOptions{Logger: discard()})

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Category != CategoryCasePrecedent {
			continue
		}
		if seen[e.Text] {
			t.Errorf("case law duplicated across topics: %q", e.Text)
		}
		seen[e.Text] = true
	}
}

func TestBuildWithChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunks.json")
	data := `[
		{"id": "bns-100-0", "text": "100. Whoever causes death...", "source": "Bhartiya Nyaya Sanhita 2023", "file": "bns.pdf", "section_id": "100", "title": "Murder", "chunk_index": 0},
		{"text": "General provisions text.", "source": "Bhartiya Nyaya Sanhita 2023", "file": "bns.pdf", "chunk_index": 7}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	entries := Build(BuildOptions{ChunksPath: path, Logger: discard()})
	statutory := Statutory(entries)
	if len(statutory) != 2 {
		t.Fatalf("statutory entries = %d, want 2", len(statutory))
	}

	if statutory[0].Title != "Bhartiya Nyaya Sanhita 2023 Section 100: Murder" {
		t.Errorf("titled chunk title = %q", statutory[0].Title)
	}
	if statutory[0].ID != "bns-100-0" {
		t.Errorf("chunk ID = %q, want bns-100-0", statutory[0].ID)
	}
	if statutory[0].SectionID != "100" {
		t.Errorf("chunk section = %q, want 100", statutory[0].SectionID)
	}

	if statutory[1].Title != "Bhartiya Nyaya Sanhita 2023 - Sec 7" {
		t.Errorf("untitled chunk title = %q", statutory[1].Title)
	}
	if statutory[1].ID != "chunk_bns.pdf_7" {
		t.Errorf("generated chunk ID = %q", statutory[1].ID)
	}
}

func TestBuildMissingChunkFileDegrades(t *testing.T) {
	base := Build(BuildOptions{Logger: discard()})
	withMissing := Build(BuildOptions{ChunksPath: filepath.Join(t.TempDir(), "absent.json"), Logger: discard()})

	if len(withMissing) != len(base) {
		t.Errorf("corpus size with missing chunk file = %d, want %d", len(withMissing), len(base))
	}
}

func TestLoadChunksMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadChunks(path); err == nil {
		t.Error("expected error for malformed chunk file")
	}
}

func TestCaseTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vishaka v. State of Rajasthan - Sexual harassment at workplace", "Vishaka v. State of Rajasthan"},
		{"No separator here", "No separator here"},
	}
	for _, tt := range tests {
		if got := CaseTitle(tt.in); got != tt.want {
			t.Errorf("CaseTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
