// Package evaluation provides the offline harness measuring retrieval quality:
// a synthetic labeled dataset generator, hit@k and avoid-negative@k metrics,
// and keyword harvesting for tuning matcher term lists. Nothing in this
// package runs at serving time.
package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// ApplicableSection is one ground-truth section with its rationale.
type ApplicableSection struct {
	SectionID    string `json:"section_id"`
	Title        string `json:"title"`
	SupportQuote string `json:"support_quote,omitempty"`
	Paraphrase   bool   `json:"paraphrase,omitempty"`
	Rationale    string `json:"rationale"`
}

// HardNegative is a section that looks plausible for the facts but is legally
// inapplicable; retrieval quality is partly measured by how well these are
// suppressed.
type HardNegative struct {
	SectionID           string `json:"section_id"`
	ReasonNotApplicable string `json:"reason_not_applicable"`
}

// RetrievalBlock captures the retrieval cues stored with an example.
type RetrievalBlock struct {
	QueryVariants []string `json:"query_variants"`
	Keywords      []string `json:"keywords"`
	Confounders   []string `json:"confounders"`
}

// Example is one labeled test case. The first query variant encodes the
// generating family as "<family> case in BNS".
type Example struct {
	ID                 string              `json:"id"`
	IssueSummary       string              `json:"issue_summary"`
	Entities           []string            `json:"entities"`
	CrimeSignals       []string            `json:"crime_signals"`
	ApplicableSections []ApplicableSection `json:"applicable_sections"`
	HardNegatives      []HardNegative      `json:"hard_negatives"`
	Retrieval          RetrievalBlock      `json:"retrieval"`
	Difficulty         string              `json:"difficulty"`
}

// Family returns the generating crime family recorded in the example, or
// "unknown".
func (ex Example) Family() string {
	if len(ex.Retrieval.QueryVariants) == 0 {
		return "unknown"
	}
	fam := ex.Retrieval.QueryVariants[0]
	const suffix = " case in BNS"
	if len(fam) > len(suffix) && fam[len(fam)-len(suffix):] == suffix {
		fam = fam[:len(fam)-len(suffix)]
	}
	if fam == "" {
		return "unknown"
	}
	return fam
}

// LoadDataset reads a labeled dataset from a JSON file.
func LoadDataset(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var examples []Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return examples, nil
}

// SaveDataset writes a labeled dataset to a JSON file.
func SaveDataset(path string, examples []Example) error {
	data, err := json.MarshalIndent(examples, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}
