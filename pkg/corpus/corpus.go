// Package corpus assembles the static catalog of citable legal references:
// constitutional rights, directive principles, case-law summaries, and
// pre-segmented statutory text chunks.
package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Category classifies a legal reference entry.
type Category string

const (
	CategoryFundamentalRight        Category = "Fundamental Right"
	CategoryDirectivePrinciple      Category = "Directive Principle"
	CategoryConstitutionalProvision Category = "Constitutional Provision"
	CategoryCasePrecedent           Category = "Case Precedent"
	CategoryStatutoryProvision      Category = "Statutory Provision"
)

// Entry is one atomic citable unit. Entries are immutable after the corpus
// is built; the corpus is read-only at query time.
type Entry struct {
	ID         string   `json:"id"`
	Category   Category `json:"category"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Source     string   `json:"source"`
	SectionID  string   `json:"section_id,omitempty"`
	File       string   `json:"file,omitempty"`
	ChunkIndex int      `json:"chunk_index,omitempty"`
}

// Chunk is the on-disk JSON model for one pre-segmented statutory text chunk.
type Chunk struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Source     string `json:"source"`
	File       string `json:"file"`
	SectionID  string `json:"section_id,omitempty"`
	Title      string `json:"title,omitempty"`
	ChunkIndex int    `json:"chunk_index"`
}

// BuildOptions configures corpus construction.
type BuildOptions struct {
	// ChunksPath is the JSON file of pre-chunked statutory text. A missing or
	// malformed file is skipped with a warning; the corpus degrades rather
	// than failing.
	ChunksPath string

	// Logger receives warnings for skipped sources. Defaults to the standard
	// logger when nil.
	Logger *log.Logger
}

// Build produces the full, deduplicated corpus from the static constitutional
// data, the case-law-by-topic mapping, and the statutory chunk file.
func Build(opts BuildOptions) []Entry {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var entries []Entry

	for _, key := range fundamentalRightKeys {
		fr := FundamentalRights[key]
		entries = append(entries, Entry{
			ID:       "fr_" + key,
			Category: CategoryFundamentalRight,
			Title:    fr.Title,
			Text:     fr.Text,
			Source:   fr.Article,
		})
	}

	for _, key := range directivePrincipleKeys {
		dp := DirectivePrinciples[key]
		entries = append(entries, Entry{
			ID:       "dp_" + key,
			Category: CategoryDirectivePrinciple,
			Title:    dp.Title,
			Text:     dp.Text,
			Source:   dp.Article,
		})
	}

	for _, key := range additionalProvisionKeys {
		ap := AdditionalProvisions[key]
		entries = append(entries, Entry{
			ID:       "ap_" + key,
			Category: CategoryConstitutionalProvision,
			Title:    ap.Title,
			Text:     ap.Text,
			Source:   ap.Article,
		})
	}

	seenCases := make(map[string]bool)
	caseNum := 0
	for _, topic := range topicKeys {
		mapping := TopicMapping[topic]
		for _, cl := range mapping.KeyCaseLaws {
			if seenCases[cl] {
				continue
			}
			seenCases[cl] = true
			caseNum++
			entries = append(entries, Entry{
				ID:       fmt.Sprintf("case_%d", caseNum),
				Category: CategoryCasePrecedent,
				Title:    CaseTitle(cl),
				Text:     cl,
				Source:   "Landmark Case Law",
			})
		}
	}

	if opts.ChunksPath != "" {
		chunks, err := LoadChunks(opts.ChunksPath)
		if err != nil {
			logger.Printf("corpus: skipping statutory chunks: %v", err)
		} else {
			for _, c := range chunks {
				entries = append(entries, chunkEntry(c))
			}
		}
	}

	return entries
}

// LoadChunks reads the pre-chunked statutory text file.
func LoadChunks(path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunk file %s: %w", path, err)
	}

	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing chunk file %s: %w", path, err)
	}
	return chunks, nil
}

func chunkEntry(c Chunk) Entry {
	source := c.Source
	if source == "" {
		source = "Legal Document"
	}

	var title string
	switch {
	case c.SectionID != "" && c.Title != "":
		title = fmt.Sprintf("%s Section %s: %s", source, c.SectionID, c.Title)
	case c.SectionID != "":
		title = fmt.Sprintf("%s Section %s", source, c.SectionID)
	default:
		title = fmt.Sprintf("%s - Sec %d", source, c.ChunkIndex)
	}

	id := c.ID
	if id == "" {
		id = fmt.Sprintf("chunk_%s_%d", c.File, c.ChunkIndex)
	}

	return Entry{
		ID:         id,
		Category:   CategoryStatutoryProvision,
		Title:      title,
		Text:       c.Text,
		Source:     source,
		SectionID:  c.SectionID,
		File:       c.File,
		ChunkIndex: c.ChunkIndex,
	}
}

// Statutory filters the corpus down to statutory provisions, the pool the
// lexical rule matcher operates over.
func Statutory(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Category == CategoryStatutoryProvision {
			out = append(out, e)
		}
	}
	return out
}

// CaseTitle extracts the short case name from a case-law summary line.
func CaseTitle(caseLaw string) string {
	if i := strings.Index(caseLaw, " - "); i >= 0 {
		return caseLaw[:i]
	}
	return caseLaw
}
