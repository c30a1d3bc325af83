package matcher

import (
	"context"
	"sort"
	"strings"

	"github.com/coolbeans/lexground/pkg/corpus"
)

// RuleConfidence is the fixed similarity assigned to rule-based matches.
const RuleConfidence = 0.90

// FallbackMinScore is the relaxed similarity threshold for the semantic
// fallback pass.
const FallbackMinScore = 0.35

// fallbackLimit caps the sections collected by the semantic fallback.
const fallbackLimit = 3

// Match is one statutory section selected for a query.
type Match struct {
	Entry       corpus.Entry
	SectionID   string
	FamilyKey   string
	KeywordHits int
	Similarity  float64
	Reason      string
}

// ScoredEntry is a semantic search hit consumed by the fallback pass.
type ScoredEntry struct {
	Entry      corpus.Entry
	Similarity float64
	Reason     string
}

// Searcher provides semantic lookup over statutory entries, used only when
// the rule-based pass finds nothing.
type Searcher interface {
	SearchStatutory(ctx context.Context, query string, topK int, minScore float64) ([]ScoredEntry, error)
}

// Matcher selects statutory sections for fact summaries using the registered
// crime families.
type Matcher struct {
	registry *Registry
}

// New creates a matcher over the given registry.
func New(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Registry returns the matcher's family registry.
func (m *Matcher) Registry() *Registry {
	return m.registry
}

// Match maps a fact summary to statutory sections from pool. It returns nil
// when no family trigger matches or the pool is empty; that is a valid
// outcome, not an error.
//
// Only the single highest-priority matching family contributes sections.
// Within the family, chunks whose own section number is targeted are
// preferred in the family's canonical section order and accepted without a
// keyword check; otherwise at least one keyword hit is required.
func (m *Matcher) Match(issue string, pool []corpus.Entry) []Match {
	if strings.TrimSpace(issue) == "" || len(pool) == 0 {
		return nil
	}
	issueLower := strings.ToLower(issue)

	var top *CrimeFamily
	for _, f := range m.registry.List() {
		if f.Matches(issueLower) {
			top = f
			break
		}
	}
	if top == nil {
		return nil
	}

	targeted := make(map[string]bool, len(top.Sections))
	orderOf := make(map[string]int, len(top.Sections))
	for i, sec := range top.Sections {
		targeted[sec] = true
		orderOf[sec] = i
	}

	sectionOf := func(e corpus.Entry) string {
		if e.SectionID != "" {
			return e.SectionID
		}
		return ExtractSectionNumber(e.Text)
	}

	// Candidate pool: chunks carrying a targeted section number, in canonical
	// section order; all chunks when none are targeted.
	var candidates []corpus.Entry
	for _, e := range pool {
		if sec := sectionOf(e); sec != "" && targeted[sec] {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return orderOf[sectionOf(candidates[i])] < orderOf[sectionOf(candidates[j])]
		})
	} else {
		candidates = pool
	}

	seen := make(map[string]bool)
	var matches []Match
	for _, e := range candidates {
		if len(matches) >= top.MaxResults {
			break
		}
		if e.ID != "" && seen[e.ID] {
			continue
		}

		textLower := strings.ToLower(e.Text)
		hits := 0
		for _, kw := range top.Keywords {
			if strings.Contains(textLower, strings.ToLower(kw)) {
				hits++
			}
		}

		sec := sectionOf(e)
		isTargeted := sec != "" && targeted[sec]
		if !isTargeted && hits < 1 {
			continue
		}

		rank := hits
		if rank == 0 {
			rank = 999 // targeted chunk with no keyword hits still outranks fallbacks
		}
		matches = append(matches, Match{
			Entry:       e,
			SectionID:   sec,
			FamilyKey:   top.Key,
			KeywordHits: rank,
			Similarity:  RuleConfidence,
			Reason:      "Directly applicable statutory provision (rule match: " + top.Name + ")",
		})
		if e.ID != "" {
			seen[e.ID] = true
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		oi, iok := orderOf[matches[i].SectionID]
		oj, jok := orderOf[matches[j].SectionID]
		if !iok {
			oi = len(top.Sections)
		}
		if !jok {
			oj = len(top.Sections)
		}
		if oi != oj {
			return oi < oj
		}
		return matches[i].KeywordHits > matches[j].KeywordHits
	})

	return matches
}

// MatchWithFallback runs the rule-based pass and, when it yields nothing,
// falls back to a semantic search over statutory entries with a relaxed
// threshold, keeping only hits whose section number can be extracted. Errors
// from the searcher degrade to an empty result.
func (m *Matcher) MatchWithFallback(ctx context.Context, issue string, pool []corpus.Entry, searcher Searcher) []Match {
	matches := m.Match(issue, pool)
	if len(matches) > 0 || searcher == nil {
		return matches
	}
	if strings.TrimSpace(issue) == "" {
		return nil
	}

	hits, err := searcher.SearchStatutory(ctx, issue, 5, FallbackMinScore)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []Match
	for _, h := range hits {
		sec := h.Entry.SectionID
		if sec == "" {
			sec = ExtractSectionNumber(h.Entry.Title + " " + h.Entry.Text)
		}
		if sec == "" || seen[sec] {
			continue
		}
		seen[sec] = true

		reason := h.Reason
		if reason == "" {
			reason = "Semantic fallback match"
		}
		out = append(out, Match{
			Entry:      h.Entry,
			SectionID:  sec,
			Similarity: h.Similarity,
			Reason:     reason,
		})
		if len(out) >= fallbackLimit {
			break
		}
	}
	return out
}
