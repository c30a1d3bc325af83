// Package retrieve combines constitutional lookup, the lexical rule matcher,
// and the semantic index into the final ordered list of legal references for
// a petition. The presentation order is editorial policy: constitutional
// grounding always precedes statutory detail, and each category carries a
// hard cap so petition length stays bounded regardless of corpus size.
package retrieve

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/lexground/pkg/corpus"
	"github.com/coolbeans/lexground/pkg/matcher"
	"github.com/coolbeans/lexground/pkg/semantic"
)

// Per-category caps on the final reference list.
const (
	maxDirectivePrinciples = 2
	maxCasePrecedents      = 2
	maxStatutorySemantic   = 2
	semanticTopKCrime      = 5
	semanticTopKOther      = 3
	semanticMinScore       = 0.30
	maxExcerpt             = 1000
	maxSemanticExcerpt     = 800
)

// Result is one legal reference selected for a query.
type Result struct {
	Source          string  `json:"source"`
	Title           string  `json:"title"`
	Excerpt         string  `json:"excerpt"`
	Category        string  `json:"category"`
	Similarity      float64 `json:"similarity,omitempty"`
	RelevanceReason string  `json:"relevance_reason,omitempty"`
}

// crimeKeywords gate the statutory retrieval passes: a purely keyword-driven
// issue with no crime signal skips statutory lookup entirely.
var crimeKeywords = []string{
	"crime", "criminal", "offence", "offense", "law enforcement",
	"police", "arrest", "custody", "brutality", "corruption",
	"theft", "murder", "violence", "assault", "trafficking",
	"killed", "death", "homicide", "lured", "deceit", "cheating",
	"rape", "sexual", "kidnapping", "abduction",
}

var crimeTopics = map[string]bool{
	"crime":           true,
	"corruption":      true,
	"law_enforcement": true,
}

// Intent cascade keyword sets for selecting the single primary fundamental
// right.
var (
	violenceWords   = []string{"killed", "murdered", "death", "violence", "assault", "rape", "sexual"}
	childWords      = []string{"child", "minor", "girl", "boy"}
	corruptionWords = []string{"corruption", "bribe", "fraud"}
)

// Engine owns the retrieval sub-systems. Construct once at process start and
// share across requests; all fields are read-only after construction.
type Engine struct {
	entries   []corpus.Entry
	statutory []corpus.Entry
	matcher   *matcher.Matcher
	index     *semantic.Index // nil when the embedding backend is unavailable
	logger    *log.Logger
}

// Config assembles an engine. Corpus and Matcher are required; Index is
// optional and its absence only disables the semantic passes.
type Config struct {
	Corpus  []corpus.Entry
	Matcher *matcher.Matcher
	Index   *semantic.Index
	Logger  *log.Logger
}

// NewEngine builds a retrieval engine from explicit parts.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		entries:   cfg.Corpus,
		statutory: corpus.Statutory(cfg.Corpus),
		matcher:   cfg.Matcher,
		index:     cfg.Index,
		logger:    logger,
	}
}

// RetrieveLegalSections produces the ordered list of legal references for an
// issue. The order is: one fundamental right, up to two directive
// principles, the writ-jurisdiction provision (always), up to two case
// precedents, rule-matched statutory sections (crime issues only), then
// semantic matches. Entities are passed through for downstream display and
// do not affect ranking. Failures in any sub-path degrade that sub-path to
// an empty contribution.
func (e *Engine) RetrieveLegalSections(ctx context.Context, issueSummary string, topics, entities []string) []Result {
	_ = entities

	if len(topics) == 0 {
		topics = []string{"general"}
	}
	issueLower := strings.ToLower(issueSummary)
	provisions := corpus.ProvisionsForTopics(topics)

	var results []Result

	if fr, ok := e.selectFundamentalRight(issueLower, provisions); ok {
		results = append(results, provisionResult(fr, corpus.CategoryFundamentalRight))
	}

	for i, dp := range provisions.DirectivePrinciples {
		if i >= maxDirectivePrinciples {
			break
		}
		results = append(results, provisionResult(dp, corpus.CategoryDirectivePrinciple))
	}

	// Every petition cites the writ-jurisdiction provision.
	writ := corpus.AdditionalProvisions["article_32"]
	results = append(results, provisionResult(writ, corpus.CategoryConstitutionalProvision))

	for i, cl := range provisions.CaseLaws {
		if i >= maxCasePrecedents {
			break
		}
		results = append(results, Result{
			Source:   "Landmark Case Law",
			Title:    corpus.CaseTitle(cl),
			Excerpt:  truncate(cl, maxExcerpt),
			Category: string(corpus.CategoryCasePrecedent),
		})
	}

	isCrime := e.isCrimeIssue(issueLower, topics)
	if isCrime {
		results = append(results, e.statutorySections(ctx, issueSummary)...)
	}

	results = append(results, e.semanticSections(ctx, issueSummary, isCrime, results)...)

	return results
}

// selectFundamentalRight applies the intent-priority cascade: death,
// violence, or sexual-assault cues pick the life-liberty right; child cues
// pick the exploitation (or child-labour) right; corruption cues pick the
// equality right; otherwise the first topic-mapped right wins.
func (e *Engine) selectFundamentalRight(issueLower string, provisions corpus.TopicProvisions) (corpus.Provision, bool) {
	switch {
	case containsAny(issueLower, violenceWords):
		return corpus.FundamentalRights["life_liberty"], true
	case containsAny(issueLower, childWords):
		if fr, ok := corpus.FundamentalRights["exploitation"]; ok {
			return fr, true
		}
		return corpus.FundamentalRights["child_labour"], true
	case containsAny(issueLower, corruptionWords):
		return corpus.FundamentalRights["equality"], true
	case len(provisions.FundamentalRights) > 0:
		return provisions.FundamentalRights[0], true
	default:
		return corpus.Provision{}, false
	}
}

func (e *Engine) isCrimeIssue(issueLower string, topics []string) bool {
	if containsAny(issueLower, crimeKeywords) {
		return true
	}
	for _, t := range topics {
		if crimeTopics[t] {
			return true
		}
	}
	return false
}

// statutorySections runs the lexical rule matcher with the semantic fallback
// and renders its matches.
func (e *Engine) statutorySections(ctx context.Context, issueSummary string) []Result {
	var searcher matcher.Searcher
	if e.index != nil {
		searcher = statutorySearcher{e.index}
	}

	matches := e.matcher.MatchWithFallback(ctx, issueSummary, e.statutory, searcher)

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		section := m.SectionID
		if section == "" {
			section = "Unknown"
		}
		source := m.Entry.Source
		if source == "" {
			source = "Bhartiya Nyaya Sanhita 2023"
		}

		reason := m.Reason
		if reason == "" {
			reason = "Directly applicable legal provision for " + truncate(issueSummary, 50)
		}
		results = append(results, Result{
			Source:          source,
			Title:           "BNS Section " + section,
			Excerpt:         truncate(NormalizeText(m.Entry.Text), maxExcerpt),
			Category:        string(corpus.CategoryStatutoryProvision),
			Similarity:      m.Similarity,
			RelevanceReason: reason,
		})
	}
	return results
}

// semanticSections runs the unrestricted semantic pass, capping statutory
// chunk matches to avoid flooding the result with near-duplicate sections.
func (e *Engine) semanticSections(ctx context.Context, issueSummary string, isCrime bool, existing []Result) []Result {
	if e.index == nil {
		return nil
	}

	topK := semanticTopKOther
	if isCrime {
		topK = semanticTopKCrime
	}

	hits, err := e.index.Search(ctx, issueSummary, topK, semanticMinScore)
	if err != nil {
		e.logger.Printf("retrieve: semantic search unavailable: %v", err)
		return nil
	}

	seenTitles := make(map[string]bool, len(existing))
	for _, r := range existing {
		seenTitles[r.Title] = true
	}

	var results []Result
	statutoryCount := 0
	for _, h := range hits {
		if !h.Valid {
			continue
		}
		if seenTitles[h.Entry.Title] {
			continue
		}
		excerpt := truncate(h.Entry.Text, maxSemanticExcerpt)
		if h.Entry.Category == corpus.CategoryStatutoryProvision {
			if statutoryCount >= maxStatutorySemantic {
				continue
			}
			statutoryCount++
			excerpt = truncate(NormalizeText(h.Entry.Text), maxSemanticExcerpt)
		}
		seenTitles[h.Entry.Title] = true
		results = append(results, Result{
			Source:          h.Entry.Source,
			Title:           h.Entry.Title,
			Excerpt:         excerpt,
			Category:        string(h.Entry.Category),
			Similarity:      h.Similarity,
			RelevanceReason: h.Reason,
		})
	}
	return results
}

// statutorySearcher adapts the semantic index to the matcher's fallback
// interface.
type statutorySearcher struct {
	index *semantic.Index
}

func (s statutorySearcher) SearchStatutory(ctx context.Context, query string, topK int, minScore float64) ([]matcher.ScoredEntry, error) {
	hits, err := s.index.SearchCategory(ctx, query, topK, minScore, corpus.CategoryStatutoryProvision)
	if err != nil {
		return nil, err
	}
	out := make([]matcher.ScoredEntry, len(hits))
	for i, h := range hits {
		out[i] = matcher.ScoredEntry{Entry: h.Entry, Similarity: h.Similarity, Reason: h.Reason}
	}
	return out, nil
}

func provisionResult(p corpus.Provision, category corpus.Category) Result {
	return Result{
		Source:   "Constitution of India - " + p.Article,
		Title:    p.Title,
		Excerpt:  truncate(p.Text, maxExcerpt),
		Category: string(category),
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cut never splits a UTF-8 sequence.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
