package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// familyToKey maps dataset family labels to the matcher family keys their
// harvested keywords extend.
var familyToKey = map[string]string{
	"rape":             "64-66",
	"sexual deceit 69": "69",
	"murder":           "100-103",
	"kidnapping":       "137-139",
	"dowry cruelty":    "85-86",
	"assault hurt":     "351-355",
	"theft robbery":    "303-310",
	"cheating forgery": "318-320",
}

var stopwords = buildStopwords(`
  a an the and or to of for by in on with at from into during including until unless
  without within against among between through over under again further then once here
  there when where why how all any both each few more most other some such no nor not
  only own same so than too very can will just don don t should now allegedly later
  after before while near the reported was were been saw`)

func buildStopwords(words string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		out[w] = true
	}
	return out
}

var tokenRe = regexp.MustCompile(`[A-Za-z][A-Za-z\-]+`)

// TermExtension is the per-family output of a harvest run.
type TermExtension struct {
	ExtraKeywords []string `json:"extra_keywords"`
}

// maxTermsPerFamily caps the harvested extensions so one noisy family cannot
// flood the matcher's keyword lists.
const maxTermsPerFamily = 12

// HarvestTerms mines issue summaries and stored retrieval keywords per family
// for frequent tokens that are not already family keywords, producing the
// keyword-extension map consumed by the matcher registry. existingKeywords
// maps matcher family keys to their current keyword lists.
func HarvestTerms(examples []Example, existingKeywords map[string][]string) map[string]TermExtension {
	counts := make(map[string]map[string]int)

	for _, ex := range examples {
		key, ok := familyToKey[ex.Family()]
		if !ok {
			continue
		}
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}

		for _, tok := range tokenize(ex.IssueSummary) {
			counts[key][tok]++
		}
		for _, kw := range ex.Retrieval.Keywords {
			for _, tok := range tokenize(kw) {
				counts[key][tok] += 2 // curated cues outweigh narrative tokens
			}
		}
	}

	out := make(map[string]TermExtension, len(counts))
	for key, tokens := range counts {
		existing := make(map[string]bool)
		for _, kw := range existingKeywords[key] {
			for _, tok := range tokenize(kw) {
				existing[tok] = true
			}
			existing[strings.ToLower(kw)] = true
		}

		type freq struct {
			token string
			n     int
		}
		var ranked []freq
		for tok, n := range tokens {
			if n < 2 || stopwords[tok] || existing[tok] || len(tok) < 4 {
				continue
			}
			ranked = append(ranked, freq{tok, n})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].n != ranked[j].n {
				return ranked[i].n > ranked[j].n
			}
			return ranked[i].token < ranked[j].token
		})

		var words []string
		for i, f := range ranked {
			if i >= maxTermsPerFamily {
				break
			}
			words = append(words, f.token)
		}
		if len(words) > 0 {
			out[key] = TermExtension{ExtraKeywords: words}
		}
	}
	return out
}

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		out = append(out, strings.ToLower(t))
	}
	return out
}

// SaveTerms writes harvested extensions in the matcher_terms.json layout the
// registry loads at startup.
func SaveTerms(path string, terms map[string]TermExtension) error {
	data, err := json.MarshalIndent(terms, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding matcher terms: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing matcher terms %s: %w", path, err)
	}
	return nil
}
