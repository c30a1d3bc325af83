package semantic

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/coolbeans/lexground/pkg/corpus"
)

// RelevanceThreshold is the default minimum similarity for a hit to count as
// relevant.
const RelevanceThreshold = 0.30

// Hit is one retrieval result with its query-specific score.
type Hit struct {
	Entry      corpus.Entry
	Similarity float64
	Reason     string
	Valid      bool
}

// Index is a read-only vector index over corpus entries. Build it once; it is
// safe for concurrent readers afterwards.
type Index struct {
	embedder Embedder
	entries  []corpus.Entry
	vectors  [][]float32
	logger   *log.Logger
}

// BuildOptions configures index construction.
type BuildOptions struct {
	// Cache persists embeddings across restarts. Nil disables caching.
	Cache *Cache

	// Logger receives cache-rebuild notices. Defaults to the standard logger.
	Logger *log.Logger
}

// Build embeds every entry's text once and assembles the index. When a cache
// is supplied and its stored corpus size and model match, embeddings are
// loaded from it instead of recomputed; a mismatch discards the cache and
// rebuilds from scratch.
func Build(ctx context.Context, embedder Embedder, entries []corpus.Entry, opts BuildOptions) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	idx := &Index{embedder: embedder, entries: entries, logger: logger}

	ids := make([]string, len(entries))
	texts := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		texts[i] = e.Text
	}

	if opts.Cache != nil {
		meta, found, err := opts.Cache.Meta()
		if err == nil && found && meta.CorpusSize == len(entries) && meta.Model == embedder.Model() {
			vectors, complete, err := opts.Cache.Load(ids)
			if err == nil && complete {
				idx.vectors = vectors
				return idx, nil
			}
		}
		if found {
			logger.Printf("semantic: embedding cache stale, rebuilding index for %d entries", len(entries))
		}
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("building semantic index: %w", err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("building semantic index: %d entries but %d vectors", len(entries), len(vectors))
	}
	idx.vectors = vectors

	if opts.Cache != nil {
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		meta := Meta{CorpusSize: len(entries), Dimension: dim, Model: embedder.Model()}
		if err := opts.Cache.Store(meta, ids, vectors); err != nil {
			logger.Printf("semantic: cache save failed: %v", err)
		}
	}

	return idx, nil
}

// Size returns the number of indexed entries.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Search returns the top-k entries most similar to the query, filtered to
// similarity >= minScore. An empty or whitespace-only query returns an empty
// result and no error.
func (idx *Index) Search(ctx context.Context, query string, topK int, minScore float64) ([]Hit, error) {
	return idx.search(ctx, query, topK, minScore, nil)
}

// SearchCategory behaves like Search restricted to entries of one category.
func (idx *Index) SearchCategory(ctx context.Context, query string, topK int, minScore float64, category corpus.Category) ([]Hit, error) {
	return idx.search(ctx, query, topK, minScore, func(e corpus.Entry) bool {
		return e.Category == category
	})
}

func (idx *Index) search(ctx context.Context, query string, topK int, minScore float64, keep func(corpus.Entry) bool) ([]Hit, error) {
	if strings.TrimSpace(query) == "" || topK <= 0 {
		return nil, nil
	}

	qv, err := idx.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	type scored struct {
		i   int
		sim float64
	}
	candidates := make([]scored, 0, len(idx.entries))
	for i := range idx.entries {
		if keep != nil && !keep(idx.entries[i]) {
			continue
		}
		candidates = append(candidates, scored{i, Dot(qv, idx.vectors[i])})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].sim != candidates[b].sim {
			return candidates[a].sim > candidates[b].sim
		}
		return idx.entries[candidates[a].i].ID < idx.entries[candidates[b].i].ID
	})

	// Fetch extra before threshold filtering, mirroring the top_k*2 probe.
	probe := topK * 2
	if probe > len(candidates) {
		probe = len(candidates)
	}

	var hits []Hit
	for _, c := range candidates[:probe] {
		if c.sim < minScore {
			continue
		}
		hits = append(hits, Hit{
			Entry:      idx.entries[c.i],
			Similarity: c.sim,
			Reason:     relevanceReason(c.sim, minScore),
			Valid:      c.sim >= RelevanceThreshold,
		})
		if len(hits) >= topK {
			break
		}
	}
	return hits, nil
}

func relevanceReason(score, minScore float64) string {
	switch {
	case score >= 0.60:
		return fmt.Sprintf("Highly relevant to issue (similarity: %.2f)", score)
	case score >= 0.40:
		return fmt.Sprintf("Moderately relevant; may support legal argument (similarity: %.2f)", score)
	case score >= minScore:
		return fmt.Sprintf("Weakly relevant; provides contextual support (similarity: %.2f)", score)
	default:
		return fmt.Sprintf("Low relevance; excluded from petition (similarity: %.2f)", score)
	}
}
