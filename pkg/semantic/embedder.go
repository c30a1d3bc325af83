// Package semantic provides nearest-neighbor retrieval over corpus text
// embeddings using cosine similarity (inner product over L2-normalized
// vectors).
package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// geminiBatchSize is the embedContent batch limit.
const geminiBatchSize = 100

// ErrNoAPIKey is returned when the embedding backend has no credentials.
var ErrNoAPIKey = errors.New("semantic: missing API key for embedding backend")

// Embedder turns text into L2-normalized vectors. Implementations must be
// deterministic for identical inputs within one process lifetime.
type Embedder interface {
	// EmbedDocuments embeds corpus entry texts for indexing.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single retrieval query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Model identifies the backing model, used for cache staleness checks.
	Model() string
}

// GeminiEmbedder embeds text with the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Model returns the configured embedding model name.
func (g *GeminiEmbedder) Model() string {
	return g.model
}

// Close releases the underlying API client.
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}

// EmbedDocuments embeds entry texts in batches.
func (g *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeRetrievalDocument

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += geminiBatchSize {
		end := start + geminiBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := em.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embedding batch [%d:%d]: %w", start, end, err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embedding batch [%d:%d]: got %d vectors", start, end, len(resp.Embeddings))
		}
		for _, e := range resp.Embeddings {
			out = append(out, Normalize(e.Values))
		}
	}
	return out, nil
}

// EmbedQuery embeds one retrieval query.
func (g *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeRetrievalQuery

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return Normalize(resp.Embedding.Values), nil
}

// Normalize scales a vector to unit length so the dot product equals cosine
// similarity. Zero vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1.0 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

// Dot computes the inner product of two equal-length vectors.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
