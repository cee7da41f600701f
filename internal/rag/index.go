// Package rag retrieves the document chunks most relevant to a query so
// they can ground a model completion.
package rag

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/medAmineRg/chatbot-service/internal/db"
)

const (
	// DefaultTopK bounds how many chunks a search returns.
	DefaultTopK = 3

	// scoreThreshold is the relevance floor for the embedding path.
	// Chunks scoring at or below it are discarded rather than returned
	// as weak matches.
	scoreThreshold = 0.3

	// minKeywordLen filters out short stop-ish words in keyword search.
	minKeywordLen = 3
)

// ChunkStore loads the indexed chunks of one conversation.
type ChunkStore interface {
	ChunksByChat(ctx context.Context, chatID string) ([]*db.Chunk, error)
}

// Embedder produces a query vector, or nil when no vector is available.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// Index performs per-conversation similarity search over ingested chunks,
// with keyword search as the degraded path when embeddings are
// unavailable.
type Index struct {
	store    ChunkStore
	embedder Embedder
	topK     int
}

// NewIndex creates an index over the given store and embedder.
func NewIndex(store ChunkStore, embedder Embedder, topK int) *Index {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Index{store: store, embedder: embedder, topK: topK}
}

// Search returns up to topK chunk contents relevant to the query, most
// similar first. When the query cannot be embedded, or no stored chunk
// has a comparable embedding, it falls back to keyword matching. When the
// embedding path runs but every candidate falls below the relevance
// floor, the result is empty: a weak match is worse than no context.
func (ix *Index) Search(ctx context.Context, chatID, query string) ([]string, error) {
	chunks, err := ix.store.ChunksByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	queryVector := ix.embedder.Embed(ctx, query)
	if queryVector == nil {
		return ix.keywordSearch(chunks, query), nil
	}

	type scoredChunk struct {
		content string
		score   float64
	}

	var candidates []scoredChunk
	for _, chunk := range chunks {
		if chunk.Embedding == nil {
			continue
		}
		vector := chunk.Embedding.Slice()
		if len(vector) != len(queryVector) {
			continue
		}
		candidates = append(candidates, scoredChunk{
			content: chunk.Content,
			score:   cosineSimilarity(queryVector, vector),
		})
	}
	if len(candidates) == 0 {
		return ix.keywordSearch(chunks, query), nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > ix.topK {
		candidates = candidates[:ix.topK]
	}

	var results []string
	for _, candidate := range candidates {
		if candidate.score > scoreThreshold {
			results = append(results, candidate.content)
		}
	}
	return results, nil
}

// keywordSearch returns the first topK chunks containing any query
// keyword longer than minKeywordLen, in index order. No ranking.
func (ix *Index) keywordSearch(chunks []*db.Chunk, query string) []string {
	keywords := strings.Fields(strings.ToLower(query))

	var results []string
	for _, chunk := range chunks {
		content := strings.ToLower(chunk.Content)
		for _, keyword := range keywords {
			if len(keyword) > minKeywordLen && strings.Contains(content, keyword) {
				results = append(results, chunk.Content)
				break
			}
		}
		if len(results) >= ix.topK {
			break
		}
	}
	return results
}

// cosineSimilarity computes dot(a,b) / (||a|| * ||b|| + epsilon). The
// epsilon keeps a zero vector from dividing by zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-10)
}
