// Package chunker splits extracted document text into overlapping
// word windows, the unit of retrieval for the RAG pipeline.
package chunker

import "strings"

// Defaults match the tuning the service was built around: 500-word
// windows with a 100-word overlap carried across each boundary.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// Chunker splits text into overlapping chunks of whitespace-separated
// words. Split is deterministic and has no side effects.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// New creates a chunker. Non-positive sizes fall back to the defaults.
func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap <= 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Split tokenizes text on whitespace and emits windows of chunkSize
// words. Each emitted window seeds the next with its last chunkOverlap
// words, so consecutive chunks share exactly that many words. A trailing
// partial window is emitted when it holds any content.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	current := make([]string, 0, c.chunkSize)

	for _, word := range words {
		current = append(current, word)
		if len(current) >= c.chunkSize {
			chunks = append(chunks, strings.Join(current, " "))

			// Reseed the window with the overlap tail, counted in
			// words rather than characters.
			tail := current[len(current)-c.chunkOverlap:]
			current = make([]string, len(tail), c.chunkSize)
			copy(current, tail)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
