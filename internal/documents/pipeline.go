package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/medAmineRg/chatbot-service/internal/chunker"
	"github.com/medAmineRg/chatbot-service/internal/db"
)

var (
	// ErrExtraction marks a file the extractor could not read at all.
	ErrExtraction = errors.New("failed to extract text from document")

	// ErrEmptyText marks a readable file with no extractable text,
	// typically a scanned or image-only PDF.
	ErrEmptyText = errors.New("document contains no extractable text")
)

// TextExtractor extracts plain text from file bytes.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Embedder produces a chunk vector, or nil when no vector is available.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// DocumentStore persists a document together with its chunks.
type DocumentStore interface {
	CreateDocumentWithChunks(ctx context.Context, doc *db.Document, chunks []*db.Chunk) error
}

// Pipeline orchestrates one ingestion: extraction, chunking, per-chunk
// embedding and persistence. Embedding failures degrade to chunks without
// vectors; extraction and persistence failures abort the ingestion.
type Pipeline struct {
	store     DocumentStore
	extractor TextExtractor
	chunker   *chunker.Chunker
	embedder  Embedder
	log       *slog.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(store DocumentStore, extractor TextExtractor, splitter *chunker.Chunker, embedder Embedder, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		store:     store,
		extractor: extractor,
		chunker:   splitter,
		embedder:  embedder,
		log:       log,
	}
}

// Ingest processes one uploaded file for a chat and returns the created
// document. Chunks are embedded sequentially; a chunk whose embedding
// fails is persisted without a vector and remains reachable through
// keyword search. The document and all of its chunks are committed
// together, so ChunkCount always matches the persisted chunks.
func (p *Pipeline) Ingest(ctx context.Context, chatID string, fileData []byte, fileName string) (*db.Document, error) {
	text, err := p.extractor.ExtractText(fileData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	contents := p.chunker.Split(text)
	p.log.Info("split document into chunks", "file", fileName, "chunks", len(contents))

	doc := &db.Document{
		ID:         uuid.New(),
		ChatID:     chatID,
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
		ChunkCount: len(contents),
	}

	chunks := make([]*db.Chunk, 0, len(contents))
	for i, content := range contents {
		var embedding *pgvector.Vector
		if vector := p.embedder.Embed(ctx, content); vector != nil {
			v := pgvector.NewVector(vector)
			embedding = &v
		} else {
			p.log.Warn("storing chunk without embedding", "file", fileName, "chunk", i)
		}

		chunks = append(chunks, &db.Chunk{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			ChatID:     chatID,
			ChunkIndex: i,
			Content:    content,
			Embedding:  embedding,
		})
	}

	if err := p.store.CreateDocumentWithChunks(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	p.log.Info("ingested document", "file", fileName, "chat_id", chatID, "chunks", doc.ChunkCount)
	return doc, nil
}
