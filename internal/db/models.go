package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Roles a conversation turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation's history. Turns are immutable
// once created and ordered by timestamp.
type Turn struct {
	ID        uuid.UUID
	ChatID    string
	Role      string
	Content   string
	Timestamp time.Time
}

// Document represents one successfully ingested file. ChunkCount is fixed
// at creation time from the number of chunks actually persisted.
type Document struct {
	ID         uuid.UUID
	ChatID     string
	FileName   string
	UploadedAt time.Time
	ChunkCount int
}

// Chunk is a bounded, overlapping slice of a document's extracted text.
// Embedding is nil when the embedding provider failed for this chunk;
// such chunks are still reachable through keyword search.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	ChatID     string
	ChunkIndex int
	Content    string
	Embedding  *pgvector.Vector
}
