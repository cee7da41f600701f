package db

import (
	"context"
	"fmt"
)

// schemaStatements bootstraps the tables this service needs. The embedding
// column deliberately has no fixed dimension: the configured embedding
// model decides it, and search validates dimensions before comparing.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY,
		chat_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat_id ON chat_messages (chat_id, timestamp)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		chat_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL,
		chunk_count INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_chat_id ON documents (chat_id)`,
	`CREATE TABLE IF NOT EXISTS document_chunks (
		id UUID PRIMARY KEY,
		document_id UUID NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
		chat_id TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		content TEXT NOT NULL,
		embedding vector
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_chunks_chat_id ON document_chunks (chat_id)`,
}

// EnsureSchema creates the required tables and the pgvector extension if
// they do not exist yet. Safe to run at every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
