package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// InsertTurn persists one conversation turn.
func (db *DB) InsertTurn(ctx context.Context, turn *Turn) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO chat_messages (id, chat_id, role, content, timestamp)
		 VALUES ($1, $2, $3, $4, $5)`,
		turn.ID, turn.ChatID, turn.Role, turn.Content, turn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit turns for a chat, most recent first.
func (db *DB) RecentTurns(ctx context.Context, chatID string, limit int) ([]*Turn, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, chat_id, role, content, timestamp
		 FROM chat_messages
		 WHERE chat_id = $1
		 ORDER BY timestamp DESC
		 LIMIT $2`,
		chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []*Turn
	for rows.Next() {
		var turn Turn
		if err := rows.Scan(&turn.ID, &turn.ChatID, &turn.Role, &turn.Content, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, &turn)
	}
	return turns, rows.Err()
}

// DeleteTurns removes all turns for a chat.
func (db *DB) DeleteTurns(ctx context.Context, chatID string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM chat_messages WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("failed to delete turns: %w", err)
	}
	return nil
}

// CreateDocumentWithChunks persists a document and all of its chunks in a
// single transaction, so a partially ingested document is never visible.
func (db *DB) CreateDocumentWithChunks(ctx context.Context, doc *Document, chunks []*Chunk) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, chat_id, file_name, uploaded_at, chunk_count)
		 VALUES ($1, $2, $3, $4, $5)`,
		doc.ID, doc.ChatID, doc.FileName, doc.UploadedAt, doc.ChunkCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(
			`INSERT INTO document_chunks (id, document_id, chat_id, chunk_index, content, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			chunk.ID, chunk.DocumentID, chunk.ChatID, chunk.ChunkIndex, chunk.Content, chunk.Embedding,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < len(chunks); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// DocumentsByChat returns all documents uploaded to a chat, oldest first.
func (db *DB) DocumentsByChat(ctx context.Context, chatID string) ([]*Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, chat_id, file_name, uploaded_at, chunk_count
		 FROM documents
		 WHERE chat_id = $1
		 ORDER BY uploaded_at`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.ChatID, &doc.FileName, &doc.UploadedAt, &doc.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// ChunksByChat returns every chunk indexed for a chat in stable document
// emission order.
func (db *DB) ChunksByChat(ctx context.Context, chatID string) ([]*Chunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.document_id, c.chat_id, c.chunk_index, c.content, c.embedding
		 FROM document_chunks c
		 JOIN documents d ON d.id = c.document_id
		 WHERE c.chat_id = $1
		 ORDER BY d.uploaded_at, c.chunk_index`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*Chunk
	for rows.Next() {
		var chunk Chunk
		if err := rows.Scan(
			&chunk.ID, &chunk.DocumentID, &chunk.ChatID,
			&chunk.ChunkIndex, &chunk.Content, &chunk.Embedding,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, &chunk)
	}
	return chunks, rows.Err()
}
