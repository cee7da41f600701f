// Package memory maintains the bounded per-conversation turn history.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medAmineRg/chatbot-service/internal/db"
)

// TurnStore persists and loads conversation turns. RecentTurns yields the
// most recent turns first; Memory re-orders them for callers.
type TurnStore interface {
	InsertTurn(ctx context.Context, turn *db.Turn) error
	RecentTurns(ctx context.Context, chatID string, limit int) ([]*db.Turn, error)
	DeleteTurns(ctx context.Context, chatID string) error
}

// Memory is the conversation history for all chats, partitioned by
// chat id.
type Memory struct {
	store TurnStore
}

// New creates a conversation memory over the given store.
func New(store TurnStore) *Memory {
	return &Memory{store: store}
}

// Append records one turn at the current time.
func (m *Memory) Append(ctx context.Context, chatID, role, content string) error {
	turn := &db.Turn{
		ID:        uuid.New(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := m.store.InsertTurn(ctx, turn); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// Recent returns the n most recently created turns in chronological
// order, oldest of the window first. Model context expects time order,
// not the recency order the store yields.
func (m *Memory) Recent(ctx context.Context, chatID string, n int) ([]*db.Turn, error) {
	turns, err := m.store.RecentTurns(ctx, chatID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Clear deletes the whole history of one chat.
func (m *Memory) Clear(ctx context.Context, chatID string) error {
	if err := m.store.DeleteTurns(ctx, chatID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
