package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medAmineRg/chatbot-service/internal/db"
)

type stubTurnStore struct {
	inserted  []*db.Turn
	recent    []*db.Turn
	lastLimit int
	deleted   string
	err       error
}

func (s *stubTurnStore) InsertTurn(ctx context.Context, turn *db.Turn) error {
	s.inserted = append(s.inserted, turn)
	return s.err
}

func (s *stubTurnStore) RecentTurns(ctx context.Context, chatID string, limit int) ([]*db.Turn, error) {
	s.lastLimit = limit
	return s.recent, s.err
}

func (s *stubTurnStore) DeleteTurns(ctx context.Context, chatID string) error {
	s.deleted = chatID
	return s.err
}

func turnAt(role, content string, offset time.Duration) *db.Turn {
	return &db.Turn{
		ID:        uuid.New(),
		ChatID:    "chat-1",
		Role:      role,
		Content:   content,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(offset),
	}
}

func TestAppendStampsTurn(t *testing.T) {
	store := &stubTurnStore{}
	m := New(store)

	require.NoError(t, m.Append(context.Background(), "chat-1", db.RoleUser, "hello"))

	require.Len(t, store.inserted, 1)
	turn := store.inserted[0]
	assert.Equal(t, "chat-1", turn.ChatID)
	assert.Equal(t, db.RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Content)
	assert.NotEqual(t, uuid.Nil, turn.ID)
	assert.False(t, turn.Timestamp.IsZero())
}

func TestRecentReordersToChronological(t *testing.T) {
	// The store yields newest first.
	store := &stubTurnStore{recent: []*db.Turn{
		turnAt(db.RoleAssistant, "third", 2*time.Minute),
		turnAt(db.RoleUser, "second", time.Minute),
		turnAt(db.RoleUser, "first", 0),
	}}
	m := New(store)

	turns, err := m.Recent(context.Background(), "chat-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, store.lastLimit)

	require.Len(t, turns, 3)
	assert.Equal(t, "first", turns[0].Content)
	assert.Equal(t, "second", turns[1].Content)
	assert.Equal(t, "third", turns[2].Content)
	assert.True(t, turns[0].Timestamp.Before(turns[2].Timestamp))
}

func TestClearDelegatesToStore(t *testing.T) {
	store := &stubTurnStore{}
	m := New(store)

	require.NoError(t, m.Clear(context.Background(), "chat-9"))
	assert.Equal(t, "chat-9", store.deleted)
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	store := &stubTurnStore{err: fmt.Errorf("down")}
	m := New(store)

	assert.Error(t, m.Append(context.Background(), "chat-1", db.RoleUser, "x"))
	_, err := m.Recent(context.Background(), "chat-1", 10)
	assert.Error(t, err)
	assert.Error(t, m.Clear(context.Background(), "chat-1"))
}
