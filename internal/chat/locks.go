package chat

import "sync"

// conversationLocks serializes turn processing per chat id so concurrent
// submissions for the same conversation cannot interleave their history
// writes. Different conversations proceed independently.
type conversationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the conversation and returns the release func.
func (l *conversationLocks) acquire(chatID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[chatID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
