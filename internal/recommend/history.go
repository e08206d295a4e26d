package recommend

import (
	"sync"

	"scholarpath-engine/internal/ai"
)

// HistoryStore keeps per-user conversation context for the advisory chat,
// keyed by user id. The mutex keeps the map itself consistent, but there is
// no per-user ordering guarantee: two concurrent requests for the SAME user
// can interleave their append order non-deterministically. That is an
// accepted limitation: a user driving two chat tabs at once gets a slightly
// scrambled transcript, nothing worse.
type HistoryStore struct {
	mu     sync.Mutex
	byUser map[string][]ai.Message
	limit  int // max retained messages per user, oldest dropped first
}

func NewHistoryStore(limit int) *HistoryStore {
	if limit <= 0 {
		limit = 20
	}
	return &HistoryStore{
		byUser: make(map[string][]ai.Message),
		limit:  limit,
	}
}

// Append records messages for the user, trimming the oldest entries past the
// retention limit.
func (s *HistoryStore) Append(userID string, msgs ...ai.Message) {
	if userID == "" || len(msgs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h := append(s.byUser[userID], msgs...)
	if len(h) > s.limit {
		h = h[len(h)-s.limit:]
	}
	s.byUser[userID] = h
}

// Get returns a copy of the user's history; mutating it does not affect the
// store.
func (s *HistoryStore) Get(userID string) []ai.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.byUser[userID]
	out := make([]ai.Message, len(h))
	copy(out, h)
	return out
}

// Reset drops the user's conversation.
func (s *HistoryStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
