package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the in-process fallback used when no Redis address is
// configured, and the double in tests. Same keep-max semantics, no
// persistence across restarts.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
	names  map[string]string
}

// NewMemoryStore constructs an empty in-memory leaderboard.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scores: make(map[string]int),
		names:  make(map[string]string),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, entry Entry) error {
	if entry.Identity == "" {
		return fmt.Errorf("save leaderboard entry: empty identity")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.scores[entry.Identity]; !ok || entry.Score > current {
		s.scores[entry.Identity] = entry.Score
	}
	if entry.Username != "" {
		s.names[entry.Identity] = entry.Username
	}
	return nil
}

// Top implements Store.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.scores))
	for identity, score := range s.scores {
		entries = append(entries, Entry{
			Identity: identity,
			Username: s.names[identity],
			Score:    score,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Identity < entries[j].Identity
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
