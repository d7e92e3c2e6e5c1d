package memory

import (
	"context"
	"sort"
	"sync"

	"flightlog/internal/core"
	"flightlog/internal/store"
)

// Store is an in-memory adapter for both persistence ports. It backs the
// default development configuration and the test suites.
type Store struct {
	mu       sync.Mutex
	logbooks map[string][]core.FlightEntry
	users    map[string][]byte
}

func New() *Store {
	return &Store{
		logbooks: make(map[string][]core.FlightEntry),
		users:    make(map[string][]byte),
	}
}

// LoadEntries returns a copy of the stored sequence; missing users read as
// empty.
func (s *Store) LoadEntries(_ context.Context, userID string) []core.FlightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.logbooks[userID]
	if !ok {
		return nil
	}
	out := make([]core.FlightEntry, len(entries))
	copy(out, entries)
	return out
}

// SaveEntries overwrites the stored sequence for userID.
func (s *Store) SaveEntries(_ context.Context, userID string, entries []core.FlightEntry) error {
	snapshot := make([]core.FlightEntry, len(entries))
	copy(snapshot, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logbooks[userID] = snapshot
	return nil
}

func (s *Store) CreateUser(_ context.Context, username string, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return store.ErrUsernameTaken
	}
	s.users[username] = append([]byte(nil), passwordHash...)
	return nil
}

func (s *Store) GetPasswordHash(_ context.Context, username string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return append([]byte(nil), hash...), nil
}

func (s *Store) ListLogbookUsers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]string, 0, len(s.logbooks))
	for id := range s.logbooks {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
