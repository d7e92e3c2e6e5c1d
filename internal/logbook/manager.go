package logbook

import (
	"context"
	"errors"
	"sync"

	"flightlog/internal/store"
)

// Manager hands out one Session per user, creating it lazily on first use.
type Manager struct {
	store store.EntryStore
	pub   SyncPublisher

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(st store.EntryStore, pub SyncPublisher) *Manager {
	return &Manager{
		store:    st,
		pub:      pub,
		sessions: make(map[string]*Session),
	}
}

// Session returns the user's session, loading their logbook if needed.
func (m *Manager) Session(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession(ctx, userID, m.store, m.pub)
	m.sessions[userID] = s
	return s
}

// Close shuts down every open session, flushing pending saves.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
