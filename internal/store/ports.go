package store

import (
	"context"
	"errors"

	"flightlog/internal/core"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// Ports for outbound persistence adapters.
type (
	// EntryStore is the persistence boundary for a user's logbook. The whole
	// sequence is loaded and saved wholesale under a key derived from the
	// user identity; there are no partial reads or writes.
	EntryStore interface {
		// LoadEntries returns the stored sequence for userID. A missing or
		// unreadable logbook reads as an empty sequence, never an error.
		LoadEntries(ctx context.Context, userID string) []core.FlightEntry

		// SaveEntries idempotently overwrites the stored sequence.
		SaveEntries(ctx context.Context, userID string, entries []core.FlightEntry) error
	}

	// UserStore holds account credentials.
	UserStore interface {
		CreateUser(ctx context.Context, username string, passwordHash []byte) error
		GetPasswordHash(ctx context.Context, username string) ([]byte, error)
	}

	// LogbookLister enumerates users with a stored logbook. Used by the
	// mirror worker for periodic catch-up passes.
	LogbookLister interface {
		ListLogbookUsers(ctx context.Context) ([]string, error)
	}
)
