package sheets

import (
	"context"

	"flightlog/internal/core"
)

// LogbookMirror replaces a user's mirrored logbook with the given sequence.
// The mirror is a read-only reflection of the database; it is rewritten
// wholesale because entries are addressed by position, not identity.
type LogbookMirror interface {
	ReplaceLogbook(ctx context.Context, userID string, entries []core.FlightEntry) error
}
