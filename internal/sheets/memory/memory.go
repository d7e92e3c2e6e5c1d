// Package memory is an in-process LogbookMirror used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"flightlog/internal/core"
	ports "flightlog/internal/sheets"
)

type Mirror struct {
	mu       sync.Mutex
	logbooks map[string][]core.FlightEntry
}

var _ ports.LogbookMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{logbooks: make(map[string][]core.FlightEntry)}
}

func (m *Mirror) ReplaceLogbook(_ context.Context, userID string, entries []core.FlightEntry) error {
	snapshot := make([]core.FlightEntry, len(entries))
	copy(snapshot, entries)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.logbooks[userID] = snapshot
	return nil
}

// Logbook returns the last mirrored sequence for a user.
func (m *Mirror) Logbook(userID string) []core.FlightEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.logbooks[userID]
	out := make([]core.FlightEntry, len(entries))
	copy(out, entries)
	return out
}
