package logbook

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"flightlog/internal/core"
	"flightlog/internal/store"
)

var ErrIndexOutOfRange = errors.New("entry index out of range")

const saveTimeout = 10 * time.Second

// SyncPublisher is notified after a logbook revision has been persisted.
// Implemented by the AMQP client; nil disables publishing.
type SyncPublisher interface {
	PublishLogbookSync(ctx context.Context, userID string, rev int64) error
}

// Session is one user's in-memory working set. Entries have no identity
// beyond their position, so every mutation happens under the session lock and
// persistence goes through a single writer goroutine: saves are coalesced
// latest-wins, which guarantees write-after-write ordering no matter how fast
// mutations arrive.
//
// Totals and currency are recomputed on every mutation; reads are served from
// the cached results.
type Session struct {
	userID string
	store  store.EntryStore
	pub    SyncPublisher
	now    func() time.Time

	mu       sync.Mutex
	cond     *sync.Cond
	entries  []core.FlightEntry
	totals   core.Totals
	currency core.CurrencyStatus
	rev      int64
	pending  *pendingSave // not yet picked up by the writer
	last     *pendingSave // most recently enqueued (possibly in flight or done)
	closed   bool
	writerWG sync.WaitGroup
}

type pendingSave struct {
	entries []core.FlightEntry
	rev     int64
	done    chan struct{}
	err     error // valid after done is closed
}

// NewSession loads the user's stored sequence and starts the save writer.
// A load failure reads as an empty logbook.
func NewSession(ctx context.Context, userID string, st store.EntryStore, pub SyncPublisher) *Session {
	s := &Session{
		userID: userID,
		store:  st,
		pub:    pub,
		now:    time.Now,
	}
	s.cond = sync.NewCond(&s.mu)
	s.entries = st.LoadEntries(ctx, userID)
	s.recompute()

	s.writerWG.Add(1)
	go s.saveLoop()

	slog.InfoContext(ctx, "Logbook session opened", "user", userID, "entries", len(s.entries))
	return s
}

// Append adds an entry at the end of the sequence.
func (s *Session) Append(e core.FlightEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.afterMutation()
}

// ReplaceAt overwrites the entry at index i.
func (s *Session) ReplaceAt(i int, e core.FlightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	s.entries[i] = e
	s.afterMutation()
	return nil
}

// RemoveAt deletes the entry at index i, shifting later entries down.
func (s *Session) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.afterMutation()
	return nil
}

// ReplaceAll swaps in a whole new sequence (bulk edit, CSV import).
func (s *Session) ReplaceAll(entries []core.FlightEntry) {
	snapshot := make([]core.FlightEntry, len(entries))
	copy(snapshot, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = snapshot
	s.afterMutation()
}

// Entries returns a copy of the current sequence.
func (s *Session) Entries() []core.FlightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.FlightEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Totals returns the cached category totals.
func (s *Session) Totals() core.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// Currency returns the cached currency status.
func (s *Session) Currency() core.CurrencyStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Flush blocks until every mutation made before the call has been written
// (or the attempt failed), returning the outcome of the covering save.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	p := s.last
	s.mu.Unlock()
	if p == nil {
		return nil
	}
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes outstanding saves and stops the writer.
func (s *Session) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	s.writerWG.Wait()
	slog.InfoContext(ctx, "Logbook session closed", "user", s.userID)
	return err
}

// afterMutation recomputes derived state and schedules a save. Caller holds mu.
func (s *Session) afterMutation() {
	s.recompute()
	s.rev++

	snapshot := make([]core.FlightEntry, len(s.entries))
	copy(snapshot, s.entries)

	if s.pending != nil {
		// The writer has not picked up the previous snapshot; replace it in
		// place so waiters on its done channel are covered by this save.
		s.pending.entries = snapshot
		s.pending.rev = s.rev
		return
	}
	s.pending = &pendingSave{entries: snapshot, rev: s.rev, done: make(chan struct{})}
	s.last = s.pending
	s.cond.Signal()
}

// recompute refreshes totals and currency. Caller holds mu.
func (s *Session) recompute() {
	s.totals = core.Aggregate(s.entries)
	s.currency = core.EvaluateCurrency(s.entries, s.totals, s.now())
}

// saveLoop is the single writer. Saves happen in revision order; failures are
// logged and reported through Flush, never interrupt the session.
func (s *Session) saveLoop() {
	defer s.writerWG.Done()

	for {
		s.mu.Lock()
		for s.pending == nil && !s.closed {
			s.cond.Wait()
		}
		if s.pending == nil {
			s.mu.Unlock()
			return
		}
		p := s.pending
		s.pending = nil
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.store.SaveEntries(ctx, s.userID, p.entries)
		if err != nil {
			slog.ErrorContext(ctx, "Logbook save failed", "user", s.userID, "rev", p.rev, "error", err)
		} else if s.pub != nil {
			if perr := s.pub.PublishLogbookSync(ctx, s.userID, p.rev); perr != nil {
				slog.ErrorContext(ctx, "Failed to publish logbook sync", "user", s.userID, "rev", p.rev, "error", perr)
				// Mirror sync is best-effort; the save itself succeeded.
			}
		}
		cancel()

		p.err = err
		close(p.done)
	}
}
