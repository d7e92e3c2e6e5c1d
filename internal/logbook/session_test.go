package logbook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightlog/internal/core"
)

// recordingStore captures every save so tests can assert ordering.
type recordingStore struct {
	mu      sync.Mutex
	initial []core.FlightEntry
	saves   [][]core.FlightEntry
	saveErr error
	block   chan struct{} // if non-nil, SaveEntries waits on it
}

func (r *recordingStore) LoadEntries(ctx context.Context, userID string) []core.FlightEntry {
	return r.initial
}

func (r *recordingStore) SaveEntries(ctx context.Context, userID string, entries []core.FlightEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	snapshot := make([]core.FlightEntry, len(entries))
	copy(snapshot, entries)
	r.saves = append(r.saves, snapshot)
	return nil
}

func (r *recordingStore) savedSequences() [][]core.FlightEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func entryOn(date string) core.FlightEntry {
	return core.FlightEntry{Date: date, FlightDuration: "1.0"}
}

func TestSessionAppendPersists(t *testing.T) {
	st := &recordingStore{}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	s.Append(entryOn("240101"))
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	saves := st.savedSequences()
	if len(saves) == 0 {
		t.Fatal("expected at least one save")
	}
	last := saves[len(saves)-1]
	if len(last) != 1 || last[0].Date != "240101" {
		t.Errorf("saved sequence = %v, want single entry dated 240101", last)
	}
}

func TestSessionReplaceAtOutOfRange(t *testing.T) {
	st := &recordingStore{}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	if err := s.ReplaceAt(0, entryOn("240101")); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ReplaceAt(0) on empty session = %v, want ErrIndexOutOfRange", err)
	}
	if err := s.RemoveAt(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(-1) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSessionRemoveShiftsIndices(t *testing.T) {
	st := &recordingStore{}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	s.Append(entryOn("240101"))
	s.Append(entryOn("240102"))
	s.Append(entryOn("240103"))
	if err := s.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt(1) error = %v", err)
	}

	got := s.Entries()
	if len(got) != 2 || got[0].Date != "240101" || got[1].Date != "240103" {
		t.Errorf("entries after remove = %v, want [240101 240103]", got)
	}
}

func TestSessionCoalescesRapidMutations(t *testing.T) {
	block := make(chan struct{})
	st := &recordingStore{block: block}
	s := NewSession(context.Background(), "alice", st, nil)

	// First mutation occupies the writer; the rest pile up behind it and
	// must collapse into a single save carrying the final state.
	s.Append(entryOn("240101"))
	time.Sleep(20 * time.Millisecond) // let the writer pick it up
	for i := 0; i < 10; i++ {
		s.Append(entryOn("240102"))
	}
	close(block)

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	s.Close(context.Background())

	saves := st.savedSequences()
	if len(saves) > 2 {
		t.Errorf("got %d saves, want at most 2 (coalesced)", len(saves))
	}
	last := saves[len(saves)-1]
	if len(last) != 11 {
		t.Errorf("final saved sequence has %d entries, want 11", len(last))
	}
}

func TestSessionFlushReportsSaveError(t *testing.T) {
	saveErr := errors.New("disk full")
	st := &recordingStore{saveErr: saveErr}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	s.Append(entryOn("240101"))
	if err := s.Flush(context.Background()); !errors.Is(err, saveErr) {
		t.Errorf("Flush() = %v, want %v", err, saveErr)
	}
}

func TestSessionFlushNoMutations(t *testing.T) {
	st := &recordingStore{}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	if err := s.Flush(context.Background()); err != nil {
		t.Errorf("Flush() with no mutations = %v, want nil", err)
	}
}

func TestSessionTotalsRecomputed(t *testing.T) {
	st := &recordingStore{}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	s.Append(core.FlightEntry{Date: "240101", FlightDuration: "2.5", LDGDay: "2"})
	s.Append(core.FlightEntry{Date: "240102", FlightDuration: "1.5", LDGDay: "1"})

	totals := s.Totals()
	if totals.FlightDuration != 4.0 {
		t.Errorf("FlightDuration = %v, want 4.0", totals.FlightDuration)
	}
	if totals.LDGDay != 3 {
		t.Errorf("LDGDay = %v, want 3", totals.LDGDay)
	}

	s.ReplaceAll(nil)
	if got := s.Totals().FlightDuration; got != 0 {
		t.Errorf("FlightDuration after clear = %v, want 0", got)
	}
}

func TestSessionLoadsExistingEntries(t *testing.T) {
	st := &recordingStore{initial: []core.FlightEntry{entryOn("230601")}}
	s := NewSession(context.Background(), "alice", st, nil)
	defer s.Close(context.Background())

	got := s.Entries()
	if len(got) != 1 || got[0].Date != "230601" {
		t.Errorf("loaded entries = %v, want the stored sequence", got)
	}
}

type fakePublisher struct {
	mu   sync.Mutex
	revs []int64
}

func (f *fakePublisher) PublishLogbookSync(ctx context.Context, userID string, rev int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revs = append(f.revs, rev)
	return nil
}

func TestSessionPublishesAfterSave(t *testing.T) {
	st := &recordingStore{}
	pub := &fakePublisher{}
	s := NewSession(context.Background(), "alice", st, pub)

	s.Append(entryOn("240101"))
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	s.Close(context.Background())

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.revs) == 0 {
		t.Fatal("expected at least one sync publication")
	}
}

func TestManagerReusesSession(t *testing.T) {
	st := &recordingStore{}
	m := NewManager(st, nil)
	defer m.Close(context.Background())

	a := m.Session(context.Background(), "alice")
	b := m.Session(context.Background(), "alice")
	if a != b {
		t.Error("expected the same session for repeated lookups")
	}
	if c := m.Session(context.Background(), "bob"); c == a {
		t.Error("expected a distinct session per user")
	}
}
