package memory

import (
	"context"
	"testing"

	"flightlog/internal/core"
)

func TestReplaceLogbookOverwrites(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ReplaceLogbook(ctx, "alice", []core.FlightEntry{{Date: "240101"}, {Date: "240102"}})
	m.ReplaceLogbook(ctx, "alice", []core.FlightEntry{{Date: "240103"}})

	got := m.Logbook("alice")
	if len(got) != 1 || got[0].Date != "240103" {
		t.Errorf("Logbook(alice) = %v, want the latest sequence only", got)
	}
}

func TestLogbookIsolatedPerUser(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ReplaceLogbook(ctx, "alice", []core.FlightEntry{{Date: "240101"}})
	if got := m.Logbook("bob"); len(got) != 0 {
		t.Errorf("Logbook(bob) = %v, want empty", got)
	}
}

func TestLogbookReturnsCopy(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ReplaceLogbook(ctx, "alice", []core.FlightEntry{{Date: "240101"}})
	got := m.Logbook("alice")
	got[0].Date = "999999"

	if again := m.Logbook("alice"); again[0].Date != "240101" {
		t.Error("mutating the returned slice changed the stored logbook")
	}
}
