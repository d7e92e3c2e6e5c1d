package worker

import (
	"context"
	"testing"

	"flightlog/internal/amqp"
	"flightlog/internal/core"
	sheetsmem "flightlog/internal/sheets/memory"
	storemem "flightlog/internal/store/memory"
)

func TestHandleSyncMessageMirrorsStoredSequence(t *testing.T) {
	ctx := context.Background()
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewMirrorWorker(st, mirror)

	entries := []core.FlightEntry{
		{Date: "240101", AircraftModel: "C172", FlightDuration: "1.5"},
		{Date: "240102", AircraftModel: "C172", FlightDuration: "2.0"},
	}
	if err := st.SaveEntries(ctx, "alice", entries); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	msg := amqp.NewLogbookSyncMessage("alice", 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	got := mirror.Logbook("alice")
	if len(got) != 2 || got[0].Date != "240101" || got[1].Date != "240102" {
		t.Errorf("mirrored logbook = %v, want the stored sequence", got)
	}
}

func TestHandleSyncMessageUnknownUserMirrorsEmpty(t *testing.T) {
	ctx := context.Background()
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewMirrorWorker(st, mirror)

	msg := amqp.NewLogbookSyncMessage("ghost", 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if got := mirror.Logbook("ghost"); len(got) != 0 {
		t.Errorf("mirrored logbook for unknown user = %v, want empty", got)
	}
}

func TestMirrorAllCoversEveryUser(t *testing.T) {
	ctx := context.Background()
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewMirrorWorker(st, mirror)

	st.SaveEntries(ctx, "alice", []core.FlightEntry{{Date: "240101"}})
	st.SaveEntries(ctx, "bob", []core.FlightEntry{{Date: "240201"}, {Date: "240202"}})

	if err := w.MirrorAll(ctx); err != nil {
		t.Fatalf("MirrorAll() error = %v", err)
	}

	if got := mirror.Logbook("alice"); len(got) != 1 {
		t.Errorf("alice mirror = %v, want 1 entry", got)
	}
	if got := mirror.Logbook("bob"); len(got) != 2 {
		t.Errorf("bob mirror = %v, want 2 entries", got)
	}
}
