// Package worker keeps the spreadsheet mirror in step with the database.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flightlog/internal/amqp"
	"flightlog/internal/sheets"
	"flightlog/internal/store"
)

// MirrorWorker reacts to logbook sync messages by reloading a user's stored
// sequence and rewriting their sheet. Because every message carries only the
// user and revision, replays and reordered deliveries are harmless: the
// worker always mirrors whatever the database holds now.
type MirrorWorker struct {
	store  mirrorStore
	mirror sheets.LogbookMirror
}

type mirrorStore interface {
	store.EntryStore
	store.LogbookLister
}

func NewMirrorWorker(st mirrorStore, mirror sheets.LogbookMirror) *MirrorWorker {
	return &MirrorWorker{store: st, mirror: mirror}
}

// HandleSyncMessage mirrors the logbook named by a single AMQP message.
func (w *MirrorWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LogbookSyncMessage) error {
	slog.InfoContext(ctx, "Mirroring logbook",
		"user", msg.UserID,
		"rev", msg.Rev)

	entries := w.store.LoadEntries(ctx, msg.UserID)
	if err := w.mirror.ReplaceLogbook(ctx, msg.UserID, entries); err != nil {
		return fmt.Errorf("mirror logbook for %s: %w", msg.UserID, err)
	}
	return nil
}

// MirrorAll rewrites every known user's sheet. Run periodically as a backstop
// for lost messages and worker downtime.
func (w *MirrorWorker) MirrorAll(ctx context.Context) error {
	users, err := w.store.ListLogbookUsers(ctx)
	if err != nil {
		return fmt.Errorf("list logbook users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	start := time.Now()
	errorCount := 0
	for _, user := range users {
		entries := w.store.LoadEntries(ctx, user)
		if err := w.mirror.ReplaceLogbook(ctx, user, entries); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror logbook", "user", user, "error", err)
			errorCount++
			continue
		}
	}

	slog.InfoContext(ctx, "Mirror pass completed",
		"users", len(users),
		"errors", errorCount,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
