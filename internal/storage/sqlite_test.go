package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"flightlog/internal/core"
	"flightlog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "flightlog_test.db")

	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NotNil(t, repo)

	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
	})
	return repo
}

func TestLoadEntriesMissingUser(t *testing.T) {
	repo := setupTestRepo(t)
	entries := repo.LoadEntries(context.Background(), "nobody")
	assert.Empty(t, entries)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	entries := []core.FlightEntry{
		{Date: "240115", AircraftModel: "C172", From: "KPAO", To: "KSQL", LDGDay: "2", FlightDuration: "1.2"},
		{Date: "240116", AircraftModel: "PA28", Remarks: "night pattern work", LDGNight: "3"},
	}
	require.NoError(t, repo.SaveEntries(ctx, "alice", entries))

	got := repo.LoadEntries(ctx, "alice")
	assert.Equal(t, entries, got)
}

func TestSaveEntriesOverwrites(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := []core.FlightEntry{{Date: "240101"}, {Date: "240102"}}
	require.NoError(t, repo.SaveEntries(ctx, "alice", first))

	second := []core.FlightEntry{{Date: "240203", Remarks: "replacement"}}
	require.NoError(t, repo.SaveEntries(ctx, "alice", second))

	got := repo.LoadEntries(ctx, "alice")
	assert.Equal(t, second, got)
}

func TestSaveEntriesEmptySequence(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEntries(ctx, "alice", []core.FlightEntry{{Date: "240101"}}))
	require.NoError(t, repo.SaveEntries(ctx, "alice", nil))

	assert.Empty(t, repo.LoadEntries(ctx, "alice"))
}

func TestUsersIsolated(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEntries(ctx, "alice", []core.FlightEntry{{Date: "240101"}}))
	require.NoError(t, repo.SaveEntries(ctx, "bob", []core.FlightEntry{{Date: "250505"}, {Date: "250506"}}))

	assert.Len(t, repo.LoadEntries(ctx, "alice"), 1)
	assert.Len(t, repo.LoadEntries(ctx, "bob"), 2)
}

func TestCreateUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, "alice", []byte("hash-1")))

	err := repo.CreateUser(ctx, "alice", []byte("hash-2"))
	assert.True(t, errors.Is(err, store.ErrUsernameTaken))

	hash, err := repo.GetPasswordHash(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash-1"), hash)
}

func TestGetPasswordHashUnknownUser(t *testing.T) {
	repo := setupTestRepo(t)
	_, err := repo.GetPasswordHash(context.Background(), "nobody")
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}

func TestListLogbookUsers(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	users, err := repo.ListLogbookUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.SaveEntries(ctx, "bob", nil))
	require.NoError(t, repo.SaveEntries(ctx, "alice", nil))

	users, err = repo.ListLogbookUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
}
