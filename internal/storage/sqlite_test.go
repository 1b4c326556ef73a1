package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveNote(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Send", Body: "check count -> errorIfNegative", SpecDigest: 42}))

	note, err := store.GetNote(ctx, "MPI_Send")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "check count -> errorIfNegative", note.Body)
	assert.Equal(t, uint64(42), note.SpecDigest)
	assert.False(t, note.UpdatedAt.IsZero())

	t.Run("Upsert replaces the body", func(t *testing.T) {
		require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Send", Body: "done", SpecDigest: 43}))
		note, err := store.GetNote(ctx, "MPI_Send")
		require.NoError(t, err)
		assert.Equal(t, "done", note.Body)
		assert.Equal(t, uint64(43), note.SpecDigest)
	})

	t.Run("Blank body removes the note", func(t *testing.T) {
		require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Send", Body: "  \n"}))
		note, err := store.GetNote(ctx, "MPI_Send")
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("Call name is required", func(t *testing.T) {
		assert.Error(t, store.SaveNote(ctx, &Note{Body: "x"}))
	})
}

func TestSQLiteStore_ListNotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	notes, err := store.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	at := time.Unix(1700000000, 0)
	require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Send", Body: "b", UpdatedAt: at}))
	require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Allreduce", Body: "a", UpdatedAt: at}))
	// Digests above the signed 64-bit range survive the round trip.
	require.NoError(t, store.SaveNote(ctx, &Note{CallName: "MPI_Wait", Body: "c", SpecDigest: ^uint64(0)}))

	notes, err = store.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "MPI_Allreduce", notes[0].CallName)
	assert.Equal(t, "MPI_Send", notes[1].CallName)
	assert.Equal(t, at.Unix(), notes[1].UpdatedAt.Unix())
	assert.Equal(t, ^uint64(0), notes[2].SpecDigest)

	require.NoError(t, store.DeleteNote(ctx, "MPI_Send"))
	notes, err = store.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestNote_Stale(t *testing.T) {
	note := &Note{SpecDigest: 7}
	assert.False(t, note.Stale(7))
	assert.True(t, note.Stale(8))
	assert.False(t, note.Stale(0))
	assert.False(t, (&Note{}).Stale(8))
}
