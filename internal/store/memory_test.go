package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.Save(ctx, Session{}))

	require.NoError(t, s.Save(ctx, Session{PlayerID: "p1", RoomID: "r1", RoomCode: "ABC123"}))
	require.NoError(t, s.Save(ctx, Session{PlayerID: "p2", RoomID: "r1", RoomCode: "ABC123"}))
	require.NoError(t, s.Save(ctx, Session{PlayerID: "p3", RoomID: "r2", RoomCode: "XYZ789"}))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", got.RoomCode)

	// A player moving rooms replaces the old session.
	require.NoError(t, s.Save(ctx, Session{PlayerID: "p2", RoomID: "r2", RoomCode: "XYZ789"}))
	inR1, err := s.ByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, inR1, 1)

	require.NoError(t, s.Delete(ctx, "p1"))
	require.NoError(t, s.Delete(ctx, "nobody"))
	_, err = s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.ClearRoom(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	left, err := s.ByRoom(ctx, "r2")
	require.NoError(t, err)
	assert.Empty(t, left)
}
