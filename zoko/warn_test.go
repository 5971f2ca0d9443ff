package zoko

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnings(t *testing.T) {
	db := newTestDB(t)
	warnings := NewWarnings(db, newTestWriteDB(t, db), nil)
	ctx := context.Background()

	first, err := warnings.Add(ctx, "g", "u", "mod", "spam")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := warnings.Add(ctx, "g", "u", "mod", "küfür")
	require.NoError(t, err)
	_, err = warnings.Add(ctx, "g", "other", "mod", "spam")
	require.NoError(t, err)

	count, err := warnings.Count(ctx, "g", "u")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	listed, err := warnings.List(ctx, "g", "u")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	removed, err := warnings.Remove(ctx, "g", second.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	count, err = warnings.Count(ctx, "g", "u")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWarningsRemoveIsGuildScoped(t *testing.T) {
	db := newTestDB(t)
	warnings := NewWarnings(db, newTestWriteDB(t, db), nil)
	ctx := context.Background()

	warning, err := warnings.Add(ctx, "g1", "u", "mod", "spam")
	require.NoError(t, err)

	// The wrong guild can't remove it.
	removed, err := warnings.Remove(ctx, "g2", warning.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	count, err := warnings.Count(ctx, "g1", "u")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWarningsRemoveUnknownID(t *testing.T) {
	db := newTestDB(t)
	warnings := NewWarnings(db, newTestWriteDB(t, db), nil)

	removed, err := warnings.Remove(context.Background(), "g", 9999)
	require.NoError(t, err)
	assert.False(t, removed)
}
