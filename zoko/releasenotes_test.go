package zoko

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseNotes(t *testing.T) {
	db := newTestDB(t)
	notes := NewReleaseNotes(db, newTestWriteDB(t, db), nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := notes.Add(
			ctx, "g", fmt.Sprintf("v1.%d", i), "değişiklikler", "author",
		)
		require.NoError(t, err)
		// Millisecond timestamps order the notes.
		time.Sleep(2 * time.Millisecond)
	}

	latest, err := notes.Latest(ctx, "g", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "v1.3", latest[0].Version)
	assert.Equal(t, "v1.2", latest[1].Version)

	// Out-of-range limits fall back to the default of five.
	all, err := notes.Latest(ctx, "g", -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	other, err := notes.Latest(ctx, "other", 5)
	require.NoError(t, err)
	assert.Empty(t, other)
}
