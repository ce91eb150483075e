package session

import (
	"context"
	"testing"
	"time"

	"kilnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got, "no flow active yet")

	st := &State{Step: StepSlotSelect, Category: models.CategoryPaired}
	require.NoError(t, store.Set(ctx, 1, st))

	got, err = store.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StepSlotSelect, got.Step)
	assert.Equal(t, models.CategoryPaired, got.Category)

	// States are isolated per chat.
	other, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Clear(ctx, 1))
	got, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &State{Step: StepAdminDate, Date: "2026-09-01"}))

	time.Sleep(25 * time.Millisecond)
	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got, "abandoned flow must expire")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &State{Step: StepAdminUserID}))
	require.NoError(t, store.Set(ctx, 1, &State{Step: StepAdminUsername, UserID: 42}))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StepAdminUsername, got.Step)
	assert.Equal(t, int64(42), got.UserID)
}
