package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var got []string
	assert.ErrorIs(t, s.Get(ctx, KeyShoppingList, &got), ErrNotFound)

	require.NoError(t, s.Put(ctx, KeyShoppingList, []string{"milk", "eggs"}))
	require.NoError(t, s.Get(ctx, KeyShoppingList, &got))
	assert.Equal(t, []string{"milk", "eggs"}, got)

	require.NoError(t, s.Delete(ctx, KeyShoppingList))
	require.NoError(t, s.Delete(ctx, KeyShoppingList))
	assert.ErrorIs(t, s.Get(ctx, KeyShoppingList, &got), ErrNotFound)
	assert.NoError(t, s.Close())
}

func TestMemoryStore_Unencodable(t *testing.T) {
	s := NewMemoryStore()
	err := s.Put(context.Background(), KeyUserProfile, make(chan int))
	assert.Error(t, err)
}
