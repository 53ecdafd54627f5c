package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("list is sorted", func(t *testing.T) {
		s := NewMemory()
		require.NoError(t, s.Replace(ctx, []string{"zeta", "alpha", "mid"}))

		providers, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, providers)
	})

	t.Run("replace deduplicates", func(t *testing.T) {
		s := NewMemory()
		require.NoError(t, s.Replace(ctx, []string{"a", "a", "b"}))

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("add and remove report presence", func(t *testing.T) {
		s := NewMemory()

		added, err := s.Add(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, added)

		added, err = s.Add(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, added)

		removed, err := s.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("replace swaps the whole set", func(t *testing.T) {
		s := NewMemory()
		require.NoError(t, s.Replace(ctx, []string{"old"}))
		require.NoError(t, s.Replace(ctx, []string{"new"}))

		allowed, err := s.IsAllowed(ctx, "old")
		require.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = s.IsAllowed(ctx, "new")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Add(ctx, "shared")
			assert.NoError(t, err)
			_, err = s.IsAllowed(ctx, "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
