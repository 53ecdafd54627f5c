package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onyx/internal/kyb"
)

func TestInMemoryVerdictStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing entity returns nil without error", func(t *testing.T) {
		s := NewMemory(time.Minute)
		verdict, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, verdict)
	})

	t.Run("save then get", func(t *testing.T) {
		s := NewMemory(time.Minute)
		require.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "e1", Status: kyb.StatusVerified}))

		verdict, err := s.Get(ctx, "e1")
		require.NoError(t, err)
		require.NotNil(t, verdict)
		assert.Equal(t, kyb.StatusVerified, verdict.Status)
	})

	t.Run("later save overwrites", func(t *testing.T) {
		s := NewMemory(time.Minute)
		require.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "e1", Status: kyb.StatusVerified}))
		require.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "e1", Status: kyb.StatusFail}))

		verdict, err := s.Get(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, kyb.StatusFail, verdict.Status)
	})

	t.Run("expired entry is gone", func(t *testing.T) {
		s := NewMemory(time.Millisecond)
		require.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "e1"}))

		time.Sleep(5 * time.Millisecond)
		verdict, err := s.Get(ctx, "e1")
		require.NoError(t, err)
		assert.Nil(t, verdict)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		s := NewMemory(0)
		require.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "e1"}))

		verdict, err := s.Get(ctx, "e1")
		require.NoError(t, err)
		assert.NotNil(t, verdict)
	})

	t.Run("nil verdict and blank entity id are ignored", func(t *testing.T) {
		s := NewMemory(time.Minute)
		require.NoError(t, s.Save(ctx, nil))
		require.NoError(t, s.Save(ctx, &kyb.Verdict{}))
	})
}

func TestInMemoryVerdictStoreConcurrent(t *testing.T) {
	s := NewMemory(time.Minute)
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, &kyb.Verdict{EntityID: "shared"}))
			_, err := s.Get(ctx, "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	verdict, err := s.Get(ctx, "shared")
	require.NoError(t, err)
	assert.NotNil(t, verdict)
}
