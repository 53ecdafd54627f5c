package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAllowlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewService(t *testing.T) {
	ctx := context.Background()

	t.Run("no config path seeds builtin allowlist", func(t *testing.T) {
		svc, err := NewService(ctx)
		require.NoError(t, err)

		providers, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, BuiltinProviders(), providers)
	})

	t.Run("config path seeds configured allowlist", func(t *testing.T) {
		path := writeAllowlist(t, "providers:\n  - custom_provider\n")
		svc, err := NewService(ctx, WithConfigPath(path))
		require.NoError(t, err)

		allowed, err := svc.IsAllowed(ctx, "custom_provider")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.IsAllowed(ctx, "trusted_bank_001")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unreadable config falls back to builtin", func(t *testing.T) {
		svc, err := NewService(ctx, WithConfigPath(filepath.Join(t.TempDir(), "absent.yaml")))
		require.NoError(t, err)

		allowed, err := svc.IsAllowed(ctx, "trusted_bank_001")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestServiceIsAllowed(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx)
	require.NoError(t, err)

	t.Run("blank identifier is never allowed", func(t *testing.T) {
		for _, id := range []string{"", "   ", "\t"} {
			allowed, err := svc.IsAllowed(ctx, id)
			require.NoError(t, err)
			assert.False(t, allowed)
		}
	})

	t.Run("identifier is trimmed before lookup", func(t *testing.T) {
		allowed, err := svc.IsAllowed(ctx, "  trusted_bank_001  ")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("unknown provider is not allowed", func(t *testing.T) {
		allowed, err := svc.IsAllowed(ctx, "rogue_provider")
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestServiceAddRemove(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx)
	require.NoError(t, err)

	t.Run("add then check", func(t *testing.T) {
		added, err := svc.Add(ctx, "new_provider")
		require.NoError(t, err)
		assert.True(t, added)

		allowed, err := svc.IsAllowed(ctx, "new_provider")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("duplicate add reports false", func(t *testing.T) {
		added, err := svc.Add(ctx, "new_provider")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("blank add reports false", func(t *testing.T) {
		added, err := svc.Add(ctx, "   ")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("remove existing", func(t *testing.T) {
		removed, err := svc.Remove(ctx, "new_provider")
		require.NoError(t, err)
		assert.True(t, removed)

		allowed, err := svc.IsAllowed(ctx, "new_provider")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("remove missing reports false", func(t *testing.T) {
		removed, err := svc.Remove(ctx, "never_existed")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestServiceReload(t *testing.T) {
	ctx := context.Background()

	t.Run("reload discards runtime changes", func(t *testing.T) {
		path := writeAllowlist(t, "providers:\n  - provider_a\n")
		svc, err := NewService(ctx, WithConfigPath(path))
		require.NoError(t, err)

		_, err = svc.Add(ctx, "runtime_provider")
		require.NoError(t, err)

		require.NoError(t, svc.Reload(ctx))

		allowed, err := svc.IsAllowed(ctx, "runtime_provider")
		require.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = svc.IsAllowed(ctx, "provider_a")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("reload picks up config edits", func(t *testing.T) {
		path := writeAllowlist(t, "providers:\n  - provider_a\n")
		svc, err := NewService(ctx, WithConfigPath(path))
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("providers:\n  - provider_b\n"), 0o600))
		require.NoError(t, svc.Reload(ctx))

		providers, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"provider_b"}, providers)
	})
}

func TestServiceStats(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalProviders)
	assert.Equal(t, 5, stats.AllowlistSize)

	_, err = svc.Add(ctx, "extra")
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalProviders)
}
