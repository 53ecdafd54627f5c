package store

import "context"

// ProviderStore persists the credential provider allowlist.
type ProviderStore interface {
	// IsAllowed reports whether the provider is present.
	IsAllowed(ctx context.Context, providerID string) (bool, error)
	// List returns all providers in alphabetical order.
	List(ctx context.Context) ([]string, error)
	// Add inserts a provider; returns false when already present.
	Add(ctx context.Context, providerID string) (bool, error)
	// Remove deletes a provider; returns false when not present.
	Remove(ctx context.Context, providerID string) (bool, error)
	// Replace swaps the full allowlist for the given providers.
	Replace(ctx context.Context, providers []string) error
	// Count returns the number of providers.
	Count(ctx context.Context) (int, error)
}
