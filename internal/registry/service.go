package registry

import (
	"context"
	"log/slog"
	"strings"

	"onyx/internal/registry/store"
	derrors "onyx/pkg/domain-errors"
)

// Stats summarizes the registry contents.
type Stats struct {
	TotalProviders int `json:"total_providers"`
	AllowlistSize  int `json:"allowlist_size"`
}

// Service manages the credential provider allowlist. The allowlist is seeded
// from a YAML config path when one is set, otherwise from the built-in
// fallback, and can be reloaded at runtime.
type Service struct {
	store      store.ProviderStore
	configPath string
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithStore(st store.ProviderStore) Option {
	return func(s *Service) {
		s.store = st
	}
}

// WithConfigPath sets the YAML allowlist path used on load and reload.
func WithConfigPath(path string) Option {
	return func(s *Service) {
		s.configPath = path
	}
}

// NewService constructs the registry and seeds its store. A config load
// failure falls back to the built-in allowlist rather than failing startup.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.store == nil {
		svc.store = store.NewMemory()
	}
	if err := svc.load(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) load(ctx context.Context) error {
	providers := BuiltinProviders()
	source := "builtin"

	if s.configPath != "" {
		cfg, err := LoadConfig(s.configPath)
		if err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "registry config load failed, using builtin allowlist",
					"path", s.configPath,
					"error", err,
				)
			}
		} else {
			providers = cfg.Providers
			source = s.configPath
		}
	}

	if err := s.store.Replace(ctx, providers); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "seed provider allowlist")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "provider allowlist loaded",
			"source", source,
			"providers", len(providers),
		)
	}
	return nil
}

// IsAllowed reports whether the provider is on the allowlist. Blank or
// whitespace-only identifiers are never allowed.
func (s *Service) IsAllowed(ctx context.Context, providerID string) (bool, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return false, nil
	}
	allowed, err := s.store.IsAllowed(ctx, providerID)
	if err != nil {
		return false, derrors.Wrap(err, derrors.CodeInternal, "check provider allowlist")
	}
	return allowed, nil
}

// List returns all allowed providers in alphabetical order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	providers, err := s.store.List(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "list providers")
	}
	return providers, nil
}

// Add puts a provider on the allowlist. Returns false when the identifier is
// invalid or already present.
func (s *Service) Add(ctx context.Context, providerID string) (bool, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return false, nil
	}
	added, err := s.store.Add(ctx, providerID)
	if err != nil {
		return false, derrors.Wrap(err, derrors.CodeInternal, "add provider")
	}
	if added && s.logger != nil {
		s.logger.InfoContext(ctx, "provider added to allowlist", "provider_id", providerID)
	}
	return added, nil
}

// Remove takes a provider off the allowlist. Returns false when not present.
func (s *Service) Remove(ctx context.Context, providerID string) (bool, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return false, nil
	}
	removed, err := s.store.Remove(ctx, providerID)
	if err != nil {
		return false, derrors.Wrap(err, derrors.CodeInternal, "remove provider")
	}
	if removed && s.logger != nil {
		s.logger.InfoContext(ctx, "provider removed from allowlist", "provider_id", providerID)
	}
	return removed, nil
}

// Reload replaces the allowlist from the configuration source, discarding
// runtime additions and removals.
func (s *Service) Reload(ctx context.Context) error {
	return s.load(ctx)
}

// Stats returns registry statistics.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "count providers")
	}
	return &Stats{
		TotalProviders: count,
		AllowlistSize:  count,
	}, nil
}
