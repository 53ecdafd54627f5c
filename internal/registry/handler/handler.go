package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onyx/internal/registry"
	"onyx/pkg/platform/httputil"
	"onyx/pkg/requestcontext"
)

// Service defines the interface for provider allowlist operations.
type Service interface {
	IsAllowed(ctx context.Context, providerID string) (bool, error)
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, providerID string) (bool, error)
	Remove(ctx context.Context, providerID string) (bool, error)
	Reload(ctx context.Context) error
	Stats(ctx context.Context) (*registry.Stats, error)
}

// Handler wires registry endpoints to the allowlist service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registry/providers", h.HandleList)
	r.Post("/registry/providers", h.HandleAdd)
	r.Delete("/registry/providers/{providerID}", h.HandleRemove)
	r.Post("/registry/providers/check", h.HandleCheck)
	r.Post("/registry/reload", h.HandleReload)
	r.Get("/registry/stats", h.HandleStats)
}

// HandleList handles GET /registry/providers requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	providers, err := h.service.List(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"providers": providers,
		"count":     len(providers),
	})
}

// HandleAdd handles POST /registry/providers requests.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ProviderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	added, err := h.service.Add(ctx, req.ProviderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, map[string]any{
		"provider_id": req.ProviderID,
		"added":       added,
	})
}

// HandleRemove handles DELETE /registry/providers/{providerID} requests.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID := chi.URLParam(r, "providerID")

	removed, err := h.service.Remove(ctx, providerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"provider_id": providerID,
		"removed":     removed,
	})
}

// HandleCheck handles POST /registry/providers/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ProviderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	allowed, err := h.service.IsAllowed(ctx, req.ProviderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"provider_id": req.ProviderID,
		"allowed":     allowed,
	})
}

// HandleReload handles POST /registry/reload requests.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "registry reload failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	stats, err := h.service.Stats(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"stats":    stats,
	})
}

// HandleStats handles GET /registry/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
