package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onyx/internal/kyb"
	"onyx/pkg/platform/httputil"
	"onyx/pkg/requestcontext"
)

// Service defines the interface for KYB operations.
type Service interface {
	VerifyEntity(ctx context.Context, req kyb.VerifyRequest) (*kyb.VerifyResult, error)
	LastVerdict(ctx context.Context, entityID string) (*kyb.Verdict, error)
}

// Handler wires KYB endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a KYB handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts KYB endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/kyb/verify", h.HandleVerify)
	r.Get("/kyb/verdicts/{entityID}", h.HandleLastVerdict)
}

// HandleVerify handles POST /kyb/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyEntity(ctx, kyb.VerifyRequest{
		Entity:    req.Entity(),
		TraceID:   req.TraceID,
		EmitAudit: req.EmitAudit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "kyb verification failed",
			"request_id", requestID,
			"entity_id", req.EntityID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "kyb verification handled",
		"request_id", requestID,
		"entity_id", req.EntityID,
		"status", result.Verdict.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleLastVerdict handles GET /kyb/verdicts/{entityID} requests.
func (h *Handler) HandleLastVerdict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID := chi.URLParam(r, "entityID")

	verdict, err := h.service.LastVerdict(ctx, entityID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, verdict)
}
