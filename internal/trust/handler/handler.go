package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onyx/internal/trust"
	"onyx/pkg/platform/httputil"
	"onyx/pkg/requestcontext"
)

// Service defines the interface for trust scoring operations.
type Service interface {
	ScoreTrust(ctx context.Context, req trust.ScoreRequest) (*trust.SignalResult, error)
}

// Handler wires trust endpoints to the scoring service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a trust handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts trust endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/trust/signal", h.HandleScore)
}

// HandleScore handles POST /trust/signal requests.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ScoreRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ScoreTrust(ctx, trust.ScoreRequest{
		Context:         req.Context,
		OriginalWeights: req.OriginalWeights,
		TraceID:         req.TraceID,
		EmitAudit:       req.EmitAudit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "trust scoring failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "trust signal handled",
		"request_id", requestID,
		"trace_id", result.Signal.TraceID,
		"risk_level", result.Signal.Score.RiskLevel,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}
