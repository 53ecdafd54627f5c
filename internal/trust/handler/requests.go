package handler

import (
	"onyx/internal/trust"
	derrors "onyx/pkg/domain-errors"
)

// ScoreRequest is the HTTP request body for POST /trust/signal.
type ScoreRequest struct {
	Context         trust.Context      `json:"context"`
	OriginalWeights []trust.RailWeight `json:"original_weights"`
	TraceID         string             `json:"trace_id"`
	EmitAudit       bool               `json:"emit_audit"`
}

// Validate fails fast on structurally unusable requests. Feature-domain
// validation happens in the service, which is also reachable without HTTP.
func (r *ScoreRequest) Validate() error {
	if r == nil {
		return derrors.New(derrors.CodeBadRequest, "request body is required")
	}
	for _, rail := range r.OriginalWeights {
		if rail.RailType == "" {
			return derrors.New(derrors.CodeValidation, "rail_type is required for every rail weight")
		}
	}
	return nil
}
