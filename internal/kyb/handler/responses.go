package handler

import (
	"onyx/internal/audit"
	"onyx/internal/kyb"
)

// VerifyResponse is the HTTP response body for POST /kyb/verify.
type VerifyResponse struct {
	Verdict       *kyb.Verdict    `json:"verdict"`
	Summary       string          `json:"summary"`
	AuditEnvelope *audit.Envelope `json:"audit_envelope,omitempty"`
}

// FromResult builds the response from a service result.
func FromResult(result *kyb.VerifyResult) VerifyResponse {
	return VerifyResponse{
		Verdict:       result.Verdict,
		Summary:       kyb.Summary(result.Verdict),
		AuditEnvelope: result.Envelope,
	}
}
