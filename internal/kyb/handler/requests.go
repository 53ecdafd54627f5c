package handler

import (
	"strings"

	"onyx/internal/kyb"
	derrors "onyx/pkg/domain-errors"
)

// VerifyRequest is the HTTP request body for POST /kyb/verify.
type VerifyRequest struct {
	EntityID           string   `json:"entity_id"`
	BusinessName       string   `json:"business_name"`
	Jurisdiction       string   `json:"jurisdiction"`
	EntityAgeDays      int      `json:"entity_age_days"`
	RegistrationStatus string   `json:"registration_status"`
	SanctionsFlags     []string `json:"sanctions_flags"`
	BusinessType       string   `json:"business_type"`
	RegistrationNumber string   `json:"registration_number"`

	TraceID   string `json:"trace_id"`
	EmitAudit bool   `json:"emit_audit"`
}

// Validate fails fast on structurally unusable requests. Full domain
// validation happens in the service, which is also reachable without HTTP.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return derrors.New(derrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.BusinessName) == "" {
		return derrors.New(derrors.CodeValidation, "business_name is required")
	}
	if strings.TrimSpace(r.Jurisdiction) == "" {
		return derrors.New(derrors.CodeValidation, "jurisdiction is required")
	}
	return nil
}

// Entity maps the request body onto the domain entity.
func (r *VerifyRequest) Entity() kyb.Entity {
	return kyb.Entity{
		EntityID:           r.EntityID,
		BusinessName:       r.BusinessName,
		Jurisdiction:       r.Jurisdiction,
		EntityAgeDays:      r.EntityAgeDays,
		RegistrationStatus: r.RegistrationStatus,
		SanctionsFlags:     r.SanctionsFlags,
		BusinessType:       r.BusinessType,
		RegistrationNumber: r.RegistrationNumber,
	}
}
