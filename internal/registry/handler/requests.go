package handler

import (
	"strings"

	derrors "onyx/pkg/domain-errors"
)

// ProviderRequest carries a single provider identifier, used by the check
// and add endpoints.
type ProviderRequest struct {
	ProviderID string `json:"provider_id"`
}

func (r *ProviderRequest) Validate() error {
	if r == nil || strings.TrimSpace(r.ProviderID) == "" {
		return derrors.New(derrors.CodeValidation, "provider_id is required")
	}
	return nil
}
