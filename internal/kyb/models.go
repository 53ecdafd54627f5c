// Package kyb implements deterministic Know-Your-Business verification:
// independent rule checks over a business entity, aggregated into a single
// verdict by strict status precedence.
package kyb

import "time"

// Status is the outcome of a single check or of the whole verdict.
type Status string

const (
	StatusVerified Status = "verified"
	StatusReview   Status = "review"
	StatusFail     Status = "fail"
)

// precedence orders statuses for aggregation: fail dominates review,
// review dominates verified.
func (s Status) precedence() int {
	switch s {
	case StatusFail:
		return 2
	case StatusReview:
		return 1
	default:
		return 0
	}
}

// Entity is the normalized business-entity description the rules inspect.
type Entity struct {
	EntityID           string   `json:"entity_id"`
	BusinessName       string   `json:"business_name"`
	Jurisdiction       string   `json:"jurisdiction"`
	EntityAgeDays      int      `json:"entity_age_days"`
	RegistrationStatus string   `json:"registration_status"`
	SanctionsFlags     []string `json:"sanctions_flags"`
	BusinessType       string   `json:"business_type"`
	RegistrationNumber string   `json:"registration_number"`
}

// CheckResult is the outcome of exactly one rule evaluator. Details carry
// every input the rule inspected plus the rule parameters, so the result is
// self-explaining without re-running the rule. Immutable once produced.
type CheckResult struct {
	CheckName string         `json:"check_name"`
	Status    Status         `json:"status"`
	Details   map[string]any `json:"details"`
	Reason    string         `json:"reason"`
}

// Verdict is the aggregated verification result. Status is always the
// precedence maximum over Checks; Reason names the checks that drove it.
type Verdict struct {
	Status     Status         `json:"status"`
	Checks     []CheckResult  `json:"checks"`
	Reason     string         `json:"reason"`
	EntityID   string         `json:"entity_id"`
	VerifiedAt time.Time      `json:"verified_at"`
	Metadata   map[string]any `json:"metadata"`
}

// verificationVersion tags verdicts so consumers can detect rule changes.
const verificationVersion = "1.0.0"

// NewVerdict aggregates check results into a verdict for the given entity.
func NewVerdict(entity Entity, checks []CheckResult, now time.Time) *Verdict {
	status, reason := Aggregate(checks)
	return &Verdict{
		Status:     status,
		Checks:     checks,
		Reason:     reason,
		EntityID:   entity.EntityID,
		VerifiedAt: now,
		Metadata: map[string]any{
			"verification_version": verificationVersion,
			"rules_applied":        len(checks),
			"jurisdiction":         entity.Jurisdiction,
			"entity_age_days":      entity.EntityAgeDays,
		},
	}
}
