// Package trust implements deterministic trust scoring: a fixed-weight
// linear model over normalized features, risk-tier classification, and
// policy-table driven adjustment of payment-rail weights.
package trust

import "time"

// RiskLevel classifies a trust score into one of three bands. High scores
// mean low risk; the bands run opposite to the score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Context holds the input features for trust scoring. The identifiers are
// used only for audit metadata, never for the score itself.
type Context struct {
	DeviceReputation float64 `json:"device_reputation"` // [0,1]
	Velocity         float64 `json:"velocity"`          // transactions per hour, >= 0
	IPRisk           float64 `json:"ip_risk"`           // [0,1]
	HistoryLen       int     `json:"history_len"`       // transaction count, >= 0

	UserID     string  `json:"user_id,omitempty"`
	SessionID  string  `json:"session_id,omitempty"`
	MerchantID string  `json:"merchant_id,omitempty"`
	Channel    string  `json:"channel,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

// ScoreResult is the outcome of the scoring formula. TrustScore always
// equals the sum of FeatureContributions exactly; that identity is the
// explainability contract any replacement model must preserve.
type ScoreResult struct {
	TrustScore           float64            `json:"trust_score"`
	RiskLevel            RiskLevel          `json:"risk_level"`
	Confidence           float64            `json:"confidence"`
	ModelType            string             `json:"model_type"`
	FeatureContributions map[string]float64 `json:"feature_contributions"`
}

// RailWeight is one caller-supplied payment rail with its routing weight.
// Rails are a slice rather than a map so the caller's order is preserved in
// the adjustments.
type RailWeight struct {
	RailType string  `json:"rail_type"`
	Weight   float64 `json:"weight"`
}

// RailAdjustment records how one rail's weight was changed. The invariant
// AdjustedWeight == OriginalWeight * AdjustmentFactor holds exactly.
type RailAdjustment struct {
	RailType         string  `json:"rail_type"`
	OriginalWeight   float64 `json:"original_weight"`
	AdjustedWeight   float64 `json:"adjusted_weight"`
	AdjustmentFactor float64 `json:"adjustment_factor"`
	Reason           string  `json:"reason"`
}

// Signal is the complete trust signal returned to callers.
type Signal struct {
	TraceID         string           `json:"trace_id"`
	Score           ScoreResult      `json:"trust_score_result"`
	RailAdjustments []RailAdjustment `json:"rail_adjustments"`
	Explanation     string           `json:"explanation"`
	Metadata        map[string]any   `json:"metadata"`
	Timestamp       time.Time        `json:"timestamp"`
}

// DefaultRailWeights is used when the caller supplies no rails.
func DefaultRailWeights() []RailWeight {
	return []RailWeight{
		{RailType: "ACH", Weight: 0.4},
		{RailType: "debit", Weight: 0.3},
		{RailType: "credit", Weight: 0.3},
	}
}
