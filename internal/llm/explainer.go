package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"onyx/internal/trust"
)

// Explanation is the structured output of the trust explainer.
type Explanation struct {
	Explanation string            `json:"explanation"`
	KeyFactors  []string          `json:"key_factors"`
	RailImpact  map[string]string `json:"rail_impact"`
	Confidence  float64           `json:"confidence"`
	ModelUsed   string            `json:"model_used"`
}

// Config carries the external model connection settings. The explainer is
// only active when endpoint, API key, and deployment are all present.
type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
}

// Configured reports whether all required connection settings are present.
func (c Config) Configured() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.Deployment != ""
}

// TrustExplainer generates prose explanations for trust signals. The model
// call itself is stubbed; output is deterministic for identical inputs.
// It satisfies the trust scoring service's Explainer interface.
type TrustExplainer struct {
	config Config
	logger *slog.Logger
}

type Option func(*TrustExplainer)

func WithLogger(logger *slog.Logger) Option {
	return func(e *TrustExplainer) {
		e.logger = logger
	}
}

func NewTrustExplainer(config Config, opts ...Option) *TrustExplainer {
	e := &TrustExplainer{config: config}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger != nil {
		if config.Configured() {
			e.logger.Info("trust explainer configured", "deployment", config.Deployment)
		} else {
			e.logger.Info("trust explainer not configured, template explanations will be used")
		}
	}
	return e
}

// Explain implements trust.Explainer. Returns an error when the explainer is
// not configured so the caller falls back to its template.
func (e *TrustExplainer) Explain(ctx context.Context, score trust.ScoreResult, adjustments []trust.RailAdjustment, tc trust.Context) (string, error) {
	result, err := e.ExplainDecision(ctx, score, adjustments, tc)
	if err != nil {
		return "", err
	}
	return result.Explanation, nil
}

// ExplainDecision produces the full structured explanation.
func (e *TrustExplainer) ExplainDecision(ctx context.Context, score trust.ScoreResult, adjustments []trust.RailAdjustment, tc trust.Context) (*Explanation, error) {
	if !e.config.Configured() {
		return nil, fmt.Errorf("trust explainer is not configured")
	}

	factors := keyFactors(tc)

	var b strings.Builder
	switch score.RiskLevel {
	case trust.RiskHigh:
		fmt.Fprintf(&b, "High risk assessment (score: %.2f) due to %s. ", score.TrustScore, joinOr(factors, "multiple risk factors"))
		b.WriteString("ACH rail significantly down-weighted due to elevated risk profile. Credit card recommended for enhanced security.")
	case trust.RiskMedium:
		fmt.Fprintf(&b, "Medium risk assessment (score: %.2f) with %s. ", score.TrustScore, joinOr(factors, "moderate risk indicators"))
		b.WriteString("Minor rail adjustments applied to balance risk and cost efficiency.")
	default:
		fmt.Fprintf(&b, "Low risk assessment (score: %.2f) with strong trust indicators. ", score.TrustScore)
		b.WriteString("All payment rails available with minimal restrictions.")
	}

	return &Explanation{
		Explanation: b.String(),
		KeyFactors:  factors,
		RailImpact:  railImpact(adjustments),
		Confidence:  0.85,
		ModelUsed:   "azure-openai-" + e.config.Deployment,
	}, nil
}

// Key-factor thresholds, aligned with the trust module's template.
const (
	lowDeviceReputation = 0.5
	highVelocity        = 5.0
	highIPRisk          = 0.7
	shortHistory        = 10
)

func keyFactors(tc trust.Context) []string {
	var factors []string
	if tc.DeviceReputation < lowDeviceReputation {
		factors = append(factors, "low device reputation")
	}
	if tc.Velocity > highVelocity {
		factors = append(factors, "high transaction velocity")
	}
	if tc.IPRisk > highIPRisk {
		factors = append(factors, "elevated IP risk")
	}
	if tc.HistoryLen < shortHistory {
		factors = append(factors, "limited transaction history")
	}
	return factors
}

func railImpact(adjustments []trust.RailAdjustment) map[string]string {
	impact := make(map[string]string, len(adjustments))
	for _, adj := range adjustments {
		upper := strings.ToUpper(adj.RailType)
		switch {
		case adj.AdjustmentFactor < 0.5:
			impact[adj.RailType] = upper + " significantly down-weighted due to risk concerns"
		case adj.AdjustmentFactor < 0.8:
			impact[adj.RailType] = upper + " moderately adjusted for risk management"
		default:
			impact[adj.RailType] = upper + " weight maintained with minimal risk impact"
		}
	}
	return impact
}

func joinOr(factors []string, fallback string) string {
	if len(factors) == 0 {
		return fallback
	}
	return strings.Join(factors, ", ")
}
