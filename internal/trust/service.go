package trust

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"onyx/internal/audit"
	"onyx/internal/trust/metrics"
	derrors "onyx/pkg/domain-errors"
	"onyx/pkg/requestcontext"
)

// signalVersion tags signal metadata so consumers can detect changes.
const signalVersion = "trust_signal_v1"

// Service computes trust signals. Scoring, classification, and rail
// adjustment are pure; the service adds validation, explanation fallback,
// and audit packaging around them.
type Service struct {
	explainer Explainer
	publisher audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithExplainer installs the optional external explanation collaborator.
func WithExplainer(explainer Explainer) Option {
	return func(s *Service) {
		s.explainer = explainer
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func NewService(opts ...Option) *Service {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ScoreRequest carries the trust context, the caller's rail catalog, and
// emission controls.
type ScoreRequest struct {
	Context         Context
	OriginalWeights []RailWeight
	TraceID         string
	EmitAudit       bool
}

// SignalResult is the signal plus, when requested, the packaged audit
// envelope for the caller to forward.
type SignalResult struct {
	Signal   *Signal         `json:"signal"`
	Envelope *audit.Envelope `json:"audit_envelope,omitempty"`
}

// ScoreTrust validates the context, scores it, classifies risk, and adjusts
// the caller's rail weights. Identical requests always yield identical
// signals.
func (s *Service) ScoreTrust(ctx context.Context, req ScoreRequest) (*SignalResult, error) {
	start := time.Now()

	if err := validateContext(req.Context); err != nil {
		return nil, err
	}
	if err := validateWeights(req.OriginalWeights); err != nil {
		return nil, err
	}

	traceID := req.TraceID
	if traceID == "" {
		traceID = requestcontext.TraceID(ctx)
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}

	weights := req.OriginalWeights
	if len(weights) == 0 {
		weights = DefaultRailWeights()
	}

	score := Score(req.Context)
	adjustments := AdjustRails(score.TrustScore, score.RiskLevel, weights)
	explanation := s.explain(ctx, score, adjustments, req.Context)

	now := requestcontext.Now(ctx)
	signal := &Signal{
		TraceID:         traceID,
		Score:           score,
		RailAdjustments: adjustments,
		Explanation:     explanation,
		Metadata: map[string]any{
			"model_version":    signalVersion,
			"context_features": req.Context,
			"original_weights": weights,
		},
		Timestamp: now,
	}

	s.metrics.IncrementSignal(string(score.RiskLevel))
	s.metrics.ObserveScore(score.TrustScore)
	for _, adjustment := range adjustments {
		s.metrics.IncrementRailAdjustment(adjustment.RailType, string(score.RiskLevel))
	}
	s.metrics.ObserveScoreLatency(time.Since(start))

	result := &SignalResult{Signal: signal}
	if req.EmitAudit {
		envelope := audit.PackTrustSignal(traceID, now, signalEventData(signal, req.Context, weights))
		result.Envelope = &envelope
		s.publish(ctx, envelope)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "trust signal generated",
			"trace_id", traceID,
			"trust_score", score.TrustScore,
			"risk_level", score.RiskLevel,
			"confidence", score.Confidence,
			"rail_adjustments", len(adjustments),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return result, nil
}

// explain prefers the external collaborator but degrades to the built-in
// template on any failure; prose must never affect the signal itself.
func (s *Service) explain(ctx context.Context, score ScoreResult, adjustments []RailAdjustment, tc Context) string {
	if s.explainer != nil {
		text, err := s.explainer.Explain(ctx, score, adjustments, tc)
		if err == nil && text != "" {
			return text
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "external explainer failed, using template",
				"error", err,
			)
		}
	}
	return Explain(score, adjustments, tc)
}

func (s *Service) publish(ctx context.Context, envelope audit.Envelope) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, envelope); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit event publish failed",
				"event_id", envelope.ID,
				"event_type", envelope.Type,
				"error", err,
			)
		}
	}
}

// validateContext rejects out-of-domain features before any scoring runs.
func validateContext(tc Context) error {
	if tc.DeviceReputation < 0 || tc.DeviceReputation > 1 {
		return derrors.New(derrors.CodeValidation, "device_reputation must be between 0 and 1")
	}
	if tc.Velocity < 0 {
		return derrors.New(derrors.CodeValidation, "velocity must not be negative")
	}
	if tc.IPRisk < 0 || tc.IPRisk > 1 {
		return derrors.New(derrors.CodeValidation, "ip_risk must be between 0 and 1")
	}
	if tc.HistoryLen < 0 {
		return derrors.New(derrors.CodeValidation, "history_len must not be negative")
	}
	return nil
}

func validateWeights(weights []RailWeight) error {
	for _, rail := range weights {
		if rail.RailType == "" {
			return derrors.New(derrors.CodeValidation, "rail_type is required for every rail weight")
		}
		if rail.Weight < 0 {
			return derrors.Newf(derrors.CodeValidation, "weight for rail %s must not be negative", rail.RailType)
		}
	}
	return nil
}

// signalEventData builds the trust_signal event payload.
func signalEventData(signal *Signal, tc Context, weights []RailWeight) map[string]any {
	adjustedWeights := make(map[string]float64, len(signal.RailAdjustments))
	for _, adjustment := range signal.RailAdjustments {
		adjustedWeights[adjustment.RailType] = adjustment.AdjustedWeight
	}

	return map[string]any{
		"trace_id":              signal.TraceID,
		"trust_score":           signal.Score.TrustScore,
		"risk_level":            signal.Score.RiskLevel,
		"confidence":            signal.Score.Confidence,
		"model_type":            signal.Score.ModelType,
		"device_reputation":     tc.DeviceReputation,
		"velocity":              tc.Velocity,
		"ip_risk":               tc.IPRisk,
		"history_len":           tc.HistoryLen,
		"feature_contributions": signal.Score.FeatureContributions,
		"rail_adjustments":      signal.RailAdjustments,
		"original_weights":      weights,
		"adjusted_weights":      adjustedWeights,
		"explanation":           signal.Explanation,
		"generated_at":          signal.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
