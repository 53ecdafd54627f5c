package kyb

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"onyx/internal/audit"
	"onyx/internal/kyb/metrics"
	derrors "onyx/pkg/domain-errors"
	"onyx/pkg/requestcontext"
)

// VerdictStore keeps recent verdicts so auditors can re-read the last
// decision for an entity. Persistence is a collaborator concern; a nil store
// disables recall.
type VerdictStore interface {
	Save(ctx context.Context, verdict *Verdict) error
	Get(ctx context.Context, entityID string) (*Verdict, error)
}

// Service runs the rule evaluators and aggregates their results. All
// decision logic is pure; the service adds validation, audit packaging, and
// verdict recall around it.
type Service struct {
	store     VerdictStore
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

func WithVerdictStore(store VerdictStore) Option {
	return func(s *Service) {
		s.store = store
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

// VerifyRequest carries the entity to verify plus emission controls.
type VerifyRequest struct {
	Entity    Entity
	TraceID   string
	EmitAudit bool
}

// VerifyResult is the verdict plus, when requested, the packaged audit
// envelope for the caller to forward.
type VerifyResult struct {
	Verdict  *Verdict        `json:"verdict"`
	Envelope *audit.Envelope `json:"audit_envelope,omitempty"`
}

// VerifyEntity validates the entity, runs all rule checks, and aggregates
// them into a verdict. Policy outcomes (fail, review) are successful results;
// only malformed input or an evaluator defect produce an error.
func (s *Service) VerifyEntity(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	start := time.Now()

	entity, err := normalizeEntity(req.Entity)
	if err != nil {
		return nil, err
	}

	traceID := req.TraceID
	if traceID == "" {
		traceID = requestcontext.TraceID(ctx)
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}

	checks, err := s.runChecks(ctx, entity)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	verdict := NewVerdict(entity, checks, now)

	s.metrics.IncrementVerdict(string(verdict.Status))
	for _, check := range checks {
		s.metrics.IncrementCheck(check.CheckName, string(check.Status))
	}
	s.metrics.ObserveVerifyLatency(time.Since(start))

	if s.store != nil {
		// Recall is best-effort; a store outage must not change a
		// compliance decision that has already been made.
		if err := s.store.Save(ctx, verdict); err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "verdict recall save failed",
					"entity_id", verdict.EntityID,
					"error", err,
				)
			}
		}
	}

	result := &VerifyResult{Verdict: verdict}
	if req.EmitAudit {
		envelope := audit.PackKYBVerified(traceID, now, verifiedEventData(verdict, entity, now, traceID))
		result.Envelope = &envelope
		s.publish(ctx, envelope)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "kyb verification completed",
			"trace_id", traceID,
			"entity_id", verdict.EntityID,
			"status", verdict.Status,
			"rules_applied", len(checks),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return result, nil
}

// LastVerdict returns the most recent stored verdict for an entity.
func (s *Service) LastVerdict(ctx context.Context, entityID string) (*Verdict, error) {
	if s.store == nil {
		return nil, derrors.New(derrors.CodeNotFound, "verdict recall is not enabled")
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return nil, derrors.New(derrors.CodeValidation, "entity_id is required")
	}

	verdict, err := s.store.Get(ctx, entityID)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "failed to load verdict")
	}
	if verdict == nil {
		return nil, derrors.Newf(derrors.CodeNotFound, "no verdict recorded for entity %s", entityID)
	}
	return verdict, nil
}

// runChecks evaluates every rule concurrently into its fixed slot. The rules
// have no data dependency on one another, so scheduling order cannot change
// the outcome; the resulting slice always follows the declared rule order.
// A panicking evaluator is a defect and surfaces as an internal error rather
// than silently downgrading the decision.
func (s *Service) runChecks(ctx context.Context, entity Entity) ([]CheckResult, error) {
	checks := make([]CheckResult, len(evaluators))

	g, _ := errgroup.WithContext(ctx)
	for i, eval := range evaluators {
		i, eval := i, eval
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = derrors.Newf(derrors.CodeInternal, "rule evaluator %d panicked: %v", i, r)
				}
			}()
			checks[i] = eval(entity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return checks, nil
}

func (s *Service) publish(ctx context.Context, envelope audit.Envelope) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, envelope); err != nil {
		// The envelope is still returned inline; only the forward failed.
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit event publish failed",
				"event_id", envelope.ID,
				"event_type", envelope.Type,
				"error", err,
			)
		}
	}
}

// normalizeEntity validates required fields and normalizes casing before any
// rule runs. Validation failures name the offending field.
func normalizeEntity(e Entity) (Entity, error) {
	e.BusinessName = strings.TrimSpace(e.BusinessName)
	if e.BusinessName == "" {
		return Entity{}, derrors.New(derrors.CodeValidation, "business_name is required")
	}

	e.Jurisdiction = strings.ToUpper(strings.TrimSpace(e.Jurisdiction))
	if e.Jurisdiction == "" {
		return Entity{}, derrors.New(derrors.CodeValidation, "jurisdiction is required")
	}

	if e.EntityAgeDays < 0 {
		return Entity{}, derrors.New(derrors.CodeValidation, "entity_age_days must not be negative")
	}

	e.RegistrationStatus = strings.ToLower(strings.TrimSpace(e.RegistrationStatus))
	if e.RegistrationStatus == "" {
		e.RegistrationStatus = "unknown"
	}

	if e.BusinessType == "" {
		e.BusinessType = "unknown"
	}
	if e.SanctionsFlags == nil {
		e.SanctionsFlags = []string{}
	}

	return e, nil
}

// verifiedEventData builds the kyb_verified event payload.
func verifiedEventData(verdict *Verdict, entity Entity, now time.Time, traceID string) map[string]any {
	return map[string]any{
		"verification_result": verdict,
		"entity_info":         entity,
		"timestamp":           now.UTC().Format(time.RFC3339Nano),
		"metadata": map[string]any{
			"service":  "onyx",
			"version":  verificationVersion,
			"feature":  "kyb_verification",
			"trace_id": traceID,
		},
	}
}
