// Package audit packages decision results into versioned event envelopes and
// forwards them to an external event bus. Packaging is pure; emission goes
// through the Publisher port so the core never performs I/O itself.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is a versioned, timestamped wrapper around a decision payload,
// following the CloudEvents structured-content shape.
type Envelope struct {
	SpecVersion     string `json:"specversion"`
	Type            string `json:"type"`
	Source          string `json:"source"`
	ID              string `json:"id"`
	Time            string `json:"time"`
	Subject         string `json:"subject"`
	DataContentType string `json:"datacontenttype"`
	Data            any    `json:"data"`
}

const (
	// SpecVersion is the only envelope version this service emits.
	SpecVersion = "1.0"

	// TypeKYBVerified wraps a KYB verification verdict.
	TypeKYBVerified = "ocn.onyx.kyb_verified.v1"
	// SourceKYB identifies the KYB engine as event producer.
	SourceKYB = "onyx"

	// TypeTrustSignal wraps a trust scoring signal.
	TypeTrustSignal = "ocn.onyx.trust_signal.v1"
	// SourceTrustSignal identifies the trust engine as event producer.
	SourceTrustSignal = "onyx-trust-registry"

	contentTypeJSON = "application/json"
)

// Pack wraps a payload into an envelope. The subject is the caller-supplied
// trace/correlation id; the timestamp comes from the caller so a request
// produces consistent times across verdict and envelope.
func Pack(eventType, source, traceID string, now time.Time, data any) Envelope {
	return Envelope{
		SpecVersion:     SpecVersion,
		Type:            eventType,
		Source:          source,
		ID:              uuid.NewString(),
		Time:            now.UTC().Format(time.RFC3339Nano),
		Subject:         traceID,
		DataContentType: contentTypeJSON,
		Data:            data,
	}
}

// PackKYBVerified wraps a KYB verdict payload.
func PackKYBVerified(traceID string, now time.Time, data any) Envelope {
	return Pack(TypeKYBVerified, SourceKYB, traceID, now, data)
}

// PackTrustSignal wraps a trust signal payload.
func PackTrustSignal(traceID string, now time.Time, data any) Envelope {
	return Pack(TypeTrustSignal, SourceTrustSignal, traceID, now, data)
}

// Validate checks the structural invariants of an envelope produced by this
// service. It reports problems as a list so callers can log all of them.
func Validate(e Envelope) []string {
	var problems []string
	if e.SpecVersion != SpecVersion {
		problems = append(problems, "specversion must be "+SpecVersion)
	}
	if e.Type != TypeKYBVerified && e.Type != TypeTrustSignal {
		problems = append(problems, "unknown event type "+e.Type)
	}
	if e.Source == "" {
		problems = append(problems, "source is required")
	}
	if e.ID == "" {
		problems = append(problems, "id is required")
	}
	if e.Time == "" {
		problems = append(problems, "time is required")
	}
	if e.Subject == "" {
		problems = append(problems, "subject is required")
	}
	if e.DataContentType != contentTypeJSON {
		problems = append(problems, "datacontenttype must be "+contentTypeJSON)
	}
	if e.Data == nil {
		problems = append(problems, "data is required")
	}
	return problems
}
