// Package middleware injects request-scoped metadata into the context so
// services can read it through pkg/requestcontext without touching net/http.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"onyx/pkg/requestcontext"
)

const (
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"
)

// RequestMeta captures the request ID, trace ID, and a single "now" timestamp
// at the start of the request. All operations within one request observe the
// same time, which keeps verdict timestamps and audit envelopes consistent.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)

		if traceID := r.Header.Get(headerTraceID); traceID != "" {
			ctx = requestcontext.WithTraceID(ctx, traceID)
		}

		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set(headerRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
