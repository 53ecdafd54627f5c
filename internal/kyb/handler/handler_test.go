package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onyx/internal/kyb"
	"onyx/internal/kyb/store"
	"onyx/internal/platform/middleware"
)

func newKYBRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := kyb.NewService(
		kyb.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		kyb.WithVerdictStore(store.NewMemory(time.Minute)),
	)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)
	h.Register(r)
	return r
}

func postVerify(t *testing.T, router http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/kyb/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleVerify(t *testing.T) {
	router := newKYBRouter(t)

	t.Run("verified entity", func(t *testing.T) {
		rec := postVerify(t, router, map[string]any{
			"entity_id":           "entity-1",
			"business_name":       "Acme Corporation",
			"jurisdiction":        "US",
			"entity_age_days":     730,
			"registration_status": "active",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Verdict struct {
				Status string `json:"status"`
				Checks []struct {
					CheckName string `json:"check_name"`
				} `json:"checks"`
			} `json:"verdict"`
			Summary string `json:"summary"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "verified", resp.Verdict.Status)
		assert.Len(t, resp.Verdict.Checks, 5)
		assert.Contains(t, resp.Summary, "KYB Verification Result: VERIFIED")
	})

	t.Run("emit_audit returns envelope inline", func(t *testing.T) {
		rec := postVerify(t, router, map[string]any{
			"business_name":   "Acme Corporation",
			"jurisdiction":    "US",
			"entity_age_days": 730,
			"trace_id":        "trace-1",
			"emit_audit":      true,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			AuditEnvelope struct {
				Type    string `json:"type"`
				Subject string `json:"subject"`
			} `json:"audit_envelope"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ocn.onyx.kyb_verified.v1", resp.AuditEnvelope.Type)
		assert.Equal(t, "trace-1", resp.AuditEnvelope.Subject)
	})

	t.Run("missing business name is 422", func(t *testing.T) {
		rec := postVerify(t, router, map[string]any{"jurisdiction": "US"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "business_name is required", resp.ErrorDescription)
	})

	t.Run("malformed JSON is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kyb/verify", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("failing entity still returns 200", func(t *testing.T) {
		rec := postVerify(t, router, map[string]any{
			"business_name":   "Acme Corporation",
			"jurisdiction":    "XX",
			"entity_age_days": 730,
			"sanctions_flags": []string{"money_laundering"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Verdict struct {
				Status string `json:"status"`
				Reason string `json:"reason"`
			} `json:"verdict"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "fail", resp.Verdict.Status)
		assert.Equal(t, "Verification failed due to: jurisdiction_verification, sanctions_screening", resp.Verdict.Reason)
	})
}

func TestHandleLastVerdict(t *testing.T) {
	router := newKYBRouter(t)

	t.Run("returns stored verdict", func(t *testing.T) {
		rec := postVerify(t, router, map[string]any{
			"entity_id":           "entity-9",
			"business_name":       "Acme Corporation",
			"jurisdiction":        "US",
			"entity_age_days":     730,
			"registration_status": "active",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		getReq := httptest.NewRequest(http.MethodGet, "/kyb/verdicts/entity-9", nil)
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, getReq)
		require.Equal(t, http.StatusOK, getRec.Code)

		var verdict struct {
			Status   string `json:"status"`
			EntityID string `json:"entity_id"`
		}
		require.NoError(t, json.NewDecoder(getRec.Body).Decode(&verdict))
		assert.Equal(t, "verified", verdict.Status)
		assert.Equal(t, "entity-9", verdict.EntityID)
	})

	t.Run("unknown entity is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/kyb/verdicts/absent", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
