package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAppError_TypeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("query handler failed: %w", NewNotFoundError("video"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.Equal(t, "video not found", GetAppError(wrapped).Message)

	notReady := NewNotReadyError("video", "PROCESSING")
	assert.True(t, IsNotReady(notReady))
	assert.Equal(t, http.StatusBadRequest, notReady.HTTPStatus)
	assert.Equal(t, "PROCESSING", notReady.Details["status"])

	cause := errors.New("throttled")
	dbErr := NewDatabaseError("query", cause)
	assert.True(t, IsDatabase(dbErr))
	assert.ErrorIs(t, dbErr, cause)
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", NewValidationError("limit must not be negative"), http.StatusBadRequest, "VALIDATION"},
		{"not found", NewNotFoundError("video"), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", NewForbiddenError("access denied"), http.StatusForbidden, "FORBIDDEN"},
		{"not ready", NewNotReadyError("video", "UPLOADING"), http.StatusBadRequest, "NOT_READY"},
		{"store", NewDatabaseError("get", errors.New("boom")), http.StatusInternalServerError, "DATABASE"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewErrorHandler(zap.NewNop(), false)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/videos/v1", nil)

			h.Handle(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantType, body.Type)
		})
	}
}

func TestErrorHandler_ForbiddenIsSecurityEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewErrorHandler(zap.New(core), false)

	h.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos/v1", nil), NewForbiddenError("access denied"))

	entries := logs.FilterField(zap.Bool("security_event", true)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestErrorHandler_RequestID(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	var body ErrorResponse

	req := httptest.NewRequest(http.MethodGet, "/videos/v1", nil)
	req.Header.Set("X-Request-ID", "from-header")
	rec := httptest.NewRecorder()
	h.Handle(rec, req, NewNotFoundError("video"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "from-header", body.RequestID)

	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "from-router"))
	rec = httptest.NewRecorder()
	h.Handle(rec, req, NewNotFoundError("video"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "from-router", body.RequestID)
}

func TestErrorHandler_NotReadyDetails(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), true)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/videos/v1/playback", nil), NewNotReadyError("video", "PROCESSING"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PROCESSING", body.Details["status"])
	assert.Contains(t, body.Details, "stack_trace")
}
