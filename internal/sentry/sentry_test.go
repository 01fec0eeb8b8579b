package sentry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInitWithoutDSN(t *testing.T) {
	assert.NoError(t, Init("", "test", "cookmate", "v0"))
}

func TestCaptureErrorWithoutClient(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		CaptureError(ctx, nil)
		CaptureError(ctx, errors.New("plain"))
		CaptureError(ctx, apperrors.NewValidationError("bad input", "BAD", ""))
		CaptureError(ctx, apperrors.NewGenerationError("upstream", "UPSTREAM", errors.New("boom")))
	})
}

func TestHTTPMiddlewareRecoversPanic(t *testing.T) {
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTTPMiddlewarePassesThrough(t *testing.T) {
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
