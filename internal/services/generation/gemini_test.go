package generation

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/services/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), "test-key", "text-model", "image-model",
		WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return p
}

func TestGeminiGenerateJSON(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/text-model:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"[{\"name\":\"Soup\",\"description\":\"Warm\"}]"}]}}]}`))
	})

	out, err := p.GenerateJSON(context.Background(), "list", ai.RecipeListSchema())

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Soup","description":"Warm"}]`, out)
}

func TestGeminiGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/image-model:predict"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"` + base64.StdEncoding.EncodeToString(png) + `","mimeType":"image/png"}]}`))
	})

	out, err := p.GenerateImage(context.Background(), "soup", ImageOptions{AspectRatio: ai.CoverAspectRatio})

	require.NoError(t, err)
	assert.Equal(t, png, out)
}

func TestGeminiGenerateImageEmpty(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	})

	_, err := p.GenerateImage(context.Background(), "soup", ImageOptions{AspectRatio: ai.StepAspectRatio})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGeneration))
}

func TestGeminiAPIError(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad schema","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := p.GenerateJSON(context.Background(), "list", ai.RecipeListSchema())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGeneration))
	assert.False(t, IsRetryableError(err))
}
