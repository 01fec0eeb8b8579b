package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFrom(t *testing.T) {
	assert.Equal(t, "unknown", ProviderFrom(context.Background()))
	assert.Equal(t, "Gemini", ProviderFrom(WithProvider(context.Background(), "Gemini")))
}

func TestNewDefaultsTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New(0).Timeout)
	assert.Equal(t, 5*time.Second, New(5*time.Second).Timeout)
}

func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(WithProvider(context.Background(), "Test"), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := New(time.Second).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}
