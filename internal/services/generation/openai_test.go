package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/socialchef/cookmate/internal/services/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatProviderGenerateJSON(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ingredients\":[],\"instructions\":[]}"}}]}`))
	}))
	defer srv.Close()

	p := NewChatProvider(ProviderOpenAI, "test-key").WithBaseURL(srv.URL)
	out, err := p.GenerateJSON(context.Background(), "details please", ai.RecipeDetailsSchema())

	require.NoError(t, err)
	assert.Equal(t, `{"ingredients":[],"instructions":[]}`, out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "details please", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestChatProviderArraySchemaSkipsJSONMode(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[]"}}]}`))
	}))
	defer srv.Close()

	p := NewChatProvider(ProviderGroq, "k").WithBaseURL(srv.URL)
	_, err := p.GenerateJSON(context.Background(), "list", ai.RecipeListSchema())

	require.NoError(t, err)
	assert.Nil(t, got.ResponseFormat)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
}

func TestChatProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	p := NewChatProvider(ProviderCerebras, "k").WithBaseURL(srv.URL)
	_, err := p.GenerateJSON(context.Background(), "list", ai.RecipeListSchema())

	require.Error(t, err)
	assert.Equal(t, ErrorRateLimit, ClassifyError(err, "cerebras").Type)
}

func TestChatProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewChatProvider(ProviderGroq, "k").WithBaseURL(srv.URL).GenerateJSON(context.Background(), "x", nil)
	assert.ErrorContains(t, err, "no response from Groq")
}

func TestNewChatProviderUnknownDefaultsToGroq(t *testing.T) {
	assert.Equal(t, ProviderGroq, NewChatProvider("mystery", "k").Type())
}
