package generation

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

func TestFallbackPrimarySucceeds(t *testing.T) {
	primary, secondary := new(mockTextGenerator), new(mockTextGenerator)
	primary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return(`[]`, nil)

	f := NewFallbackGenerator(primary, "gemini", secondary, "groq")
	out, err := f.GenerateJSON(context.Background(), "p", nil)

	require.NoError(t, err)
	assert.Equal(t, `[]`, out)
	secondary.AssertNotCalled(t, "GenerateJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestFallbackOnRetryableError(t *testing.T) {
	primary, secondary := new(mockTextGenerator), new(mockTextGenerator)
	primary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return("", errors.New("status 503"))
	secondary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return(`{"ok":true}`, nil)

	f := NewFallbackGenerator(primary, "gemini", secondary, "groq")
	out, err := f.GenerateJSON(context.Background(), "p", nil)

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	secondary.AssertExpectations(t)
}

func TestFallbackSkippedOnClientError(t *testing.T) {
	primary, secondary := new(mockTextGenerator), new(mockTextGenerator)
	primaryErr := errors.New("status 400")
	primary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return("", primaryErr)

	f := NewFallbackGenerator(primary, "gemini", secondary, "groq")
	_, err := f.GenerateJSON(context.Background(), "p", nil)

	assert.Equal(t, primaryErr, err)
	secondary.AssertNotCalled(t, "GenerateJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestFallbackBothFail(t *testing.T) {
	primary, secondary := new(mockTextGenerator), new(mockTextGenerator)
	primary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return("", errors.New("status 429"))
	secondary.On("GenerateJSON", mock.Anything, "p", mock.Anything).Return("", errors.New("status 500"))

	f := NewFallbackGenerator(primary, "gemini", secondary, "groq")
	_, err := f.GenerateJSON(context.Background(), "p", nil)

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "PROVIDER_FALLBACK_FAILED", appErr.Code())
}
