package generation

import (
	"strings"

	apperrors "github.com/socialchef/cookmate/internal/errors"
)

// Classification of a provider failure.
const (
	ErrorRateLimit       = "rate_limit"
	ErrorCreditExhausted = "credit_exhausted"
	ErrorServer          = "server_error"
	ErrorClient          = "client_error"
	ErrorUnknown         = "unknown"
)

// ProviderError is a classified error from a generation backend.
type ProviderError struct {
	Type     string
	Message  string
	Provider string
}

func (e *ProviderError) Error() string {
	return e.Message
}

var (
	rateLimitMarkers = []string{"status 429", "http 429", "rate limit", "too many requests", "resource_exhausted"}
	creditMarkers    = []string{"status 402", "http 402", "insufficient credit", "credit exhausted", "billing", "quota"}
	serverMarkers    = []string{"status 5", "http 5", "server error", "internal error", "unavailable"}
	clientMarkers    = []string{"status 4", "http 4", "bad request", "unauthorized", "forbidden", "invalid_argument", "permission_denied"}
)

// ClassifyError sorts err into one of the Error* classes.
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classify := func(t string) *ProviderError {
		return &ProviderError{Type: t, Message: msg, Provider: provider}
	}

	if containsAny(msg, rateLimitMarkers) {
		return classify(ErrorRateLimit)
	}
	if containsAny(msg, creditMarkers) {
		return classify(ErrorCreditExhausted)
	}

	if appErr, ok := apperrors.As(err); ok {
		switch {
		case appErr.StatusCode == 429:
			return classify(ErrorRateLimit)
		case appErr.StatusCode == 402:
			return classify(ErrorCreditExhausted)
		case appErr.StatusCode >= 500 && appErr.ErrorCode != "GEMINI_REQUEST_FAILED":
			return classify(ErrorServer)
		case appErr.StatusCode >= 400 && appErr.StatusCode < 500:
			return classify(ErrorClient)
		}
	}

	if containsAny(msg, serverMarkers) {
		return classify(ErrorServer)
	}
	if containsAny(msg, clientMarkers) {
		return classify(ErrorClient)
	}

	return classify(ErrorUnknown)
}

// IsRetryableError reports whether another provider is worth trying.
func IsRetryableError(err error) bool {
	providerErr := ClassifyError(err, "")
	if providerErr == nil {
		return false
	}
	switch providerErr.Type {
	case ErrorRateLimit, ErrorCreditExhausted, ErrorServer:
		return true
	default:
		return false
	}
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
