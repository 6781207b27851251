package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates a hosted provider was configured without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrUnavailable indicates the provider endpoint is unreachable.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnauthorized indicates the provider rejected the credentials.
	ErrUnauthorized = errors.New("llm request unauthorized")

	// ErrQuotaExceeded indicates the provider refused the call for rate or
	// quota reasons.
	ErrQuotaExceeded = errors.New("llm quota exceeded")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// APIError is a non-2xx answer from a provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether a failed attempt is worth repeating. Client
// errors (4xx) will fail the same way again.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return !errors.Is(err, ErrEmptyResponse)
}
