package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AuthError means the backend rejected the bearer token or the supplied
// credentials. It is terminal for the current session: callers must route it
// into the session invalidation path.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("authentication rejected (%d): %s", e.StatusCode, e.Message)
}

// RateLimitError means the backend shed the request. Background work absorbs
// it silently and retries on the next tick; only user-initiated actions
// surface it.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e == nil {
		return ""
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return "rate limited: " + e.Message
}

// ValidationError means the backend rejected the request body.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid request (%d): %s", e.StatusCode, e.Message)
}

// NetworkError means the server never produced a response: transport
// failure, DNS, or the per-request timeout. Distinct from a server-side
// error so loading states never hang on an unreachable backend.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cannot reach %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FetchError is any other non-2xx response.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsRateLimit(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// statusError converts a non-2xx response status and decoded message into
// the matching error type. 429 is always transient, never an auth failure.
func statusError(status int, message string, header http.Header) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{StatusCode: status, Message: message}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(header), Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{StatusCode: status, Message: message}
	default:
		return &FetchError{StatusCode: status, Message: message}
	}
}

func retryAfter(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
