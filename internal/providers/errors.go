package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrProviderUnavailable is returned when a decorator has no upstream to call.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNoList is returned by critical list reads when no endpoint in the chain yields a list.
	ErrNoList = errors.New("no list returned by any endpoint")
)

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Provider   string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d from %s: %s", e.Provider, e.StatusCode, e.Path, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d from %s", e.Provider, e.StatusCode, e.Path)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsRetryable reports whether repeating the call could succeed.
// Client errors other than 408 and 429 are final, as are cancellation and ErrNoList.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNoList) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if statusErr, ok := AsStatusError(err); ok {
		code := statusErr.StatusCode
		if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
			return true
		}
		return code >= http.StatusInternalServerError
	}
	return true
}
