// Package errors classifies upstream failures for retry decisions.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// TransientError represents an error that can be retried.
type TransientError struct {
	Err        error
	StatusCode int    // HTTP status code if applicable
	RetryAfter int    // Seconds to wait before retry (from Retry-After header)
	Message    string // User-facing message
}

func (e *TransientError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("transient error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as retryable with a user-facing message.
func NewTransientError(err error, message string) *TransientError {
	return &TransientError{Err: err, Message: message}
}

// PermanentError represents an error that should not be retried.
type PermanentError struct {
	Err        error
	StatusCode int
	Message    string
}

func (e *PermanentError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("permanent error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError wraps err as non-retryable with a user-facing message.
func NewPermanentError(err error, message string) *PermanentError {
	return &PermanentError{Err: err, Message: message}
}

// IsTransient checks if an error is retryable.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var transientErr *TransientError
	if errors.As(err, &transientErr) {
		return true
	}

	var permanentErr *PermanentError
	if errors.As(err, &permanentErr) {
		return false
	}

	// Network-level failures are worth retrying by default.
	var netErr net.Error
	return errors.As(err, &netErr)
}

// FromHTTPStatus classifies an upstream HTTP failure status.
func FromHTTPStatus(status int, body []byte) error {
	base := fmt.Errorf("upstream status %d: %s", status, body)
	switch {
	case status == 429 || status >= 500:
		return &TransientError{Err: base, StatusCode: status, Message: "upstream is busy, retrying may help"}
	default:
		return &PermanentError{Err: base, StatusCode: status}
	}
}
